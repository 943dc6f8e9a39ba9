package storage

import (
	"encoding/json"
	"errors"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r Run) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return Run{}, err
	}
	return run, nil
}

func EncodeFeatures(features []FeatureRecord) ([]byte, error) {
	return json.Marshal(features)
}

func DecodeFeatures(data []byte) ([]FeatureRecord, error) {
	var features []FeatureRecord
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, err
	}
	return features, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
