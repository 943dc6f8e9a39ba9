package storage

import (
	"time"

	"github.com/google/uuid"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Run describes one feature-extraction run.
type Run struct {
	VersionedRecord
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Rule              string    `json:"rule"`
	Edge              string    `json:"edge"`
	Height            int       `json:"height"`
	Width             int       `json:"width"`
	EvolutionsPerStep int       `json:"evolutions_per_step"`
	Steps             int       `json:"steps"`
	PadToSource       bool      `json:"pad_to_source"`
	Digits            []int     `json:"digits"`
	Images            int       `json:"images"`
}

// FeatureRecord is the feature computed for one dataset example.
type FeatureRecord struct {
	Index int     `json:"index"`
	Label int     `json:"label"`
	Value float64 `json:"value"`
}

// NewRun returns a run stamped with a fresh ID and the current versions.
func NewRun() Run {
	return Run{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
	}
}
