package storage

import "context"

// Store persists runs and the features they produced.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
	SaveFeatures(ctx context.Context, runID string, features []FeatureRecord) error
	GetFeatures(ctx context.Context, runID string) ([]FeatureRecord, bool, error)
}
