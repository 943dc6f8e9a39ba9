package storage

import (
	"errors"
	"testing"
)

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := NewRun()
	run.SchemaVersion = CurrentSchemaVersion + 1
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestDecodeRunKeepsFields(t *testing.T) {
	run := NewRun()
	run.Edge = "wrap"
	run.Height, run.Width = 27, 27
	run.Steps = 25
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != run.ID || got.Edge != "wrap" || got.Height != 27 || got.Steps != 25 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at changed: %v vs %v", got.CreatedAt, run.CreatedAt)
	}
}
