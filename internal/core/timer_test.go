package core

import (
	"testing"
	"time"
)

func TestFixedStepPacesFrames(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := newFixedStep(10, func() time.Time { return clock })

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a frame should not step")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full frame should step")
	}
	if fs.Rate() != 10 {
		t.Fatalf("rate = %d, want 10", fs.Rate())
	}
	fs.SetRate(0)
	if fs.Rate() != 30 {
		t.Fatalf("non-positive rate should fall back to 30, got %d", fs.Rate())
	}
}
