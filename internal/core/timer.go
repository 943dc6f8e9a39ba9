package core

import "time"

// FixedStep paces playback at a steady frames-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate.
func NewFixedStep(fps int) *FixedStep {
	return newFixedStep(fps, time.Now)
}

func newFixedStep(fps int, now func() time.Time) *FixedStep {
	fs := &FixedStep{now: now}
	fs.SetRate(fps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetRate(fps int) {
	if fps <= 0 {
		fps = 30
	}
	f.step = time.Second / time.Duration(fps)
}

// Rate reports the current frames per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// ShouldStep reports whether playback should advance by one frame.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
