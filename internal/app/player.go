package app

import (
	"fmt"
	"strconv"

	"mnist-ca/internal/core"
)

// Player steps an automaton in driver-sized batches and keeps every
// snapshot so playback can move backwards.
type Player struct {
	ca      *core.Automaton
	per     int
	last    int
	history core.History
	pos     int
}

// NewPlayer prepares playback of a. Each forward move past the recorded
// history advances the automaton by per generations, never beyond last.
// A last of zero or less plays indefinitely.
func NewPlayer(a *core.Automaton, per, last int) (*Player, error) {
	if per <= 0 {
		return nil, fmt.Errorf("evolutions per step %d: %w", per, core.ErrInvalidStepCount)
	}
	if last > 0 && last <= a.Generation() {
		return nil, fmt.Errorf("last step %d not after generation %d: %w", last, a.Generation(), core.ErrInvalidStepCount)
	}
	return &Player{
		ca:      a,
		per:     per,
		last:    last,
		history: core.History{core.TakeSnapshot(a)},
	}, nil
}

// Current returns the snapshot at the playback position.
func (p *Player) Current() core.Snapshot { return p.history[p.pos] }

// Position reports the index of the current snapshot.
func (p *Player) Position() int { return p.pos }

// History returns every snapshot recorded so far, starting with the initial
// grid.
func (p *Player) History() core.History { return p.history }

// Automaton exposes the underlying automaton.
func (p *Player) Automaton() *core.Automaton { return p.ca }

// Done reports whether playback is at the final generation.
func (p *Player) Done() bool {
	return p.pos == len(p.history)-1 && p.last > 0 && p.ca.Generation() >= p.last
}

// Next moves forward one snapshot, simulating a new batch when needed. It
// returns false once the last step has been shown.
func (p *Player) Next() (bool, error) {
	if p.pos < len(p.history)-1 {
		p.pos++
		return true, nil
	}
	if p.Done() {
		return false, nil
	}
	n := p.per
	if p.last > 0 && p.last-p.ca.Generation() < n {
		n = p.last - p.ca.Generation()
	}
	if err := p.ca.Step(n); err != nil {
		return false, err
	}
	p.history = append(p.history, core.TakeSnapshot(p.ca))
	p.pos++
	return true, nil
}

// Prev moves back one recorded snapshot.
func (p *Player) Prev() bool {
	if p.pos == 0 {
		return false
	}
	p.pos--
	return true
}

// Rewind returns to the initial snapshot without discarding history.
func (p *Player) Rewind() { p.pos = 0 }

// Parameters combines the automaton's description with playback progress.
func (p *Player) Parameters() core.ParameterSnapshot {
	snap := p.ca.Parameters()
	cur := p.Current()
	last := "unbounded"
	if p.last > 0 {
		last = strconv.Itoa(p.last)
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Playback",
		Params: []core.Parameter{
			core.IntParam("frame", "Frame", p.pos),
			core.IntParam("shown", "Shown generation", cur.Generation),
			core.IntParam("per", "Evolutions per step", p.per),
			core.StringParam("last", "Last step", last),
			core.FloatParam("mean", "Mean", cur.Mean()),
		},
	})
	return snap
}
