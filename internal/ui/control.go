package ui

import "mnist-ca/internal/core"

// ParameterSource supplies the values listed in the HUD.
type ParameterSource interface {
	Parameters() core.ParameterSnapshot
}

// Control is an integer setting adjusted with -/+ buttons.
type Control struct {
	Label string
	Step  int
	Min   int
	Max   int
	Get   func() int
	Set   func(int)
}

// target returns the value one step in direction, clamped to the bounds, and
// whether it differs from the current value.
func (c Control) target(direction int) (int, bool) {
	if c.Get == nil || direction == 0 {
		return 0, false
	}
	step := c.Step
	if step <= 0 {
		step = 1
	}
	cur := c.Get()
	next := cur + direction*step
	if next < c.Min {
		next = c.Min
	}
	if c.Max > c.Min && next > c.Max {
		next = c.Max
	}
	return next, next != cur
}

// Adjust moves the control one step in direction and reports whether the
// value changed.
func (c Control) Adjust(direction int) bool {
	next, ok := c.target(direction)
	if !ok || c.Set == nil {
		return false
	}
	c.Set(next)
	return true
}
