package core

import "errors"

var (
	// ErrOutOfBounds reports a coordinate outside the grid that no edge rule
	// could resolve.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidCoordinate is an alias of ErrOutOfBounds used by the
	// neighborhood resolver for the requesting coordinate itself.
	ErrInvalidCoordinate = ErrOutOfBounds
	// ErrDimensionMismatch reports a rule returning a state of the wrong arity.
	ErrDimensionMismatch = errors.New("cell state arity mismatch")
	// ErrInvalidStepCount reports a non-positive or unreachable step request.
	ErrInvalidStepCount = errors.New("invalid step count")
	// ErrShapeMismatch reports initial data whose dimensions do not match the
	// configured grid.
	ErrShapeMismatch = errors.New("shape mismatch")
)
