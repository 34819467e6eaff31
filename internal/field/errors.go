package field

import "errors"

// Domain errors for system construction.
var (
	// ErrNoPlanets indicates a system was requested with zero planets.
	ErrNoPlanets = errors.New("field: system needs at least one planet")

	// ErrBadBounds indicates bounds with non-positive area.
	ErrBadBounds = errors.New("field: bounds must span a positive area")

	// ErrBadMass indicates a negative maximum planet mass.
	ErrBadMass = errors.New("field: max mass must be non-negative")
)
