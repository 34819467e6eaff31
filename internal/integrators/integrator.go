package integrators

import (
	"fmt"

	"github.com/san-kum/gliderlab/internal/geom"
)

// Field is a velocity field over the plane: position in, velocity out.
// It must be pure; steppers evaluate it at intermediate positions.
type Field func(geom.Vec2) geom.Vec2

// Stepper advances a position by one fixed step through a field.
// Steppers are deterministic and side-effect free.
type Stepper interface {
	Step(start geom.Vec2, f Field, stepsize float64) geom.Vec2
}

// ByName returns the stepper registered under name.
func ByName(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "midpoint":
		return NewMidpoint(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// Names lists the registered stepper names.
func Names() []string {
	return []string{"euler", "midpoint", "rk4"}
}
