package integrators

import "github.com/san-kum/gliderlab/internal/geom"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(start geom.Vec2, f Field, stepsize float64) geom.Vec2 {
	return start.Add(f(start).Scale(stepsize))
}

// Midpoint evaluates the field once more at the half step. Visibly less
// trajectory drift than Euler at the same step size.
type Midpoint struct{}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(start geom.Vec2, f Field, stepsize float64) geom.Vec2 {
	k1 := f(start).Scale(stepsize)
	k2 := f(start.Add(k1.Div(2))).Scale(stepsize)
	return start.Add(k2)
}
