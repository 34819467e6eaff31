package integrators

import "github.com/san-kum/gliderlab/internal/geom"

// RK4 is the classical fourth-order Runge-Kutta stepper. It is the
// production default for trajectory generation.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(start geom.Vec2, f Field, stepsize float64) geom.Vec2 {
	k1 := f(start).Scale(stepsize)
	k2 := f(start.Add(k1.Div(2))).Scale(stepsize)
	k3 := f(start.Add(k2.Div(2))).Scale(stepsize)
	k4 := f(start.Add(k3)).Scale(stepsize)

	return start.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Div(6))
}
