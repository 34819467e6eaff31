package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/gliderlab/internal/geom"
)

// rotation is the field f(p) = (-y, x); its integral curves are circles
// traversed counter-clockwise with angular velocity 1.
func rotation(p geom.Vec2) geom.Vec2 {
	return geom.Vec2{X: -p.Y, Y: p.X}
}

func integrate(s Stepper, start geom.Vec2, f Field, dt float64, steps int) geom.Vec2 {
	p := start
	for i := 0; i < steps; i++ {
		p = s.Step(p, f, dt)
	}
	return p
}

func TestRK4Accuracy(t *testing.T) {
	dt := 0.01
	steps := 100
	p := integrate(NewRK4(), geom.Vec2{X: 1}, rotation, dt, steps)

	angle := dt * float64(steps)
	want := geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}

	if math.Abs(p.X-want.X) > 1e-6 || math.Abs(p.Y-want.Y) > 1e-6 {
		t.Errorf("got %v, want %v", p, want)
	}
}

func TestMidpointAccuracy(t *testing.T) {
	dt := 0.01
	steps := 100
	p := integrate(NewMidpoint(), geom.Vec2{X: 1}, rotation, dt, steps)

	angle := dt * float64(steps)
	want := geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}

	if math.Abs(p.X-want.X) > 1e-3 || math.Abs(p.Y-want.Y) > 1e-3 {
		t.Errorf("got %v, want %v", p, want)
	}
}

func TestEulerDrifts(t *testing.T) {
	// Euler on a rotation field spirals outward; the others stay much
	// closer to the unit circle. That ordering is the reason all three
	// remain selectable.
	dt := 0.1
	steps := 63 // roughly one full turn

	eulerErr := math.Abs(integrate(NewEuler(), geom.Vec2{X: 1}, rotation, dt, steps).Mag() - 1)
	midErr := math.Abs(integrate(NewMidpoint(), geom.Vec2{X: 1}, rotation, dt, steps).Mag() - 1)
	rk4Err := math.Abs(integrate(NewRK4(), geom.Vec2{X: 1}, rotation, dt, steps).Mag() - 1)

	if !(eulerErr > midErr && midErr > rk4Err) {
		t.Errorf("expected euler > midpoint > rk4 drift, got %g, %g, %g", eulerErr, midErr, rk4Err)
	}
}

func TestStepDeterministic(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		a := s.Step(geom.Vec2{X: 2, Y: 3}, rotation, 0.5)
		b := s.Step(geom.Vec2{X: 2, Y: 3}, rotation, 0.5)
		if a != b {
			t.Errorf("%s not deterministic: %v vs %v", name, a, b)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
