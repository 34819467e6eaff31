package glider

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
	"github.com/san-kum/gliderlab/internal/integrators"
)

var bounds = geom.Rect{Min: geom.Vec2{X: -100, Y: -100}, Max: geom.Vec2{X: 100, Y: 100}}

func singlePlanetSystem() *field.System {
	return &field.System{
		Bounds:  bounds,
		G:       field.GravitationalConstant,
		Planets: []field.Planet{{Pos: geom.Vec2{}, Mass: 1.0, CCW: true}},
	}
}

func TestTraceMaxStepsZeroAndOne(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 0)
	if traj := tr.Trace(geom.Vec2{X: 50}, Clockwise); len(traj) != 1 {
		t.Errorf("max steps 0: got %d points, want 1", len(traj))
	}

	tr.MaxSteps = 1
	if traj := tr.Trace(geom.Vec2{X: 50}, Clockwise); len(traj) != 1 {
		t.Errorf("max steps 1: got %d points, want 1", len(traj))
	}
}

func TestTraceStartsAtStart(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 20)
	start := geom.Vec2{X: 50, Y: 10}
	traj := tr.Trace(start, Clockwise)
	if traj[0] != start {
		t.Errorf("first point %v, want %v", traj[0], start)
	}
}

// A glider on a single-planet system with no spiral term rides an
// equipotential, which is a circle. Fifty RK4 steps of size 10 should
// keep the radius within 5%.
func TestTraceCircularOrbit(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 51)
	traj := tr.Trace(geom.Vec2{X: 50}, Clockwise)

	if len(traj) != 51 {
		t.Fatalf("got %d points, want 51", len(traj))
	}
	for i, p := range traj {
		r := p.Mag()
		if math.Abs(r-50) > 2.5 {
			t.Fatalf("point %d at radius %f, want 50 +/- 2.5", i, r)
		}
	}
}

func TestTraceContourOrbit(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 51)
	tr.Scheme = SchemeContour
	traj := tr.Trace(geom.Vec2{X: 50}, Clockwise)

	if len(traj) < 10 {
		t.Fatalf("trajectory ended early: %d points", len(traj))
	}
	for i, p := range traj {
		r := p.Mag()
		if math.Abs(r-50) > 2.5 {
			t.Fatalf("point %d at radius %f, want 50 +/- 2.5", i, r)
		}
	}
}

func TestTraceDeterministic(t *testing.T) {
	sys, err := field.NewRandom(4, 1.0, bounds, rand.New(rand.NewSource(23)))
	if err != nil {
		t.Fatal(err)
	}
	tr := NewTracer(sys, 0.05, 200)

	a := tr.Trace(geom.Vec2{X: 30, Y: -40}, CounterClockwise)
	b := tr.Trace(geom.Vec2{X: 30, Y: -40}, CounterClockwise)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTraceHandednessReversesMotion(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 3)
	start := geom.Vec2{X: 50}

	cw := tr.Trace(start, Clockwise)
	ccw := tr.Trace(start, CounterClockwise)

	if len(cw) < 2 || len(ccw) < 2 {
		t.Fatal("trajectories too short")
	}

	dcw := cw[1].Sub(start)
	dccw := ccw[1].Sub(start)
	if dcw.Dot(dccw) >= 0 {
		t.Errorf("expected opposite first steps, got %v and %v", dcw, dccw)
	}
}

func TestTraceStartAtPlanetDoesNotPanic(t *testing.T) {
	for _, scheme := range []Scheme{SchemeLevel, SchemeContour, SchemeRaw} {
		tr := NewTracer(singlePlanetSystem(), 0.1, 100)
		tr.Scheme = scheme
		traj := tr.Trace(geom.Vec2{}, Clockwise)

		if len(traj) == 0 {
			t.Errorf("%v: empty trajectory", scheme)
		}
		for i, p := range traj {
			if !p.IsValid() {
				t.Errorf("%v: non-finite point %d: %v", scheme, i, p)
			}
		}
	}
}

func TestTraceBlowUpTerminatesAfterOneStep(t *testing.T) {
	sys := singlePlanetSystem()
	tr := NewTracer(sys, 0, 100)
	// Step size far beyond the upper displacement bound: the first
	// step must be recorded and then the trace must stop.
	tr.StepSize = 50

	traj := tr.Trace(geom.Vec2{X: 50}, Clockwise)
	if len(traj) != 2 {
		t.Errorf("got %d points, want 2", len(traj))
	}
}

func TestTraceSpiralChangesRadius(t *testing.T) {
	sys := singlePlanetSystem()

	flat := NewTracer(sys, 0, 101)
	spiral := NewTracer(sys, 0.5, 101)

	start := geom.Vec2{X: 50}
	endFlat := flat.Trace(start, Clockwise)
	endSpiral := spiral.Trace(start, Clockwise)

	rFlat := endFlat[len(endFlat)-1].Mag()
	rSpiral := endSpiral[len(endSpiral)-1].Mag()

	if math.Abs(rSpiral-50) <= math.Abs(rFlat-50) {
		t.Errorf("spiral term did not move the orbit: flat radius %f, spiral radius %f", rFlat, rSpiral)
	}
}

// Under the contour scheme the spiral term accumulates the weighted
// angle diff into the desired potential. A clockwise glider around a
// counter-clockwise planet sweeps positive angles, so a positive spiral
// factor raises the target equipotential every step and the orbit
// climbs outward monotonically.
func TestTraceContourSpiralDriftsOutward(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0.5, 51)
	tr.Scheme = SchemeContour

	traj := tr.Trace(geom.Vec2{X: 50}, Clockwise)
	if len(traj) != 51 {
		t.Fatalf("got %d points, want 51", len(traj))
	}

	for i := 1; i < len(traj); i++ {
		if traj[i].Mag() < traj[i-1].Mag()-0.05 {
			t.Fatalf("radius shrank at point %d: %f -> %f", i, traj[i-1].Mag(), traj[i].Mag())
		}
	}

	first, last := traj[0].Mag(), traj[len(traj)-1].Mag()
	if last < first+3 {
		t.Errorf("expected outward drift, radius went %f -> %f", first, last)
	}

	// Without the spiral term the same scheme stays on its circle.
	tr.SpiralFactor = 0
	flat := tr.Trace(geom.Vec2{X: 50}, Clockwise)
	if r := flat[len(flat)-1].Mag(); math.Abs(r-50) > 2.5 {
		t.Errorf("flat contour orbit drifted to radius %f", r)
	}
}

func TestSchemeByName(t *testing.T) {
	tests := []struct {
		name string
		want Scheme
	}{
		{"level", SchemeLevel},
		{"contour", SchemeContour},
		{"raw", SchemeRaw},
	}
	for _, tt := range tests {
		got, err := SchemeByName(tt.name)
		if err != nil {
			t.Fatalf("SchemeByName(%s): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("SchemeByName(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := SchemeByName("bogus"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestCoinFlipSeeded(t *testing.T) {
	a := rand.New(rand.NewSource(9))
	b := rand.New(rand.NewSource(9))
	for i := 0; i < 32; i++ {
		if CoinFlip(a) != CoinFlip(b) {
			t.Fatal("coin flips diverged for equal seeds")
		}
	}
}

func TestTracerAlternateStepper(t *testing.T) {
	tr := NewTracer(singlePlanetSystem(), 0, 51)
	tr.Stepper = integrators.NewEuler()
	traj := tr.Trace(geom.Vec2{X: 50}, Clockwise)

	// Euler drifts outward on a circular level curve; it must still
	// produce a full finite trajectory.
	if len(traj) != 51 {
		t.Fatalf("got %d points, want 51", len(traj))
	}
	last := traj[len(traj)-1]
	if !last.IsValid() {
		t.Errorf("non-finite endpoint %v", last)
	}
}
