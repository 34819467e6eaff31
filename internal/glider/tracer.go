package glider

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
	"github.com/san-kum/gliderlab/internal/integrators"
)

// Scheme selects how each step keeps the glider near its level curve.
type Scheme int

const (
	// SchemeLevel integrates the unit perpendicular of the combined
	// gravity and angular gradient. The spiral term enters the field
	// directly, so the level curve itself slowly rotates.
	SchemeLevel Scheme = iota

	// SchemeContour steps perpendicular to gravity alone with the
	// midpoint rule, then applies one potential-matching correction
	// pulling the endpoint back onto the desired equipotential. The
	// spiral term enters by shifting the desired potential each step.
	SchemeContour

	// SchemeRaw is the midpoint step without any correction.
	SchemeRaw
)

// SchemeByName returns the scheme registered under name.
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case "level":
		return SchemeLevel, nil
	case "contour":
		return SchemeContour, nil
	case "raw":
		return SchemeRaw, nil
	}
	return 0, fmt.Errorf("unknown scheme: %s", name)
}

func (s Scheme) String() string {
	switch s {
	case SchemeContour:
		return "contour"
	case SchemeRaw:
		return "raw"
	default:
		return "level"
	}
}

// Handedness fixes the direction a glider circulates. It is an explicit
// parameter so that a trajectory is fully determined by its inputs;
// callers who want a random direction draw the coin from their own
// seeded RNG via CoinFlip.
type Handedness int

const (
	Clockwise Handedness = iota
	CounterClockwise
)

func (h Handedness) String() string {
	if h == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// CoinFlip draws an unbiased handedness from rng.
func CoinFlip(rng *rand.Rand) Handedness {
	if rng.Float64() < 0.5 {
		return CounterClockwise
	}
	return Clockwise
}

const (
	// DefaultStepSize is the fixed integration step in world units.
	DefaultStepSize = 10.0

	// A step shorter than this means the glider stalled, usually right
	// next to a singularity.
	sqLowerDistLimit = 0.005

	// A step longer than this means the glider ejected at near-infinite
	// speed, usually a numeric blow-up.
	sqUpperDistLimit = 400.0
)

// Tracer generates glider trajectories over one planetary system. The
// zero value is not usable; construct with NewTracer and adjust fields
// before the first Trace call. A Tracer is safe for concurrent use as
// long as its fields are not mutated.
type Tracer struct {
	System       *field.System
	Stepper      integrators.Stepper
	Scheme       Scheme
	SpiralFactor float64
	StepSize     float64
	MaxSteps     int
}

func NewTracer(sys *field.System, spiralFactor float64, maxSteps int) *Tracer {
	return &Tracer{
		System:       sys,
		Stepper:      integrators.NewRK4(),
		Scheme:       SchemeLevel,
		SpiralFactor: spiralFactor,
		StepSize:     DefaultStepSize,
		MaxSteps:     maxSteps,
	}
}

// Trace generates the glider path from start. The returned slice begins
// with start and holds at most MaxSteps points. The path ends early
// when a step leaves the stable displacement band, or when a step
// produces a non-finite position (which is dropped rather than
// appended). Identical inputs always produce identical output.
func (t *Tracer) Trace(start geom.Vec2, hand Handedness) []geom.Vec2 {
	capacity := t.MaxSteps
	if capacity < 1 {
		capacity = 1
	}
	points := make([]geom.Vec2, 0, capacity)
	points = append(points, start)

	last := start
	desired := t.System.Potential(start)

	for n := 1; n < t.MaxSteps; n++ {
		var next geom.Vec2
		switch t.Scheme {
		case SchemeContour, SchemeRaw:
			next = t.contourStep(last, desired, hand)
		default:
			next = t.Stepper.Step(last, t.LevelField(hand), t.StepSize)
		}

		if !next.IsValid() {
			break
		}

		if t.Scheme != SchemeLevel && t.SpiralFactor != 0 {
			desired += t.System.WeightedAngleDiff(last, next) * t.SpiralFactor
		}

		sqDist := next.Sub(last).SqMag()
		points = append(points, next)
		last = next

		if sqDist < sqLowerDistLimit || sqDist > sqUpperDistLimit {
			break
		}
	}

	return points
}

// LevelField is the unit velocity field perpendicular to the combined
// gravity and angular gradient. Its integral curves are the level
// curves of the combined field, slowly rotated by the spiral term.
func (t *Tracer) LevelField(hand Handedness) integrators.Field {
	return func(pos geom.Vec2) geom.Vec2 {
		total := t.System.Gravity(pos).Scale(-1)
		if t.SpiralFactor != 0 {
			total = total.Sub(t.System.AngularGradient(pos).Scale(t.SpiralFactor))
		}
		dir := total.Perp().Norm()
		if hand == CounterClockwise {
			dir = dir.Scale(-1)
		}
		return dir
	}
}

// contourStep takes a midpoint step perpendicular to gravity and, for
// SchemeContour, corrects the endpoint toward the desired potential.
// The correction assumes a locally linear slope: gravity is minus the
// potential gradient and the offset moves along it, so
// offset = delta * gravity / |gravity|^2. Applied in two half steps to
// re-probe the gradient once along the way.
func (t *Tracer) contourStep(pos geom.Vec2, desired float64, hand Handedness) geom.Vec2 {
	sign := 1.0
	if hand == CounterClockwise {
		sign = -1
	}

	grav := t.System.Gravity(pos).Norm()
	half := grav.Perp().Scale(sign * t.StepSize / 2)

	grav = t.System.Gravity(pos.Add(half)).Norm()
	next := pos.Add(grav.Perp().Scale(sign * t.StepSize))

	if t.Scheme == SchemeRaw {
		return next
	}

	diff := t.System.Potential(next) - desired

	g := t.System.Gravity(next)
	mid := next.Add(g.Scale(diff / g.SqMag() / 2))
	g = t.System.Gravity(mid)
	return next.Add(g.Scale(diff / g.SqMag()))
}
