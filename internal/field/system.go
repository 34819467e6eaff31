package field

import (
	"math"
	"math/rand"

	"github.com/san-kum/gliderlab/internal/geom"
)

// GravitationalConstant scales the gravity and potential probes.
const GravitationalConstant = 2000.0

// Planet is an immobile point mass. CCW selects the sign of its
// contribution to the angular potential field: counter-clockwise spin
// when true, clockwise when false.
type Planet struct {
	Pos  geom.Vec2
	Mass float64
	CCW  bool
}

func (p Planet) spin() float64 {
	if p.CCW {
		return 1
	}
	return -1
}

// System holds a set of stationary planets inside a bounding rectangle.
// It is immutable after construction; replace it wholesale for a new
// seed.
type System struct {
	Bounds  geom.Rect
	Planets []Planet
	G       float64
}

// NewRandom draws n planets with positions uniform inside bounds,
// masses uniform in [0, maxMass], and an independent fair handedness
// coin each. A mass of exactly zero is valid: a ghost planet
// contributes nothing to any probe.
func NewRandom(n int, maxMass float64, bounds geom.Rect, rng *rand.Rand) (*System, error) {
	if n < 1 {
		return nil, ErrNoPlanets
	}
	if maxMass < 0 {
		return nil, ErrBadMass
	}
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, ErrBadBounds
	}

	planets := make([]Planet, n)
	for i := range planets {
		ccw := rng.Float64() < 0.5
		planets[i] = Planet{
			Pos:  RandomPoint(bounds, rng),
			Mass: rng.Float64() * maxMass,
			CCW:  ccw,
		}
	}

	return &System{Bounds: bounds, Planets: planets, G: GravitationalConstant}, nil
}

// RandomPoint samples a point uniformly inside r.
func RandomPoint(r geom.Rect, rng *rand.Rand) geom.Vec2 {
	return geom.Vec2{
		X: r.Min.X + rng.Float64()*r.Width(),
		Y: r.Min.Y + rng.Float64()*r.Height(),
	}
}

// Gravity returns the summed force direction at pos, the negative
// gradient of the gravitational potential. Near a planet the magnitude
// grows without bound; exactly at a planet it is NaN.
func (s *System) Gravity(pos geom.Vec2) geom.Vec2 {
	var out geom.Vec2
	for _, p := range s.Planets {
		r := pos.Sub(p.Pos)
		out = out.Sub(r.Norm().Div(r.SqMag()).Scale(p.Mass))
	}
	return out.Scale(s.G)
}

// Potential returns the gravitational potential at pos. It is strictly
// negative for any system with at least one planet of positive mass.
func (s *System) Potential(pos geom.Vec2) float64 {
	out := 0.0
	for _, p := range s.Planets {
		out -= p.Mass / pos.Sub(p.Pos).Mag()
	}
	return out * s.G
}

// AngularGradient returns the rotational field at pos. Each planet
// contributes a vector circulating around it with magnitude mass/|r|,
// signed by its handedness. The field is non-conservative and is used
// to bias gliders into spirals.
func (s *System) AngularGradient(pos geom.Vec2) geom.Vec2 {
	var out geom.Vec2
	for _, p := range s.Planets {
		r := pos.Sub(p.Pos)
		out = out.Add(r.Perp().Scale(p.Mass * p.spin() / r.SqMag()))
	}
	return out
}

// WeightedAngleDiff returns the mass- and handedness-weighted sum over
// planets of the signed angular displacement of b relative to a, seen
// from each planet. Each per-planet displacement is wrapped into
// (-pi, pi].
func (s *System) WeightedAngleDiff(a, b geom.Vec2) float64 {
	out := 0.0
	for _, p := range s.Planets {
		diff := b.Sub(p.Pos).Arg() - a.Sub(p.Pos).Arg()
		if diff > math.Pi {
			diff -= 2 * math.Pi
		} else if diff < -math.Pi {
			diff += 2 * math.Pi
		}
		out += diff * p.Mass * p.spin()
	}
	return out
}
