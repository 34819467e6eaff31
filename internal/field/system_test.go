package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/gliderlab/internal/geom"
)

var testBounds = geom.Rect{Min: geom.Vec2{X: -100, Y: -100}, Max: geom.Vec2{X: 100, Y: 100}}

func newTestSystem(t *testing.T, n int, seed int64) *System {
	t.Helper()
	sys, err := NewRandom(n, 1.0, testBounds, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewRandom failed: %v", err)
	}
	return sys
}

func TestNewRandomValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewRandom(0, 1.0, testBounds, rng); err != ErrNoPlanets {
		t.Errorf("zero planets: got %v, want ErrNoPlanets", err)
	}
	if _, err := NewRandom(3, -1.0, testBounds, rng); err != ErrBadMass {
		t.Errorf("negative mass: got %v, want ErrBadMass", err)
	}
	degenerate := geom.Rect{Min: geom.Vec2{X: 5, Y: 5}, Max: geom.Vec2{X: 5, Y: 10}}
	if _, err := NewRandom(3, 1.0, degenerate, rng); err != ErrBadBounds {
		t.Errorf("degenerate bounds: got %v, want ErrBadBounds", err)
	}
}

func TestNewRandomDeterministic(t *testing.T) {
	a := newTestSystem(t, 5, 42)
	b := newTestSystem(t, 5, 42)

	for i := range a.Planets {
		if a.Planets[i] != b.Planets[i] {
			t.Errorf("planet %d differs: %v vs %v", i, a.Planets[i], b.Planets[i])
		}
	}
}

func TestNewRandomInsideBounds(t *testing.T) {
	sys := newTestSystem(t, 50, 7)
	for i, p := range sys.Planets {
		if !testBounds.Contains(p.Pos) {
			t.Errorf("planet %d outside bounds: %v", i, p.Pos)
		}
		if p.Mass < 0 || p.Mass > 1.0 {
			t.Errorf("planet %d mass out of range: %f", i, p.Mass)
		}
	}
}

func TestPotentialAlwaysNegative(t *testing.T) {
	sys := newTestSystem(t, 4, 23)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 200; i++ {
		p := RandomPoint(testBounds, rng)
		if v := sys.Potential(p); v >= 0 {
			t.Fatalf("potential at %v is %f, want < 0", p, v)
		}
	}
}

// Gravity must be the negative gradient of the potential to first
// order: phi(p + eps*u) - phi(p) ~ -eps * dot(g(p), u).
func TestGravityIsNegativePotentialGradient(t *testing.T) {
	sys := newTestSystem(t, 4, 23)
	rng := rand.New(rand.NewSource(5))
	eps := 1e-4

	for i := 0; i < 50; i++ {
		p := RandomPoint(testBounds, rng)
		g := sys.Gravity(p)
		// Skip samples too close to a planet; the finite difference
		// degrades where the field magnitude explodes.
		if g.Mag() > 1e4 {
			continue
		}
		for _, u := range []geom.Vec2{{X: 1}, {Y: 1}, {X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}} {
			fd := (sys.Potential(p.Add(u.Scale(eps))) - sys.Potential(p.Sub(u.Scale(eps)))) / (2 * eps)
			want := -g.Dot(u)
			if math.Abs(fd-want) > 1e-3*(1+math.Abs(want)) {
				t.Errorf("at %v along %v: finite diff %f, -g.u %f", p, u, fd, want)
			}
		}
	}
}

func TestAngularGradientFlipsWithHandedness(t *testing.T) {
	sys := newTestSystem(t, 4, 23)

	flipped := &System{Bounds: sys.Bounds, G: sys.G, Planets: make([]Planet, len(sys.Planets))}
	for i, p := range sys.Planets {
		p.CCW = !p.CCW
		flipped.Planets[i] = p
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		p := RandomPoint(testBounds, rng)
		a := sys.AngularGradient(p)
		b := flipped.AngularGradient(p)
		if math.Abs(a.X+b.X) > 1e-9 || math.Abs(a.Y+b.Y) > 1e-9 {
			t.Fatalf("at %v: %v is not the negation of %v", p, b, a)
		}
	}
}

func TestAngularGradientPerpendicular(t *testing.T) {
	sys := &System{
		Bounds:  testBounds,
		G:       GravitationalConstant,
		Planets: []Planet{{Pos: geom.Vec2{}, Mass: 1, CCW: true}},
	}

	p := geom.Vec2{X: 10, Y: 5}
	grad := sys.AngularGradient(p)
	if math.Abs(grad.Dot(p)) > 1e-9 {
		t.Errorf("single-planet angular gradient not perpendicular to radius: dot = %g", grad.Dot(p))
	}
}

func TestWeightedAngleDiffWraps(t *testing.T) {
	sys := &System{
		Bounds:  testBounds,
		G:       GravitationalConstant,
		Planets: []Planet{{Pos: geom.Vec2{}, Mass: 1, CCW: true}},
	}

	// Crossing the -x axis: raw angle difference jumps by ~2pi, the
	// wrapped displacement stays small.
	a := geom.Vec2{X: -10, Y: 0.1}
	b := geom.Vec2{X: -10, Y: -0.1}
	diff := sys.WeightedAngleDiff(a, b)
	if math.Abs(diff) > 0.1 {
		t.Errorf("wrapped angle diff too large: %f", diff)
	}
}

func TestWeightedAngleDiffSign(t *testing.T) {
	sys := &System{
		Bounds:  testBounds,
		G:       GravitationalConstant,
		Planets: []Planet{{Pos: geom.Vec2{}, Mass: 2, CCW: true}},
	}

	a := geom.Vec2{X: 10, Y: 0}
	b := geom.Vec2{X: 0, Y: 10}
	got := sys.WeightedAngleDiff(a, b)
	want := math.Pi / 2 * 2 // quarter turn ccw, mass 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %f, want %f", got, want)
	}

	// Swapping the endpoints negates the displacement.
	if rev := sys.WeightedAngleDiff(b, a); math.Abs(rev+want) > 1e-9 {
		t.Errorf("reversed: got %f, want %f", rev, -want)
	}
}

func TestGhostPlanetContributesNothing(t *testing.T) {
	solo := &System{
		Bounds:  testBounds,
		G:       GravitationalConstant,
		Planets: []Planet{{Pos: geom.Vec2{X: 20}, Mass: 0.7, CCW: true}},
	}
	withGhost := &System{
		Bounds: testBounds,
		G:      GravitationalConstant,
		Planets: []Planet{
			{Pos: geom.Vec2{X: 20}, Mass: 0.7, CCW: true},
			{Pos: geom.Vec2{X: -30, Y: 15}, Mass: 0, CCW: false},
		},
	}

	p := geom.Vec2{X: 3, Y: -8}
	if a, b := solo.Gravity(p), withGhost.Gravity(p); a != b {
		t.Errorf("gravity changed by ghost planet: %v vs %v", a, b)
	}
	if a, b := solo.Potential(p), withGhost.Potential(p); a != b {
		t.Errorf("potential changed by ghost planet: %f vs %f", a, b)
	}
	if a, b := solo.AngularGradient(p), withGhost.AngularGradient(p); a != b {
		t.Errorf("angular gradient changed by ghost planet: %v vs %v", a, b)
	}
}

func TestEmptySystemIsAdditiveIdentity(t *testing.T) {
	sys := &System{Bounds: testBounds, G: GravitationalConstant}

	p := geom.Vec2{X: 1, Y: 2}
	if g := sys.Gravity(p); g != (geom.Vec2{}) {
		t.Errorf("gravity of empty system: %v", g)
	}
	if v := sys.Potential(p); v != 0 {
		t.Errorf("potential of empty system: %f", v)
	}
	if a := sys.AngularGradient(p); a != (geom.Vec2{}) {
		t.Errorf("angular gradient of empty system: %v", a)
	}
}
