// Package search finds a high-scoring glider start point by random
// multi-start search over a planetary system.
package search

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
	"github.com/san-kum/gliderlab/internal/glider"
	"github.com/san-kum/gliderlab/internal/integrators"
	"github.com/san-kum/gliderlab/internal/score"
)

// seedOffset keeps start-point sampling uncorrelated with planet
// placement, which consumes the caller's base seed directly.
const seedOffset = 2000

// DefaultAttempts is the number of candidate starts per search.
const DefaultAttempts = 1000

// Candidate is a start point together with the handedness and score of
// the trajectory it produced. Callers regenerate the trajectory from
// Start and Hand when they need it for display.
type Candidate struct {
	Start geom.Vec2
	Hand  glider.Handedness
	Score float64
}

// Searcher evaluates many candidate trajectories concurrently and
// keeps the best. Attempts are independent; the only shared state is
// the per-attempt score slice, reduced sequentially afterwards, so the
// result is identical for any worker count.
type Searcher struct {
	System       *field.System
	SpiralFactor float64
	MaxSteps     int
	Attempts     int
	Workers      int
	Weights      score.Weights
	Scheme       glider.Scheme
	Stepper      integrators.Stepper
	StepSize     float64
}

func New(sys *field.System, spiralFactor float64, maxSteps int) *Searcher {
	return &Searcher{
		System:       sys,
		SpiralFactor: spiralFactor,
		MaxSteps:     maxSteps,
		Attempts:     DefaultAttempts,
		Workers:      runtime.NumCPU(),
		Weights:      score.DefaultWeights(),
		Scheme:       glider.SchemeLevel,
		StepSize:     glider.DefaultStepSize,
	}
}

func (s *Searcher) newTracer() *glider.Tracer {
	tr := glider.NewTracer(s.System, s.SpiralFactor, s.MaxSteps)
	tr.Scheme = s.Scheme
	tr.StepSize = s.StepSize
	if s.Stepper != nil {
		tr.Stepper = s.Stepper
	}
	return tr
}

// Run samples Attempts random starts inside the system bounds and
// returns the highest-scoring candidate, ties going to the latest one.
// Start points and handedness coins are drawn up front from a single
// RNG seeded with seed+2000, so a given seed always yields the same
// candidate regardless of scheduling.
func (s *Searcher) Run(ctx context.Context, seed int64) (Candidate, error) {
	if len(s.System.Planets) == 0 {
		return Candidate{}, field.ErrNoPlanets
	}

	rng := rand.New(rand.NewSource(seed + seedOffset))
	starts := make([]geom.Vec2, s.Attempts)
	hands := make([]glider.Handedness, s.Attempts)
	for i := range starts {
		starts[i] = field.RandomPoint(s.System.Bounds, rng)
		hands[i] = glider.CoinFlip(rng)
	}

	scores := make([]float64, s.Attempts)

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > s.Attempts {
		workers = s.Attempts
	}
	chunk := (s.Attempts + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > s.Attempts {
			hi = s.Attempts
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			tracer := s.newTracer()
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				traj := tracer.Trace(starts[i], hands[i])
				scores[i] = score.Path(traj, s.System, s.Weights).Score
			}
		}(lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}

	best := Candidate{Score: math.Inf(-1)}
	for i := range scores {
		if scores[i] >= best.Score {
			best = Candidate{Start: starts[i], Hand: hands[i], Score: scores[i]}
		}
	}
	return best, nil
}
