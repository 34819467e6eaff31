// Package score assigns a scalar desirability score to a glider
// trajectory. High scores go to paths that tour several planets while
// staying inside the bounds and clear of collisions.
package score

import (
	"math"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
)

const (
	DefaultSwitchWeight       = 100.0
	DefaultOutOfBoundsPenalty = 3.0
	DefaultCollisionPenalty   = 500.0

	// Path length is computed but weighted at zero by default: the
	// score prefers multi-planet tours over long single-planet orbits.
	DefaultLengthWeight = 0.0

	// A new closest planet is only accepted when its squared distance
	// is this factor smaller than the incumbent's, which suppresses
	// flapping near equidistant boundaries.
	switchHysteresis = 1.2

	// Squared distance below which a point counts as colliding with
	// its closest planet.
	sqCollisionDist = 100.0
)

// Weights controls the scoring terms. All fields are overridable;
// DefaultWeights matches the production scoring.
type Weights struct {
	Switch      float64
	OutOfBounds float64
	Collision   float64
	Length      float64
}

func DefaultWeights() Weights {
	return Weights{
		Switch:      DefaultSwitchWeight,
		OutOfBounds: DefaultOutOfBoundsPenalty,
		Collision:   DefaultCollisionPenalty,
		Length:      DefaultLengthWeight,
	}
}

// Summary breaks a score into its observable parts.
type Summary struct {
	Score          float64
	PathLength     float64
	PlanetSwitches int
	OutOfBounds    int
	Collisions     int
}

// Path scores a trajectory against a system. Out-of-bounds points are
// penalized and skipped: they contribute neither to path length nor to
// closest-planet tracking.
func Path(traj []geom.Vec2, sys *field.System, w Weights) Summary {
	var sum Summary
	penalty := 0.0

	closest := -1
	for i := 1; i < len(traj); i++ {
		p := traj[i]

		if !sys.Bounds.Contains(p) {
			sum.OutOfBounds++
			penalty += w.OutOfBounds
			continue
		}

		sum.PathLength += p.Sub(traj[i-1]).Mag()

		if len(sys.Planets) == 0 {
			continue
		}

		nearest, nearestSq := closestPlanet(sys, p)
		if closest == -1 {
			closest = nearest
		} else if nearest != closest {
			currentSq := p.Sub(sys.Planets[closest].Pos).SqMag()
			if nearestSq*switchHysteresis < currentSq {
				closest = nearest
				sum.PlanetSwitches++
			}
		}

		if p.Sub(sys.Planets[closest].Pos).SqMag() < sqCollisionDist {
			sum.Collisions++
			penalty += w.Collision
		}
	}

	sum.Score = float64(sum.PlanetSwitches)*w.Switch + sum.PathLength*w.Length - penalty
	return sum
}

func closestPlanet(sys *field.System, p geom.Vec2) (int, float64) {
	best := -1
	bestSq := math.MaxFloat64
	for i, planet := range sys.Planets {
		if sq := p.Sub(planet.Pos).SqMag(); sq < bestSq {
			best, bestSq = i, sq
		}
	}
	return best, bestSq
}
