// Package field models the combined gravitational and angular potential
// field generated by a set of stationary point masses.
//
// A [System] is built once per session from a seeded RNG and never
// mutated afterwards. Its probes are pure functions of position:
//
//   - [System.Gravity]: force direction, the negative potential gradient
//   - [System.Potential]: scalar gravitational potential
//   - [System.AngularGradient]: rotational field circulating each planet
//   - [System.WeightedAngleDiff]: net angular progress between two points
//
// Probes are reentrant and safe to call concurrently over a shared
// read-only system. Probing exactly at a planet's position is a
// singularity and yields NaN; callers keep clear of it through step and
// distance bounds.
package field
