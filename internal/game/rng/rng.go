// Package rng provides the randomness abstraction for the arena combat core.
// All probabilistic resolution (hit chance, critical chance, damage variance,
// loot rolls) draws through a Source so tests can substitute deterministic
// sequences.
package rng

// Source is the randomness provider for combat resolution.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a uniform random float64 in [0.0, 1.0).
	Float64() float64
}
