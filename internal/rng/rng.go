// Package rng holds the two random sources the fight backends draw from: a
// seeded sequential generator for single-threaded scans and a stateless
// per-cell hash for scans that run cells concurrently.
package rng

import "math/rand/v2"

// Sequential is a thin convenience wrapper around math/rand/v2 for
// deterministic seeding. It must not be shared between goroutines.
type Sequential struct {
	r *rand.Rand
}

// NewSequential creates a deterministic generator using the provided seed.
func NewSequential(seed int64) *Sequential {
	return &Sequential{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). n must be positive.
func (s *Sequential) IntN(n int) int {
	return s.r.IntN(n)
}

// Uint64 returns a uniformly distributed 64-bit value.
func (s *Sequential) Uint64() uint64 {
	return s.r.Uint64()
}

// Source exposes the underlying rand.Rand for advanced use.
func (s *Sequential) Source() *rand.Rand { return s.r }
