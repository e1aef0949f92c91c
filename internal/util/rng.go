package util

import "math/rand"

// NewRand returns a deterministic random source for a simulation run.
// Seed zero is mapped to a fixed default so callers can treat it as
// "unseeded" while runs stay reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
