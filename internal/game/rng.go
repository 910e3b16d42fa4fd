package game

import (
	"math/rand"
	"time"
)

// Rand wraps a seeded math/rand source so every system that needs randomness
// (piece selection, wave composition, targeting rolls) draws from one
// injectable generator. A seed of 0 falls back to the wall clock, which is
// what the interactive shell wants; tests and the headless driver always pass
// an explicit seed.
type Rand struct {
	seed int64
	src  *rand.Rand
}

// NewRand creates a generator from the given seed (0 = time-based).
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)), // #nosec G404 -- game simulation only
	}
}

// Seed returns the seed the generator was built with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Intn returns a uniform int in [0, n). n must be > 0.
func (r *Rand) Intn(n int) int {
	return r.src.Intn(n)
}

// Int63 returns a non-negative int64, used to derive child seeds.
func (r *Rand) Int63() int64 {
	return r.src.Int63()
}

// Float64 returns a uniform float64 in [0.0, 1.0).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Chance returns true with probability p. p <= 0 never fires, p >= 1 always.
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.src.Float64() < p
}

// WeightedIndex picks an index proportionally to the given weights.
// Non-positive total weight falls back to index 0.
func (r *Rand) WeightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	roll := r.src.Intn(total)
	upto := 0
	for i, w := range weights {
		upto += w
		if roll < upto {
			return i
		}
	}
	return len(weights) - 1
}
