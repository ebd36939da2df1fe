// Package random provides the seeded random source shared by every
// randomized command, so a fixed seed reproduces identical output.
package random

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source is a deterministic pseudo-random source. It is not safe for
// concurrent use; each evaluation owns exactly one.
type Source struct {
	rng *mrand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{rng: mrand.New(mrand.NewSource(seed))}
}

// NewUnseeded returns a Source with a seed drawn from the operating system.
func NewUnseeded() *Source {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Degenerate fallback; determinism is only promised for explicit seeds.
		return New(1)
	}
	return New(int64(binary.LittleEndian.Uint64(b[:])))
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// IntBetween returns a uniform int in [lo, hi], inclusive of both bounds.
func (s *Source) IntBetween(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// FloatBetween returns a uniform float in [lo, hi].
func (s *Source) FloatBetween(lo, hi float64) float64 {
	if lo >= hi {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Percent samples a 0-100 probability check.
func (s *Source) Percent(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return s.rng.Float64()*100 < p
}
