// Package rng builds the random sources shared by pack generation and bot scoring.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness a draft draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropy returns a source seeded from the clock and the runtime's entropy.
func NewEntropy() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

// FromSeed returns New(seed) when seed is non-zero and NewEntropy otherwise.
func FromSeed(seed uint64) *rand.Rand {
	if seed == 0 {
		return NewEntropy()
	}
	return New(seed)
}

// Scripted replays fixed values, cycling when exhausted. IntN returns the next
// value scaled into [0, n).
type Scripted struct {
	Values []float64
	next   int
}

func (s *Scripted) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

func (s *Scripted) IntN(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
