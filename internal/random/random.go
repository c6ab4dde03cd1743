// Package random provides the randomness used when a game is created.
//
// Callers depend on Source so tests can substitute a fixed value.
package random

import "math/rand/v2"

// Source yields uniform values in [0,1).
type Source interface {
	Float64() float64
}

type source struct{}

// New returns a Source backed by the runtime's auto-seeded generator.
func New() Source {
	return source{}
}

func (source) Float64() float64 {
	return rand.Float64() //nolint: gosec // choosing who plays X is not security sensitive
}

// Fixed always yields v.
type Fixed float64

func (that Fixed) Float64() float64 {
	return float64(that)
}
