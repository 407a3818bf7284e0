// SPDX-License-Identifier: MIT
// Package: choicekit/simulate
//
// options.go — functional options for Conjoint.
//
// Contract:
//   • Option constructors panic on meaningless values.
//   • No RNG is created implicitly.

package simulate

import (
	"math/rand/v2"
)

// Option customizes Conjoint.
type Option func(*config)

type config struct {
	rng    *rand.Rand
	truth  []float64
	offers int
}

func newConfig(opts ...Option) config {
	cfg := config{
		truth:  ReferenceTruth(),
		offers: DefaultOffers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRand supplies the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("simulate: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithTruth overrides the part-worths, ordered as ReferenceNames.
// Panics on a wrong length.
func WithTruth(beta []float64) Option {
	if len(beta) != len(referenceNames) {
		panic("simulate: WithTruth: wrong length")
	}
	b := append([]float64(nil), beta...)
	return func(c *config) {
		c.truth = b
	}
}

// WithOffers sets the number of alternatives per task. Panics if n < 2.
func WithOffers(n int) Option {
	if n < 2 {
		panic("simulate: WithOffers(n<2)")
	}
	return func(c *config) {
		c.offers = n
	}
}
