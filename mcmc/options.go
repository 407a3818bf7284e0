// SPDX-License-Identifier: MIT
// Package: choicekit/mcmc
//
// options.go — functional options for Sample.
//
// Contract:
//   • Nil arguments panic in the option constructor.
//   • Counts and scales usually come from configuration files, so they are
//     validated by Sample and reported as errors (ErrBadSteps, ErrBadBurnIn,
//     ErrBadProposal).
//   • No RNG is created implicitly.

package mcmc

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// Defaults.
const (
	DefaultSteps   = 10000
	DefaultStepStd = ReferenceIndicatorStep
)

// Option customizes Sample.
type Option func(*config)

type config struct {
	steps         int
	burnIn        int
	rng           *rand.Rand
	proposal      Proposal
	stddevs       []float64
	names         []string
	logger        *slog.Logger
	progressEvery int
}

func newConfig(opts ...Option) config {
	cfg := config{steps: DefaultSteps}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return cfg
}

// WithSteps sets the chain length, initial state included.
func WithSteps(n int) Option {
	return func(c *config) {
		c.steps = n
	}
}

// WithBurnIn sets how many leading samples are excluded from PostBurnIn
// and Summary.
func WithBurnIn(b int) Option {
	return func(c *config) {
		c.burnIn = b
	}
}

// WithRand supplies the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("mcmc: WithRand(nil)")
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

// WithProposal sets a custom transition kernel. Panics on nil.
func WithProposal(p Proposal) Option {
	if p == nil {
		panic("mcmc: WithProposal(nil)")
	}
	return func(c *config) {
		c.proposal = p
	}
}

// WithProposalStdDevs uses a GaussianWalk with the given per-coordinate
// scales. Ignored when WithProposal is also given.
func WithProposalStdDevs(sd ...float64) Option {
	s := append([]float64(nil), sd...)
	return func(c *config) {
		c.stddevs = s
	}
}

// WithNames labels the coordinates in summaries.
func WithNames(names ...string) Option {
	n := append([]string(nil), names...)
	return func(c *config) {
		c.names = n
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("mcmc: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithProgressEvery logs progress every k steps at Info level; 0 disables.
// Panics if k < 0.
func WithProgressEvery(k int) Option {
	if k < 0 {
		panic("mcmc: WithProgressEvery(k<0)")
	}
	return func(c *config) {
		c.progressEvery = k
	}
}
