// SPDX-License-Identifier: MIT
// Package: choicekit/choice
//
// options.go — functional options for dataset construction.
//
// Contract:
//   • Options mutate an unexported config; later options override earlier.
//   • Option constructors panic on meaningless values (programmer error);
//     constructors themselves return errors and never panic.

package choice

// Option customizes dataset construction.
type Option func(*config)

type config struct {
	alternatives  int  // 0 means "take the most common task size"
	skipMalformed bool // exclude malformed tasks instead of failing
}

func newConfig(opts ...Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithAlternatives fixes the number of alternatives every task must have.
// Without it the most common task size defines the count. Panics if n < 1.
func WithAlternatives(n int) Option {
	if n < 1 {
		panic("choice: WithAlternatives(n<1)")
	}
	return func(c *config) {
		c.alternatives = n
	}
}

// WithSkipMalformed excludes tasks violating the per-task invariants instead
// of failing construction. Excluded tasks are listed by Dataset.Skipped.
// Schema and non-finite value errors remain fatal.
func WithSkipMalformed() Option {
	return func(c *config) {
		c.skipMalformed = true
	}
}
