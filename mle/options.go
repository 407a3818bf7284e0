// SPDX-License-Identifier: MIT
// Package: choicekit/mle
//
// options.go — functional options for Fit.
//
// Defaults:
//   • BFGS (gonum/optimize), gradient threshold 1e-6, 1000 major iterations.
//   • Forward-difference Hessian with ε = 1e-5.
//   • 95% Wald multiplier 1.96.
//   • Singular Hessian is an error; logging is discarded.

package mle

import (
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// DefaultConfidenceZ is the two-sided 95% normal quantile.
const DefaultConfidenceZ = 1.96

// Option customizes Fit.
type Option func(*config)

type config struct {
	optimizer     Optimizer
	method        optimize.Method
	maxIter       int
	gradThreshold float64
	hessian       HessianSettings
	z             float64
	allowSingular bool
	names         []string
	logger        *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		maxIter:       DefaultMaxIterations,
		gradThreshold: DefaultGradientThreshold,
		hessian:       HessianSettings{Epsilon: DefaultEpsilon},
		z:             DefaultConfidenceZ,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.optimizer == nil {
		method := cfg.method
		if method == nil {
			method = &optimize.BFGS{}
		}
		cfg.optimizer = &GonumOptimizer{
			Method: method,
			Settings: &optimize.Settings{
				GradientThreshold: cfg.gradThreshold,
				MajorIterations:   cfg.maxIter,
			},
			StallGradient: DefaultStallGradient,
		}
	}

	return cfg
}

// WithOptimizer replaces the minimizer. It takes precedence over WithMethod,
// WithMaxIterations and WithGradientThreshold. Panics on nil.
func WithOptimizer(o Optimizer) Option {
	if o == nil {
		panic("mle: WithOptimizer(nil)")
	}
	return func(c *config) {
		c.optimizer = o
	}
}

// WithMethod selects the gonum method used by the default optimizer.
// Panics on nil.
func WithMethod(m optimize.Method) Option {
	if m == nil {
		panic("mle: WithMethod(nil)")
	}
	return func(c *config) {
		c.method = m
	}
}

// WithMaxIterations caps major iterations. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("mle: WithMaxIterations(n<1)")
	}
	return func(c *config) {
		c.maxIter = n
	}
}

// WithGradientThreshold sets the gradient-norm convergence threshold.
// Panics unless 0 < g < +Inf.
func WithGradientThreshold(g float64) Option {
	if !(g > 0) || math.IsInf(g, 1) {
		panic("mle: WithGradientThreshold(g<=0)")
	}
	return func(c *config) {
		c.gradThreshold = g
	}
}

// WithEpsilon sets the finite-difference step. Panics unless 0 < eps < +Inf.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 1) {
		panic("mle: WithEpsilon(eps<=0)")
	}
	return func(c *config) {
		c.hessian.Epsilon = eps
	}
}

// WithCentralDifferences switches the Hessian to the central scheme.
func WithCentralDifferences() Option {
	return func(c *config) {
		c.hessian.Central = true
	}
}

// WithRelativeStep scales each step by max(1,|β̂ᵢ|).
func WithRelativeStep() Option {
	return func(c *config) {
		c.hessian.Relative = true
	}
}

// WithConfidence sets the Wald interval multiplier z (β̂ ± z·SE).
// Panics unless 0 < z < +Inf.
func WithConfidence(z float64) Option {
	if !(z > 0) || math.IsInf(z, 1) {
		panic("mle: WithConfidence(z<=0)")
	}
	return func(c *config) {
		c.z = z
	}
}

// WithAllowSingular returns estimates without standard errors when the
// Hessian cannot be inverted, instead of failing.
func WithAllowSingular() Option {
	return func(c *config) {
		c.allowSingular = true
	}
}

// WithNames overrides the parameter names reported in Result.
func WithNames(names ...string) Option {
	return func(c *config) {
		c.names = append([]string(nil), names...)
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("mle: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}
