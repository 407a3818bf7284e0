// SPDX-License-Identifier: MIT

package mcmc

import "errors"

var (
	// ErrNeedRandSource indicates neither WithRand nor WithSeed was given.
	ErrNeedRandSource = errors.New("mcmc: random source required")

	// ErrNilTarget indicates a nil Target.
	ErrNilTarget = errors.New("mcmc: nil target")

	// ErrBadSteps indicates a chain shorter than two samples.
	ErrBadSteps = errors.New("mcmc: steps must be >= 2")

	// ErrBadBurnIn indicates a burn-in outside [0, steps).
	ErrBadBurnIn = errors.New("mcmc: burn-in must be in [0, steps)")

	// ErrDimension indicates an initial state, name list or proposal scale
	// whose length differs from the target dimension.
	ErrDimension = errors.New("mcmc: dimension mismatch")

	// ErrBadProposal indicates a non-positive or non-finite proposal scale.
	ErrBadProposal = errors.New("mcmc: invalid proposal scale")

	// ErrInitialDensity indicates the initial state has a non-finite log density.
	ErrInitialDensity = errors.New("mcmc: initial state has non-finite log density")

	// ErrNaNDensity indicates the target returned NaN or +Inf for a proposal.
	ErrNaNDensity = errors.New("mcmc: target returned NaN or +Inf log density")
)
