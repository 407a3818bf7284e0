// SPDX-License-Identifier: MIT
// Package: choicekit/mcmc
//
// sampler.go — the Metropolis-Hastings loop and its result record.

package mcmc

import (
	"fmt"
	"math"
)

const opSample = "Sample"

// Healthy acceptance band for random-walk proposals.
const (
	HealthyMin = 0.20
	HealthyMax = 0.40
)

// Target is an unnormalized log density. *posterior.Posterior implements it.
// -Inf marks states outside the support; NaN is an error.
type Target interface {
	Dim() int
	LogDensity(x []float64) (float64, error)
}

// Result is the posterior result record.
type Result struct {
	Names          []string       `json:"parameter_names"`
	Steps          int            `json:"n_steps"`
	BurnIn         int            `json:"burn_in"`
	Accepted       int            `json:"accepted"`
	AcceptanceRate float64        `json:"acceptance_rate"`
	Summary        []ParamSummary `json:"summary"`
	Samples        *Chain         `json:"samples,omitempty"`
	PostBurnIn     *Chain         `json:"post_burnin,omitempty"`
}

// Healthy reports whether the acceptance rate lies in [HealthyMin, HealthyMax].
func (r *Result) Healthy() bool {
	return r.AcceptanceRate >= HealthyMin && r.AcceptanceRate <= HealthyMax
}

// Sample runs one random-walk Metropolis-Hastings chain from initial.
//
// Errors:
//   - ErrNilTarget, ErrNeedRandSource.
//   - ErrBadSteps, ErrBadBurnIn, ErrDimension, ErrBadProposal for invalid
//     configuration.
//   - ErrInitialDensity if log π(initial) is not finite.
//   - ErrNaNDensity, or the target's own error, during sampling.
//
// Complexity: O(n·(D + cost of LogDensity)) time, O(n·D) memory.
func Sample(target Target, initial []float64, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	if target == nil {
		return nil, fmt.Errorf("%s: %w", opSample, ErrNilTarget)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", opSample, ErrNeedRandSource)
	}
	if cfg.steps < 2 {
		return nil, fmt.Errorf("%s: steps=%d: %w", opSample, cfg.steps, ErrBadSteps)
	}
	if cfg.burnIn < 0 || cfg.burnIn >= cfg.steps {
		return nil, fmt.Errorf("%s: burn-in=%d, steps=%d: %w", opSample, cfg.burnIn, cfg.steps, ErrBadBurnIn)
	}

	dim := target.Dim()
	if len(initial) != dim {
		return nil, fmt.Errorf("%s: len(initial)=%d, want %d: %w", opSample, len(initial), dim, ErrDimension)
	}
	names := cfg.names
	if names != nil && len(names) != dim {
		return nil, fmt.Errorf("%s: %d names for dimension %d: %w", opSample, len(names), dim, ErrDimension)
	}

	proposal, err := cfg.resolveProposal(dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSample, err)
	}
	asym, _ := proposal.(Asymmetric)

	cur := append([]float64(nil), initial...)
	curLP, err := target.LogDensity(cur)
	if err != nil {
		return nil, fmt.Errorf("%s: initial state: %w", opSample, err)
	}
	if math.IsNaN(curLP) || math.IsInf(curLP, 0) {
		return nil, fmt.Errorf("%s: log density %v: %w", opSample, curLP, ErrInitialDensity)
	}

	log := cfg.logger.With("op", "mcmc.Sample")
	log.Debug("sampling", "dim", dim, "steps", cfg.steps, "burn_in", cfg.burnIn)

	rng := cfg.rng
	chain := newChain(dim, cfg.steps)
	chain.append(cur)
	prop := make([]float64, dim)
	accepted := 0

	for s := 1; s < cfg.steps; s++ {
		proposal.Propose(rng, cur, prop)
		lp, err := target.LogDensity(prop)
		if err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", opSample, s, err)
		}
		if math.IsNaN(lp) || math.IsInf(lp, 1) {
			return nil, fmt.Errorf("%s: step %d: log density %v: %w", opSample, s, lp, ErrNaNDensity)
		}

		logR := lp - curLP
		if asym != nil {
			logR += asym.LogProposalRatio(cur, prop)
		}
		u := rng.Float64()
		if !math.IsInf(lp, -1) && math.Log(u) < logR {
			cur, prop = prop, cur
			curLP = lp
			accepted++
		}
		chain.append(cur)

		if cfg.progressEvery > 0 && s%cfg.progressEvery == 0 {
			log.Info("progress", "step", s, "acceptance_rate", float64(accepted)/float64(s), "log_density", curLP)
		}
	}

	res := &Result{
		Names:          names,
		Steps:          cfg.steps,
		BurnIn:         cfg.burnIn,
		Accepted:       accepted,
		AcceptanceRate: float64(accepted) / float64(cfg.steps-1),
		Samples:        chain,
		PostBurnIn:     chain.Tail(cfg.burnIn),
	}
	if res.Names == nil {
		res.Names = make([]string, dim)
		for j := range res.Names {
			res.Names[j] = fmt.Sprintf("b%d", j)
		}
	}
	res.Summary = res.PostBurnIn.Summary(res.Names)

	if !res.Healthy() {
		log.Warn("acceptance rate outside healthy band; consider rescaling the proposal",
			"acceptance_rate", res.AcceptanceRate, "min", HealthyMin, "max", HealthyMax)
	} else {
		log.Debug("sampling done", "acceptance_rate", res.AcceptanceRate)
	}

	return res, nil
}

func (c *config) resolveProposal(dim int) (Proposal, error) {
	p := c.proposal
	if p == nil {
		sd := c.stddevs
		if sd == nil {
			sd = make([]float64, dim)
			for i := range sd {
				sd[i] = DefaultStepStd
			}
		}
		p = GaussianWalk{StdDevs: sd}
	}
	if dc, ok := p.(dimChecker); ok {
		if err := dc.checkDim(dim); err != nil {
			return nil, err
		}
	}

	return p, nil
}
