// SPDX-License-Identifier: MIT
// Package: choicekit/mcmc
//
// proposal.go — transition kernels.

package mcmc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/choicekit/prior"
)

// Reference random-walk scales.
const (
	ReferenceIndicatorStep = 0.05
	ReferencePriceStep     = 0.005
)

// Proposal draws a candidate state from the current one.
// Propose writes into dst, which never aliases current.
type Proposal interface {
	Propose(rng *rand.Rand, current, dst []float64)
}

// Asymmetric is implemented by proposals with q(x'|x) ≠ q(x|x').
// LogProposalRatio returns log q(from|to) − log q(to|from), the Hastings
// correction added to log r.
type Asymmetric interface {
	LogProposalRatio(from, to []float64) float64
}

// dimChecker is implemented by proposals that can validate themselves
// against the target dimension.
type dimChecker interface {
	checkDim(dim int) error
}

// GaussianWalk perturbs every coordinate independently:
// x'ᵢ = xᵢ + σᵢ·z, z ~ N(0,1). It is symmetric.
type GaussianWalk struct {
	StdDevs []float64
}

// Propose implements Proposal.
func (g GaussianWalk) Propose(rng *rand.Rand, current, dst []float64) {
	for i, x := range current {
		dst[i] = x + g.StdDevs[i]*rng.NormFloat64()
	}
}

func (g GaussianWalk) checkDim(dim int) error {
	if len(g.StdDevs) != dim {
		return fmt.Errorf("%d proposal scales for dimension %d: %w", len(g.StdDevs), dim, ErrDimension)
	}
	for i, s := range g.StdDevs {
		if !(s > 0) || math.IsInf(s, 1) {
			return fmt.Errorf("proposal scale[%d]=%v: %w", i, s, ErrBadProposal)
		}
	}

	return nil
}

// Scaled returns a copy with every scale multiplied by f.
func (g GaussianWalk) Scaled(f float64) GaussianWalk {
	sd := make([]float64, len(g.StdDevs))
	for i, s := range g.StdDevs {
		sd[i] = s * f
	}

	return GaussianWalk{StdDevs: sd}
}

// ReferenceStdDevs returns the reference scale per coefficient kind.
func ReferenceStdDevs(kinds []prior.Kind) []float64 {
	sd := make([]float64, len(kinds))
	for i, k := range kinds {
		sd[i] = ReferenceIndicatorStep
		if k == prior.Price {
			sd[i] = ReferencePriceStep
		}
	}

	return sd
}
