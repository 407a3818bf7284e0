// SPDX-License-Identifier: MIT
// Package: choicekit/prior
//
// gaussian.go — Normal components, the independent Gaussian prior and the
// reference configuration.

package prior

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Reference standard deviations.
const (
	ReferenceIndicatorStdDev = 5.0
	ReferencePriceStdDev     = 1.0
)

// Kind classifies a coefficient by the scale of its covariate.
type Kind int

const (
	// Indicator coefficients multiply 0/1 attributes.
	Indicator Kind = iota
	// Price coefficients multiply monetary amounts.
	Price
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Indicator:
		return "indicator"
	case Price:
		return "price"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf classifies a covariate by name: names containing "price" or
// "cost" (case-insensitive) are Price, everything else is Indicator.
func KindOf(name string) Kind {
	n := strings.ToLower(name)
	if strings.Contains(n, "price") || strings.Contains(n, "cost") {
		return Price
	}

	return Indicator
}

// KindsOf maps KindOf over names.
func KindsOf(names []string) []Kind {
	kinds := make([]Kind, len(names))
	for i, n := range names {
		kinds[i] = KindOf(n)
	}

	return kinds
}

// Normal is one N(Mean, StdDev²) component.
type Normal struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// LogProb returns log N(x; Mean, StdDev).
func (n Normal) LogProb(x float64) float64 {
	return distuv.Normal{Mu: n.Mean, Sigma: n.StdDev}.LogProb(x)
}

func (n Normal) validate(i int) error {
	if math.IsNaN(n.Mean) || math.IsInf(n.Mean, 0) {
		return fmt.Errorf("component %d: mean %v: %w", i, n.Mean, ErrBadMean)
	}
	if !(n.StdDev > 0) || math.IsInf(n.StdDev, 1) {
		return fmt.Errorf("component %d: stddev %v: %w", i, n.StdDev, ErrBadStdDev)
	}

	return nil
}

// Gaussian is a product of independent Normal components.
// It is immutable and safe for concurrent use.
type Gaussian struct {
	comps []Normal
}

// NewGaussian builds a prior from parallel mean and standard-deviation slices.
func NewGaussian(means, stddevs []float64) (*Gaussian, error) {
	if len(means) != len(stddevs) {
		return nil, fmt.Errorf("NewGaussian: %d means, %d stddevs: %w", len(means), len(stddevs), ErrLengthMismatch)
	}
	comps := make([]Normal, len(means))
	for i := range means {
		comps[i] = Normal{Mean: means[i], StdDev: stddevs[i]}
	}

	return FromNormals(comps...)
}

// FromNormals builds a prior from explicit components.
func FromNormals(comps ...Normal) (*Gaussian, error) {
	if len(comps) == 0 {
		return nil, fmt.Errorf("FromNormals: no components: %w", ErrLengthMismatch)
	}
	for i, c := range comps {
		if err := c.validate(i); err != nil {
			return nil, fmt.Errorf("FromNormals: %w", err)
		}
	}

	return &Gaussian{comps: append([]Normal(nil), comps...)}, nil
}

// Reference returns the zero-mean reference prior for the given kinds.
func Reference(kinds []Kind) *Gaussian {
	comps := make([]Normal, len(kinds))
	for i, k := range kinds {
		comps[i] = Normal{StdDev: ReferenceIndicatorStdDev}
		if k == Price {
			comps[i].StdDev = ReferencePriceStdDev
		}
	}

	return &Gaussian{comps: comps}
}

// Isotropic returns n zero-mean components sharing stddev. Panics unless
// stddev is finite and positive.
func Isotropic(n int, stddev float64) *Gaussian {
	if n < 1 || !(stddev > 0) || math.IsInf(stddev, 1) {
		panic("prior: Isotropic(n<1 or stddev<=0)")
	}
	comps := make([]Normal, n)
	for i := range comps {
		comps[i] = Normal{StdDev: stddev}
	}

	return &Gaussian{comps: comps}
}

// Dim returns the number of components.
func (g *Gaussian) Dim() int { return len(g.comps) }

// Components returns a copy of the components.
func (g *Gaussian) Components() []Normal { return append([]Normal(nil), g.comps...) }

// LogPrior returns Σᵢ log N(βᵢ; μᵢ, σᵢ).
func (g *Gaussian) LogPrior(beta []float64) (float64, error) {
	if len(beta) != len(g.comps) {
		return math.Inf(-1), fmt.Errorf("LogPrior: len(beta)=%d, want %d: %w", len(beta), len(g.comps), ErrLengthMismatch)
	}
	lp := 0.0
	for i, c := range g.comps {
		lp += c.LogProb(beta[i])
	}

	return lp, nil
}
