// SPDX-License-Identifier: MIT

package posterior

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/choicekit/logit"
)

var (
	// ErrNilModel indicates New was given a nil model.
	ErrNilModel = errors.New("posterior: nil model")

	// ErrNilPrior indicates New was given a nil prior.
	ErrNilPrior = errors.New("posterior: nil prior")

	// ErrDimension indicates the prior and model disagree on the number of
	// coefficients.
	ErrDimension = errors.New("posterior: prior/model dimension mismatch")
)

// Prior is a log-density over the coefficient vector. *prior.Gaussian
// implements it.
type Prior interface {
	Dim() int
	LogPrior(beta []float64) (float64, error)
}

// Posterior is the unnormalized MNL log-posterior. Safe for concurrent use.
type Posterior struct {
	model *logit.Model
	prior Prior
}

// New pairs a likelihood model with a prior of the same dimension.
func New(model *logit.Model, pr Prior) (*Posterior, error) {
	if model == nil {
		return nil, fmt.Errorf("New: %w", ErrNilModel)
	}
	if pr == nil {
		return nil, fmt.Errorf("New: %w", ErrNilPrior)
	}
	if model.Dim() != pr.Dim() {
		return nil, fmt.Errorf("New: model has %d coefficients, prior %d: %w", model.Dim(), pr.Dim(), ErrDimension)
	}

	return &Posterior{model: model, prior: pr}, nil
}

// Dim returns the number of coefficients.
func (p *Posterior) Dim() int { return p.model.Dim() }

// Decompose returns the likelihood and prior terms separately.
func (p *Posterior) Decompose(beta []float64) (ll, lp float64, err error) {
	ll, err = p.model.LogLikelihood(beta)
	if err != nil {
		return 0, 0, fmt.Errorf("LogPosterior: %w", err)
	}
	lp, err = p.prior.LogPrior(beta)
	if err != nil {
		return 0, 0, fmt.Errorf("LogPosterior: %w", err)
	}

	return ll, lp, nil
}

// LogPosterior returns LL(β) + log p(β).
func (p *Posterior) LogPosterior(beta []float64) (float64, error) {
	ll, lp, err := p.Decompose(beta)
	if err != nil {
		return 0, err
	}

	return ll + lp, nil
}

// LogDensity is LogPosterior under the sampler's naming.
func (p *Posterior) LogDensity(beta []float64) (float64, error) {
	return p.LogPosterior(beta)
}

// LogPosterior builds a model over data and evaluates the posterior once.
func LogPosterior(beta []float64, data logit.Data, pr Prior) (float64, error) {
	m, err := logit.New(data)
	if err != nil {
		return 0, fmt.Errorf("LogPosterior: %w", err)
	}
	post, err := New(m, pr)
	if err != nil {
		return 0, err
	}

	return post.LogPosterior(beta)
}
