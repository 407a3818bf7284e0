// SPDX-License-Identifier: MIT
// Package: choicekit/mle
//
// fit.go — Fit and the MLE result record.
//
// Flow:
//   1. Flatten data into a logit.Model.
//   2. Minimize −LL from the initial vector (zeros by default) with the
//      analytic gradient −∇LL.
//   3. Reject a non-converged run with *NonConvergenceError.
//   4. Finite-difference Hessian at β̂, invert, derive SE / CI / z / p.

package mle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/choicekit/logit"
)

const opFit = "Fit"

// Result is the MLE result record.
type Result struct {
	Names           []string    `json:"parameter_names"`
	Estimates       []float64   `json:"estimates"`
	StdErrors       []float64   `json:"standard_errors,omitempty"`
	CILower         []float64   `json:"ci_lower,omitempty"`
	CIUpper         []float64   `json:"ci_upper,omitempty"`
	ZValues         []float64   `json:"z_values,omitempty"`
	PValues         []float64   `json:"p_values,omitempty"`
	Covariance      [][]float64 `json:"covariance,omitempty"`
	LogLikelihood   float64     `json:"log_likelihood"`
	Iterations      int         `json:"iterations"`
	Evaluations     int         `json:"evaluations"`
	Status          string      `json:"status"`
	SingularHessian bool        `json:"singular_hessian"`
}

// Index returns the position of the named parameter, or -1.
func (r *Result) Index(name string) int {
	for i, n := range r.Names {
		if n == name {
			return i
		}
	}

	return -1
}

// namer is implemented by *choice.Dataset.
type namer interface {
	CovariateNames() []string
}

// Fit estimates β̂ = argmax LL(β) over data starting at initial
// (nil means the zero vector).
//
// Errors:
//   - logit construction errors (ErrDegenerateTask, ErrShape, ErrNilData).
//   - ErrDimension if initial or WithNames has the wrong length.
//   - *NonConvergenceError (ErrNonConvergence) if the optimizer did not converge.
//   - ErrSingularHessian unless WithAllowSingular is set.
func Fit(data logit.Data, initial []float64, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)

	model, err := logit.New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	k := model.Dim()

	x0 := make([]float64, k)
	if initial != nil {
		if len(initial) != k {
			return nil, fmt.Errorf("%s: len(initial)=%d, want %d: %w", opFit, len(initial), k, ErrDimension)
		}
		copy(x0, initial)
	}

	names, err := parameterNames(data, cfg.names, k)
	if err != nil {
		return nil, err
	}

	problem := Problem{
		Func: func(beta []float64) float64 {
			nll, err := model.NegLogLikelihood(beta)
			if err != nil {
				return math.Inf(1)
			}
			return nll
		},
		Grad: func(grad, beta []float64) {
			if _, err := model.Gradient(beta, grad); err != nil {
				for i := range grad {
					grad[i] = math.NaN()
				}
				return
			}
			floats.Scale(-1, grad)
		},
	}

	log := cfg.logger.With("op", "mle.Fit")
	log.Debug("minimizing negative log-likelihood", "params", k, "tasks", model.NumTasks(), "alternatives", model.NumAlternatives())

	sol, err := cfg.optimizer.Minimize(problem, x0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	if !sol.Converged {
		log.Warn("optimizer did not converge", "status", sol.Status, "iterations", sol.Iterations, "nll", sol.F)
		return nil, fmt.Errorf("%s: %w", opFit, &NonConvergenceError{
			X:          sol.X,
			F:          sol.F,
			Status:     sol.Status,
			Message:    sol.Message,
			Iterations: sol.Iterations,
		})
	}

	res := &Result{
		Names:         names,
		Estimates:     append([]float64(nil), sol.X...),
		LogLikelihood: -sol.F,
		Iterations:    sol.Iterations,
		Evaluations:   sol.Evaluations,
		Status:        sol.Status,
	}
	log.Debug("optimizer converged", "status", sol.Status, "iterations", sol.Iterations, "log_likelihood", res.LogLikelihood)

	hess := Hessian(problem.Func, res.Estimates, cfg.hessian)
	cov, err := invertCovariance(hess, cfg.hessian.floor(sol.F, res.Estimates))
	if err != nil {
		if !cfg.allowSingular {
			return nil, fmt.Errorf("%s: %w", opFit, err)
		}
		log.Warn("hessian not invertible; standard errors omitted", "err", err)
		res.SingularHessian = true
		return res, nil
	}

	res.fillInference(cov, cfg.z)

	return res, nil
}

// fillInference derives SE, Wald intervals and two-sided normal p-values.
func (r *Result) fillInference(cov *mat.SymDense, z float64) {
	k := len(r.Estimates)
	r.StdErrors = make([]float64, k)
	r.CILower = make([]float64, k)
	r.CIUpper = make([]float64, k)
	r.ZValues = make([]float64, k)
	r.PValues = make([]float64, k)
	r.Covariance = make([][]float64, k)

	for i := 0; i < k; i++ {
		se := math.Sqrt(cov.At(i, i))
		est := r.Estimates[i]
		r.StdErrors[i] = se
		r.CILower[i] = est - z*se
		r.CIUpper[i] = est + z*se
		r.ZValues[i] = est / se
		r.PValues[i] = 2 * distuv.UnitNormal.Survival(math.Abs(est/se))

		row := make([]float64, k)
		for j := range row {
			row[j] = cov.At(i, j)
		}
		r.Covariance[i] = row
	}
}

func parameterNames(data logit.Data, override []string, k int) ([]string, error) {
	if override != nil {
		if len(override) != k {
			return nil, fmt.Errorf("%s: %d names for %d parameters: %w", opFit, len(override), k, ErrDimension)
		}
		return append([]string(nil), override...), nil
	}
	if n, ok := data.(namer); ok {
		if names := n.CovariateNames(); len(names) == k {
			return names, nil
		}
	}

	names := make([]string, k)
	for i := range names {
		names[i] = fmt.Sprintf("b%d", i)
	}

	return names, nil
}
