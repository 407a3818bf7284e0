// SPDX-License-Identifier: MIT
// Package: choicekit/mle
//
// optimizer.go — the Optimizer capability and its gonum/optimize adapter.
//
// Contract:
//   • Minimize returns the best point found and whether the method's
//     convergence criteria were met. It returns an error only when no point
//     could be produced at all.
//   • Problems without a gradient get a finite-difference one (gonum/diff/fd),
//     so gradient-based methods always work.

package mle

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Problem is an unconstrained minimization problem.
type Problem struct {
	// Func evaluates the objective.
	Func func(x []float64) float64
	// Grad writes ∇Func(x) into grad. Optional.
	Grad func(grad, x []float64)
}

// Solution is the outcome of a minimization.
type Solution struct {
	X           []float64 // final point
	F           float64   // objective at X
	Gradient    []float64 // gradient at X, when the method tracked it
	Converged   bool      // convergence criteria met
	Iterations  int       // major iterations
	Evaluations int       // objective evaluations
	Status      string    // method termination status
	Message     string    // error text reported by the method, if any
}

// Optimizer minimizes a Problem starting at x0.
type Optimizer interface {
	Minimize(p Problem, x0 []float64) (Solution, error)
}

// Default settings for the gonum adapter.
const (
	DefaultGradientThreshold = 1e-6
	DefaultMaxIterations     = 1000
	DefaultStallGradient     = 1e-6
)

// GonumOptimizer adapts gonum/optimize to Optimizer.
//
// Line searches near an optimum occasionally fail once the objective is flat
// to machine precision. When StallGradient > 0 such a stop still counts as
// converged if ‖∇f‖∞ ≤ StallGradient·max(1,|f|). Iteration, evaluation and
// runtime limits never count as converged.
type GonumOptimizer struct {
	Method        optimize.Method    // nil means BFGS
	Settings      *optimize.Settings // nil means DefaultGradientThreshold / DefaultMaxIterations
	StallGradient float64
}

// NewGonumOptimizer returns the default BFGS adapter.
func NewGonumOptimizer() *GonumOptimizer {
	return &GonumOptimizer{
		Method: &optimize.BFGS{},
		Settings: &optimize.Settings{
			GradientThreshold: DefaultGradientThreshold,
			MajorIterations:   DefaultMaxIterations,
		},
		StallGradient: DefaultStallGradient,
	}
}

// Minimize implements Optimizer.
func (o *GonumOptimizer) Minimize(p Problem, x0 []float64) (Solution, error) {
	if p.Func == nil {
		return Solution{}, fmt.Errorf("Minimize: nil objective")
	}

	grad := p.Grad
	if grad == nil {
		grad = func(g, x []float64) {
			fd.Gradient(g, p.Func, x, nil)
		}
	}
	prob := optimize.Problem{Func: p.Func, Grad: grad}

	method := o.Method
	if method == nil {
		method = &optimize.BFGS{}
	}
	settings := o.Settings
	if settings == nil {
		settings = &optimize.Settings{
			GradientThreshold: DefaultGradientThreshold,
			MajorIterations:   DefaultMaxIterations,
		}
	}

	res, err := optimize.Minimize(prob, x0, settings, method)
	if res == nil {
		if err == nil {
			err = fmt.Errorf("no result")
		}
		return Solution{}, fmt.Errorf("Minimize: %w", err)
	}

	sol := Solution{
		X:           append([]float64(nil), res.X...),
		F:           res.F,
		Gradient:    append([]float64(nil), res.Gradient...),
		Iterations:  res.MajorIterations,
		Evaluations: res.FuncEvaluations,
		Status:      res.Status.String(),
	}
	if err != nil {
		sol.Message = err.Error()
	}

	switch {
	case math.IsNaN(sol.F) || math.IsInf(sol.F, 0):
		// never a valid optimum
	case err == nil && res.Status.Err() == nil:
		sol.Converged = true
	case o.StallGradient > 0 && !isLimit(res.Status) && len(sol.Gradient) == len(sol.X) && len(sol.X) > 0:
		sol.Converged = floats.Norm(sol.Gradient, math.Inf(1)) <= o.StallGradient*math.Max(1, math.Abs(sol.F))
	}

	return sol, nil
}

func isLimit(s optimize.Status) bool {
	switch s {
	case optimize.IterationLimit, optimize.RuntimeLimit, optimize.FunctionEvaluationLimit,
		optimize.GradientEvaluationLimit, optimize.HessianEvaluationLimit:
		return true
	}

	return false
}

// MethodByName maps a configuration name onto a gonum method.
// Recognised: bfgs, lbfgs, cg, gradient-descent, nelder-mead (case-insensitive).
func MethodByName(name string) (optimize.Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bfgs":
		return &optimize.BFGS{}, nil
	case "lbfgs", "l-bfgs":
		return &optimize.LBFGS{}, nil
	case "cg":
		return &optimize.CG{}, nil
	case "gradient-descent", "gd":
		return &optimize.GradientDescent{}, nil
	case "nelder-mead", "neldermead":
		return &optimize.NelderMead{}, nil
	}

	return nil, fmt.Errorf("MethodByName(%q): %w", name, ErrUnknownMethod)
}
