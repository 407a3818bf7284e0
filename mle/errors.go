// SPDX-License-Identifier: MIT

package mle

import (
	"errors"
	"fmt"
)

var (
	// ErrNonConvergence indicates the minimizer stopped without meeting its
	// convergence criteria.
	ErrNonConvergence = errors.New("mle: optimizer did not converge")

	// ErrSingularHessian indicates the Hessian at the optimum is singular,
	// numerically near-singular, or implies a non-positive variance.
	ErrSingularHessian = errors.New("mle: singular hessian")

	// ErrDimension indicates an initial vector or name list whose length
	// differs from the number of covariates.
	ErrDimension = errors.New("mle: dimension mismatch")

	// ErrUnknownMethod indicates an optimizer method name MethodByName does
	// not recognise.
	ErrUnknownMethod = errors.New("mle: unknown optimizer method")
)

// NonConvergenceError reports the state the optimizer stopped in.
type NonConvergenceError struct {
	X          []float64 // last iterate
	F          float64   // objective (negative log-likelihood) at X
	Status     string    // optimizer termination status
	Message    string    // optimizer error text, if any
	Iterations int       // major iterations performed
}

// Error implements error.
func (e *NonConvergenceError) Error() string {
	msg := fmt.Sprintf("mle: optimizer did not converge: status=%s iterations=%d f=%g", e.Status, e.Iterations, e.F)
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// Is reports whether target is ErrNonConvergence.
func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}
