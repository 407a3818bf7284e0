// SPDX-License-Identifier: MIT
// Package: choicekit/mle
//
// hessian.go — finite-difference curvature and its inversion.
//
// Forward scheme (default, K(K+3)/2+1 evaluations):
//
//	H[i,j] = ( f(x+hᵢeᵢ+hⱼeⱼ) − f(x+hᵢeᵢ) − f(x+hⱼeⱼ) + f(x) ) / (hᵢhⱼ)
//
// Central scheme (2K(K+1)+1 evaluations, O(h²) truncation):
//
//	H[i,i] = ( f(x+hᵢeᵢ) − 2f(x) + f(x−hᵢeᵢ) ) / hᵢ²
//	H[i,j] = ( f(++) − f(+−) − f(−+) + f(−−) ) / (4hᵢhⱼ)
//
// Step hᵢ = ε, or ε·max(1,|xᵢ|) with relative steps.

package mle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultEpsilon is the reference finite-difference step.
const DefaultEpsilon = 1e-5

// HessianSettings selects the finite-difference scheme.
type HessianSettings struct {
	Epsilon  float64 // step; ≤ 0 means DefaultEpsilon
	Central  bool    // central instead of forward differences
	Relative bool    // scale the step by max(1,|xᵢ|)
}

// Hessian approximates ∇²f(x). x is not modified.
func Hessian(f func([]float64) float64, x []float64, s HessianSettings) *mat.SymDense {
	n := len(x)
	eps := s.epsilon()
	h := make([]float64, n)
	for i := range h {
		h[i] = s.step(eps, x[i])
	}

	xx := make([]float64, n)
	eval := func(i int, si float64, j int, sj float64) float64 {
		copy(xx, x)
		if i >= 0 {
			xx[i] += si * h[i]
		}
		if j >= 0 {
			xx[j] += sj * h[j]
		}
		return f(xx)
	}

	hess := mat.NewSymDense(n, nil)
	f0 := f(append([]float64(nil), x...))

	if !s.Central {
		fi := make([]float64, n)
		for i := 0; i < n; i++ {
			fi[i] = eval(i, 1, -1, 0)
		}
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				fij := eval(i, 1, j, 1)
				hess.SetSym(i, j, (fij-fi[i]-fi[j]+f0)/(h[i]*h[j]))
			}
		}

		return hess
	}

	for i := 0; i < n; i++ {
		fp := eval(i, 1, -1, 0)
		fm := eval(i, -1, -1, 0)
		hess.SetSym(i, i, (fp-2*f0+fm)/(h[i]*h[i]))
		for j := i + 1; j < n; j++ {
			fpp := eval(i, 1, j, 1)
			fpm := eval(i, 1, j, -1)
			fmp := eval(i, -1, j, 1)
			fmm := eval(i, -1, j, -1)
			hess.SetSym(i, j, (fpp-fpm-fmp+fmm)/(4*h[i]*h[j]))
		}
	}

	return hess
}

// Singularity thresholds. A diagonal curvature is zero when it is within
// noiseFactor·ulp·max(1,|f|)/h², the rounding floor of a difference
// quotient. The matrix is rank-deficient when the smallest eigenvalue of
// its unit-diagonal scaling is ≤ √ε times the largest.
const noiseFactor = 1e3

var ulp = math.Nextafter(1, 2) - 1

// curvatureFloor holds the per-parameter noise floor and the relative
// eigenvalue tolerance for a Hessian taken at x with f(x) = fx.
type curvatureFloor struct {
	diag []float64
	rel  float64
}

func (s HessianSettings) floor(fx float64, x []float64) curvatureFloor {
	eps := s.epsilon()
	fl := curvatureFloor{diag: make([]float64, len(x)), rel: math.Sqrt(eps)}
	for i := range x {
		h := s.step(eps, x[i])
		fl.diag[i] = noiseFactor * ulp * math.Max(1, math.Abs(fx)) / (h * h)
	}

	return fl
}

func (s HessianSettings) epsilon() float64 {
	if s.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return s.Epsilon
}

func (s HessianSettings) step(eps, xi float64) float64 {
	if s.Relative {
		return eps * math.Max(1, math.Abs(xi))
	}
	return eps
}

// invertCovariance returns H⁻¹ symmetrized. ErrSingularHessian is returned
// for a non-finite entry, a diagonal within the noise floor, a scaled
// eigenvalue ≤ fl.rel, a failed inversion or a non-positive variance.
func invertCovariance(h *mat.SymDense, fl curvatureFloor) (*mat.SymDense, error) {
	n := h.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v := h.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("hessian[%d,%d]=%v: %w", i, j, v, ErrSingularHessian)
			}
		}
	}

	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		d := h.At(i, i)
		if d <= fl.diag[i] {
			return nil, fmt.Errorf("hessian[%d,%d]=%g within noise floor %g: %w", i, i, d, fl.diag[i], ErrSingularHessian)
		}
		scale[i] = 1 / math.Sqrt(d)
	}

	// D^-1/2 H D^-1/2, free of covariate units.
	unit := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			unit.SetSym(i, j, h.At(i, j)*scale[i]*scale[j])
		}
	}
	var es mat.EigenSym
	if !es.Factorize(unit, false) {
		return nil, fmt.Errorf("eigendecomposition failed: %w", ErrSingularHessian)
	}
	vals := es.Values(nil)
	if lo, hi := vals[0], vals[n-1]; lo <= fl.rel*hi {
		return nil, fmt.Errorf("scaled eigenvalues [%g, %g] below tolerance %g: %w", lo, hi, fl.rel, ErrSingularHessian)
	}

	var inv mat.Dense
	if err := inv.Inverse(h); err != nil {
		return nil, fmt.Errorf("invert: %v: %w", err, ErrSingularHessian)
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (inv.At(i, j) + inv.At(j, i))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("covariance[%d,%d]=%v: %w", i, j, v, ErrSingularHessian)
			}
			cov.SetSym(i, j, v)
		}
		if cov.At(i, i) <= 0 {
			return nil, fmt.Errorf("variance[%d]=%g: %w", i, cov.At(i, i), ErrSingularHessian)
		}
	}

	return cov, nil
}
