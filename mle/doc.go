// SPDX-License-Identifier: MIT

// Package mle fits multinomial logit coefficients by maximum likelihood.
//
// Fit minimizes the negative log-likelihood with a pluggable Optimizer (the
// default wraps gonum/optimize BFGS and feeds it the analytic score), then
// measures curvature at the optimum with a finite-difference Hessian:
//
//	H[i,j] = ( f(β+hᵢeᵢ+hⱼeⱼ) − f(β+hᵢeᵢ) − f(β+hⱼeⱼ) + f(β) ) / (hᵢhⱼ)
//
// with f = −LL and hᵢ = ε (1e-5 by default). H is the observed information;
// its inverse is the asymptotic covariance of β̂. Standard errors are the
// square roots of the diagonal and the reported intervals are Wald intervals
// β̂ ± 1.96·SE, a normal approximation rather than exact coverage.
//
// Failures are explicit:
//   - ErrNonConvergence (*NonConvergenceError) carries the last iterate;
//   - ErrSingularHessian when H cannot be inverted or yields a non-positive
//     variance. WithAllowSingular returns the estimates without standard
//     errors instead.
//
// Example:
//
//	res, err := mle.Fit(ds, nil, mle.WithLogger(logger))
//	if err != nil {
//	    // errors.Is(err, mle.ErrSingularHessian) ...
//	}
//	fmt.Println(res.Names, res.Estimates, res.StdErrors)
package mle
