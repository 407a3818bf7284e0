// SPDX-License-Identifier: MIT

// Package prior provides independent Gaussian priors over MNL coefficients.
//
//	log p(β) = Σᵢ log N(βᵢ; μᵢ, σᵢ)
//
// Densities are evaluated with gonum/stat/distuv. The reference
// configuration is wide (σ=5) for indicator-style coefficients and tighter
// (σ=1) for price coefficients; it expresses plausible magnitudes, not
// constraints.
package prior
