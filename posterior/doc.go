// SPDX-License-Identifier: MIT

// Package posterior combines the MNL likelihood with a prior into the
// unnormalized log-posterior
//
//	log π(β) = LL(β) + log p(β)
//
// the target density explored by package mcmc. Evaluation is pure: the
// same β always yields the same value and nothing is cached between calls.
package posterior
