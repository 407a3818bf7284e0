// SPDX-License-Identifier: MIT

// Package simulate generates synthetic conjoint choice data with known
// part-worths, for recovery checks and demos.
//
// The reference design is a streaming-service study: every task shows a
// fixed number of offers, each with a brand (N, P or H; H is the baseline),
// an ads flag and a monthly price in {8, 12, ..., 32}. The respondent picks
// the offer with the highest utility
//
//	U = β·x + ε,  ε ~ Gumbel(0, 1)
//
// which is exactly the multinomial logit data-generating process.
//
// Randomness is always explicit: pass WithSeed or WithRand, otherwise
// Conjoint returns ErrNeedRandSource.
package simulate
