// SPDX-License-Identifier: MIT

// Package mcmc implements a random-walk Metropolis-Hastings sampler over a
// log-density Target.
//
// One chain of n steps is produced. Sample 0 is the initial state; for
// s = 1..n−1:
//
//	β'    = proposal(β_{s−1})
//	log r = log π(β') − log π(β_{s−1})   (+ Hastings term for asymmetric proposals)
//	u     ~ U(0,1)
//	β_s   = β' if log u < log r, else β_{s−1}
//
// The acceptance rate is accepts/(n−1). Rates between roughly 20% and 40%
// are usually efficient for random walks; Result.Healthy reports that band
// and the sampler logs a warning outside it, but never retunes itself.
//
// Randomness is explicit. Without WithRand or WithSeed, Sample fails with
// ErrNeedRandSource; with the same seed, target and options it produces an
// identical chain.
//
// Example:
//
//	res, err := mcmc.Sample(post, start,
//	    mcmc.WithSteps(10000), mcmc.WithBurnIn(2000),
//	    mcmc.WithSeed(42), mcmc.WithProposalStdDevs(0.05, 0.05, 0.05, 0.005))
//	for _, s := range res.Summary {
//	    fmt.Println(s.Name, s.Mean, s.StdDev)
//	}
package mcmc
