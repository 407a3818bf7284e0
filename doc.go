// SPDX-License-Identifier: MIT

// Package choicekit estimates multinomial logit (MNL) discrete-choice models.
//
// Two inference modes share one likelihood engine:
//
//	records ─▶ choice.Dataset ─▶ logit.Model ─┬─▶ mle.Fit ─────────────▶ mle.Result
//	                                          └─▶ posterior ─▶ mcmc.Sample ─▶ mcmc.Result
//
// Packages:
//
//	choice/    — immutable choice tensors, CSV ingestion
//	logit/     — utilities, stable softmax, log-likelihood and score
//	mle/       — quasi-Newton fit, finite-difference Hessian, SE and Wald intervals
//	prior/     — independent Gaussian priors
//	posterior/ — unnormalized log-posterior
//	mcmc/      — random-walk Metropolis-Hastings, chain summaries
//	simulate/  — synthetic conjoint data with known part-worths
//
// The choicekit command (cmd/choicekit) wires them behind fit, sample and
// simulate subcommands configured by YAML.
//
// Randomness is always injected (WithSeed / WithRand); the same seed gives
// the same chain.
package choicekit
