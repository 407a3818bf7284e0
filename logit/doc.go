// SPDX-License-Identifier: MIT

// Package logit evaluates the multinomial logit model: deterministic
// utilities, choice probabilities and the log-likelihood of observed choices.
//
// For a parameter vector β and task t with alternatives j = 1..J:
//
//	V_tj   = Σ_k β_k · X_k[t,j]
//	P_tj   = exp(V_tj − m_t) / Σ_l exp(V_tl − m_t),   m_t = max_l V_tl
//	LL(β)  = Σ_t log P_t,c(t)
//
// Subtracting m_t before exponentiating keeps every exponent ≤ 0, so large
// utilities never overflow and the chosen log-probability is computed as
// (V_tc − m_t) − log Σ_l exp(V_tl − m_t) without forming P first.
//
// A Model is built once from any Data (a *choice.Dataset satisfies it) and
// flattens the covariate tensor for fast repeated evaluation. Model methods
// are pure and safe for concurrent use.
package logit
