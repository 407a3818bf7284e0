// SPDX-License-Identifier: MIT
// Package: choicekit/logit
//
// likelihood.go — log-likelihood, its negation and the analytic score.
//
// All three are a single reduction over the task dimension with one scratch
// buffer of length J per call; no state is shared between calls.

package logit

import (
	"fmt"
	"math"
)

// LogLikelihood returns Σ_t log P_t,c(t) at beta.
// The result is finite for finite beta; -Inf is possible only when
// utilities themselves are infinite.
//
// Complexity: O(T·J·K).
func (m *Model) LogLikelihood(beta []float64) (float64, error) {
	if err := m.checkBeta(opLogLikelihood, beta); err != nil {
		return 0, err
	}

	v := make([]float64, m.nAlts)
	ll := 0.0
	for t := 0; t < m.nTasks; t++ {
		m.utilitiesInto(beta, t, v)
		mx, lse := logSumExpShifted(v)
		ll += (v[m.chosen[t]] - mx) - lse
	}

	return ll, nil
}

// NegLogLikelihood returns −LogLikelihood(beta), the minimization objective.
func (m *Model) NegLogLikelihood(beta []float64) (float64, error) {
	ll, err := m.LogLikelihood(beta)
	if err != nil {
		return 0, err
	}

	return -ll, nil
}

// Gradient writes ∂LL/∂β into dst (len K) and returns it; nil dst allocates.
//
//	∂LL/∂β_k = Σ_t ( X_k[t,c(t)] − Σ_j P_tj · X_k[t,j] )
func (m *Model) Gradient(beta, dst []float64) ([]float64, error) {
	if err := m.checkBeta(opGradient, beta); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make([]float64, m.nCov)
	}
	if len(dst) != m.nCov {
		return nil, fmt.Errorf("%s: len(dst)=%d, want %d: %w", opGradient, len(dst), m.nCov, ErrParamLength)
	}
	for k := range dst {
		dst[k] = 0
	}

	p := make([]float64, m.nAlts)
	for t := 0; t < m.nTasks; t++ {
		m.utilitiesInto(beta, t, p)
		Softmax(p, p)
		base := t * m.nAlts * m.nCov
		c := m.chosen[t]
		for j := 0; j < m.nAlts; j++ {
			w := -p[j]
			if j == c {
				w += 1
			}
			if w == 0 {
				continue
			}
			row := m.x[base+j*m.nCov : base+(j+1)*m.nCov]
			for k, xk := range row {
				dst[k] += w * xk
			}
		}
	}

	return dst, nil
}

// LogLikelihood builds a Model over data and evaluates it once. Prefer New
// plus Model.LogLikelihood for repeated evaluation.
func LogLikelihood(beta []float64, data Data) (float64, error) {
	m, err := New(data)
	if err != nil {
		return math.Inf(-1), err
	}

	return m.LogLikelihood(beta)
}

// NegLogLikelihood is the negation of LogLikelihood.
func NegLogLikelihood(beta []float64, data Data) (float64, error) {
	ll, err := LogLikelihood(beta, data)
	if err != nil {
		return math.Inf(1), err
	}

	return -ll, nil
}
