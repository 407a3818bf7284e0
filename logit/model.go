// SPDX-License-Identifier: MIT
// Package: choicekit/logit
//
// model.go — Model construction, utilities and probabilities.
//
// Storage:
//   • x is the covariate tensor flattened as [task][alternative][covariate],
//     so the utility of (t,j) is one contiguous dot product with β.
//   • chosen holds the chosen column per task, checked once in New.

package logit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	opNew           = "New"
	opUtilities     = "Utilities"
	opProbabilities = "Probabilities"
	opLogLikelihood = "LogLikelihood"
	opGradient      = "Gradient"
)

// Data is the read-only view of a choice tensor consumed by the engine.
// *choice.Dataset implements it.
type Data interface {
	NumTasks() int
	NumAlternatives() int
	NumCovariates() int
	Covariate(k int) mat.Matrix
	Chosen() mat.Matrix
}

// Model evaluates MNL quantities over a fixed dataset.
type Model struct {
	nTasks int
	nAlts  int
	nCov   int
	x      []float64
	chosen []int
}

// New flattens data into a Model.
//
// Errors:
//   - ErrNilData for nil data or zero tasks/alternatives/covariates.
//   - ErrShape if any matrix is not NumTasks × NumAlternatives.
//   - *DegenerateTaskError (ErrDegenerateTask) if a chosen row is not a
//     binary one-hot row.
//
// Complexity: O(T·J·K) time and memory.
func New(data Data) (*Model, error) {
	if data == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilData)
	}
	nT, nJ, nK := data.NumTasks(), data.NumAlternatives(), data.NumCovariates()
	if nT <= 0 || nJ <= 0 || nK <= 0 {
		return nil, fmt.Errorf("%s: tasks=%d alternatives=%d covariates=%d: %w", opNew, nT, nJ, nK, ErrNilData)
	}

	m := &Model{
		nTasks: nT,
		nAlts:  nJ,
		nCov:   nK,
		x:      make([]float64, nT*nJ*nK),
		chosen: make([]int, nT),
	}

	for k := 0; k < nK; k++ {
		cov := data.Covariate(k)
		if r, c := cov.Dims(); r != nT || c != nJ {
			return nil, fmt.Errorf("%s: covariate %d is %dx%d, want %dx%d: %w", opNew, k, r, c, nT, nJ, ErrShape)
		}
		for t := 0; t < nT; t++ {
			for j := 0; j < nJ; j++ {
				m.x[(t*nJ+j)*nK+k] = cov.At(t, j)
			}
		}
	}

	ch := data.Chosen()
	if r, c := ch.Dims(); r != nT || c != nJ {
		return nil, fmt.Errorf("%s: chosen is %dx%d, want %dx%d: %w", opNew, r, c, nT, nJ, ErrShape)
	}
	for t := 0; t < nT; t++ {
		idx, reason := chosenColumn(ch, t, nJ)
		if reason != "" {
			return nil, fmt.Errorf("%s: %w", opNew, &DegenerateTaskError{Task: t, Reason: reason})
		}
		m.chosen[t] = idx
	}

	return m, nil
}

// chosenColumn returns the single column holding 1 in row t, or a reason.
func chosenColumn(ch mat.Matrix, t, nJ int) (int, string) {
	idx := -1
	for j := 0; j < nJ; j++ {
		switch v := ch.At(t, j); {
		case v == 1:
			if idx >= 0 {
				return -1, "more than one chosen alternative"
			}
			idx = j
		case v != 0:
			return -1, fmt.Sprintf("non-binary indicator %g at alternative %d", v, j)
		}
	}
	if idx < 0 {
		return -1, "no chosen alternative"
	}

	return idx, ""
}

// Dim returns the parameter dimension (number of covariates).
func (m *Model) Dim() int { return m.nCov }

// NumTasks returns the number of tasks.
func (m *Model) NumTasks() int { return m.nTasks }

// NumAlternatives returns the number of alternatives per task.
func (m *Model) NumAlternatives() int { return m.nAlts }

// ChosenIndex returns the chosen alternative of task t.
func (m *Model) ChosenIndex(t int) int { return m.chosen[t] }

func (m *Model) checkBeta(op string, beta []float64) error {
	if len(beta) != m.nCov {
		return fmt.Errorf("%s: len(beta)=%d, want %d: %w", op, len(beta), m.nCov, ErrParamLength)
	}

	return nil
}

func (m *Model) checkTask(op string, t int) error {
	if t < 0 || t >= m.nTasks {
		return fmt.Errorf("%s: task %d not in [0,%d): %w", op, t, m.nTasks, ErrTaskRange)
	}

	return nil
}

// utilitiesInto writes V_t· into dst (len nAlts) without validation.
func (m *Model) utilitiesInto(beta []float64, t int, dst []float64) {
	base := t * m.nAlts * m.nCov
	for j := 0; j < m.nAlts; j++ {
		off := base + j*m.nCov
		dst[j] = floats.Dot(beta, m.x[off:off+m.nCov])
	}
}

// Utilities returns the utility vector V_t· = Σ_k β_k X_k[t,·].
func (m *Model) Utilities(beta []float64, t int) ([]float64, error) {
	if err := m.checkBeta(opUtilities, beta); err != nil {
		return nil, err
	}
	if err := m.checkTask(opUtilities, t); err != nil {
		return nil, err
	}
	v := make([]float64, m.nAlts)
	m.utilitiesInto(beta, t, v)

	return v, nil
}

// Probabilities returns the choice probabilities of task t.
func (m *Model) Probabilities(beta []float64, t int) ([]float64, error) {
	v, err := m.Utilities(beta, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opProbabilities, err)
	}

	return Softmax(v, v), nil
}

// Softmax writes the max-shifted normalized exponential of v into dst and
// returns it. dst may alias v; a nil dst allocates. Equal inputs yield
// exactly equal outputs.
func Softmax(v, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(v))
	}
	if len(v) == 0 {
		return dst
	}
	mx := floats.Max(v)
	sum := 0.0
	for j, u := range v {
		e := math.Exp(u - mx)
		dst[j] = e
		sum += e
	}
	for j := range dst[:len(v)] {
		dst[j] /= sum
	}

	return dst
}

// logSumExpShifted returns (max, log Σ exp(v_j − max)).
func logSumExpShifted(v []float64) (float64, float64) {
	mx := floats.Max(v)
	sum := 0.0
	for _, u := range v {
		sum += math.Exp(u - mx)
	}

	return mx, math.Log(sum)
}
