package logit_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/choicekit/choice"
	"github.com/katalvlaran/choicekit/logit"
)

const simplexTol = 1e-9

// priceDataset is the two-task, three-alternative price scenario.
func priceDataset(t *testing.T) *choice.Dataset {
	t.Helper()
	price := mat.NewDense(2, 3, []float64{10, 20, 30, 10, 20, 30})
	chosen := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
	d, err := choice.FromMatrices([]string{"price"}, []mat.Matrix{price}, chosen)
	require.NoError(t, err)
	return d
}

// randomDataset draws a K-covariate dataset with uniform covariates and
// uniformly chosen alternatives.
func randomDataset(t *testing.T, rng *rand.Rand, nTasks, nAlts, nCov int) *choice.Dataset {
	t.Helper()
	covs := make([]mat.Matrix, nCov)
	names := make([]string, nCov)
	for k := range covs {
		m := mat.NewDense(nTasks, nAlts, nil)
		for i := 0; i < nTasks; i++ {
			for j := 0; j < nAlts; j++ {
				m.Set(i, j, rng.Float64()*4-2)
			}
		}
		covs[k] = m
		names[k] = string(rune('a' + k))
	}
	chosen := mat.NewDense(nTasks, nAlts, nil)
	for i := 0; i < nTasks; i++ {
		chosen.Set(i, rng.IntN(nAlts), 1)
	}
	d, err := choice.FromMatrices(names, covs, chosen)
	require.NoError(t, err)
	return d
}

// TestProbabilities_PriceScenario checks the normalized exp(-1),exp(-2),exp(-3).
func TestProbabilities_PriceScenario(t *testing.T) {
	m, err := logit.New(priceDataset(t))
	require.NoError(t, err)

	for task := 0; task < 2; task++ {
		p, err := m.Probabilities([]float64{-0.1}, task)
		require.NoError(t, err)
		assert.InDelta(t, 0.665, p[0], 1e-3)
		assert.InDelta(t, 0.245, p[1], 1e-3)
		assert.InDelta(t, 0.090, p[2], 1e-3)

		sum := math.Exp(-1) + math.Exp(-2) + math.Exp(-3)
		assert.InDelta(t, math.Exp(-1)/sum, p[0], 1e-12)
	}
}

// TestProbabilities_EqualUtilities requires exactly one half each.
func TestProbabilities_EqualUtilities(t *testing.T) {
	x := mat.NewDense(1, 2, []float64{3.7, 3.7})
	chosen := mat.NewDense(1, 2, []float64{0, 1})
	d, err := choice.FromMatrices([]string{"x"}, []mat.Matrix{x}, chosen)
	require.NoError(t, err)
	m, err := logit.New(d)
	require.NoError(t, err)

	p, err := m.Probabilities([]float64{1.3}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, p)
}

// TestProbabilities_Simplex checks non-negativity and unit sum over random
// parameters and tasks.
func TestProbabilities_Simplex(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := randomDataset(t, rng, 50, 4, 3)
	m, err := logit.New(d)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		beta := []float64{rng.NormFloat64() * 10, rng.NormFloat64() * 10, rng.NormFloat64() * 10}
		for task := 0; task < d.NumTasks(); task++ {
			p, err := m.Probabilities(beta, task)
			require.NoError(t, err)
			for _, pj := range p {
				assert.GreaterOrEqual(t, pj, 0.0)
			}
			assert.InDelta(t, 1.0, floats.Sum(p), simplexTol)
		}
	}
}

// TestSoftmax_ShiftInvariance adds constants, including huge ones that would
// overflow a naive exponentiation.
func TestSoftmax_ShiftInvariance(t *testing.T) {
	v := []float64{1.5, -0.25, 0.75, 2}
	ref := logit.Softmax(v, nil)

	for _, c := range []float64{-1e6, -37, 0, 12.5, 800, 1e6} {
		shifted := make([]float64, len(v))
		for j := range v {
			shifted[j] = v[j] + c
		}
		got := logit.Softmax(shifted, nil)
		for j := range got {
			assert.False(t, math.IsNaN(got[j]), "shift %g produced NaN", c)
			assert.InDelta(t, ref[j], got[j], 1e-9, "shift %g alt %d", c, j)
		}
	}

	// In-place use.
	w := append([]float64(nil), v...)
	logit.Softmax(w, w)
	assert.InDeltaSlice(t, ref, w, 1e-15)
}

// TestLogLikelihood_MatchesProbabilities compares the stable reduction with
// the explicit sum of log probabilities.
func TestLogLikelihood_MatchesProbabilities(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	d := randomDataset(t, rng, 40, 3, 2)
	m, err := logit.New(d)
	require.NoError(t, err)

	beta := []float64{0.8, -1.2}
	want := 0.0
	for task := 0; task < d.NumTasks(); task++ {
		p, err := m.Probabilities(beta, task)
		require.NoError(t, err)
		want += math.Log(p[d.ChosenIndex(task)])
	}

	got, err := m.LogLikelihood(beta)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	neg, err := m.NegLogLikelihood(beta)
	require.NoError(t, err)
	assert.Equal(t, -got, neg)

	pkg, err := logit.LogLikelihood(beta, d)
	require.NoError(t, err)
	assert.Equal(t, got, pkg)
}

// TestLogLikelihood_LargeUtilities stays finite where exp would overflow.
func TestLogLikelihood_LargeUtilities(t *testing.T) {
	m, err := logit.New(priceDataset(t))
	require.NoError(t, err)

	ll, err := m.LogLikelihood([]float64{100})
	require.NoError(t, err)
	assert.False(t, math.IsInf(ll, 0) || math.IsNaN(ll))
	// Task 1 chose price 10 at beta=100: log P ≈ -2000.
	assert.InDelta(t, -2000-1000, ll, 1e-6)
}

// TestGradient_FiniteDifference checks the analytic score against fd.
func TestGradient_FiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	d := randomDataset(t, rng, 60, 3, 3)
	m, err := logit.New(d)
	require.NoError(t, err)

	beta := []float64{0.3, -0.7, 1.1}
	got, err := m.Gradient(beta, nil)
	require.NoError(t, err)

	f := func(x []float64) float64 {
		ll, _ := m.LogLikelihood(x)
		return ll
	}
	want := fd.Gradient(nil, f, beta, &fd.Settings{Formula: fd.Central})
	assert.InDeltaSlice(t, want, got, 1e-5)
}

// TestParamAndTaskErrors checks argument validation.
func TestParamAndTaskErrors(t *testing.T) {
	m, err := logit.New(priceDataset(t))
	require.NoError(t, err)

	_, err = m.LogLikelihood([]float64{1, 2})
	assert.ErrorIs(t, err, logit.ErrParamLength)
	_, err = m.Gradient([]float64{1}, make([]float64, 3))
	assert.ErrorIs(t, err, logit.ErrParamLength)
	_, err = m.Probabilities([]float64{1}, 2)
	assert.ErrorIs(t, err, logit.ErrTaskRange)
	_, err = m.Utilities([]float64{1}, -1)
	assert.ErrorIs(t, err, logit.ErrTaskRange)

	_, err = logit.New(nil)
	assert.ErrorIs(t, err, logit.ErrNilData)
}

// rawData is a Data implementation that skips the dataset invariants.
type rawData struct {
	x      *mat.Dense
	chosen *mat.Dense
}

func (r rawData) NumTasks() int {
	n, _ := r.chosen.Dims()
	return n
}

func (r rawData) NumAlternatives() int {
	_, c := r.chosen.Dims()
	return c
}

func (r rawData) NumCovariates() int       { return 1 }
func (r rawData) Covariate(int) mat.Matrix { return r.x }
func (r rawData) Chosen() mat.Matrix       { return r.chosen }

// TestNew_DegenerateTask verifies the defensive chosen-row check.
func TestNew_DegenerateTask(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	tests := []struct {
		name   string
		chosen []float64
	}{
		{"none chosen", []float64{1, 0, 0, 0}},
		{"two chosen", []float64{1, 0, 1, 1}},
		{"fractional", []float64{1, 0, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := rawData{x: x, chosen: mat.NewDense(2, 2, tt.chosen)}
			_, err := logit.New(data)
			assert.ErrorIs(t, err, logit.ErrDegenerateTask)

			var dte *logit.DegenerateTaskError
			require.ErrorAs(t, err, &dte)
			assert.Equal(t, 1, dte.Task)

			ll, err := logit.LogLikelihood([]float64{1}, data)
			assert.ErrorIs(t, err, logit.ErrDegenerateTask)
			assert.True(t, math.IsInf(ll, -1))
		})
	}

	_, err := logit.New(rawData{x: mat.NewDense(1, 2, nil), chosen: mat.NewDense(2, 2, []float64{1, 0, 0, 1})})
	assert.ErrorIs(t, err, logit.ErrShape)
}
