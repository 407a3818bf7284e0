package mle_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/choicekit/choice"
	"github.com/katalvlaran/choicekit/mle"
	"github.com/katalvlaran/choicekit/simulate"
)

// TestFit_Recovery fits 50 000 simulated tasks and expects every
// coefficient within 0.05 of the truth.
func TestFit_Recovery(t *testing.T) {
	if testing.Short() {
		t.Skip("large simulated dataset")
	}
	d, err := simulate.Conjoint(5000, 10, simulate.WithSeed(2024))
	require.NoError(t, err)

	res, err := mle.Fit(d, nil)
	require.NoError(t, err)
	require.False(t, res.SingularHessian)

	assert.Equal(t, simulate.ReferenceNames(), res.Names)
	truth := simulate.ReferenceTruth()
	for i, want := range truth {
		assert.InDelta(t, want, res.Estimates[i], 0.05, res.Names[i])
		assert.Greater(t, res.StdErrors[i], 0.0)
		assert.Less(t, res.CILower[i], res.Estimates[i])
		assert.Greater(t, res.CIUpper[i], res.Estimates[i])
	}
	assert.Less(t, res.LogLikelihood, 0.0)
}

// TestFit_Inference checks the SE/CI/z/p relations on a small fit.
func TestFit_Inference(t *testing.T) {
	d, err := simulate.Conjoint(100, 5, simulate.WithSeed(11))
	require.NoError(t, err)

	res, err := mle.Fit(d, nil)
	require.NoError(t, err)

	for i := range res.Estimates {
		se := res.StdErrors[i]
		assert.InDelta(t, math.Sqrt(res.Covariance[i][i]), se, 1e-12)
		assert.InDelta(t, res.Estimates[i]-1.96*se, res.CILower[i], 1e-12)
		assert.InDelta(t, res.Estimates[i]+1.96*se, res.CIUpper[i], 1e-12)
		assert.InDelta(t, res.Estimates[i]/se, res.ZValues[i], 1e-12)
		assert.True(t, res.PValues[i] >= 0 && res.PValues[i] <= 1)
		for j := range res.Estimates {
			assert.Equal(t, res.Covariance[i][j], res.Covariance[j][i])
		}
	}
	assert.Equal(t, 2, res.Index("ads"))
	assert.Equal(t, -1, res.Index("nope"))

	wide, err := mle.Fit(d, nil, mle.WithConfidence(2.576), mle.WithCentralDifferences(), mle.WithRelativeStep())
	require.NoError(t, err)
	for i := range wide.Estimates {
		assert.InDelta(t, res.StdErrors[i], wide.StdErrors[i], 1e-3*res.StdErrors[i]+1e-6)
		assert.Less(t, wide.CILower[i], res.CILower[i]+1e-6)
	}
}

// TestFit_AnalyticCurvature compares the finite-difference covariance with the
// inverse of the closed-form MNL information Σ_t Σ_j p_j (x_j−x̄)(x_j−x̄)ᵀ.
func TestFit_AnalyticCurvature(t *testing.T) {
	d, err := simulate.Conjoint(60, 5, simulate.WithSeed(5))
	require.NoError(t, err)
	res, err := mle.Fit(d, nil)
	require.NoError(t, err)

	k := d.NumCovariates()
	info := mat.NewSymDense(k, nil)
	x := make([][]float64, d.NumAlternatives())
	for task := 0; task < d.NumTasks(); task++ {
		v := make([]float64, d.NumAlternatives())
		for j := range x {
			x[j] = make([]float64, k)
			for c := 0; c < k; c++ {
				x[j][c] = d.Covariate(c).At(task, j)
				v[j] += res.Estimates[c] * x[j][c]
			}
		}
		mx := math.Max(v[0], math.Max(v[1], v[2]))
		sum := 0.0
		for j := range v {
			v[j] = math.Exp(v[j] - mx)
			sum += v[j]
		}
		mean := make([]float64, k)
		for j := range v {
			v[j] /= sum
			for c := 0; c < k; c++ {
				mean[c] += v[j] * x[j][c]
			}
		}
		for j := range v {
			for a := 0; a < k; a++ {
				for b := a; b < k; b++ {
					info.SetSym(a, b, info.At(a, b)+v[j]*(x[j][a]-mean[a])*(x[j][b]-mean[b]))
				}
			}
		}
	}
	var cov mat.Dense
	require.NoError(t, cov.Inverse(info))

	for i := 0; i < k; i++ {
		assert.InEpsilon(t, math.Sqrt(cov.At(i, i)), res.StdErrors[i], 1e-2, res.Names[i])
	}
}

// TestFit_SingularHessian uses a covariate the likelihood cannot see.
func TestFit_SingularHessian(t *testing.T) {
	price := mat.NewDense(4, 2, []float64{10, 20, 30, 10, 15, 25, 20, 5})
	zero := mat.NewDense(4, 2, nil)
	chosen := mat.NewDense(4, 2, []float64{1, 0, 1, 0, 1, 0, 0, 1})
	d, err := choice.FromMatrices([]string{"price", "zero"}, []mat.Matrix{price, zero}, chosen)
	require.NoError(t, err)

	_, err = mle.Fit(d, nil)
	assert.ErrorIs(t, err, mle.ErrSingularHessian)

	res, err := mle.Fit(d, nil, mle.WithAllowSingular())
	require.NoError(t, err)
	assert.True(t, res.SingularHessian)
	assert.Len(t, res.Estimates, 2)
	assert.Nil(t, res.StdErrors)
	assert.InDelta(t, 0.0, res.Estimates[1], 1e-12)
}

// TestFit_CollinearCovariates covers unidentified directions whose
// finite-difference curvature is rounding noise rather than exactly zero:
// a rescaled copy of price, and a column constant within every task.
func TestFit_CollinearCovariates(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		d, err := simulate.Conjoint(150, 5, simulate.WithSeed(seed))
		require.NoError(t, err)
		ads, _ := d.CovariateByName("ads")
		price, _ := d.CovariateByName("price")
		r, c := price.Dims()

		var half mat.Dense
		half.Scale(0.5, price)
		three := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				three.Set(i, j, 3)
			}
		}

		identified, err := choice.FromMatrices([]string{"ads", "price"}, []mat.Matrix{ads, price}, d.Chosen())
		require.NoError(t, err)
		res, err := mle.Fit(identified, nil)
		require.NoError(t, err, "seed %d", seed)
		require.False(t, res.SingularHessian)

		for name, extra := range map[string]mat.Matrix{"half price": &half, "constant": three} {
			cd, err := choice.FromMatrices([]string{"ads", "price", name}, []mat.Matrix{ads, price, extra}, d.Chosen())
			require.NoError(t, err)

			_, err = mle.Fit(cd, nil)
			assert.ErrorIs(t, err, mle.ErrSingularHessian, "seed %d, %s", seed, name)

			res, err := mle.Fit(cd, nil, mle.WithAllowSingular())
			require.NoError(t, err, "seed %d, %s", seed, name)
			assert.True(t, res.SingularHessian)
			assert.Nil(t, res.StdErrors)
		}
	}
}

// stuck never converges.
type stuck struct{}

func (stuck) Minimize(p mle.Problem, x0 []float64) (mle.Solution, error) {
	return mle.Solution{X: x0, F: p.Func(x0), Status: "IterationLimit", Iterations: 7}, nil
}

func TestFit_NonConvergence(t *testing.T) {
	d, err := simulate.Conjoint(20, 5, simulate.WithSeed(9))
	require.NoError(t, err)

	_, err = mle.Fit(d, []float64{0.1, 0.2, 0.3, 0.4}, mle.WithOptimizer(stuck{}))
	require.ErrorIs(t, err, mle.ErrNonConvergence)
	var nce *mle.NonConvergenceError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, nce.X)
	assert.Equal(t, 7, nce.Iterations)
	assert.Greater(t, nce.F, 0.0)

	_, err = mle.Fit(d, nil, mle.WithMaxIterations(1))
	assert.ErrorIs(t, err, mle.ErrNonConvergence)
}

func TestFit_Methods(t *testing.T) {
	d, err := simulate.Conjoint(150, 5, simulate.WithSeed(31))
	require.NoError(t, err)
	ref, err := mle.Fit(d, nil)
	require.NoError(t, err)

	for _, name := range []string{"lbfgs", "cg"} {
		t.Run(name, func(t *testing.T) {
			m, err := mle.MethodByName(name)
			require.NoError(t, err)
			res, err := mle.Fit(d, nil, mle.WithMethod(m))
			require.NoError(t, err)
			assert.InDeltaSlice(t, ref.Estimates, res.Estimates, 1e-3)
		})
	}
}

func TestFit_ArgumentErrors(t *testing.T) {
	d, err := simulate.Conjoint(5, 2, simulate.WithSeed(1))
	require.NoError(t, err)

	_, err = mle.Fit(d, []float64{1})
	assert.ErrorIs(t, err, mle.ErrDimension)
	_, err = mle.Fit(d, nil, mle.WithNames("a"))
	assert.ErrorIs(t, err, mle.ErrDimension)

	assert.Panics(t, func() { mle.WithEpsilon(0) })
	assert.Panics(t, func() { mle.WithConfidence(-1) })
	assert.Panics(t, func() { mle.WithMaxIterations(0) })
	assert.Panics(t, func() { mle.WithOptimizer(nil) })
	assert.Panics(t, func() { mle.WithLogger(nil) })
}

func TestResult_JSON(t *testing.T) {
	d, err := simulate.Conjoint(50, 4, simulate.WithSeed(8))
	require.NoError(t, err)
	res, err := mle.Fit(d, nil, mle.WithNames("bn", "bp", "ads", "price"))
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"parameter_names", "estimates", "standard_errors", "ci_lower", "ci_upper", "log_likelihood"} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, []any{"bn", "bp", "ads", "price"}, m["parameter_names"])
}

func TestMethodByName(t *testing.T) {
	for name, want := range map[string]optimize.Method{
		"":            &optimize.BFGS{},
		"BFGS":        &optimize.BFGS{},
		"lbfgs":       &optimize.LBFGS{},
		"cg":          &optimize.CG{},
		"gd":          &optimize.GradientDescent{},
		"nelder-mead": &optimize.NelderMead{},
	} {
		got, err := mle.MethodByName(name)
		require.NoError(t, err, name)
		assert.IsType(t, want, got, name)
	}

	_, err := mle.MethodByName("newton-raphson")
	assert.ErrorIs(t, err, mle.ErrUnknownMethod)
}
