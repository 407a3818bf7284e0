package posterior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choicekit/logit"
	"github.com/katalvlaran/choicekit/mcmc"
	"github.com/katalvlaran/choicekit/posterior"
	"github.com/katalvlaran/choicekit/prior"
	"github.com/katalvlaran/choicekit/simulate"
)

var _ mcmc.Target = (*posterior.Posterior)(nil)

func TestLogPosterior_Sum(t *testing.T) {
	d, err := simulate.Conjoint(30, 4, simulate.WithSeed(4))
	require.NoError(t, err)
	m, err := logit.New(d)
	require.NoError(t, err)
	pr := prior.Reference(prior.KindsOf(d.CovariateNames()))

	post, err := posterior.New(m, pr)
	require.NoError(t, err)
	assert.Equal(t, 4, post.Dim())

	for _, beta := range [][]float64{
		{0, 0, 0, 0},
		{1, 0.5, -0.8, -0.1},
		{-3, 2, 7, 1.5},
	} {
		ll, err := m.LogLikelihood(beta)
		require.NoError(t, err)
		lp, err := pr.LogPrior(beta)
		require.NoError(t, err)

		got, err := post.LogPosterior(beta)
		require.NoError(t, err)
		assert.InDelta(t, ll+lp, got, 1e-9)

		dens, err := post.LogDensity(beta)
		require.NoError(t, err)
		assert.Equal(t, got, dens)

		gotLL, gotLP, err := post.Decompose(beta)
		require.NoError(t, err)
		assert.Equal(t, ll, gotLL)
		assert.Equal(t, lp, gotLP)

		pkg, err := posterior.LogPosterior(beta, d, pr)
		require.NoError(t, err)
		assert.Equal(t, got, pkg)
	}
}

// TestLogPosterior_PriorPull checks a tight prior dominates a small dataset.
func TestLogPosterior_PriorPull(t *testing.T) {
	d, err := simulate.Conjoint(2, 2, simulate.WithSeed(6))
	require.NoError(t, err)
	m, err := logit.New(d)
	require.NoError(t, err)

	tight, err := prior.NewGaussian([]float64{0, 0, 0, 0}, []float64{0.01, 0.01, 0.01, 0.01})
	require.NoError(t, err)
	post, err := posterior.New(m, tight)
	require.NoError(t, err)

	atZero, err := post.LogPosterior([]float64{0, 0, 0, 0})
	require.NoError(t, err)
	away, err := post.LogPosterior([]float64{0.5, 0.5, 0.5, 0.05})
	require.NoError(t, err)
	assert.Greater(t, atZero, away)
}

func TestNew_Errors(t *testing.T) {
	d, err := simulate.Conjoint(2, 2, simulate.WithSeed(1))
	require.NoError(t, err)
	m, err := logit.New(d)
	require.NoError(t, err)

	_, err = posterior.New(nil, prior.Isotropic(4, 1))
	assert.ErrorIs(t, err, posterior.ErrNilModel)
	_, err = posterior.New(m, nil)
	assert.ErrorIs(t, err, posterior.ErrNilPrior)
	_, err = posterior.New(m, prior.Isotropic(3, 1))
	assert.ErrorIs(t, err, posterior.ErrDimension)

	post, err := posterior.New(m, prior.Isotropic(4, 1))
	require.NoError(t, err)
	_, err = post.LogPosterior([]float64{1})
	assert.ErrorIs(t, err, logit.ErrParamLength)
}
