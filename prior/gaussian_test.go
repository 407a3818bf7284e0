package prior_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choicekit/prior"
)

func normalLogPDF(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return -0.5*z*z - math.Log(sigma) - 0.5*math.Log(2*math.Pi)
}

func TestGaussian_LogPrior(t *testing.T) {
	g, err := prior.NewGaussian([]float64{0, 1, -2}, []float64{5, 1, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Dim())

	beta := []float64{0.3, 0.9, -1.5}
	want := normalLogPDF(0.3, 0, 5) + normalLogPDF(0.9, 1, 1) + normalLogPDF(-1.5, -2, 0.5)
	got, err := g.LogPrior(beta)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)

	// Maximized at the means.
	atMean, err := g.LogPrior([]float64{0, 1, -2})
	require.NoError(t, err)
	assert.Greater(t, atMean, got)

	_, err = g.LogPrior([]float64{1})
	assert.ErrorIs(t, err, prior.ErrLengthMismatch)
}

func TestNewGaussian_Errors(t *testing.T) {
	tests := []struct {
		name    string
		means   []float64
		stddevs []float64
		want    error
	}{
		{"length", []float64{0, 0}, []float64{1}, prior.ErrLengthMismatch},
		{"empty", nil, nil, prior.ErrLengthMismatch},
		{"zero sigma", []float64{0}, []float64{0}, prior.ErrBadStdDev},
		{"negative sigma", []float64{0}, []float64{-1}, prior.ErrBadStdDev},
		{"nan sigma", []float64{0}, []float64{math.NaN()}, prior.ErrBadStdDev},
		{"inf sigma", []float64{0}, []float64{math.Inf(1)}, prior.ErrBadStdDev},
		{"nan mean", []float64{math.NaN()}, []float64{1}, prior.ErrBadMean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prior.NewGaussian(tt.means, tt.stddevs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReference(t *testing.T) {
	names := []string{"brand_N", "brand_P", "ads", "price"}
	kinds := prior.KindsOf(names)
	assert.Equal(t, []prior.Kind{prior.Indicator, prior.Indicator, prior.Indicator, prior.Price}, kinds)

	g := prior.Reference(kinds)
	assert.Equal(t, []prior.Normal{{StdDev: 5}, {StdDev: 5}, {StdDev: 5}, {StdDev: 1}}, g.Components())

	lp, err := g.LogPrior([]float64{1, 0.5, -0.8, -0.1})
	require.NoError(t, err)
	want := normalLogPDF(1, 0, 5) + normalLogPDF(0.5, 0, 5) + normalLogPDF(-0.8, 0, 5) + normalLogPDF(-0.1, 0, 1)
	assert.InDelta(t, want, lp, 1e-12)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, prior.Price, prior.KindOf("Price"))
	assert.Equal(t, prior.Price, prior.KindOf("monthly_cost"))
	assert.Equal(t, prior.Indicator, prior.KindOf("ads"))
	assert.Equal(t, "price", prior.Price.String())
	assert.Equal(t, "Kind(9)", prior.Kind(9).String())
}

func TestIsotropic(t *testing.T) {
	g := prior.Isotropic(2, 100)
	lp, err := g.LogPrior([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2*normalLogPDF(0, 0, 100), lp, 1e-12)

	assert.Panics(t, func() { prior.Isotropic(0, 1) })
	assert.Panics(t, func() { prior.Isotropic(1, 0) })
}

func TestComponents_Copy(t *testing.T) {
	g, err := prior.FromNormals(prior.Normal{Mean: 1, StdDev: 2})
	require.NoError(t, err)
	c := g.Components()
	c[0].Mean = 99
	assert.Equal(t, 1.0, g.Components()[0].Mean)
}
