package logit_test

import (
	"testing"

	"github.com/katalvlaran/choicekit/logit"
	"github.com/katalvlaran/choicekit/simulate"
)

// benchmarkLogLikelihood evaluates LL over respondents×10 simulated tasks.
func benchmarkLogLikelihood(b *testing.B, respondents int, withGradient bool) {
	d, err := simulate.Conjoint(respondents, 10, simulate.WithSeed(1))
	if err != nil {
		b.Fatalf("Conjoint: %v", err)
	}
	m, err := logit.New(d)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	beta := simulate.ReferenceTruth()
	grad := make([]float64, len(beta))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.LogLikelihood(beta); err != nil {
			b.Fatalf("LogLikelihood: %v", err)
		}
		if withGradient {
			if _, err := m.Gradient(beta, grad); err != nil {
				b.Fatalf("Gradient: %v", err)
			}
		}
	}
}

// BenchmarkLogLikelihood_1k covers 1 000 tasks.
func BenchmarkLogLikelihood_1k(b *testing.B) { benchmarkLogLikelihood(b, 100, false) }

// BenchmarkLogLikelihood_50k covers 50 000 tasks.
func BenchmarkLogLikelihood_50k(b *testing.B) { benchmarkLogLikelihood(b, 5000, false) }

// BenchmarkLogLikelihoodGradient_50k adds the analytic score.
func BenchmarkLogLikelihoodGradient_50k(b *testing.B) { benchmarkLogLikelihood(b, 5000, true) }
