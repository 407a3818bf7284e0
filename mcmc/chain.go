// SPDX-License-Identifier: MIT
// Package: choicekit/mcmc
//
// chain.go — the sample store and its summaries.
//
// Storage is one flat row-major buffer of capacity n·dim. Rows are appended
// by the sampler only; every exported view copies.

package mcmc

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Chain is an ordered, append-only sequence of states.
type Chain struct {
	dim  int
	data []float64
}

func newChain(dim, capacity int) *Chain {
	return &Chain{dim: dim, data: make([]float64, 0, dim*capacity)}
}

func (c *Chain) append(x []float64) {
	c.data = append(c.data, x...)
}

// Len returns the number of samples.
func (c *Chain) Len() int {
	if c.dim == 0 {
		return 0
	}
	return len(c.data) / c.dim
}

// Dim returns the state dimension.
func (c *Chain) Dim() int { return c.dim }

// At returns a copy of sample s.
func (c *Chain) At(s int) []float64 {
	return append([]float64(nil), c.data[s*c.dim:(s+1)*c.dim]...)
}

// Param returns the trace of coordinate j.
func (c *Chain) Param(j int) []float64 {
	n := c.Len()
	out := make([]float64, n)
	for s := 0; s < n; s++ {
		out[s] = c.data[s*c.dim+j]
	}

	return out
}

// Tail drops the first burnIn samples. The result shares storage with c.
func (c *Chain) Tail(burnIn int) *Chain {
	if burnIn < 0 || burnIn > c.Len() {
		panic(fmt.Sprintf("mcmc: Tail(%d) on chain of length %d", burnIn, c.Len()))
	}
	tail := c.data[burnIn*c.dim:]

	return &Chain{dim: c.dim, data: tail[:len(tail):len(tail)]}
}

// Matrix returns the chain as a Len × Dim matrix.
func (c *Chain) Matrix() *mat.Dense {
	if c.Len() == 0 {
		return nil
	}
	return mat.NewDense(c.Len(), c.dim, append([]float64(nil), c.data...))
}

// ParamSummary describes the marginal distribution of one coefficient.
type ParamSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Q025   float64 `json:"q2_5"`
	Median float64 `json:"median"`
	Q975   float64 `json:"q97_5"`
}

// Summary computes per-coordinate mean, sample standard deviation and the
// 2.5/50/97.5% quantiles (linear interpolation). names may be nil.
func (c *Chain) Summary(names []string) []ParamSummary {
	out := make([]ParamSummary, c.dim)
	for j := range out {
		x := c.Param(j)
		sort.Float64s(x)
		s := ParamSummary{Name: fmt.Sprintf("b%d", j)}
		if j < len(names) {
			s.Name = names[j]
		}
		if len(x) > 0 {
			s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
			s.Q025 = stat.Quantile(0.025, stat.LinInterp, x, nil)
			s.Median = stat.Quantile(0.5, stat.LinInterp, x, nil)
			s.Q975 = stat.Quantile(0.975, stat.LinInterp, x, nil)
		}
		out[j] = s
	}

	return out
}

// MarshalJSON encodes the chain as an array of samples.
func (c *Chain) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, c.Len())
	for s := range rows {
		rows[s] = c.data[s*c.dim : (s+1)*c.dim]
	}

	return json.Marshal(rows)
}
