// SPDX-License-Identifier: MIT

package choice

import (
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// assembler accumulates validated tasks in flat row-major buffers and turns
// them into the Dataset matrices once all tasks are known.
type assembler struct {
	names []string
	index map[string]int
	nAlts int

	values    [][]float64 // per covariate, row-major tasks × alts
	chosen    []float64
	chosenIdx []int
	taskIDs   []string
	altIDs    [][]string
	skipped   []MalformedTaskError
}

func newAssembler(names []string, index map[string]int, nAlts, capTasks int) *assembler {
	a := &assembler{
		names:     append([]string(nil), names...),
		index:     index,
		nAlts:     nAlts,
		values:    make([][]float64, len(names)),
		chosen:    make([]float64, 0, capTasks*nAlts),
		chosenIdx: make([]int, 0, capTasks),
		taskIDs:   make([]string, 0, capTasks),
		altIDs:    make([][]string, 0, capTasks),
	}
	for k := range a.values {
		a.values[k] = make([]float64, 0, capTasks*nAlts)
	}

	return a
}

// add appends one well-formed task; value(k, j) yields covariate k of
// alternative j.
func (a *assembler) add(id string, alts []string, chosen int, value func(k, j int) float64) {
	for k := range a.values {
		for j := 0; j < a.nAlts; j++ {
			a.values[k] = append(a.values[k], value(k, j))
		}
	}
	for j := 0; j < a.nAlts; j++ {
		if j == chosen {
			a.chosen = append(a.chosen, 1)
		} else {
			a.chosen = append(a.chosen, 0)
		}
	}
	a.chosenIdx = append(a.chosenIdx, chosen)
	a.taskIDs = append(a.taskIDs, id)
	a.altIDs = append(a.altIDs, append([]string(nil), alts...))
}

func (a *assembler) skip(bad MalformedTaskError) {
	a.skipped = append(a.skipped, bad)
}

func (a *assembler) build(op string) (*Dataset, error) {
	n := len(a.taskIDs)
	if n == 0 {
		return nil, choiceErrorf(op, ErrEmptyDataset)
	}

	covs := make([]*mat.Dense, len(a.values))
	for k, buf := range a.values {
		covs[k] = mat.NewDense(n, a.nAlts, buf)
	}

	return &Dataset{
		names:      a.names,
		index:      a.index,
		nTasks:     n,
		nAlts:      a.nAlts,
		covariates: covs,
		chosen:     mat.NewDense(n, a.nAlts, a.chosen),
		chosenIdx:  a.chosenIdx,
		taskIDs:    a.taskIDs,
		altIDs:     a.altIDs,
		skipped:    a.skipped,
	}, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
