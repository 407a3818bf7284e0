// SPDX-License-Identifier: MIT
// Package: choicekit/choice
//
// dataset.go — Dataset type, record constructor and read-only accessors.
//
// Layout:
//   • one *mat.Dense (n_tasks × n_alternatives) per covariate, in name order;
//   • a binary chosen matrix with one-hot rows;
//   • the chosen column per task cached as an index.
//
// Determinism:
//   • Tasks keep the order of their first appearance in the records.
//   • Alternatives keep their order of appearance inside the task.

package choice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opNewDataset   = "NewDataset"
	opFromMatrices = "FromMatrices"
)

// Record is one alternative row of one choice task.
type Record struct {
	TaskID        string    // respondent × task identifier
	AlternativeID string    // alternative label, unique within the task
	Values        []float64 // covariate values, aligned with the dataset names
	Chosen        bool      // true for the single chosen alternative
}

// Dataset is an immutable tensor of choice tasks.
type Dataset struct {
	names  []string
	index  map[string]int
	nTasks int
	nAlts  int

	covariates []*mat.Dense // len == len(names), each nTasks × nAlts
	chosen     *mat.Dense   // nTasks × nAlts, one-hot rows
	chosenIdx  []int        // chosen column per task

	taskIDs []string
	altIDs  [][]string
	skipped []MalformedTaskError
}

// NewDataset groups records by TaskID and builds the dataset.
//
// Errors:
//   - ErrInvalidSchema for empty/duplicate names or a value-count mismatch.
//   - ErrNonFinite for NaN/Inf values.
//   - ErrMalformedTask (as *MalformedTaskError) for a task with the wrong
//     number of rows, a duplicate alternative or a chosen sum != 1, unless
//     WithSkipMalformed is set.
//   - ErrEmptyDataset if no task remains.
//
// Complexity: O(R·K) for R records and K covariates.
func NewDataset(names []string, records []Record, opts ...Option) (*Dataset, error) {
	cfg := newConfig(opts...)

	index, err := indexNames(names)
	if err != nil {
		return nil, choiceErrorf(opNewDataset, err)
	}
	if len(records) == 0 {
		return nil, choiceErrorf(opNewDataset, ErrEmptyDataset)
	}

	// Group record positions by task, preserving first appearance.
	var (
		order  []string
		groups = make(map[string][]int)
	)
	for i, rec := range records {
		if len(rec.Values) != len(names) {
			return nil, fmt.Errorf("%s: record %d has %d values for %d covariates: %w",
				opNewDataset, i, len(rec.Values), len(names), ErrInvalidSchema)
		}
		for k, v := range rec.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: record %d covariate %q: %w",
					opNewDataset, i, names[k], ErrNonFinite)
			}
		}
		if _, seen := groups[rec.TaskID]; !seen {
			order = append(order, rec.TaskID)
		}
		groups[rec.TaskID] = append(groups[rec.TaskID], i)
	}

	want := cfg.alternatives
	if want == 0 {
		want = modalSize(order, groups)
	}

	asm := newAssembler(names, index, want, len(order))
	for _, id := range order {
		rows := groups[id]
		if bad := checkTask(id, records, rows, want); bad != nil {
			if cfg.skipMalformed {
				asm.skip(*bad)
				continue
			}
			return nil, choiceErrorf(opNewDataset, bad)
		}

		alts := make([]string, len(rows))
		chosen := -1
		for j, ri := range rows {
			alts[j] = records[ri].AlternativeID
			if records[ri].Chosen {
				chosen = j
			}
		}
		asm.add(id, alts, chosen, func(k, j int) float64 {
			return records[rows[j]].Values[k]
		})
	}

	return asm.build(opNewDataset)
}

// modalSize returns the most common task size. Ties go to the size that
// reached the count first, so a lone short leading task cannot set it.
func modalSize(order []string, groups map[string][]int) int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, id := range order {
		n := len(groups[id])
		counts[n]++
		if counts[n] > bestCount {
			best, bestCount = n, counts[n]
		}
	}

	return best
}

// checkTask validates one task group; nil means the task is well-formed.
func checkTask(id string, records []Record, rows []int, want int) *MalformedTaskError {
	bad := &MalformedTaskError{TaskID: id, Rows: len(rows), Want: want}
	seen := make(map[string]struct{}, len(rows))
	for _, ri := range rows {
		if records[ri].Chosen {
			bad.ChosenCount++
		}
		alt := records[ri].AlternativeID
		if _, dup := seen[alt]; dup {
			bad.Reason = reasonDuplicate
		}
		seen[alt] = struct{}{}
	}

	switch {
	case len(rows) != want:
		bad.Reason = reasonAltCount
	case bad.Reason != "":
		// duplicate alternative already recorded
	case bad.ChosenCount != 1:
		bad.Reason = reasonChosen
	default:
		return nil
	}

	return bad
}

// FromMatrices builds a dataset from already-shaped tensors. Task IDs and
// alternative IDs are the decimal row and column indices. The chosen matrix
// must be binary with one-hot rows; covariate matrices must share its shape.
// Inputs are copied.
func FromMatrices(names []string, covariates []mat.Matrix, chosen mat.Matrix, opts ...Option) (*Dataset, error) {
	cfg := newConfig(opts...)

	index, err := indexNames(names)
	if err != nil {
		return nil, choiceErrorf(opFromMatrices, err)
	}
	if len(covariates) != len(names) {
		return nil, fmt.Errorf("%s: %d matrices for %d names: %w",
			opFromMatrices, len(covariates), len(names), ErrInvalidSchema)
	}
	if chosen == nil {
		return nil, choiceErrorf(opFromMatrices, ErrDimensionMismatch)
	}
	r, c := chosen.Dims()
	if r == 0 || c == 0 {
		return nil, choiceErrorf(opFromMatrices, ErrEmptyDataset)
	}
	if cfg.alternatives != 0 && cfg.alternatives != c {
		return nil, fmt.Errorf("%s: %d columns, want %d alternatives: %w",
			opFromMatrices, c, cfg.alternatives, ErrDimensionMismatch)
	}
	for k, m := range covariates {
		if m == nil {
			return nil, fmt.Errorf("%s: covariate %q is nil: %w", opFromMatrices, names[k], ErrDimensionMismatch)
		}
		if mr, mc := m.Dims(); mr != r || mc != c {
			return nil, fmt.Errorf("%s: covariate %q is %dx%d, chosen is %dx%d: %w",
				opFromMatrices, names[k], mr, mc, r, c, ErrDimensionMismatch)
		}
		for t := 0; t < r; t++ {
			for j := 0; j < c; j++ {
				if v := m.At(t, j); math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, fmt.Errorf("%s: covariate %q at (%d,%d): %w",
						opFromMatrices, names[k], t, j, ErrNonFinite)
				}
			}
		}
	}

	alts := make([]string, c)
	for j := range alts {
		alts[j] = itoa(j)
	}

	asm := newAssembler(names, index, c, r)
	for t := 0; t < r; t++ {
		id := itoa(t)
		bad := &MalformedTaskError{TaskID: id, Rows: c, Want: c}
		pick := -1
		for j := 0; j < c; j++ {
			switch chosen.At(t, j) {
			case 0:
			case 1:
				bad.ChosenCount++
				pick = j
			default:
				bad.Reason = reasonBinary
			}
		}
		if bad.Reason == "" && bad.ChosenCount != 1 {
			bad.Reason = reasonChosen
		}
		if bad.Reason != "" {
			if cfg.skipMalformed {
				asm.skip(*bad)
				continue
			}
			return nil, choiceErrorf(opFromMatrices, bad)
		}

		row := t
		asm.add(id, alts, pick, func(k, j int) float64 {
			return covariates[k].At(row, j)
		})
	}

	return asm.build(opFromMatrices)
}

// indexNames validates covariate names and maps them to positions.
func indexNames(names []string) (map[string]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no covariates: %w", ErrInvalidSchema)
	}
	index := make(map[string]int, len(names))
	for k, n := range names {
		if n == "" {
			return nil, fmt.Errorf("covariate %d has an empty name: %w", k, ErrInvalidSchema)
		}
		if _, dup := index[n]; dup {
			return nil, fmt.Errorf("duplicate covariate %q: %w", n, ErrInvalidSchema)
		}
		index[n] = k
	}

	return index, nil
}

// NumTasks returns the number of choice tasks.
func (d *Dataset) NumTasks() int { return d.nTasks }

// NumAlternatives returns the fixed number of alternatives per task.
func (d *Dataset) NumAlternatives() int { return d.nAlts }

// NumCovariates returns the number of named covariates.
func (d *Dataset) NumCovariates() int { return len(d.names) }

// CovariateNames returns a copy of the covariate names in parameter order.
func (d *Dataset) CovariateNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)

	return out
}

// Covariate returns the read-only n_tasks × n_alternatives matrix of
// covariate k. It panics if k is out of range, like slice indexing.
func (d *Dataset) Covariate(k int) mat.Matrix {
	return view{m: d.covariates[k]}
}

// CovariateByName returns the covariate matrix for name.
func (d *Dataset) CovariateByName(name string) (mat.Matrix, bool) {
	k, ok := d.index[name]
	if !ok {
		return nil, false
	}

	return view{m: d.covariates[k]}, true
}

// Chosen returns the read-only binary chosen matrix.
func (d *Dataset) Chosen() mat.Matrix { return view{m: d.chosen} }

// ChosenIndex returns the chosen alternative column of task t.
func (d *Dataset) ChosenIndex(t int) int { return d.chosenIdx[t] }

// TaskID returns the identifier of task t.
func (d *Dataset) TaskID(t int) string { return d.taskIDs[t] }

// AlternativeIDs returns a copy of the alternative labels of task t.
func (d *Dataset) AlternativeIDs(t int) []string {
	out := make([]string, len(d.altIDs[t]))
	copy(out, d.altIDs[t])

	return out
}

// Skipped returns the tasks excluded under WithSkipMalformed.
func (d *Dataset) Skipped() []MalformedTaskError {
	out := make([]MalformedTaskError, len(d.skipped))
	copy(out, d.skipped)

	return out
}

// view is a read-only mat.Matrix over a Dense. Wrapping hides the concrete
// type so callers cannot assert their way to mutation.
type view struct{ m *mat.Dense }

func (v view) Dims() (int, int)    { return v.m.Dims() }
func (v view) At(i, j int) float64 { return v.m.At(i, j) }
func (v view) T() mat.Matrix       { return mat.Transpose{Matrix: v} }
