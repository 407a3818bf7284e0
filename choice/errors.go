// SPDX-License-Identifier: MIT
// Package: choicekit/choice
//
// errors.go — sentinel errors and the typed MalformedTaskError.
//
// Error policy:
//   • Callers branch with errors.Is(err, ErrX); never on message text.
//   • Context is attached with %w wrapping at the call site.
//   • MalformedTaskError carries the offending task for reporting and
//     matches ErrMalformedTask under errors.Is.

package choice

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTask indicates a task with the wrong number of alternative
	// rows, a chosen-indicator sum different from 1, or duplicate alternatives.
	ErrMalformedTask = errors.New("choice: malformed task")

	// ErrInvalidSchema indicates empty or duplicate covariate names, or a
	// record whose value count differs from the number of covariates.
	ErrInvalidSchema = errors.New("choice: invalid covariate schema")

	// ErrNonFinite indicates a NaN or ±Inf covariate value.
	ErrNonFinite = errors.New("choice: NaN or Inf covariate")

	// ErrEmptyDataset indicates that no task survived construction.
	ErrEmptyDataset = errors.New("choice: dataset has no tasks")

	// ErrDimensionMismatch indicates matrices with inconsistent shapes.
	ErrDimensionMismatch = errors.New("choice: dimension mismatch")

	// ErrBadCSV indicates a CSV header or cell that cannot be mapped.
	ErrBadCSV = errors.New("choice: bad csv input")
)

// MalformedTaskError describes one task that violates the dataset invariants.
type MalformedTaskError struct {
	TaskID      string // task identifier as given by the records
	Rows        int    // number of alternative rows observed
	Want        int    // required number of alternatives
	ChosenCount int    // number of rows flagged as chosen
	Reason      string // short human-readable cause
}

// Error implements error.
func (e *MalformedTaskError) Error() string {
	return fmt.Sprintf("choice: malformed task %q: %s (rows=%d want=%d chosen=%d)",
		e.TaskID, e.Reason, e.Rows, e.Want, e.ChosenCount)
}

// Is reports whether target is ErrMalformedTask.
func (e *MalformedTaskError) Is(target error) bool {
	return target == ErrMalformedTask
}

// Reasons attached to MalformedTaskError.
const (
	reasonAltCount  = "wrong number of alternatives"
	reasonChosen    = "chosen indicators must sum to exactly 1"
	reasonDuplicate = "duplicate alternative id"
	reasonBinary    = "chosen indicator must be 0 or 1"
)

// choiceErrorf wraps err with an operation tag.
func choiceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
