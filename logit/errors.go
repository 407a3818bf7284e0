// SPDX-License-Identifier: MIT

package logit

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateTask indicates a task without exactly one identifiable
	// chosen alternative reached the likelihood engine.
	ErrDegenerateTask = errors.New("logit: degenerate task")

	// ErrParamLength indicates a parameter vector whose length differs from
	// the number of covariates.
	ErrParamLength = errors.New("logit: parameter length mismatch")

	// ErrTaskRange indicates a task index outside [0, NumTasks).
	ErrTaskRange = errors.New("logit: task index out of range")

	// ErrNilData indicates a nil Data source or an empty tensor.
	ErrNilData = errors.New("logit: nil or empty data")

	// ErrShape indicates covariate or chosen matrices of inconsistent shape.
	ErrShape = errors.New("logit: inconsistent data shape")
)

// DegenerateTaskError reports the task that failed the chosen-row check.
type DegenerateTaskError struct {
	Task   int    // zero-based task index
	Reason string // what was wrong with the chosen row
}

// Error implements error.
func (e *DegenerateTaskError) Error() string {
	return fmt.Sprintf("logit: degenerate task %d: %s", e.Task, e.Reason)
}

// Is reports whether target is ErrDegenerateTask.
func (e *DegenerateTaskError) Is(target error) bool {
	return target == ErrDegenerateTask
}
