// SPDX-License-Identifier: MIT

package simulate

import "errors"

var (
	// ErrNeedRandSource indicates Conjoint was called without WithSeed or WithRand.
	ErrNeedRandSource = errors.New("simulate: random source required")

	// ErrTooFewTasks indicates non-positive respondent or task counts.
	ErrTooFewTasks = errors.New("simulate: respondents and tasks must be >= 1")
)
