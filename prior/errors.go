// SPDX-License-Identifier: MIT

package prior

import "errors"

var (
	// ErrBadStdDev indicates a non-positive or non-finite standard deviation.
	ErrBadStdDev = errors.New("prior: standard deviation must be finite and > 0")

	// ErrBadMean indicates a non-finite mean.
	ErrBadMean = errors.New("prior: mean must be finite")

	// ErrLengthMismatch indicates means/stddevs or β of differing lengths.
	ErrLengthMismatch = errors.New("prior: length mismatch")
)
