// SPDX-License-Identifier: MIT

// Package choice holds the discrete-choice data model: an immutable,
// tensor-shaped container of choice tasks.
//
// A Dataset is a stack of n_tasks × n_alternatives covariate matrices (one
// per named attribute such as brand indicators, ads or price) plus a binary
// chosen matrix whose rows are one-hot:
//
//	task   alt   brand_N  ads  price  chosen
//	 r1t1   A      1       0    16      1
//	 r1t1   B      0       1    12      0
//	 r1t1   C      0       0     8      0
//
// Invariants enforced at construction:
//   - every task has exactly NumAlternatives() rows;
//   - every task has exactly one chosen alternative;
//   - every covariate value is finite.
//
// Violations fail with ErrMalformedTask (or are excluded under
// WithSkipMalformed and reported by Skipped). Once built, a Dataset never
// changes and may be shared read-only across goroutines.
//
// ReadCSV adapts tabular records (arbitrary column order, mapped by name)
// into the same constructor.
package choice
