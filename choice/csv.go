// SPDX-License-Identifier: MIT
// Package: choicekit/choice
//
// csv.go — tabular ingestion: long-format CSV (one row per alternative)
// mapped by header name onto NewDataset.
//
// Columns may appear in any order; extra columns are ignored. The chosen
// column must hold exactly "0" or "1".

package choice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const opReadCSV = "ReadCSV"

// Columns maps CSV header names onto the dataset fields.
type Columns struct {
	Task        string   // task identifier column
	Alternative string   // alternative identifier column
	Chosen      string   // 0/1 chosen indicator column
	Covariates  []string // covariate columns, in parameter order
}

// ReadCSV reads a header-first CSV stream and builds a Dataset through
// NewDataset. Covariate names in the result equal cols.Covariates.
//
// Errors:
//   - ErrBadCSV for a missing header column, an unparsable number or a
//     chosen value other than 0/1 (the error names the line).
//   - any error NewDataset returns.
func ReadCSV(r io.Reader, cols Columns, opts ...Option) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header: %w", opReadCSV, ErrBadCSV)
		}
		return nil, fmt.Errorf("%s: %w", opReadCSV, err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	locate := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%s: column %q not found: %w", opReadCSV, name, ErrBadCSV)
		}
		return i, nil
	}
	taskCol, err := locate(cols.Task)
	if err != nil {
		return nil, err
	}
	altCol, err := locate(cols.Alternative)
	if err != nil {
		return nil, err
	}
	chosenCol, err := locate(cols.Chosen)
	if err != nil {
		return nil, err
	}
	covCols := make([]int, len(cols.Covariates))
	for k, name := range cols.Covariates {
		if covCols[k], err = locate(name); err != nil {
			return nil, err
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", opReadCSV, line, err)
		}

		rec := Record{
			TaskID:        strings.TrimSpace(row[taskCol]),
			AlternativeID: strings.TrimSpace(row[altCol]),
			Values:        make([]float64, len(covCols)),
		}
		switch strings.TrimSpace(row[chosenCol]) {
		case "1":
			rec.Chosen = true
		case "0":
		default:
			return nil, fmt.Errorf("%s: line %d: chosen %q is not 0 or 1: %w",
				opReadCSV, line, row[chosenCol], ErrBadCSV)
		}
		for k, c := range covCols {
			v, perr := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if perr != nil {
				return nil, fmt.Errorf("%s: line %d: column %q: %v: %w",
					opReadCSV, line, cols.Covariates[k], perr, ErrBadCSV)
			}
			rec.Values[k] = v
		}
		records = append(records, rec)
	}

	return NewDataset(cols.Covariates, records, opts...)
}

// WriteCSV writes d in the long format ReadCSV consumes, using the given
// column names for the id and chosen columns.
func WriteCSV(w io.Writer, d *Dataset, cols Columns) error {
	cw := csv.NewWriter(w)

	header := append([]string{cols.Task, cols.Alternative}, d.names...)
	header = append(header, cols.Chosen)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}

	row := make([]string, len(header))
	for t := 0; t < d.nTasks; t++ {
		for j := 0; j < d.nAlts; j++ {
			row[0] = d.taskIDs[t]
			row[1] = d.altIDs[t][j]
			for k, m := range d.covariates {
				row[2+k] = strconv.FormatFloat(m.At(t, j), 'g', -1, 64)
			}
			if j == d.chosenIdx[t] {
				row[len(row)-1] = "1"
			} else {
				row[len(row)-1] = "0"
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("WriteCSV: %w", err)
			}
		}
	}
	cw.Flush()

	return cw.Error()
}
