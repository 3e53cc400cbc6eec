package source

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/table"
)

// CSVOptions control how a CSV document maps onto a [table.Table].
type CSVOptions struct {
	// Index names the column holding the vertical axis values (depth, age,
	// time). Empty selects the first column.
	Index string

	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Comment, when non-zero, marks lines to skip.
	Comment rune
}

// ReadCSV parses a CSV document into a table. The first record is the
// header naming the columns; every following record is one sample row.
// The index column must hold a number in every row. Data cells may be
// empty and parse to NaN, marking missing measurements.
func ReadCSV(r io.Reader, opts CSVOptions) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	if opts.Comment != 0 {
		cr.Comment = opts.Comment
	}

	recs, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading csv")
	}
	if len(recs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv document is empty")
	}
	if len(recs) == 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv document has no data rows")
	}

	header := make([]string, len(recs[0]))
	for i, name := range recs[0] {
		header[i] = strings.TrimSpace(name)
		if err := errors.ValidateColumnName(header[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv header field %d", i+1)
		}
	}

	idx := 0
	if opts.Index != "" {
		idx = -1
		for i, name := range header {
			if name == opts.Index {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"index column %q not in header %v", opts.Index, header)
		}
	}

	// Rows are reported 1-based counting the header, matching what an
	// editor shows.
	rows := recs[1:]
	index := make([]float64, len(rows))
	for i, row := range rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"row %d: bad index value %q", i+2, row[idx])
		}
		index[i] = v
	}

	tbl := table.New(header[idx], index)
	for c, name := range header {
		if c == idx {
			continue
		}
		values := make([]float64, len(rows))
		for i, row := range rows {
			cell := strings.TrimSpace(row[c])
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
					"row %d: bad value %q in column %q", i+2, cell, name)
			}
			values[i] = v
		}
		if err := tbl.AddColumn(table.Column{Name: name, Values: values}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "column %q", name)
		}
	}

	return tbl, nil
}

// LoadCSV reads a CSV file into a table.
func LoadCSV(path string, opts CSVOptions) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}
