package table

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary aggregates one column for display collaborators such as a
// visibility tree: mean, minimum and maximum over the finite values, plus
// how many finite values contributed.
type Summary struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Summary computes the [Summary] for the named column, skipping NaN
// entries. Returns [ErrUnknownColumn] for a missing column and [ErrNoValues]
// when no finite values remain.
func (t *Table) Summary(name string) (Summary, error) {
	col, ok := t.columns[name]
	if !ok {
		return Summary{}, ErrUnknownColumn
	}

	finite := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return Summary{}, ErrNoValues
	}

	mean, err := stats.Mean(finite)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(finite)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(finite)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Mean: mean, Min: min, Max: max, Count: len(finite)}, nil
}
