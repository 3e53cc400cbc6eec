package classify

import (
	"math"
	"slices"

	"github.com/stratlab/strata/pkg/table"
)

const eps = 1e-9

// normalizePercentages rescales every percentage group's rows to sum to
// 100. The input table is cloned on the first change; rows whose
// denominator sums to zero are left untouched so division by zero never
// propagates.
func normalizePercentages(tbl *table.Table, order []string, members map[string][]string, opts Options) *table.Table {
	if len(opts.Percentages) == 0 {
		return tbl
	}

	work := tbl
	cloned := false

	for _, group := range order {
		if !slices.Contains(opts.Percentages, group) {
			continue
		}
		cols := members[group]
		if len(cols) == 0 {
			continue
		}
		if !cloned {
			work = tbl.Clone()
			cloned = true
		}
		base := resolveBase(cols, members, opts.PercentageBase)
		normalizeGroup(work, cols, base)
	}

	return work
}

// resolveBase expands the configured denominator list into column names.
// Entries name columns directly or whole groups; an empty list falls back
// to the group's own members.
func resolveBase(groupCols []string, members map[string][]string, base []string) []string {
	if len(base) == 0 {
		return groupCols
	}
	var cols []string
	for _, entry := range base {
		if groupMembers, ok := members[entry]; ok {
			cols = append(cols, groupMembers...)
			continue
		}
		cols = append(cols, entry)
	}
	if len(cols) == 0 {
		return groupCols
	}
	return cols
}

// normalizeGroup rescales the member columns of one group in place so each
// row sums to 100 over the base columns. NaN values neither contribute to
// the denominator nor get rescaled.
func normalizeGroup(tbl *table.Table, memberCols, baseCols []string) {
	rows := tbl.Len()

	columns := make([]*table.Column, 0, len(memberCols))
	for _, name := range memberCols {
		if col, ok := tbl.Column(name); ok {
			columns = append(columns, col)
		}
	}
	baseColumns := make([]*table.Column, 0, len(baseCols))
	for _, name := range baseCols {
		if col, ok := tbl.Column(name); ok {
			baseColumns = append(baseColumns, col)
		}
	}

	for i := 0; i < rows; i++ {
		var sum float64
		for _, col := range baseColumns {
			v := col.Values[i]
			if !math.IsNaN(v) {
				sum += v
			}
		}
		if math.Abs(sum) <= eps {
			continue
		}
		for _, col := range columns {
			v := col.Values[i]
			if math.IsNaN(v) {
				continue
			}
			col.Values[i] = v / sum * 100
		}
	}
}
