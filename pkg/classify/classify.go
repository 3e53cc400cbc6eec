// Package classify maps table columns into named groups and prepares the
// data side of a stratigraphic diagram: subgroup remapping, exclusion,
// percentage normalization, threshold filtering and derived sum groups.
//
// Classification is pure data transformation. It never touches geometry;
// the diagram package consumes a [Result] to build groupers and panels.
package classify

import (
	"math"
	"slices"

	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/table"
)

const (
	// NoGroup is the catch-all group for columns the classification
	// function does not assign anywhere. It receives no group bar.
	NoGroup = "nogroup"

	// SummedName is the synthetic group holding derived sum columns. It is
	// always ordered last and rendered with the stacked variant.
	SummedName = "Summed"
)

// Func assigns a column to a group (or subgroup) key.
type Func func(column string) string

// CatchAll assigns every column to [NoGroup]. It is the default
// classification function.
func CatchAll(string) string { return NoGroup }

// Options tune classification. The zero value buckets every column by the
// classification function and applies no normalization, filtering or
// synthesis.
type Options struct {
	// Subgroups maps a parent group to the subgroup keys that fold into it.
	// A key returned by the classification function that appears here is
	// rewritten to its parent before bucketing; the raw key is kept as the
	// column's subgroup.
	Subgroups map[string][]string `json:"subgroups,omitempty"`

	// Exclude drops columns from the plot set, matched against column
	// names, subgroup keys and parent group names. Unknown names are
	// ignored. Excluded columns still participate in normalization and
	// sums.
	Exclude []string `json:"exclude,omitempty"`

	// Percentages lists the groups whose member rows are rescaled to sum
	// to 100.
	Percentages []string `json:"percentages,omitempty"`

	// PercentageBase optionally restricts the normalization denominator to
	// the named columns and/or groups instead of each group's own members.
	PercentageBase []string `json:"percentage_base,omitempty"`

	// SkipNormalize keeps pre-normalized input untouched while still
	// treating the listed groups as percentage groups for layout.
	SkipNormalize bool `json:"skip_normalize,omitempty"`

	// Threshold drops a percentage column from the plot set when its
	// maximum normalized value never exceeds it. Zero or negative disables
	// the filter; the diagram default is 1 (on the 0-100 scale).
	Threshold float64 `json:"threshold,omitempty"`

	// Summed lists groups that additionally get a derived row-sum column,
	// collected into the trailing [SummedName] group.
	Summed []string `json:"summed,omitempty"`
}

// Group is a named cluster of columns in plot order.
type Group struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Result is the outcome of classification.
type Result struct {
	// Groups holds the surviving groups in first-occurrence order, with
	// the synthetic sum group last. Groups emptied by filtering are
	// dropped.
	Groups []Group

	// Table is the working table: the input itself, or a clone when
	// normalization or sum synthesis modified data.
	Table *table.Table

	// Subgroups maps each column to the raw key the classification
	// function returned for it.
	Subgroups map[string]string

	// Dropped lists percentage columns removed by the threshold filter.
	Dropped []string
}

// Classify buckets the table's columns into groups and applies the
// configured transformations in order: subgroup remapping, percentage
// normalization, sum synthesis, exclusion and threshold filtering.
//
// A nil fn falls back to [CatchAll]. Unknown names in any option list are
// ignored.
func Classify(tbl *table.Table, fn Func, opts Options) (*Result, error) {
	if tbl == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table is nil")
	}
	if fn == nil {
		fn = CatchAll
	}

	sub2group := invertSubgroups(opts.Subgroups)

	// Bucket all columns, preserving first-occurrence order of groups and
	// of columns within each group. Exclusion and thresholds only filter
	// the plot set later, so normalization and sums see full membership.
	var order []string
	members := make(map[string][]string)
	subgroups := make(map[string]string)

	for _, name := range tbl.Names() {
		raw := fn(name)
		if err := errors.ValidateGroupName(raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGroup, err, "classifying column %q", name)
		}
		group := raw
		if parent, ok := sub2group[raw]; ok {
			group = parent
		}
		subgroups[name] = raw
		if _, ok := members[group]; !ok {
			order = append(order, group)
		}
		members[group] = append(members[group], name)
	}

	work := tbl

	if !opts.SkipNormalize {
		work = normalizePercentages(work, order, members, opts)
	}

	if len(opts.Summed) > 0 {
		var added bool
		work, added = appendSummed(work, members, subgroups, opts.Summed)
		if added && !slices.Contains(order, SummedName) {
			order = append(order, SummedName)
		}
	}

	excluded := excludeSet(opts.Exclude)
	dropped := thresholdDrops(work, order, members, opts)

	res := &Result{
		Table:     work,
		Subgroups: subgroups,
		Dropped:   dropped,
	}

	droppedSet := make(map[string]bool, len(dropped))
	for _, name := range dropped {
		droppedSet[name] = true
	}

	for _, group := range order {
		var cols []string
		for _, name := range members[group] {
			if excluded[name] || excluded[subgroups[name]] || excluded[group] {
				continue
			}
			if droppedSet[name] {
				continue
			}
			cols = append(cols, name)
		}
		if len(cols) == 0 {
			continue
		}
		res.Groups = append(res.Groups, Group{Name: group, Columns: cols})
	}

	return res, nil
}

// invertSubgroups turns group->[subgroups] into subgroup->group. The last
// parent wins when a subgroup key is listed under several groups.
func invertSubgroups(subgroups map[string][]string) map[string]string {
	if len(subgroups) == 0 {
		return nil
	}
	inv := make(map[string]string)
	for group, subs := range subgroups {
		for _, s := range subs {
			inv[s] = group
		}
	}
	return inv
}

func excludeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// thresholdDrops returns the percentage columns whose maximum value never
// exceeds the threshold. Columns without finite values are dropped too.
func thresholdDrops(tbl *table.Table, order []string, members map[string][]string, opts Options) []string {
	if opts.Threshold <= 0 || len(opts.Percentages) == 0 {
		return nil
	}

	percentage := make(map[string]bool, len(opts.Percentages))
	for _, g := range opts.Percentages {
		percentage[g] = true
	}

	var dropped []string
	for _, group := range order {
		if !percentage[group] {
			continue
		}
		for _, name := range members[group] {
			col, ok := tbl.Column(name)
			if !ok {
				continue
			}
			max := col.Max()
			if math.IsNaN(max) || max <= opts.Threshold {
				dropped = append(dropped, name)
			}
		}
	}
	return dropped
}
