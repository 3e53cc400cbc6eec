package classify

import (
	"math"
	"testing"

	"github.com/stratlab/strata/pkg/table"
)

func approx(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) < 1e-9
}

func wantValues(t *testing.T, tbl *table.Table, name string, want []float64) {
	t.Helper()
	col, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("column %q not found", name)
	}
	if len(col.Values) != len(want) {
		t.Fatalf("column %q has %d values, want %d", name, len(col.Values), len(want))
	}
	for i := range want {
		if !approx(col.Values[i], want[i]) {
			t.Errorf("%s[%d] = %v, want %v", name, i, col.Values[i], want[i])
		}
	}
}

func TestNormalizeRowsSumTo100(t *testing.T) {
	tbl := table.New("depth", []float64{0, 1})
	cols := []table.Column{
		{Name: "g", Values: []float64{10, 2}},
		{Name: "h", Values: []float64{30, 6}},
	}
	for _, c := range cols {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}

	res, err := Classify(tbl, nil, Options{Percentages: []string{NoGroup}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantValues(t, res.Table, "g", []float64{25, 25})
	wantValues(t, res.Table, "h", []float64{75, 75})

	for i := 0; i < tbl.Len(); i++ {
		sum := 0.0
		for _, name := range []string{"g", "h"} {
			col, _ := res.Table.Column(name)
			sum += col.Values[i]
		}
		if !approx(sum, 100) {
			t.Errorf("row %d sums to %v, want 100", i, sum)
		}
	}

	// The input table keeps its raw values.
	wantValues(t, tbl, "g", []float64{10, 2})
	wantValues(t, tbl, "h", []float64{30, 6})
}

func TestNormalizeZeroRowUntouched(t *testing.T) {
	tbl := table.New("depth", []float64{0, 1})
	for _, c := range []table.Column{
		{Name: "g", Values: []float64{10, 0}},
		{Name: "h", Values: []float64{30, 0}},
	} {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}

	res, err := Classify(tbl, nil, Options{Percentages: []string{NoGroup}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantValues(t, res.Table, "g", []float64{25, 0})
	wantValues(t, res.Table, "h", []float64{75, 0})
}

func TestNormalizeOtherGroupsUntouched(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{Percentages: []string{"2"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantValues(t, res.Table, "a", []float64{1, 1, 1})
	wantValues(t, res.Table, "b", []float64{1, 2, 1})
	wantValues(t, res.Table, "c", []float64{2, 2, 3})

	// The fixture rows already sum to 100, so normalization is identity.
	wantValues(t, res.Table, "d", []float64{33, 24, 28})
	wantValues(t, res.Table, "e", []float64{50, 34, 69})
	wantValues(t, res.Table, "f", []float64{17, 42, 3})
}

func TestNormalizeNaNPreserved(t *testing.T) {
	nan := math.NaN()
	tbl := table.New("depth", []float64{0})
	for _, c := range []table.Column{
		{Name: "g", Values: []float64{5}},
		{Name: "h", Values: []float64{nan}},
	} {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}

	res, err := Classify(tbl, nil, Options{Percentages: []string{NoGroup}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	// The denominator skips NaN, so g alone carries the row.
	wantValues(t, res.Table, "g", []float64{100})
	wantValues(t, res.Table, "h", []float64{nan})
}

func TestPercentageBase(t *testing.T) {
	tests := []struct {
		name  string
		base  []string
		wantD []float64
	}{
		{
			name:  "single column",
			base:  []string{"d"},
			wantD: []float64{100, 100, 100},
		},
		{
			name: "group expands to members",
			base: []string{"1"},
			// Row sums of a+b+c are 4, 5, 5.
			wantD: []float64{33.0 / 4 * 100, 24.0 / 5 * 100, 28.0 / 5 * 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(testTable(t), testFn, Options{
				Percentages:    []string{"2"},
				PercentageBase: tt.base,
			})
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			wantValues(t, res.Table, "d", tt.wantD)
		})
	}
}

func TestSkipNormalize(t *testing.T) {
	tbl := table.New("depth", []float64{0})
	for _, c := range []table.Column{
		{Name: "g", Values: []float64{10}},
		{Name: "h", Values: []float64{30}},
	} {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}

	res, err := Classify(tbl, nil, Options{
		Percentages:   []string{NoGroup},
		SkipNormalize: true,
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantValues(t, res.Table, "g", []float64{10})
	wantValues(t, res.Table, "h", []float64{30})
}

func TestThresholdDrops(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{
		Percentages: []string{"2"},
		Threshold:   50,
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	// Column maxima after normalization are d=33, e=69, f=42.
	wantDropped := []string{"d", "f"}
	if len(res.Dropped) != len(wantDropped) {
		t.Fatalf("Dropped = %v, want %v", res.Dropped, wantDropped)
	}
	for i := range wantDropped {
		if res.Dropped[i] != wantDropped[i] {
			t.Errorf("Dropped[%d] = %q, want %q", i, res.Dropped[i], wantDropped[i])
		}
	}

	wantGroups(t, res, map[string][]string{
		"1": {"a", "b", "c"},
		"2": {"e"},
	}, []string{"1", "2"})

	// Dropped columns stay in the table for sums and export.
	if _, ok := res.Table.Column("d"); !ok {
		t.Error("dropped column removed from table")
	}
}

func TestThresholdDropsNaNColumn(t *testing.T) {
	nan := math.NaN()
	tbl := table.New("depth", []float64{0})
	for _, c := range []table.Column{
		{Name: "g", Values: []float64{5}},
		{Name: "h", Values: []float64{nan}},
	} {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}

	res, err := Classify(tbl, nil, Options{
		Percentages: []string{NoGroup},
		Threshold:   1,
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		NoGroup: {"g"},
	}, []string{NoGroup})

	if len(res.Dropped) != 1 || res.Dropped[0] != "h" {
		t.Errorf("Dropped = %v, want [h]", res.Dropped)
	}
}

func TestThresholdZeroDisabled(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{Percentages: []string{"2"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if len(res.Dropped) != 0 {
		t.Errorf("Dropped = %v, want none", res.Dropped)
	}
}

func TestSummedAfterNormalize(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{
		Percentages: []string{"2"},
		Summed:      []string{"2"},
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	// Sums are taken after normalization, so every row adds to 100.
	wantValues(t, res.Table, "2", []float64{100, 100, 100})
}
