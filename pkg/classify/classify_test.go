package classify

import (
	"testing"

	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("depth", []float64{0, 1, 2})
	cols := []table.Column{
		{Name: "a", Values: []float64{1, 1, 1}},
		{Name: "b", Values: []float64{1, 2, 1}},
		{Name: "c", Values: []float64{2, 2, 3}},
		{Name: "d", Values: []float64{33, 24, 28}},
		{Name: "e", Values: []float64{50, 34, 69}},
		{Name: "f", Values: []float64{17, 42, 3}},
	}
	for _, c := range cols {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%q) error = %v", c.Name, err)
		}
	}
	return tbl
}

// testFn assigns a..c to group "1" and d..f to group "2".
func testFn(col string) string {
	if col <= "c" {
		return "1"
	}
	return "2"
}

func groupNames(res *Result) []string {
	names := make([]string, len(res.Groups))
	for i, g := range res.Groups {
		names[i] = g.Name
	}
	return names
}

func wantGroups(t *testing.T, res *Result, want map[string][]string, order []string) {
	t.Helper()
	if len(res.Groups) != len(order) {
		t.Fatalf("Groups = %v, want order %v", groupNames(res), order)
	}
	for i, name := range order {
		g := res.Groups[i]
		if g.Name != name {
			t.Errorf("Groups[%d].Name = %q, want %q", i, g.Name, name)
			continue
		}
		cols := want[name]
		if len(g.Columns) != len(cols) {
			t.Errorf("group %q columns = %v, want %v", name, g.Columns, cols)
			continue
		}
		for j := range cols {
			if g.Columns[j] != cols[j] {
				t.Errorf("group %q columns[%d] = %q, want %q", name, j, g.Columns[j], cols[j])
			}
		}
	}
}

func TestClassifyOrder(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		"1": {"a", "b", "c"},
		"2": {"d", "e", "f"},
	}, []string{"1", "2"})
}

func TestClassifyCatchAll(t *testing.T) {
	res, err := Classify(testTable(t), nil, Options{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		NoGroup: {"a", "b", "c", "d", "e", "f"},
	}, []string{NoGroup})
}

func TestClassifySubgroups(t *testing.T) {
	fn := func(col string) string {
		switch col {
		case "a", "b":
			return "conifers"
		case "c":
			return "broadleaf"
		default:
			return "2"
		}
	}

	res, err := Classify(testTable(t), fn, Options{
		Subgroups: map[string][]string{"Trees": {"conifers", "broadleaf"}},
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		"Trees": {"a", "b", "c"},
		"2":     {"d", "e", "f"},
	}, []string{"Trees", "2"})

	if got := res.Subgroups["a"]; got != "conifers" {
		t.Errorf("Subgroups[a] = %q, want %q", got, "conifers")
	}
	if got := res.Subgroups["c"]; got != "broadleaf" {
		t.Errorf("Subgroups[c] = %q, want %q", got, "broadleaf")
	}
}

func TestClassifyExclude(t *testing.T) {
	tests := []struct {
		name      string
		exclude   []string
		want      map[string][]string
		wantOrder []string
	}{
		{
			name:      "column",
			exclude:   []string{"b"},
			want:      map[string][]string{"1": {"a", "c"}, "2": {"d", "e", "f"}},
			wantOrder: []string{"1", "2"},
		},
		{
			name:      "whole group",
			exclude:   []string{"2"},
			want:      map[string][]string{"1": {"a", "b", "c"}},
			wantOrder: []string{"1"},
		},
		{
			name:      "unknown name ignored",
			exclude:   []string{"zz", "group-9"},
			want:      map[string][]string{"1": {"a", "b", "c"}, "2": {"d", "e", "f"}},
			wantOrder: []string{"1", "2"},
		},
		{
			name:      "everything",
			exclude:   []string{"1", "2"},
			want:      map[string][]string{},
			wantOrder: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(testTable(t), testFn, Options{Exclude: tt.exclude})
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			wantGroups(t, res, tt.want, tt.wantOrder)
		})
	}
}

func TestClassifyExcludeSubgroupKey(t *testing.T) {
	fn := func(col string) string {
		if col == "a" {
			return "conifers"
		}
		return testFn(col)
	}

	res, err := Classify(testTable(t), fn, Options{
		Subgroups: map[string][]string{"1": {"conifers"}},
		Exclude:   []string{"conifers"},
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		"1": {"b", "c"},
		"2": {"d", "e", "f"},
	}, []string{"1", "2"})
}

func TestClassifySummed(t *testing.T) {
	input := testTable(t)
	res, err := Classify(input, testFn, Options{Summed: []string{"1"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	wantGroups(t, res, map[string][]string{
		"1":        {"a", "b", "c"},
		"2":        {"d", "e", "f"},
		SummedName: {"1"},
	}, []string{"1", "2", SummedName})

	col, ok := res.Table.Column("1")
	if !ok {
		t.Fatal("derived column not found in table")
	}
	if col.Long != "Sum of 1" {
		t.Errorf("Long = %q, want %q", col.Long, "Sum of 1")
	}
	want := []float64{4, 5, 5}
	for i := range want {
		if col.Values[i] != want[i] {
			t.Errorf("Values[%d] = %v, want %v", i, col.Values[i], want[i])
		}
	}

	if got := res.Subgroups["1"]; got != SummedName {
		t.Errorf("Subgroups[1] = %q, want %q", got, SummedName)
	}

	// Input table is untouched.
	if _, ok := input.Column("1"); ok {
		t.Error("derived column leaked into the input table")
	}
}

func TestClassifySummedUnknownGroup(t *testing.T) {
	res, err := Classify(testTable(t), testFn, Options{Summed: []string{"missing"}})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	for _, g := range res.Groups {
		if g.Name == SummedName {
			t.Errorf("Groups contains %q for unknown source group", SummedName)
		}
	}
}

func TestClassifyInvalidGroupKey(t *testing.T) {
	fn := func(string) string { return "" }

	_, err := Classify(testTable(t), fn, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidGroup) {
		t.Errorf("Classify() error = %v, want code %v", err, errors.ErrCodeInvalidGroup)
	}
}

func TestClassifyNilTable(t *testing.T) {
	_, err := Classify(nil, testFn, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Classify() error = %v, want code %v", err, errors.ErrCodeInvalidInput)
	}
}
