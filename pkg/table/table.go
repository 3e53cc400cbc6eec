// Package table provides the tabular input model for stratigraphic diagrams:
// an ordered numeric index (depth, age, time) plus named numeric columns.
//
// Tables are the only data the layout engine reads. Columns are immutable
// once classified; transformations such as percentage normalization operate
// on a [Table.Clone] so the caller's data stays untouched.
package table

import (
	"errors"
	"math"
)

var (
	// ErrEmptyName is returned by [Table.AddColumn] when the column name is
	// empty. All columns must have non-empty names.
	ErrEmptyName = errors.New("column name must not be empty")

	// ErrDuplicateColumn is returned by [Table.AddColumn] when a column with
	// the same name already exists. Column names must be unique.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned by [Table.AddColumn] when the column's
	// value count differs from the index length. Every column spans the full
	// index.
	ErrLengthMismatch = errors.New("column length does not match index length")

	// ErrUnknownColumn is returned by lookups such as [Table.Summary] when
	// the named column does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNoValues is returned by [Table.Summary] when a column holds no
	// finite values to aggregate.
	ErrNoValues = errors.New("column has no values")
)

// DefaultIndexName is used when a table is created without an index name.
const DefaultIndexName = "y"

// Column is a named numeric series over the table's shared index.
// NaN entries mark missing measurements.
//
// Long carries an optional display label; derived columns (such as row sums)
// use it to record their provenance.
type Column struct {
	Name   string    `json:"name"`
	Long   string    `json:"long,omitempty"`
	Values []float64 `json:"values"`
}

// Label returns the display label for the column: Long when set, otherwise
// the column name.
func (c Column) Label() string {
	if c.Long != "" {
		return c.Long
	}
	return c.Name
}

// Max returns the largest finite value in the column, skipping NaN entries.
// A column without finite values yields NaN.
func (c Column) Max() float64 {
	max := math.NaN()
	for _, v := range c.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// Min returns the smallest finite value in the column, skipping NaN entries.
// A column without finite values yields NaN.
func (c Column) Min() float64 {
	min := math.NaN()
	for _, v := range c.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// clone returns a deep copy of the column.
func (c Column) clone() Column {
	values := make([]float64, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Long: c.Long, Values: values}
}

// Table is an ordered collection of columns over a shared numeric index.
// Column order is insertion order and defines the default left-to-right
// plotting order.
//
// The zero value is not usable - use New to create a valid Table.
// Table is not safe for concurrent use without external synchronization.
type Table struct {
	indexName string
	index     []float64
	columns   map[string]*Column
	order     []string
}

// New creates an empty table over the given index. An empty indexName
// falls back to [DefaultIndexName]. The table takes ownership of the index
// slice.
func New(indexName string, index []float64) *Table {
	if indexName == "" {
		indexName = DefaultIndexName
	}
	return &Table{
		indexName: indexName,
		index:     index,
		columns:   make(map[string]*Column),
		order:     make([]string, 0),
	}
}

// AddColumn appends a column to the table. The table takes ownership of the
// column's value slice.
//
// Returns [ErrEmptyName], [ErrDuplicateColumn] or [ErrLengthMismatch] on
// invalid input.
func (t *Table) AddColumn(c Column) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if _, exists := t.columns[c.Name]; exists {
		return ErrDuplicateColumn
	}
	if len(c.Values) != len(t.index) {
		return ErrLengthMismatch
	}
	t.columns[c.Name] = &c
	t.order = append(t.order, c.Name)
	return nil
}

// Column returns the named column, or false when it does not exist.
// The returned pointer aliases table storage; callers must not mutate it.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// Columns returns all columns in insertion order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, 0, len(t.order))
	for _, name := range t.order {
		cols = append(cols, t.columns[name])
	}
	return cols
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Len returns the number of rows (index entries).
func (t *Table) Len() int { return len(t.index) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.order) }

// IndexName returns the name of the index.
func (t *Table) IndexName() string { return t.indexName }

// Index returns a copy of the index values.
func (t *Table) Index() []float64 {
	idx := make([]float64, len(t.index))
	copy(idx, t.index)
	return idx
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	nt := New(t.indexName, t.Index())
	for _, name := range t.order {
		col := t.columns[name].clone()
		nt.columns[name] = &col
		nt.order = append(nt.order, name)
	}
	return nt
}

// RowSum returns the row-wise sum over the named columns. NaN entries count
// as 0 and unknown names are skipped, so the result always has one entry per
// row.
func (t *Table) RowSum(names []string) []float64 {
	sums := make([]float64, len(t.index))
	for _, name := range names {
		col, ok := t.columns[name]
		if !ok {
			continue
		}
		for i, v := range col.Values {
			if math.IsNaN(v) {
				continue
			}
			sums[i] += v
		}
	}
	return sums
}
