// Package source loads diagram inputs from external files: CSV measurement
// tables and TOML diagram descriptors.
//
// # CSV Tables
//
// [ReadCSV] and [LoadCSV] turn a rectangular CSV document into a
// [table.Table]. The header row names the columns, one column (the first,
// or the one named in [CSVOptions]) becomes the vertical index, and empty
// data cells parse to NaN so gaps in a core survive the import:
//
//	tbl, err := source.LoadCSV("core.csv", source.CSVOptions{Index: "depth"})
//
// # Descriptors
//
// A [Descriptor] is the sharable, data-independent half of a diagram: group
// membership, variant kinds, widths and normalization settings, written as
// TOML. [ParseDescriptor] and [LoadDescriptor] decode and validate one;
// [Descriptor.ClassifyFunc] and [Descriptor.Options] project it onto the
// layout engine's inputs.
//
// # Putting Both Together
//
//	desc, err := source.LoadDescriptor("diagram.toml")
//	if err != nil {
//		return err
//	}
//	tbl, err := source.LoadCSV("core.csv", source.CSVOptions{Index: desc.Index})
//	if err != nil {
//		return err
//	}
//	d, err := diagram.Layout(tbl, desc.ClassifyFunc(), desc.Options())
//
// File and syntax problems come back as coded errors: os-level failures as
// invalid input, malformed or inconsistent descriptors as invalid
// descriptor.
//
// [table.Table]: github.com/stratlab/strata/pkg/table.Table
package source
