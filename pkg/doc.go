// Package pkg provides the core libraries for strata stratigraphic diagram
// layout.
//
// # Overview
//
// Strata computes the layout of stratigraphic diagrams: the column-per-panel
// plots used for pollen counts, sediment composition and other
// depth-resolved measurements. Every column of a data table becomes one
// panel, all panels share an inverted vertical axis, related columns are
// clustered into groups, and a bracket-shaped group bar spans each cluster.
// The pkg directory is organized into four main areas:
//
//  1. Data model ([table], [classify]) - input tables and group assignment
//  2. Geometry ([geom], [scale], [panel], [style]) - rectangles, axes, panels
//  3. Layout ([group], [groupbar], [diagram]) - allocation and orchestration
//  4. Adapters ([source], [io]) - CSV/TOML input, JSON snapshots
//
// # Architecture
//
// The typical data flow through strata:
//
//	CSV table / TOML descriptor
//	         ↓
//	    [source] package (tables and descriptors)
//	         ↓
//	    [classify] package (grouping, normalization, filtering)
//	         ↓
//	    [group] package (panel geometry over shared scales)
//	         ↓
//	    [diagram] package (orchestration, group bars, mutations)
//	         ↓
//	    host renderer / JSON snapshot
//
// # Quick Start
//
// Lay out a table with two percentage groups:
//
//	import (
//	    "github.com/stratlab/strata/pkg/diagram"
//	    "github.com/stratlab/strata/pkg/table"
//	)
//
//	// 1. Build the input table
//	tbl := table.New("depth", []float64{0, 10, 20})
//	tbl.AddColumn(table.Column{Name: "Pinus", Values: []float64{30, 45, 60}})
//	tbl.AddColumn(table.Column{Name: "Poaceae", Values: []float64{20, 15, 15}})
//
//	// 2. Classify columns into groups
//	fn := func(column string) string {
//	    if column == "Poaceae" {
//	        return "Herbs"
//	    }
//	    return "Trees"
//	}
//
//	// 3. Compute the layout
//	d, err := diagram.Layout(tbl, fn, diagram.Options{
//	    Percentages: []string{"Trees", "Herbs"},
//	})
//
//	// 4. Read panel geometry, mutate, snapshot
//	for _, p := range d.Panels() {
//	    fmt.Println(p.Name, p.Rect)
//	}
//
// # Main Packages
//
// ## Data Model
//
// [table] - Tabular input: an ordered numeric index (depth, age, time) plus
// named numeric columns with NaN for missing measurements.
//
// [classify] - Maps columns into named groups and prepares the data side of
// a diagram: subgroup remapping, percentage normalization, threshold
// filtering, derived sum columns.
//
// ## Geometry
//
// [geom] - Figure-fraction rectangles, pixel frames and the bracket
// trigonometry behind group bars.
//
// [scale] - Horizontal ranges, rounded tick selection and the shared
// vertical-scale sets that keep panels aligned.
//
// [panel] - The panel entity (rectangle, ranges, style, visibility) and the
// uuid-keyed registry the layout mutates through.
//
// [style] - Plot-kind and axis directives attached to every panel, merged
// from per-group overrides.
//
// ## Layout
//
// [group] - Grouper variants owning panel geometry: equal-width default,
// range-proportional percentage, overlaid all-in-one and cumulative stacked.
//
// [groupbar] - Bracket-shaped group annotations placed above panel spans.
//
// [diagram] - The orchestrator: classifies, builds groups left to right,
// finishes axes, places bars, and routes live mutations (hide, show,
// reorder, resize) with snapshot/restore.
//
// ## Adapters
//
// [source] - CSV measurement tables and TOML diagram descriptors.
//
// [io] - JSON import/export of diagram snapshots.
//
// ## Support
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Layout and mutation hooks for host integration.
//
// # Common Workflows
//
// React to a window resize:
//
//	d.Resize(geom.Frame{W: 1280, H: 960})
//
// Toggle and rearrange columns:
//
//	d.Hide("Trees", "Betula")
//	d.Reorder("Trees", []string{"Quercus", "Pinus"})
//
// Persist and restore a session:
//
//	io.ExportState(d.Snapshot(), "diagram.json")
//	st, _ := io.ImportState("diagram.json")
//	d2, _ := diagram.Restore(tbl, st)
//
// Drive everything from files:
//
//	desc, _ := source.LoadDescriptor("diagram.toml")
//	tbl, _ := source.LoadCSV("core.csv", source.CSVOptions{Index: desc.Index})
//	d, _ := diagram.Layout(tbl, desc.ClassifyFunc(), desc.Options())
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/group/...        # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [table]: https://pkg.go.dev/github.com/stratlab/strata/pkg/table
// [classify]: https://pkg.go.dev/github.com/stratlab/strata/pkg/classify
// [geom]: https://pkg.go.dev/github.com/stratlab/strata/pkg/geom
// [scale]: https://pkg.go.dev/github.com/stratlab/strata/pkg/scale
// [panel]: https://pkg.go.dev/github.com/stratlab/strata/pkg/panel
// [style]: https://pkg.go.dev/github.com/stratlab/strata/pkg/style
// [group]: https://pkg.go.dev/github.com/stratlab/strata/pkg/group
// [groupbar]: https://pkg.go.dev/github.com/stratlab/strata/pkg/groupbar
// [diagram]: https://pkg.go.dev/github.com/stratlab/strata/pkg/diagram
// [source]: https://pkg.go.dev/github.com/stratlab/strata/pkg/source
// [io]: https://pkg.go.dev/github.com/stratlab/strata/pkg/io
// [errors]: https://pkg.go.dev/github.com/stratlab/strata/pkg/errors
// [observability]: https://pkg.go.dev/github.com/stratlab/strata/pkg/observability
package pkg
