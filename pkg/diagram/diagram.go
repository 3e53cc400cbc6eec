// Package diagram assembles classified table columns into a laid-out
// stratigraphic diagram: one panel per column (or per combined group),
// clustered into groups over a shared inverted vertical scale, with
// bracket-style group bars annotating the top.
//
// Layout is the single entry point. The returned [Diagram] stays live:
// hiding, showing and reordering columns or resizing the canvas reflows
// the affected group and its group bar while every other panel keeps its
// geometry. All mutations go through the Diagram so renderers can treat
// its panels and bars as the complete drawing state.
package diagram

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/classify"
	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/group"
	"github.com/stratlab/strata/pkg/groupbar"
	"github.com/stratlab/strata/pkg/observability"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/style"
	"github.com/stratlab/strata/pkg/table"
)

// Diagram is a live stratigraphic layout. It owns the panel registry, the
// groupers and the group-bar annotator built from one classified table.
//
// Diagram is not safe for concurrent use without external synchronization.
type Diagram struct {
	opts     Options
	tbl      *table.Table
	registry *panel.Registry

	groupers []group.Grouper
	byName   map[string]group.Grouper

	bars *groupbar.Annotator
	// barFrac is the bar offset as a fraction of panel height, so that
	// offset * panel height equals the configured trunc gap exactly.
	barFrac float64

	// anchor is the panel owning the vertical axis labels and ticks.
	anchor uuid.UUID

	subgroups map[string]string
	dropped   []string
	stats     Stats
	log       *log.Logger
	closed    bool
}

// Stats captures cardinality and timing information about a layout run.
type Stats struct {
	Columns      int
	Groups       int
	Panels       int
	Dropped      int
	ClassifyTime time.Duration
	BuildTime    time.Duration
}

// Layout classifies the table's columns and builds the full diagram:
// groups are laid out left to right across the configured rect, percentage
// floors are applied, seam edges and axis labels are assigned, and group
// bars are placed above the panels.
//
// A nil fn sends every column to the catch-all group. The table is not
// modified; normalization and sum synthesis work on a clone.
func Layout(tbl *table.Table, fn classify.Func, opts Options) (*Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if tbl == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table is nil")
	}
	if tbl.ColumnCount() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table has no columns")
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(tbl.ColumnCount())
	start := time.Now()

	// Stage 1: Classify
	res, err := classify.Classify(tbl, fn, opts.classifyOptions())
	if err != nil {
		hooks.OnLayoutComplete(0, 0, time.Since(start), err)
		return nil, err
	}
	classifyTime := time.Since(start)

	d := &Diagram{
		opts:      opts,
		tbl:       res.Table,
		registry:  panel.NewRegistry(),
		byName:    make(map[string]group.Grouper, len(res.Groups)),
		bars:      groupbar.NewAnnotator(opts.Frame),
		subgroups: res.Subgroups,
		dropped:   res.Dropped,
		log:       opts.Logger,
	}

	panelHeight := opts.panelHeight()
	if panelHeight > 0 {
		d.barFrac = opts.truncHeight() / panelHeight
	}

	names := make([]string, len(res.Groups))
	for i, g := range res.Groups {
		names[i] = g.Name
	}

	// Stage 2: Build groups left to right
	x := opts.Rect.X0
	for _, grp := range res.Groups {
		w := opts.WidthFor(grp.Name, names) * opts.Rect.W
		kind := opts.KindFor(grp.Name)

		gr, err := group.New(group.Config{
			Name:      grp.Name,
			Kind:      kind,
			Members:   grp.Columns,
			Table:     res.Table,
			Registry:  d.registry,
			Envelope:  geom.Rect{X0: x, Y0: opts.Rect.Y0, W: w, H: panelHeight},
			Bars:      opts.BarColumns(grp.Name, grp.Columns),
			Overrides: opts.Styles[grp.Name],
		})
		if err != nil {
			hooks.OnLayoutComplete(len(d.groupers), d.registry.Len(), time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "building group %q", grp.Name)
		}
		if pg, ok := gr.(*group.Percentage); ok {
			pg.ApplyFloor(opts.MinPercentage)
		}
		if d.anchor == uuid.Nil {
			d.anchor = gr.Handles()[0]
		}

		d.groupers = append(d.groupers, gr)
		d.byName[grp.Name] = gr
		d.log.Debug("group laid out",
			"group", grp.Name,
			"kind", kind,
			"members", len(grp.Columns),
			"width", w)
		x += w
	}

	// Stage 3: Finish axes and place group bars
	d.finishAxes()
	for _, gr := range d.groupers {
		d.refreshBar(gr)
	}

	// Reflow callbacks are attached only now, so construction flushed as
	// one batch and mutations from here on refresh incrementally.
	for _, gr := range d.groupers {
		gr.SetReflow(func() { d.refreshBar(gr) })
	}

	d.stats = Stats{
		Columns:      tbl.ColumnCount(),
		Groups:       len(d.groupers),
		Panels:       d.registry.Len(),
		Dropped:      len(res.Dropped),
		ClassifyTime: classifyTime,
		BuildTime:    time.Since(start),
	}
	d.log.Info("diagram laid out",
		"groups", d.stats.Groups,
		"panels", d.stats.Panels,
		"bars", d.bars.Len(),
		"dropped", d.stats.Dropped,
		"duration", d.stats.BuildTime)
	hooks.OnLayoutComplete(d.stats.Groups, d.stats.Panels, time.Since(start), nil)

	return d, nil
}

// finishAxes assigns the vertical axis to the anchor panel and marks every
// panel edge that does not coincide with the diagram boundary as a dotted
// seam.
func (d *Diagram) finishAxes() {
	if p, ok := d.registry.Get(d.anchor); ok {
		p.Style.YTicksVisible = true
		p.Style.YLabel = d.tbl.IndexName()
	}

	x0, x1 := d.opts.Rect.X0, d.opts.Rect.X1()
	for _, p := range d.registry.Panels() {
		if math.Abs(p.Rect.X0-x0) > geom.Eps {
			p.Style.AxisLines.Left = style.LineDotted
		}
		if math.Abs(p.Rect.X1()-x1) > geom.Eps {
			p.Style.AxisLines.Right = style.LineDotted
		}
	}
}

// =============================================================================
// GROUP BARS
// =============================================================================

// barEligible reports whether a group receives a bracket annotation.
// Combined groups carry their name as panel title instead, and the
// catch-all group is never bracketed.
func barEligible(gr group.Grouper) bool {
	if gr.Name() == classify.NoGroup {
		return false
	}
	k := gr.Kind()
	return k == group.KindDefault || k == group.KindPercentage
}

// barSpans returns the rectangles of the group's visible panels, anchor
// first, for the bar to bracket.
func (d *Diagram) barSpans(gr group.Grouper) []geom.Rect {
	panels := d.registry.Visible(gr.Sharing().Members())
	spans := make([]geom.Rect, 0, len(panels))
	for _, p := range panels {
		spans = append(spans, p.Rect)
	}
	return spans
}

// refreshBar recomputes the group's bracket from its current visible
// panels. A group with nothing visible loses its bar.
func (d *Diagram) refreshBar(gr group.Grouper) {
	if !barEligible(gr) {
		return
	}
	name := gr.Name()
	spans := d.barSpans(gr)
	if len(spans) == 0 {
		if _, ok := d.bars.Bar(name); ok {
			d.bars.Remove(name)
			observability.Layout().OnBarRemoved(name)
		}
		return
	}
	d.bars.Place(name, name, spans, d.barFrac, d.opts.BarAngle)
	observability.Layout().OnBarPlaced(name)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Show makes a hidden column visible again, reflowing its group and bar.
func (d *Diagram) Show(groupName, column string) error {
	gr, err := d.grouper(groupName)
	if err != nil {
		return err
	}
	if gr.Show(column) {
		observability.Mutation().OnShow(groupName, column)
		d.log.Debug("column shown", "group", groupName, "column", column)
	}
	return nil
}

// Hide removes a column from the visible set, reflowing its group and bar.
// Hiding an unknown or already hidden column is a no-op.
func (d *Diagram) Hide(groupName, column string) error {
	gr, err := d.grouper(groupName)
	if err != nil {
		return err
	}
	if gr.Hide(column) {
		observability.Mutation().OnHide(groupName, column)
		d.log.Debug("column hidden", "group", groupName, "column", column)
	}
	return nil
}

// Reorder rearranges a group's members into the supplied order. Unknown
// names are ignored and unmentioned members keep their relative order.
func (d *Diagram) Reorder(groupName string, order []string) error {
	gr, err := d.grouper(groupName)
	if err != nil {
		return err
	}
	gr.Reorder(order)
	observability.Mutation().OnReorder(groupName, order)
	d.log.Debug("group reordered", "group", groupName, "order", order)
	return nil
}

// Resize records a new canvas size and recomputes the pixel-derived
// quantities of every group bar. Panel geometry is in figure fraction and
// does not move.
func (d *Diagram) Resize(frame geom.Frame) error {
	if d.closed {
		return errors.New(errors.ErrCodeInvalidState, "diagram is closed")
	}
	if frame.W < 0 || frame.H < 0 {
		return errors.New(errors.ErrCodeInvalidOption,
			"frame %gx%g must not be negative", frame.W, frame.H)
	}
	d.opts.Frame = frame
	d.bars.Resize(frame)
	for _, gr := range d.groupers {
		d.refreshBar(gr)
	}
	observability.Mutation().OnResize(frame.W, frame.H)
	d.log.Debug("canvas resized", "width", frame.W, "height", frame.H)
	return nil
}

// Close deregisters every panel and marks the diagram unusable. Handles
// held by groupers stop resolving; further mutations return an
// invalid-state error. Close is idempotent.
func (d *Diagram) Close() {
	if d.closed {
		return
	}
	n := d.registry.Len()
	for _, p := range d.registry.Panels() {
		d.registry.Remove(p.ID)
	}
	d.closed = true
	d.log.Debug("diagram closed", "panels", n)
}

func (d *Diagram) grouper(name string) (group.Grouper, error) {
	if d.closed {
		return nil, errors.New(errors.ErrCodeInvalidState, "diagram is closed")
	}
	gr, ok := d.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownGroup, "unknown group %q", name)
	}
	return gr, nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Groupers returns the diagram's groups in plot order.
func (d *Diagram) Groupers() []group.Grouper {
	out := make([]group.Grouper, len(d.groupers))
	copy(out, d.groupers)
	return out
}

// Grouper returns the named group, or false when it does not exist.
func (d *Diagram) Grouper(name string) (group.Grouper, bool) {
	gr, ok := d.byName[name]
	return gr, ok
}

// Panels returns every panel in current plot order, left to right across
// groups and within each group.
func (d *Diagram) Panels() []*panel.Panel {
	var out []*panel.Panel
	for _, gr := range d.groupers {
		out = append(out, d.registry.Resolve(gr.Handles())...)
	}
	return out
}

// Bars returns the current group bars in placement order.
func (d *Diagram) Bars() []groupbar.Bar { return d.bars.Bars() }

// Anchor returns the id of the panel carrying the vertical axis.
func (d *Diagram) Anchor() uuid.UUID { return d.anchor }

// Inverted reports whether the vertical axis runs top-down. Stratigraphic
// diagrams always invert so depth grows downwards.
func (d *Diagram) Inverted() bool { return true }

// Table returns the diagram's working table, including normalization and
// derived sum columns.
func (d *Diagram) Table() *table.Table { return d.tbl }

// Dropped lists the columns removed by the threshold filter.
func (d *Diagram) Dropped() []string {
	out := make([]string, len(d.dropped))
	copy(out, d.dropped)
	return out
}

// Subgroups maps each column to the raw key the classification function
// returned for it.
func (d *Diagram) Subgroups() map[string]string {
	out := make(map[string]string, len(d.subgroups))
	for k, v := range d.subgroups {
		out[k] = v
	}
	return out
}

// Stats returns cardinality and timing information about the layout run.
func (d *Diagram) Stats() Stats { return d.stats }

// Options returns the validated options the diagram was built with.
func (d *Diagram) Options() Options { return d.opts }

// Summary returns aggregate statistics for one column of the working table.
func (d *Diagram) Summary(column string) (table.Summary, error) {
	s, err := d.tbl.Summary(column)
	if err != nil {
		code := errors.ErrCodeInvalidColumn
		if err == table.ErrUnknownColumn {
			code = errors.ErrCodeUnknownColumn
		}
		return table.Summary{}, errors.Wrap(code, err, "summary of column %q", column)
	}
	return s, nil
}
