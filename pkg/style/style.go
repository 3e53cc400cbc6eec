// Package style defines the renderer-facing drawing directives the layout
// engine attaches to panels. Directives are plain data: the engine decides
// what should be drawn and how panels are annotated, an external renderer
// decides how that looks in pixels.
package style

import (
	"strings"

	"github.com/stratlab/strata/pkg/scale"
)

// PlotKind selects the visual encoding of one data series.
type PlotKind string

const (
	// PlotLine draws the series as a line against the vertical index.
	PlotLine PlotKind = "line"
	// PlotArea fills the area between the series and the index axis.
	PlotArea PlotKind = "area"
	// PlotStacked accumulates the series on top of its predecessors.
	PlotStacked PlotKind = "stacked"
	// PlotBar draws horizontal bars per index entry.
	PlotBar PlotKind = "bar"
	// PlotHidden marks a series entry as not drawn. It is the zero value so
	// hiding a series clears its slot in a per-series array.
	PlotHidden PlotKind = ""
)

// LineStyle selects how a panel edge is stroked.
type LineStyle string

const (
	LineSolid  LineStyle = "-"
	LineDashed LineStyle = "--"
	// LineDotted marks inter-group seam edges.
	LineDotted LineStyle = ":"
)

// Edges selects a line style per panel edge. The zero value leaves every
// edge at the renderer's default.
type Edges struct {
	Left   LineStyle `json:"left,omitempty"`
	Right  LineStyle `json:"right,omitempty"`
	Top    LineStyle `json:"top,omitempty"`
	Bottom LineStyle `json:"bottom,omitempty"`
}

// IsZero reports whether no edge style is set.
func (e Edges) IsZero() bool {
	return e == Edges{}
}

// Directives carries everything a renderer needs to draw one panel beyond
// its rectangle and data binding.
type Directives struct {
	// Plot is the encoding for single-series panels.
	Plot PlotKind `json:"plot,omitempty"`
	// Series holds per-series encodings for combined panels, parallel to
	// the panel's column list. PlotHidden entries are not drawn.
	Series []PlotKind `json:"series,omitempty"`

	Title     string `json:"title,omitempty"`
	TitleWrap int    `json:"title_wrap,omitempty"`
	Legend    bool   `json:"legend,omitempty"`

	YTicksVisible bool   `json:"yticks_visible,omitempty"`
	YLabel        string `json:"ylabel,omitempty"`

	XLim   *scale.Range `json:"xlim,omitempty"`
	XTicks []float64    `json:"xticks,omitempty"`

	AxisLines Edges `json:"axis_lines"`
}

// Clone returns a copy that shares no mutable state with the receiver.
func (d Directives) Clone() Directives {
	out := d
	if d.Series != nil {
		out.Series = make([]PlotKind, len(d.Series))
		copy(out.Series, d.Series)
	}
	if d.XTicks != nil {
		out.XTicks = make([]float64, len(d.XTicks))
		copy(out.XTicks, d.XTicks)
	}
	if d.XLim != nil {
		lim := *d.XLim
		out.XLim = &lim
	}
	return out
}

// Merge combines a variant default with caller overrides. Non-zero override
// fields win; boolean directives merge by or-ing, so an override can enable
// but not disable a variant default.
func Merge(base, override Directives) Directives {
	out := base

	if override.Plot != PlotHidden {
		out.Plot = override.Plot
	}
	if override.Series != nil {
		out.Series = override.Series
	}
	if override.Title != "" {
		out.Title = override.Title
	}
	if override.TitleWrap != 0 {
		out.TitleWrap = override.TitleWrap
	}
	out.Legend = base.Legend || override.Legend
	out.YTicksVisible = base.YTicksVisible || override.YTicksVisible
	if override.YLabel != "" {
		out.YLabel = override.YLabel
	}
	if override.XLim != nil {
		out.XLim = override.XLim
	}
	if override.XTicks != nil {
		out.XTicks = override.XTicks
	}
	if !override.AxisLines.IsZero() {
		out.AxisLines = override.AxisLines
	}

	return out
}

// WrapTitle word-wraps a title at the given rune width, joining the lines
// with newlines. Words longer than the width are kept whole. A width <= 0
// returns the title unchanged.
func WrapTitle(s string, width int) string {
	if width <= 0 {
		return s
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) <= width {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
