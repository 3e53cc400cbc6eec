// Package groupbar computes the bracket-and-label annotation that spans a
// group's panels. Bars are derived values: every mutation and every canvas
// resize recomputes them from current panel geometry, nothing is cached.
package groupbar

import (
	"slices"

	"github.com/stratlab/strata/pkg/geom"
)

// Bar is one group's bracket and label, in figure fraction except where a
// field name says pixels. The bracket runs from (X0, Top) to (X1, Top) with
// an arm of ArmPx pixels rising at Angle degrees on both ends. Renderers
// draw the label over an opaque background so the bracket does not strike
// through it.
type Bar struct {
	Group string `json:"group"`
	Label string `json:"label"`

	X0  float64 `json:"x0"`
	X1  float64 `json:"x1"`
	Top float64 `json:"top"`

	// Offset is the label's rise above Top, converted from a fraction of
	// the anchor panel's height.
	Offset   float64 `json:"offset"`
	OffsetPx float64 `json:"offset_px"`

	Angle float64 `json:"angle"`
	ArmPx float64 `json:"arm_px"`

	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// Compute derives a group's bar from the rectangles it spans. The first
// rectangle is the group's anchor panel; offsetFrac is taken of its height.
// Figure units are not uniform across unequal panel heights, so the label
// shift and arm length go through pixel space via frame. With no rectangles
// there is nothing to span and ok is false.
func Compute(group, label string, spans []geom.Rect, frame geom.Frame, offsetFrac, angle float64) (Bar, bool) {
	if len(spans) == 0 {
		return Bar{}, false
	}

	x0 := spans[0].X0
	x1 := spans[0].X1()
	top := spans[0].Y1()
	for _, r := range spans[1:] {
		x0 = min(x0, r.X0)
		x1 = max(x1, r.X1())
		top = max(top, r.Y1())
	}

	offset := offsetFrac * spans[0].H
	offsetPx := frame.PixelsY(offset)
	shift := frame.FracX(geom.LabelShift(offsetPx, angle))

	return Bar{
		Group:    group,
		Label:    label,
		X0:       x0,
		X1:       x1,
		Top:      top,
		Offset:   offset,
		OffsetPx: offsetPx,
		Angle:    angle,
		ArmPx:    geom.ArmLength(offsetPx, angle),
		LabelX:   shift + (x0+x1)/2,
		LabelY:   top + offset,
	}, true
}

// Annotator keeps the current bar of every group, in placement order.
type Annotator struct {
	frame geom.Frame
	bars  map[string]Bar
	order []string
}

// NewAnnotator returns an empty annotator computing against frame.
func NewAnnotator(frame geom.Frame) *Annotator {
	return &Annotator{
		frame: frame,
		bars:  make(map[string]Bar),
	}
}

// Frame reports the pixel frame bars are computed against.
func (a *Annotator) Frame() geom.Frame { return a.frame }

// Resize records a new pixel frame. Existing bars keep their stale pixel
// quantities until the caller places them again.
func (a *Annotator) Resize(frame geom.Frame) { a.frame = frame }

// Place replaces the named group's bar with one recomputed from spans, so
// label and bracket can never survive separately. With no spans the bar is
// removed and ok is false.
func (a *Annotator) Place(group, label string, spans []geom.Rect, offsetFrac, angle float64) (Bar, bool) {
	bar, ok := Compute(group, label, spans, a.frame, offsetFrac, angle)
	if !ok {
		a.Remove(group)
		return Bar{}, false
	}
	if _, exists := a.bars[group]; !exists {
		a.order = append(a.order, group)
	}
	a.bars[group] = bar
	return bar, true
}

// Remove drops the named group's bar. Unknown groups are a no-op.
func (a *Annotator) Remove(group string) {
	if _, ok := a.bars[group]; !ok {
		return
	}
	delete(a.bars, group)
	a.order = slices.DeleteFunc(a.order, func(g string) bool { return g == group })
}

// Bar returns the named group's current bar.
func (a *Annotator) Bar(group string) (Bar, bool) {
	bar, ok := a.bars[group]
	return bar, ok
}

// Bars lists the current bars in placement order.
func (a *Annotator) Bars() []Bar {
	out := make([]Bar, 0, len(a.order))
	for _, g := range a.order {
		out = append(out, a.bars[g])
	}
	return out
}

// Len reports the number of placed bars.
func (a *Annotator) Len() int { return len(a.bars) }
