package group

import (
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/scale"
	"github.com/stratlab/strata/pkg/style"
)

// Percentage lays out one area panel per column. Every panel's horizontal
// axis runs from zero to a rounded-up column maximum, and visible panels
// divide the envelope width in proportion to those ranges.
type Percentage struct {
	base
}

func newPercentage(cfg Config) *Percentage {
	g := &Percentage{base: base{
		name:     cfg.Name,
		registry: cfg.Registry,
		envelope: cfg.Envelope,
	}}
	g.allocate = g.reflow

	g.handles = make([]uuid.UUID, 0, len(cfg.Members))
	for _, name := range cfg.Members {
		col, _ := cfg.Table.Column(name)
		r := scale.Rounded(col.Max())
		directives := style.Merge(style.Directives{
			Plot:   plotKind(style.PlotArea, cfg.Bars[name]),
			XTicks: scale.PercentTicks(),
		}, cfg.Overrides)
		p := &panel.Panel{
			Name:    name,
			Label:   col.Label(),
			Group:   cfg.Name,
			Columns: []string{name},
			Visible: true,
			Style:   directives,
		}
		setRange(p, r)
		g.handles = append(g.handles, cfg.Registry.Register(p))
	}

	g.share = scale.NewSet(g.handles...)
	g.reflow()
	return g
}

func (g *Percentage) Kind() Kind { return KindPercentage }

// ApplyFloor raises every panel range whose maximum falls below the floor
// and reflows when any range changed. It reports whether a reflow ran.
func (g *Percentage) ApplyFloor(floor float64) bool {
	changed := false
	for _, p := range g.registry.Resolve(g.handles) {
		r, clamped := p.XRange.ClampFloor(floor)
		if clamped {
			setRange(p, r)
			changed = true
		}
	}
	if !changed {
		return false
	}
	g.reflow()
	g.notify()
	return true
}

// reflow divides the envelope width among visible panels in proportion to
// their range spans. Panels with no usable span fall back to an even split
// so the envelope stays filled.
func (g *Percentage) reflow() {
	vis := g.visible()
	if len(vis) == 0 {
		return
	}
	total := 0.0
	for _, p := range vis {
		total += p.XRange.Span()
	}
	x := g.envelope.X0
	for _, p := range vis {
		w := g.envelope.W / float64(len(vis))
		if total > 0 {
			w = g.envelope.W * p.XRange.Span() / total
		}
		p.Rect = geom.Rect{X0: x, Y0: g.envelope.Y0, W: w, H: g.envelope.H}
		x += w
	}
}

// setRange updates a panel's horizontal range and the matching axis-limit
// directive together.
func setRange(p *panel.Panel, r scale.Range) {
	p.XRange = r
	lim := r
	p.Style.XLim = &lim
}
