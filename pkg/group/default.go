package group

import (
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/scale"
	"github.com/stratlab/strata/pkg/style"
)

// Default lays out one line panel per column. Visible panels split the
// envelope width evenly and tile it left to right.
type Default struct {
	base
}

func newDefault(cfg Config) *Default {
	g := &Default{base: base{
		name:     cfg.Name,
		registry: cfg.Registry,
		envelope: cfg.Envelope,
	}}
	g.allocate = g.reflow

	g.handles = make([]uuid.UUID, 0, len(cfg.Members))
	for _, name := range cfg.Members {
		col, _ := cfg.Table.Column(name)
		directives := style.Merge(style.Directives{
			Plot: plotKind(style.PlotLine, cfg.Bars[name]),
		}, cfg.Overrides)
		id := cfg.Registry.Register(&panel.Panel{
			Name:    name,
			Label:   col.Label(),
			Group:   cfg.Name,
			Columns: []string{name},
			Visible: true,
			Style:   directives,
		})
		g.handles = append(g.handles, id)
	}

	g.share = scale.NewSet(g.handles...)
	g.reflow()
	return g
}

func (g *Default) Kind() Kind { return KindDefault }

// reflow assigns each visible panel an equal share of the envelope width.
func (g *Default) reflow() {
	vis := g.visible()
	if len(vis) == 0 {
		return
	}
	w := g.envelope.W / float64(len(vis))
	x := g.envelope.X0
	for _, p := range vis {
		p.Rect = geom.Rect{X0: x, Y0: g.envelope.Y0, W: w, H: g.envelope.H}
		x += w
	}
}
