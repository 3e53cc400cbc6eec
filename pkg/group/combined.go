package group

import (
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/scale"
	"github.com/stratlab/strata/pkg/style"
)

// defaultTitleWrap is the wrap width for combined-panel titles.
const defaultTitleWrap = 15

// Combined overlays or stacks all member columns in a single panel that
// fills the group envelope. Show and Hide edit the per-series plot kinds
// instead of panel visibility, so geometry never moves; Reorder permutes
// the column and series arrays together.
type Combined struct {
	name     string
	kind     Kind
	registry *panel.Registry
	handle   uuid.UUID
	share    *scale.Set
	envelope geom.Rect

	// restore holds each member's designated series kind so Show can undo
	// a Hide without forgetting bar overrides.
	restore  []style.PlotKind
	onReflow func()
}

func newCombined(cfg Config) *Combined {
	restore := make([]style.PlotKind, len(cfg.Members))
	for i, name := range cfg.Members {
		switch cfg.Kind {
		case KindStacked:
			restore[i] = style.PlotStacked
		default:
			restore[i] = plotKind(style.PlotLine, cfg.Bars[name])
		}
	}

	wrap := cfg.Overrides.TitleWrap
	if wrap <= 0 {
		wrap = defaultTitleWrap
	}
	title := cfg.Overrides.Title
	if title == "" {
		title = cfg.Name
	}
	directives := style.Merge(style.Directives{
		Series: append([]style.PlotKind(nil), restore...),
		Legend: true,
	}, cfg.Overrides)
	directives.Title = style.WrapTitle(title, wrap)
	directives.TitleWrap = wrap

	g := &Combined{
		name:     cfg.Name,
		kind:     cfg.Kind,
		registry: cfg.Registry,
		envelope: cfg.Envelope,
		restore:  restore,
	}
	g.handle = cfg.Registry.Register(&panel.Panel{
		Name:    cfg.Name,
		Label:   cfg.Name,
		Group:   cfg.Name,
		Columns: append([]string(nil), cfg.Members...),
		Rect:    cfg.Envelope,
		Visible: true,
		Style:   directives,
	})
	g.share = scale.NewSet(g.handle)
	return g
}

func (g *Combined) Kind() Kind { return g.kind }

func (g *Combined) Name() string { return g.name }

func (g *Combined) Envelope() geom.Rect { return g.envelope }

func (g *Combined) Sharing() *scale.Set { return g.share }

func (g *Combined) SetReflow(fn func()) { g.onReflow = fn }

// Handles returns the single combined panel's id.
func (g *Combined) Handles() []uuid.UUID {
	return []uuid.UUID{g.handle}
}

// Members lists the member columns in current series order.
func (g *Combined) Members() []string {
	p, ok := g.registry.Get(g.handle)
	if !ok {
		return nil
	}
	return append([]string(nil), p.Columns...)
}

// IsVisible reports whether the named member's series is currently drawn.
func (g *Combined) IsVisible(name string) bool {
	p, i, ok := g.series(name)
	return ok && p.Style.Series[i] != style.PlotHidden
}

// Show restores the named member's designated series kind.
func (g *Combined) Show(name string) bool {
	p, i, ok := g.series(name)
	if !ok || p.Style.Series[i] != style.PlotHidden {
		return false
	}
	p.Style.Series[i] = g.restore[i]
	g.notify()
	return true
}

// Hide blanks the named member's series entry, leaving geometry and the
// remaining series untouched.
func (g *Combined) Hide(name string) bool {
	p, i, ok := g.series(name)
	if !ok || p.Style.Series[i] == style.PlotHidden {
		return false
	}
	p.Style.Series[i] = style.PlotHidden
	g.notify()
	return true
}

// Reorder permutes the column, series, and designated-kind arrays together,
// so each member keeps its visibility and encoding. Unknown names are
// ignored and unmentioned members keep their prior relative order.
func (g *Combined) Reorder(names []string) {
	p, ok := g.registry.Get(g.handle)
	if !ok {
		return
	}
	index := make(map[string]int, len(p.Columns))
	for i, c := range p.Columns {
		index[c] = i
	}
	taken := make(map[int]bool, len(p.Columns))
	order := make([]int, 0, len(p.Columns))
	for _, name := range names {
		i, ok := index[name]
		if !ok || taken[i] {
			continue
		}
		taken[i] = true
		order = append(order, i)
	}
	for i := range p.Columns {
		if !taken[i] {
			order = append(order, i)
		}
	}

	cols := make([]string, len(order))
	series := make([]style.PlotKind, len(order))
	restore := make([]style.PlotKind, len(order))
	for j, i := range order {
		cols[j] = p.Columns[i]
		restore[j] = g.restore[i]
		if i < len(p.Style.Series) {
			series[j] = p.Style.Series[i]
		} else {
			series[j] = g.restore[i]
		}
	}
	p.Columns = cols
	p.Style.Series = series
	g.restore = restore
	g.notify()
}

// Resize moves the combined panel into a new envelope.
func (g *Combined) Resize(envelope geom.Rect) {
	g.envelope = envelope
	if p, ok := g.registry.Get(g.handle); ok {
		p.Rect = envelope
	}
	g.notify()
}

// series resolves a member name to the combined panel and its series index.
func (g *Combined) series(name string) (*panel.Panel, int, bool) {
	p, ok := g.registry.Get(g.handle)
	if !ok {
		return nil, 0, false
	}
	for i, c := range p.Columns {
		if c == name && i < len(p.Style.Series) && i < len(g.restore) {
			return p, i, true
		}
	}
	return nil, 0, false
}

func (g *Combined) notify() {
	if g.onReflow != nil {
		g.onReflow()
	}
}
