package group

import (
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/scale"
)

// base carries the state shared by the panel-owning variants: the panel
// handle order (which is the left-to-right plot order), the group envelope,
// and the shared-scale set over the visible panels.
//
// allocate points at the owning variant's width-allocation pass; base
// mutations call it after every visibility or order change so the visible
// panels always tile the envelope.
type base struct {
	name     string
	registry *panel.Registry
	handles  []uuid.UUID
	envelope geom.Rect
	share    *scale.Set
	allocate func()
	onReflow func()
}

func (b *base) Name() string { return b.name }

func (b *base) Envelope() geom.Rect { return b.envelope }

func (b *base) Sharing() *scale.Set { return b.share }

func (b *base) SetReflow(fn func()) { b.onReflow = fn }

// Handles returns a copy of the panel ids in plot order.
func (b *base) Handles() []uuid.UUID {
	out := make([]uuid.UUID, len(b.handles))
	copy(out, b.handles)
	return out
}

// Members lists member column names in plot order. Panels that no longer
// resolve are skipped.
func (b *base) Members() []string {
	resolved := b.registry.Resolve(b.handles)
	names := make([]string, 0, len(resolved))
	for _, p := range resolved {
		names = append(names, p.Name)
	}
	return names
}

// IsVisible reports whether the named member resolves and is visible.
func (b *base) IsVisible(name string) bool {
	p, ok := b.find(name)
	return ok && p.Visible
}

// Show makes a hidden member visible, re-attaches it to the shared scale,
// and reflows. Unknown names and already-visible members are no-ops.
func (b *base) Show(name string) bool {
	p, ok := b.find(name)
	if !ok || p.Visible {
		return false
	}
	p.Visible = true
	b.share.Attach(p.ID)
	b.reanchor()
	b.allocate()
	b.notify()
	return true
}

// Hide removes a member from the visible set, detaches it from the shared
// scale, and reflows. Unknown names and already-hidden members are no-ops.
func (b *base) Hide(name string) bool {
	p, ok := b.find(name)
	if !ok || !p.Visible {
		return false
	}
	p.Visible = false
	b.share.Detach(p.ID)
	b.reanchor()
	b.allocate()
	b.notify()
	return true
}

// Reorder rearranges panels into the supplied name order. Unknown names are
// ignored; members not mentioned keep their prior relative order at the end.
// The group always reflows, even when the order is unchanged.
func (b *base) Reorder(names []string) {
	taken := make(map[uuid.UUID]bool, len(b.handles))
	next := make([]uuid.UUID, 0, len(b.handles))
	for _, name := range names {
		p, ok := b.find(name)
		if !ok || taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		next = append(next, p.ID)
	}
	for _, id := range b.handles {
		if !taken[id] {
			next = append(next, id)
		}
	}
	b.handles = next
	b.reanchor()
	b.allocate()
	b.notify()
}

// Resize moves the group into a new envelope and reflows. With zero visible
// panels only the envelope is recorded.
func (b *base) Resize(envelope geom.Rect) {
	b.envelope = envelope
	b.allocate()
	b.notify()
}

// find resolves a member column name to its panel.
func (b *base) find(name string) (*panel.Panel, bool) {
	for _, p := range b.registry.Resolve(b.handles) {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// visible returns the visible panels in plot order.
func (b *base) visible() []*panel.Panel {
	return b.registry.Visible(b.handles)
}

// reanchor re-roots the shared scale on the leftmost visible panel. The
// anchor owns the vertical axis, so it must follow the plot order and not
// the order members happened to rejoin the set.
func (b *base) reanchor() {
	vis := b.visible()
	if len(vis) == 0 {
		return
	}
	if first := vis[0]; b.share.Anchor() != first.ID {
		b.share.Rebase(first.ID)
	}
}

func (b *base) notify() {
	if b.onReflow != nil {
		b.onReflow()
	}
}
