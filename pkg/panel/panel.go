// Package panel provides the panel objects of a stratigraphic diagram and
// the registry that owns them.
//
// Panels are owned by exactly one [Registry], created when a diagram is laid
// out and deregistered when the diagram closes. Every other component holds
// non-owning uuid handles: a handle that no longer resolves means the panel
// is gone and is treated as hidden/removed, never dereferenced.
package panel

import (
	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/scale"
	"github.com/stratlab/strata/pkg/style"
)

// Panel is one rectangular plotting region bound to one column, or to
// several columns for combined (all_in_one, stacked) groups.
type Panel struct {
	ID uuid.UUID `json:"id"`

	// Name identifies the panel within its group: the column name for
	// per-column panels, the group name for combined panels.
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Group string `json:"group"`

	// Columns lists the bound column names. Per-column panels hold exactly
	// one entry; combined panels hold the member series in draw order.
	Columns []string `json:"columns"`

	Rect    geom.Rect   `json:"rect"`
	Visible bool        `json:"visible"`
	XRange  scale.Range `json:"xrange"`

	Style style.Directives `json:"style"`
}

// Registry strongly owns panels in registration order.
//
// The zero value is not usable - use NewRegistry. Registry is not safe for
// concurrent use without external synchronization.
type Registry struct {
	panels map[uuid.UUID]*Panel
	order  []uuid.UUID
}

// NewRegistry creates an empty panel registry.
func NewRegistry() *Registry {
	return &Registry{panels: make(map[uuid.UUID]*Panel)}
}

// Register assigns the panel a fresh id, stores it and returns the id.
func (r *Registry) Register(p *Panel) uuid.UUID {
	p.ID = uuid.New()
	r.panels[p.ID] = p
	r.order = append(r.order, p.ID)
	return p.ID
}

// Get resolves a handle. The second result is false when the panel was
// never registered or has been removed; callers treat that as "gone".
func (r *Registry) Get(id uuid.UUID) (*Panel, bool) {
	p, ok := r.panels[id]
	return p, ok
}

// Remove deregisters a panel. Removing an unknown id is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	if _, ok := r.panels[id]; !ok {
		return
	}
	delete(r.panels, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered panels.
func (r *Registry) Len() int { return len(r.order) }

// Panels returns all panels in registration order.
func (r *Registry) Panels() []*Panel {
	out := make([]*Panel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.panels[id])
	}
	return out
}

// Resolve maps handles to live panels, skipping ids that no longer resolve.
func (r *Registry) Resolve(ids []uuid.UUID) []*Panel {
	out := make([]*Panel, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.panels[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Visible maps handles to live visible panels, skipping ids that no longer
// resolve and panels that are hidden.
func (r *Registry) Visible(ids []uuid.UUID) []*Panel {
	out := make([]*Panel, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.panels[id]; ok && p.Visible {
			out = append(out, p)
		}
	}
	return out
}
