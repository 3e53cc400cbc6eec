package diagram

import (
	"slices"

	"github.com/stratlab/strata/pkg/classify"
	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/group"
	"github.com/stratlab/strata/pkg/groupbar"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/table"
)

// State is a serializable snapshot of a live diagram. It carries the full
// drawing state a renderer needs (panels and bars) plus the classification
// record [Restore] needs to rebuild the diagram against its input table.
type State struct {
	Options   Options           `json:"options"`
	IndexName string            `json:"index_name"`
	Inverted  bool              `json:"inverted"`
	Groups    []GroupState      `json:"groups"`
	Subgroups map[string]string `json:"subgroups,omitempty"`
	Dropped   []string          `json:"dropped,omitempty"`
	Bars      []groupbar.Bar    `json:"bars,omitempty"`
}

// GroupState records one group's membership, order, visibility and
// geometry at snapshot time.
type GroupState struct {
	Name     string        `json:"name"`
	Kind     group.Kind    `json:"kind"`
	Envelope geom.Rect     `json:"envelope"`
	Order    []string      `json:"order"`
	Hidden   []string      `json:"hidden,omitempty"`
	Panels   []panel.Panel `json:"panels"`
}

// Snapshot captures the diagram's complete layout state. The snapshot
// shares no mutable state with the diagram, so later mutations leave it
// untouched.
func (d *Diagram) Snapshot() State {
	st := State{
		Options:   d.opts,
		IndexName: d.tbl.IndexName(),
		Inverted:  d.Inverted(),
		Subgroups: d.Subgroups(),
		Dropped:   d.Dropped(),
		Bars:      d.bars.Bars(),
	}
	for _, gr := range d.groupers {
		gs := GroupState{
			Name:     gr.Name(),
			Kind:     gr.Kind(),
			Envelope: gr.Envelope(),
			Order:    gr.Members(),
		}
		for _, m := range gs.Order {
			if !gr.IsVisible(m) {
				gs.Hidden = append(gs.Hidden, m)
			}
		}
		for _, p := range d.registry.Resolve(gr.Handles()) {
			gs.Panels = append(gs.Panels, clonePanel(p))
		}
		st.Groups = append(st.Groups, gs)
	}
	return st
}

// Restore rebuilds a live diagram from a snapshot against the same input
// table. Classification is reconstructed from the snapshot's recorded
// subgroup keys; visibility, order and group geometry are then reapplied
// through the normal mutation path, so every layout invariant holds on the
// result.
//
// A snapshot that does not match the table's columns, or whose groups
// cannot be rebuilt, yields an invalid-state error.
func Restore(tbl *table.Table, st State) (*Diagram, error) {
	opts := st.Options

	fn := func(column string) string {
		if key, ok := st.Subgroups[column]; ok {
			return key
		}
		return classify.NoGroup
	}

	// Columns added to the table after the snapshot have no recorded
	// subgroup key; exclude them so the rebuilt diagram matches.
	if tbl != nil {
		var extra []string
		for _, name := range tbl.Names() {
			if _, ok := st.Subgroups[name]; !ok {
				extra = append(extra, name)
			}
		}
		if len(extra) > 0 {
			opts.Exclude = append(slices.Clone(opts.Exclude), extra...)
		}
	}

	d, err := Layout(tbl, fn, opts)
	if err != nil {
		return nil, err
	}

	if len(d.groupers) != len(st.Groups) {
		return nil, errors.New(errors.ErrCodeInvalidState,
			"snapshot has %d groups, rebuilt diagram has %d",
			len(st.Groups), len(d.groupers))
	}
	for _, gs := range st.Groups {
		gr, ok := d.byName[gs.Name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidState,
				"snapshot group %q missing from rebuilt diagram", gs.Name)
		}
		if gr.Kind() != gs.Kind {
			return nil, errors.New(errors.ErrCodeInvalidState,
				"snapshot group %q is %s, rebuilt group is %s", gs.Name, gs.Kind, gr.Kind())
		}
		if err := d.Reorder(gs.Name, gs.Order); err != nil {
			return nil, err
		}
		for _, column := range gs.Hidden {
			if err := d.Hide(gs.Name, column); err != nil {
				return nil, err
			}
		}
		if gr.Envelope() != gs.Envelope {
			gr.Resize(gs.Envelope)
		}
	}

	return d, nil
}

// clonePanel deep-copies a panel so snapshots do not alias live slices.
func clonePanel(p *panel.Panel) panel.Panel {
	out := *p
	out.Columns = slices.Clone(p.Columns)
	out.Style = p.Style.Clone()
	return out
}
