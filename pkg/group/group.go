// Package group implements the layout-owning Grouper variants. A Grouper
// owns the ordered panels of one column group, allocates their geometry
// inside the group's envelope, and keeps visibility, ordering, and
// scale-sharing state consistent across mutations.
package group

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/panel"
	"github.com/stratlab/strata/pkg/scale"
	"github.com/stratlab/strata/pkg/style"
	"github.com/stratlab/strata/pkg/table"
)

var (
	// ErrNilTable is returned by [New] when no table is supplied.
	ErrNilTable = errors.New("group: nil table")

	// ErrNilRegistry is returned by [New] when no panel registry is supplied.
	ErrNilRegistry = errors.New("group: nil registry")

	// ErrNoMembers is returned by [New] when none of the configured member
	// columns exist in the table.
	ErrNoMembers = errors.New("group: no member columns")

	// ErrUnknownKind is returned by [New] for a kind outside [ValidKinds].
	ErrUnknownKind = errors.New("group: unknown kind")
)

// Kind selects the width-allocation algorithm of a group.
type Kind string

const (
	// KindDefault gives every column its own panel at equal widths.
	KindDefault Kind = "default"

	// KindPercentage gives every column its own panel, sized in proportion
	// to the column's horizontal range.
	KindPercentage Kind = "percentage"

	// KindAllInOne overlays all columns in one combined panel.
	KindAllInOne Kind = "all_in_one"

	// KindStacked stacks all columns cumulatively in one combined panel.
	KindStacked Kind = "stacked"
)

// ValidKinds enumerates the accepted group kinds.
var ValidKinds = map[Kind]bool{
	KindDefault:    true,
	KindPercentage: true,
	KindAllInOne:   true,
	KindStacked:    true,
}

// Grouper is the mutation surface of one laid-out group.
//
// Show and Hide report whether they changed anything; unknown names and
// repeated requests are no-ops. Reorder ignores unknown names and keeps
// unmentioned members in their prior relative order, so membership is
// always preserved.
type Grouper interface {
	// Kind reports the group's allocation variant.
	Kind() Kind

	// Name reports the group name.
	Name() string

	// Members lists the member column names in current plot order.
	Members() []string

	// Handles lists the group's panel ids in current plot order.
	Handles() []uuid.UUID

	// Envelope reports the rectangle the group's panels fill.
	Envelope() geom.Rect

	// IsVisible reports whether the named member is currently drawn.
	IsVisible(name string) bool

	// Show makes the named member visible again and reflows the group.
	Show(name string) bool

	// Hide removes the named member from the visible set and reflows.
	Hide(name string) bool

	// Reorder rearranges members into the supplied order.
	Reorder(names []string)

	// Resize moves the group into a new envelope and reflows.
	Resize(envelope geom.Rect)

	// Sharing exposes the group's shared vertical-scale set.
	Sharing() *scale.Set

	// SetReflow installs a callback invoked after every mutation that
	// changed layout state. Nothing is invoked while it is unset, which
	// lets a caller batch construction and flush once.
	SetReflow(fn func())
}

// Config carries everything needed to construct a Grouper.
type Config struct {
	// Name is the group name, used for labels and combined-panel titles.
	Name string

	// Kind selects the allocation variant.
	Kind Kind

	// Members lists the group's column names in classification order.
	// Names missing from the table are skipped.
	Members []string

	// Table supplies the data the panels bind to.
	Table *table.Table

	// Registry owns the created panels.
	Registry *panel.Registry

	// Envelope is the rectangle the group's panels fill, in figure
	// fraction.
	Envelope geom.Rect

	// Bars marks member columns drawn as bars instead of the variant's
	// usual encoding.
	Bars map[string]bool

	// Overrides are caller style directives merged over the variant
	// defaults, caller wins.
	Overrides style.Directives
}

// New constructs the Grouper variant selected by cfg.Kind, creating one
// panel per member column (or a single combined panel) in the registry.
func New(cfg Config) (Grouper, error) {
	if cfg.Table == nil {
		return nil, ErrNilTable
	}
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}
	members := knownMembers(cfg.Table, cfg.Members)
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	cfg.Members = members

	switch cfg.Kind {
	case KindDefault:
		return newDefault(cfg), nil
	case KindPercentage:
		return newPercentage(cfg), nil
	case KindAllInOne, KindStacked:
		return newCombined(cfg), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, cfg.Kind)
	}
}

// knownMembers filters names down to columns present in the table.
func knownMembers(tbl *table.Table, names []string) []string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := tbl.Column(n); ok {
			kept = append(kept, n)
		}
	}
	return kept
}

// plotKind applies the bar override to a variant's usual encoding.
func plotKind(usual style.PlotKind, bar bool) style.PlotKind {
	if bar {
		return style.PlotBar
	}
	return usual
}
