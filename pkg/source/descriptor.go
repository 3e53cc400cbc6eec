package source

import (
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/stratlab/strata/pkg/classify"
	"github.com/stratlab/strata/pkg/diagram"
	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/group"
)

// Descriptor is the TOML description of a diagram: which columns belong to
// which group, plus the layout options that do not depend on live data.
//
// A minimal descriptor names an index column and some groups:
//
//	title = "Hoya lake pollen"
//	index = "depth"
//
//	[[group]]
//	name = "Trees"
//	kind = "percentage"
//	members = ["Pinus", "Betula", "Quercus"]
//
// Everything else is optional. Kind strings match the group variants:
// default, percentage, all_in_one, stacked. A group's width entry overrides
// the top-level widths table.
type Descriptor struct {
	Title string `toml:"title"`
	Index string `toml:"index"`

	Exclude     []string            `toml:"exclude"`
	Percentages []string            `toml:"percentages"`
	AllInOne    []string            `toml:"all_in_one"`
	Stacked     []string            `toml:"stacked"`
	Summed      []string            `toml:"summed"`
	UseBars     []string            `toml:"use_bars"`
	Widths      map[string]float64  `toml:"widths"`
	Subgroups   map[string][]string `toml:"subgroups"`

	Threshold     float64 `toml:"threshold"`
	MinPercentage float64 `toml:"min_percentage"`
	TruncHeight   float64 `toml:"trunc_height"`
	BarAngle      float64 `toml:"bar_angle"`
	SkipNormalize bool    `toml:"skip_normalize"`

	Groups []GroupSpec `toml:"group"`
}

// GroupSpec assigns member columns to one named group.
type GroupSpec struct {
	Name    string   `toml:"name"`
	Members []string `toml:"members"`
	Kind    string   `toml:"kind"`
	Width   float64  `toml:"width"`
}

// ParseDescriptor decodes and validates a TOML descriptor.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "parsing descriptor")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDescriptor reads and parses a TOML descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return ParseDescriptor(data)
}

func (d *Descriptor) validate() error {
	seen := make(map[string]bool, len(d.Groups))
	owner := make(map[string]string)
	for _, g := range d.Groups {
		if err := errors.ValidateGroupName(g.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "group %q", g.Name)
		}
		if seen[g.Name] {
			return errors.New(errors.ErrCodeInvalidDescriptor, "duplicate group %q", g.Name)
		}
		seen[g.Name] = true

		if g.Kind != "" && !group.ValidKinds[group.Kind(g.Kind)] {
			return errors.New(errors.ErrCodeInvalidDescriptor,
				"group %q: unknown kind %q", g.Name, g.Kind)
		}
		if len(g.Members) == 0 {
			return errors.New(errors.ErrCodeInvalidDescriptor, "group %q has no members", g.Name)
		}
		for _, m := range g.Members {
			if err := errors.ValidateColumnName(m); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "group %q", g.Name)
			}
			if prev, ok := owner[m]; ok {
				return errors.New(errors.ErrCodeInvalidDescriptor,
					"column %q is a member of both %q and %q", m, prev, g.Name)
			}
			owner[m] = g.Name
		}
	}
	return nil
}

// ClassifyFunc derives the classification function: member columns map to
// their group, everything else falls through to [classify.NoGroup].
func (d *Descriptor) ClassifyFunc() classify.Func {
	assign := make(map[string]string)
	for _, g := range d.Groups {
		for _, m := range g.Members {
			assign[m] = g.Name
		}
	}
	return func(column string) string {
		if g, ok := assign[column]; ok {
			return g
		}
		return classify.NoGroup
	}
}

// Options projects the descriptor onto layout options. Group kinds fold
// into the variant lists without duplication; zero-valued fields are left
// for option validation to default.
func (d *Descriptor) Options() diagram.Options {
	opts := diagram.Options{
		TruncHeight:   d.TruncHeight,
		BarAngle:      d.BarAngle,
		Widths:        maps.Clone(d.Widths),
		AllInOne:      slices.Clone(d.AllInOne),
		Stacked:       slices.Clone(d.Stacked),
		Summed:        slices.Clone(d.Summed),
		Exclude:       slices.Clone(d.Exclude),
		Subgroups:     cloneSubgroups(d.Subgroups),
		Percentages:   slices.Clone(d.Percentages),
		SkipNormalize: d.SkipNormalize,
		Threshold:     d.Threshold,
		MinPercentage: d.MinPercentage,
		UseBars:       slices.Clone(d.UseBars),
	}

	for _, g := range d.Groups {
		switch group.Kind(g.Kind) {
		case group.KindPercentage:
			opts.Percentages = appendUnique(opts.Percentages, g.Name)
		case group.KindAllInOne:
			opts.AllInOne = appendUnique(opts.AllInOne, g.Name)
		case group.KindStacked:
			opts.Stacked = appendUnique(opts.Stacked, g.Name)
		}
		if g.Width > 0 {
			if opts.Widths == nil {
				opts.Widths = make(map[string]float64, len(d.Groups))
			}
			opts.Widths[g.Name] = g.Width
		}
	}

	return opts
}

func appendUnique(list []string, name string) []string {
	if slices.Contains(list, name) {
		return list
	}
	return append(list, name)
}

func cloneSubgroups(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
