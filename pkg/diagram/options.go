package diagram

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/stratlab/strata/pkg/classify"
	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/group"
	"github.com/stratlab/strata/pkg/style"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultThreshold drops percentage columns whose maximum never exceeds
	// 1 on the 0-100 scale.
	DefaultThreshold = 1.0

	// DefaultMinPercentage is the floor a percentage panel's axis is widened
	// to, so thin columns stay readable.
	DefaultMinPercentage = 20.0

	// DefaultTruncHeight is the fraction of the diagram rect reserved above
	// the panels for group bars.
	DefaultTruncHeight = 0.3

	// DefaultBarAngle is the slant of group-bar bracket arms, in degrees
	// from the horizontal.
	DefaultBarAngle = 45.0

	// DefaultFrameWidth and DefaultFrameHeight are the canvas pixel
	// dimensions assumed until a renderer reports its real size.
	DefaultFrameWidth  = 800.0
	DefaultFrameHeight = 600.0
)

// DefaultRect is the diagram rectangle used when none is configured. It
// matches the conventional margins of a single-plot figure.
var DefaultRect = geom.Rect{X0: 0.125, Y0: 0.11, W: 0.775, H: 0.77}

// DefaultFrame is the pixel frame used when none is configured.
var DefaultFrame = geom.Frame{W: DefaultFrameWidth, H: DefaultFrameHeight}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures diagram layout. The zero value is valid and lays out
// every column in the catch-all group with default geometry.
type Options struct {
	// Geometry
	Rect        geom.Rect  `json:"rect"`                   // diagram rectangle in figure fraction
	Frame       geom.Frame `json:"frame"`                  // canvas size in pixels
	TruncHeight float64    `json:"trunc_height,omitempty"` // fraction reserved for group bars; negative disables
	BarAngle    float64    `json:"bar_angle,omitempty"`    // bracket arm slant in degrees, (0, 90]

	// Grouping
	Widths    map[string]float64  `json:"widths,omitempty"`     // width fraction per group
	AllInOne  []string            `json:"all_in_one,omitempty"` // groups overlaid in one panel
	Stacked   []string            `json:"stacked,omitempty"`    // groups stacked in one panel
	Summed    []string            `json:"summed,omitempty"`     // groups that get a derived row-sum column
	Exclude   []string            `json:"exclude,omitempty"`    // columns, subgroups or groups left out of the plot
	Subgroups map[string][]string `json:"subgroups,omitempty"`  // parent group -> subgroup keys folded into it

	// Percentage handling
	Percentages    []string `json:"percentages,omitempty"`     // groups normalized to row percentages
	PercentageBase []string `json:"percentage_base,omitempty"` // denominator columns/groups, defaults to each group's members
	SkipNormalize  bool     `json:"skip_normalize,omitempty"`  // treat input as already normalized
	Threshold      float64  `json:"threshold,omitempty"`       // max-value drop threshold; negative disables
	MinPercentage  float64  `json:"min_percentage,omitempty"`  // axis floor for percentage panels; negative disables

	// Encoding
	UseBars []string                    `json:"use_bars,omitempty"` // groups or columns drawn as bars
	Styles  map[string]style.Directives `json:"styles,omitempty"`   // per-group style overrides

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Internal validation state
	validated bool
}

// ValidateAndSetDefaults validates the options and fills in defaults.
// It is idempotent and safe to call multiple times.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Rect == (geom.Rect{}) {
		o.Rect = DefaultRect
	}
	if o.Rect.W <= 0 || o.Rect.H <= 0 {
		return errors.New(errors.ErrCodeInvalidOption,
			"rect %gx%g must have positive width and height", o.Rect.W, o.Rect.H)
	}

	if o.Frame == (geom.Frame{}) {
		o.Frame = DefaultFrame
	}
	if o.Frame.W < 0 || o.Frame.H < 0 {
		return errors.New(errors.ErrCodeInvalidOption,
			"frame %gx%g must not be negative", o.Frame.W, o.Frame.H)
	}

	// A negative trunc height is kept as-is: it marks the bar gap disabled
	// and survives serialization, unlike a normalized zero.
	if o.TruncHeight == 0 {
		o.TruncHeight = DefaultTruncHeight
	}
	if o.TruncHeight >= 1 {
		return errors.New(errors.ErrCodeInvalidOption,
			"trunc_height %g leaves no panel height (must be below 1)", o.TruncHeight)
	}

	if o.BarAngle == 0 {
		o.BarAngle = DefaultBarAngle
	}
	if o.BarAngle <= 0 || o.BarAngle > 90 {
		return errors.New(errors.ErrCodeInvalidOption,
			"bar_angle %g must be in (0, 90] degrees", o.BarAngle)
	}

	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MinPercentage == 0 {
		o.MinPercentage = DefaultMinPercentage
	}

	for name, w := range o.Widths {
		if math.IsNaN(w) || w <= 0 {
			return errors.New(errors.ErrCodeInvalidOption,
				"width %g for group %q must be a positive fraction", w, name)
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// KindFor returns the layout variant for a group. Combined variants win over
// percentage membership, and the synthetic sum group is always stacked.
func (o *Options) KindFor(name string) group.Kind {
	switch {
	case slices.Contains(o.AllInOne, name):
		return group.KindAllInOne
	case name == classify.SummedName || slices.Contains(o.Stacked, name):
		return group.KindStacked
	case slices.Contains(o.Percentages, name):
		return group.KindPercentage
	default:
		return group.KindDefault
	}
}

// WidthFor returns the group's share of the diagram width: the configured
// fraction when present, otherwise an equal split among the groups outside
// the percentage set. Percentage groups are expected to carry configured
// widths; without one they fall back to the same equal share.
func (o *Options) WidthFor(name string, groups []string) float64 {
	if w, ok := o.Widths[name]; ok {
		return w
	}
	n := 0
	for _, g := range groups {
		if !slices.Contains(o.Percentages, g) {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return 1 / float64(n)
}

// BarColumns resolves the use_bars list against one group: the group's own
// name marks every member, a member name marks just that column.
func (o *Options) BarColumns(name string, members []string) map[string]bool {
	if len(o.UseBars) == 0 {
		return nil
	}
	bars := make(map[string]bool)
	all := slices.Contains(o.UseBars, name)
	for _, m := range members {
		if all || slices.Contains(o.UseBars, m) {
			bars[m] = true
		}
	}
	return bars
}

// classifyOptions projects the option set onto the classifier.
func (o *Options) classifyOptions() classify.Options {
	return classify.Options{
		Subgroups:      o.Subgroups,
		Exclude:        o.Exclude,
		Percentages:    o.Percentages,
		PercentageBase: o.PercentageBase,
		SkipNormalize:  o.SkipNormalize,
		Threshold:      o.Threshold,
		Summed:         o.Summed,
	}
}

// truncHeight returns the effective bar-gap fraction, treating a negative
// setting as disabled.
func (o *Options) truncHeight() float64 {
	if o.TruncHeight < 0 {
		return 0
	}
	return o.TruncHeight
}

// panelHeight returns the vertical extent left for panels after the
// group-bar gap is carved off the top of the rect.
func (o *Options) panelHeight() float64 {
	return o.Rect.H * (1 - o.truncHeight())
}
