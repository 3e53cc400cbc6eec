// Package scale provides horizontal axis ranges and the shared vertical
// scale bookkeeping that keeps sibling panels co-scaled.
//
// Ranges are plain numeric intervals; "nice" upper limits are derived from
// tick spacing so percentage panels end on round values. Shared-scale
// membership is tracked per group in a [Set] whose first member is the
// anchor panel.
package scale

import (
	"math"

	moremath "github.com/aclements/go-moremath/scale"
)

// DefaultTickCount bounds the number of major ticks used to derive a
// rounded axis limit.
const DefaultTickCount = 5

const eps = 1e-9

// Range is a closed numeric interval on a panel's horizontal axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns the width of the range.
func (r Range) Span() float64 { return r.Max - r.Min }

// ClampFloor raises the range's upper limit to floor when it falls below
// it, reporting whether the range changed. An oversized range is never
// reduced; a floor <= 0 disables clamping.
func (r Range) ClampFloor(floor float64) (Range, bool) {
	if floor <= 0 || r.Max >= floor {
		return r, false
	}
	return Range{Min: r.Min, Max: floor}, true
}

// Rounded returns the range [0, top] where top is the smallest multiple of
// the nice tick spacing for [0, max] that is >= max. Non-positive or NaN
// input yields the zero range.
func Rounded(max float64) Range {
	if math.IsNaN(max) || max <= 0 {
		return Range{}
	}

	ls := moremath.Linear{Min: 0, Max: max}
	major, _ := ls.Ticks(moremath.TickOptions{Max: DefaultTickCount})
	if len(major) < 2 {
		return Range{Min: 0, Max: max}
	}

	// A max already sitting on a tick keeps its value instead of taking
	// one more step.
	spacing := major[1] - major[0]
	top := math.Ceil(max/spacing-eps) * spacing
	if top < max {
		top += spacing
	}
	return Range{Min: 0, Max: top}
}

// PercentTicks returns the default tick positions for a percentage axis.
func PercentTicks() []float64 {
	return []float64{10, 30, 50, 70, 90}
}
