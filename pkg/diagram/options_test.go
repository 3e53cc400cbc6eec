package diagram

import (
	"math"
	"testing"

	"github.com/stratlab/strata/pkg/classify"
	"github.com/stratlab/strata/pkg/errors"
	"github.com/stratlab/strata/pkg/geom"
	"github.com/stratlab/strata/pkg/group"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Zero options should pass: %v", err)
	}

	if opts.Rect != DefaultRect {
		t.Errorf("Rect should be %v, got %v", DefaultRect, opts.Rect)
	}
	if opts.Frame != DefaultFrame {
		t.Errorf("Frame should be %v, got %v", DefaultFrame, opts.Frame)
	}
	if opts.TruncHeight != DefaultTruncHeight {
		t.Errorf("TruncHeight should be %g, got %g", DefaultTruncHeight, opts.TruncHeight)
	}
	if opts.BarAngle != DefaultBarAngle {
		t.Errorf("BarAngle should be %g, got %g", DefaultBarAngle, opts.BarAngle)
	}
	if opts.Threshold != DefaultThreshold {
		t.Errorf("Threshold should be %g, got %g", DefaultThreshold, opts.Threshold)
	}
	if opts.MinPercentage != DefaultMinPercentage {
		t.Errorf("MinPercentage should be %g, got %g", DefaultMinPercentage, opts.MinPercentage)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Rect:        geom.Rect{X0: 0.1, Y0: 0.1, W: 0.8, H: 0.8},
		TruncHeight: 0.2,
		Threshold:   5,
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalRect := opts.Rect
	originalTrunc := opts.TruncHeight
	originalThreshold := opts.Threshold
	originalAngle := opts.BarAngle

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Rect != originalRect {
		t.Error("Rect changed on second call")
	}
	if opts.TruncHeight != originalTrunc {
		t.Error("TruncHeight changed on second call")
	}
	if opts.Threshold != originalThreshold {
		t.Error("Threshold changed on second call")
	}
	if opts.BarAngle != originalAngle {
		t.Error("BarAngle changed on second call")
	}
}

func TestOptionsNegativeDisables(t *testing.T) {
	opts := Options{Threshold: -1, MinPercentage: -1, TruncHeight: -0.5}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Negative settings should pass: %v", err)
	}

	// Negative values are kept so the disabled state survives serialization
	if opts.Threshold != -1 {
		t.Errorf("Threshold should stay -1, got %g", opts.Threshold)
	}
	if opts.MinPercentage != -1 {
		t.Errorf("MinPercentage should stay -1, got %g", opts.MinPercentage)
	}
	if opts.TruncHeight != -0.5 {
		t.Errorf("TruncHeight should stay -0.5, got %g", opts.TruncHeight)
	}

	// A disabled bar gap leaves the full rect height to the panels
	if got := opts.panelHeight(); got != opts.Rect.H {
		t.Errorf("panelHeight() = %g, want %g", got, opts.Rect.H)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative rect width", Options{Rect: geom.Rect{W: -1, H: 0.5}}},
		{"zero rect height", Options{Rect: geom.Rect{X0: 0.1, W: 0.8}}},
		{"negative frame", Options{Frame: geom.Frame{W: -800, H: 600}}},
		{"trunc height at 1", Options{TruncHeight: 1}},
		{"trunc height above 1", Options{TruncHeight: 1.5}},
		{"bar angle above 90", Options{BarAngle: 120}},
		{"negative bar angle", Options{BarAngle: -45}},
		{"zero width entry", Options{Widths: map[string]float64{"g": 0}}},
		{"negative width entry", Options{Widths: map[string]float64{"g": -0.5}}},
		{"nan width entry", Options{Widths: map[string]float64{"g": math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("Invalid options should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidOption)
			}
		})
	}
}

func TestOptionsKindFor(t *testing.T) {
	opts := Options{
		AllInOne:    []string{"overlay"},
		Stacked:     []string{"stack", "overlay"},
		Percentages: []string{"pct", "stack", "overlay"},
	}

	tests := []struct {
		group string
		want  group.Kind
	}{
		{"overlay", group.KindAllInOne}, // all_in_one wins over stacked and percentage
		{"stack", group.KindStacked},
		{"pct", group.KindPercentage},
		{"other", group.KindDefault},
		{classify.SummedName, group.KindStacked},
	}

	for _, tt := range tests {
		if got := opts.KindFor(tt.group); got != tt.want {
			t.Errorf("KindFor(%q) = %v, want %v", tt.group, got, tt.want)
		}
	}
}

func TestOptionsWidthFor(t *testing.T) {
	opts := Options{
		Widths:      map[string]float64{"1": 0.6},
		Percentages: []string{"3"},
	}
	groups := []string{"1", "2", "3"}

	// Configured width wins
	if got := opts.WidthFor("1", groups); got != 0.6 {
		t.Errorf("WidthFor(1) = %g, want 0.6", got)
	}

	// Default is an equal split among the groups outside the percentage set
	if got := opts.WidthFor("2", groups); got != 0.5 {
		t.Errorf("WidthFor(2) = %g, want 0.5", got)
	}

	// A percentage group without a configured width gets the same share
	if got := opts.WidthFor("3", groups); got != 0.5 {
		t.Errorf("WidthFor(3) = %g, want 0.5", got)
	}

	// Every group percentage: the split degenerates to the full width
	all := Options{Percentages: []string{"1", "2"}}
	if got := all.WidthFor("1", []string{"1", "2"}); got != 1 {
		t.Errorf("WidthFor with only percentage groups = %g, want 1", got)
	}
}

func TestOptionsBarColumns(t *testing.T) {
	members := []string{"d", "e", "f"}

	// No use_bars configured
	opts := Options{}
	if got := opts.BarColumns("2", members); got != nil {
		t.Errorf("BarColumns without use_bars = %v, want nil", got)
	}

	// The group's own name marks every member
	opts = Options{UseBars: []string{"2"}}
	bars := opts.BarColumns("2", members)
	if len(bars) != len(members) {
		t.Fatalf("BarColumns(2) marked %d members, want %d", len(bars), len(members))
	}

	// A member name marks just that column
	opts = Options{UseBars: []string{"e"}}
	bars = opts.BarColumns("2", members)
	if !bars["e"] || len(bars) != 1 {
		t.Errorf("BarColumns with column entry = %v, want only e", bars)
	}
}
