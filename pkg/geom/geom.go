// Package geom provides the coordinate primitives shared by the layout
// packages: rectangles in figure-fraction units, pixel frames, and the
// trigonometry helpers used to place group-bar annotations.
//
// Figure-fraction coordinates run from (0,0) at the bottom-left of the
// hosting canvas to (1,1) at the top-right. Pixel quantities only enter
// through a [Frame], supplied by the renderer.
package geom

import "math"

// Eps is the tolerance used for float comparisons across the layout packages.
const Eps = 1e-9

// Rect is a rectangle in figure-fraction coordinates, anchored at its
// bottom-left corner.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// FromExtents builds a Rect from its left, bottom, right and top edges.
func FromExtents(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, W: x1 - x0, H: y1 - y0}
}

// X1 returns the right edge of the rectangle.
func (r Rect) X1() float64 { return r.X0 + r.W }

// Y1 returns the top edge of the rectangle.
func (r Rect) Y1() float64 { return r.Y0 + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X0 + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y0 + r.H/2 }

// Union returns the bounding rectangle of rects. An empty slice yields the
// zero Rect.
func Union(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	x0, y0 := rects[0].X0, rects[0].Y0
	x1, y1 := rects[0].X1(), rects[0].Y1()
	for _, r := range rects[1:] {
		x0 = math.Min(x0, r.X0)
		y0 = math.Min(y0, r.Y0)
		x1 = math.Max(x1, r.X1())
		y1 = math.Max(y1, r.Y1())
	}
	return FromExtents(x0, y0, x1, y1)
}

// Frame holds the pixel dimensions of the hosting canvas. Fraction/pixel
// conversions on a zero-sized frame map everything to 0.
type Frame struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PixelsX converts a horizontal figure fraction to pixels.
func (f Frame) PixelsX(frac float64) float64 { return frac * f.W }

// PixelsY converts a vertical figure fraction to pixels.
func (f Frame) PixelsY(frac float64) float64 { return frac * f.H }

// FracX converts horizontal pixels to a figure fraction.
func (f Frame) FracX(px float64) float64 {
	if f.W <= Eps {
		return 0
	}
	return px / f.W
}

// FracY converts vertical pixels to a figure fraction.
func (f Frame) FracY(px float64) float64 {
	if f.H <= Eps {
		return 0
	}
	return px / f.H
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// ArmLength returns the length in pixels of a bracket arm that climbs
// risePx vertically while leaving its anchor at the given angle from the
// horizontal. The angle must lie in (0, 90].
func ArmLength(risePx, angleDeg float64) float64 {
	return risePx / math.Sin(Radians(angleDeg))
}

// LabelShift returns the horizontal pixel shift applied to a bar label so it
// sits above the bend of slanted bracket arms. A 90 degree connector keeps
// the vertical-rise convention of the slanted case.
func LabelShift(risePx, angleDeg float64) float64 {
	if angleDeg == 90 {
		return risePx
	}
	return risePx * math.Tan(Radians(angleDeg))
}
