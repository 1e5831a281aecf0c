// Package graphics provides the plain geometry value types shared by layout
// and window placement.
package graphics

import (
	"fmt"
	"math"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Point represents a 2D position in logical points.
type Point struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in logical points.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool {
	return floatEqual(s.Width, 0) || floatEqual(s.Height, 0)
}

// Rect represents a rectangle by its origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// RectFromXYWH constructs a Rect from x, y, width, height values.
func RectFromXYWH(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// MinX returns the leading edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxX returns the trailing edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: r.Origin.X + r.Size.Width*0.5,
		Y: r.Origin.Y + r.Size.Height*0.5,
	}
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Origin: Point{X: r.Origin.X + dx, Y: r.Origin.Y + dy}, Size: r.Size}
}

// Inset returns the rect shrunk by the given insets.
func (r Rect) Inset(in EdgeInsets) Rect {
	return RectFromXYWH(
		r.Origin.X+in.Leading,
		r.Origin.Y+in.Top,
		math.Max(0, r.Size.Width-in.Horizontal()),
		math.Max(0, r.Size.Height-in.Vertical()),
	)
}

// Equal compares two rects within floating point tolerance.
func (r Rect) Equal(other Rect) bool {
	return floatEqual(r.Origin.X, other.Origin.X) &&
		floatEqual(r.Origin.Y, other.Origin.Y) &&
		floatEqual(r.Size.Width, other.Size.Width) &&
		floatEqual(r.Size.Height, other.Size.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f×%.1f)", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Edge identifies one side of a rectangle.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeading
	EdgeBottom
	EdgeTrailing
)

// String returns a human-readable representation of the edge.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeading:
		return "leading"
	case EdgeBottom:
		return "bottom"
	case EdgeTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// EdgeInsets holds a distance for each edge.
type EdgeInsets struct {
	Top      float64
	Leading  float64
	Bottom   float64
	Trailing float64
}

// EdgeInsetsAll returns insets with the same value on every edge.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Leading: v, Bottom: v, Trailing: v}
}

// Horizontal returns the combined leading and trailing inset.
func (e EdgeInsets) Horizontal() float64 { return e.Leading + e.Trailing }

// Vertical returns the combined top and bottom inset.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// Get returns the inset for a single edge.
func (e EdgeInsets) Get(edge Edge) float64 {
	switch edge {
	case EdgeTop:
		return e.Top
	case EdgeLeading:
		return e.Leading
	case EdgeBottom:
		return e.Bottom
	default:
		return e.Trailing
	}
}

// Axis represents a layout direction.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

// Alignment positions a child inside a larger box. X and Y range from -1
// (leading/top) to 1 (trailing/bottom); 0 centers.
type Alignment struct {
	X float64
	Y float64
}

var (
	AlignmentTopLeading     = Alignment{X: -1, Y: -1}
	AlignmentTop            = Alignment{X: 0, Y: -1}
	AlignmentTopTrailing    = Alignment{X: 1, Y: -1}
	AlignmentLeading        = Alignment{X: -1, Y: 0}
	AlignmentCenter         = Alignment{X: 0, Y: 0}
	AlignmentTrailing       = Alignment{X: 1, Y: 0}
	AlignmentBottomLeading  = Alignment{X: -1, Y: 1}
	AlignmentBottom         = Alignment{X: 0, Y: 1}
	AlignmentBottomTrailing = Alignment{X: 1, Y: 1}
)

// Along returns the alignment component for an axis.
func (a Alignment) Along(axis Axis) float64 {
	if axis == AxisHorizontal {
		return a.X
	}
	return a.Y
}

// Offset returns where a box of size inner lands inside outer.
func (a Alignment) Offset(outer, inner Size) Point {
	return Point{
		X: (outer.Width - inner.Width) * (a.X + 1) / 2,
		Y: (outer.Height - inner.Height) * (a.Y + 1) / 2,
	}
}

// ContentMode controls how content with a fixed aspect ratio fills a box.
type ContentMode int

const (
	// ContentModeFit scales content to fit entirely inside the box.
	ContentModeFit ContentMode = iota
	// ContentModeFill scales content to cover the box, clipping overflow.
	ContentModeFill
)

// String returns a human-readable representation of the content mode.
func (m ContentMode) String() string {
	switch m {
	case ContentModeFit:
		return "fit"
	case ContentModeFill:
		return "fill"
	default:
		return fmt.Sprintf("ContentMode(%d)", int(m))
	}
}
