package geometry

import "math"

// Bounds is an axis-aligned box. X1,Y1 is the top-left corner and X2,Y2 the
// bottom-right corner; a normalized Bounds always has X1 <= X2 and Y1 <= Y2.
type Bounds struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NewBounds returns the normalized box spanning two arbitrary corners.
func NewBounds(x1, y1, x2, y2 float64) Bounds {
	return Bounds{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Y2 - b.Y1 }

// Contains reports whether (x, y) lies inside b, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Intersects reports whether b and other overlap on both axes.
func (b Bounds) Intersects(other Bounds) bool {
	return b.X1 <= other.X2 && other.X1 <= b.X2 &&
		b.Y1 <= other.Y2 && other.Y1 <= b.Y2
}

// Inflate grows the box by d on every side.
func (b Bounds) Inflate(d float64) Bounds {
	return Bounds{X1: b.X1 - d, Y1: b.Y1 - d, X2: b.X2 + d, Y2: b.Y2 + d}
}

// GapDistance approximates the distance between two boxes from their axis
// gaps. Boxes that overlap on both axes are 0 apart; otherwise the result is
// the hypotenuse of the horizontal and vertical gaps, where an axis on which
// the boxes overlap contributes 0.
func GapDistance(a, b Bounds) float64 {
	dx := math.Max(0, math.Max(a.X1-b.X2, b.X1-a.X2))
	dy := math.Max(0, math.Max(a.Y1-b.Y2, b.Y1-a.Y2))
	return math.Hypot(dx, dy)
}
