package canvas

import (
	"math"

	"github.com/ironsheep/inkboard-mcp/internal/geometry"
)

// Zoom limits.
const (
	MinScale = 0.1
	MaxScale = 20.0
)

// Viewport maps document coordinates onto the screen:
//
//	screen = document*Scale + Offset
type Viewport struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
}

// DefaultViewport shows the document unscaled with its origin at the
// top-left of the screen.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ToDocument converts a screen point into document coordinates.
func (v Viewport) ToDocument(sx, sy float64) geometry.Point {
	s := v.scale()
	return geometry.Point{X: (sx - v.OffsetX) / s, Y: (sy - v.OffsetY) / s}
}

// ToScreen converts a document point into screen coordinates.
func (v Viewport) ToScreen(x, y float64) geometry.Point {
	s := v.scale()
	return geometry.Point{X: x*s + v.OffsetX, Y: y*s + v.OffsetY}
}

// Pan shifts the view by a screen-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAt multiplies the scale by factor while keeping the document point
// under the screen point (sx, sy) fixed. The scale is clamped to
// [MinScale, MaxScale].
func (v Viewport) ZoomAt(factor, sx, sy float64) Viewport {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return v
	}
	anchor := v.ToDocument(sx, sy)
	scale := clampScale(v.scale() * factor)
	return Viewport{
		OffsetX: sx - anchor.X*scale,
		OffsetY: sy - anchor.Y*scale,
		Scale:   scale,
	}
}

// Normalized returns v with its scale clamped into range.
func (v Viewport) Normalized() Viewport {
	v.Scale = clampScale(v.scale())
	return v
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}
