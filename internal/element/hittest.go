package element

import (
	"math"

	"github.com/ironsheep/inkboard-mcp/internal/geometry"
)

// Position names where a point falls on an element: a resize handle, the
// element body, or nothing.
type Position string

const (
	PositionNone        Position = ""
	PositionInside      Position = "inside"
	PositionStart       Position = "start"
	PositionEnd         Position = "end"
	PositionTopLeft     Position = "tl"
	PositionTopRight    Position = "tr"
	PositionBottomLeft  Position = "bl"
	PositionBottomRight Position = "br"
)

// Cursor is a CSS-style cursor tag.
type Cursor string

const (
	CursorMove       Cursor = "move"
	CursorResizeNWSE Cursor = "nwse-resize"
	CursorResizeNESW Cursor = "nesw-resize"
)

// CursorForHandle returns the cursor to show while hovering position.
func CursorForHandle(position Position) Cursor {
	switch position {
	case PositionTopLeft, PositionBottomRight, PositionStart, PositionEnd:
		return CursorResizeNWSE
	case PositionTopRight, PositionBottomLeft:
		return CursorResizeNESW
	default:
		return CursorMove
	}
}

// Tolerances holds the hit-test slack in document units.
type Tolerances struct {
	// Handle is the half-width of the square box around corners and endpoints.
	Handle float64
	// Segment is the slack allowed along a line body.
	Segment float64
	// Stroke is the slack allowed along pencil segments.
	Stroke float64
}

// DefaultTolerances are the unscaled tolerances used at zoom 1.
var DefaultTolerances = Tolerances{
	Handle:  geometry.DefaultNearTolerance,
	Segment: geometry.DefaultSegmentSlack,
	Stroke:  5,
}

// Scaled returns t adjusted for a viewport zoom so that the tolerances stay
// constant in screen pixels.
func (t Tolerances) Scaled(zoom float64) Tolerances {
	if zoom <= 0 || zoom == 1 {
		return t
	}
	return Tolerances{
		Handle:  t.Handle / zoom,
		Segment: t.Segment / zoom,
		Stroke:  t.Stroke / zoom,
	}
}

// PositionWithin reports where (x, y) falls on el.
func PositionWithin(x, y float64, el Element, tol Tolerances) (Position, error) {
	switch el.Type {
	case TypeLine:
		if geometry.IsNearPoint(x, y, el.X1, el.Y1, tol.Handle) {
			return PositionStart, nil
		}
		if geometry.IsNearPoint(x, y, el.X2, el.Y2, tol.Handle) {
			return PositionEnd, nil
		}
		if geometry.IsOnSegment(el.X1, el.Y1, el.X2, el.Y2, x, y, tol.Segment) {
			return PositionInside, nil
		}
		return PositionNone, nil

	case TypeRectangle, TypeCapture:
		switch {
		case geometry.IsNearPoint(x, y, el.X1, el.Y1, tol.Handle):
			return PositionTopLeft, nil
		case geometry.IsNearPoint(x, y, el.X2, el.Y1, tol.Handle):
			return PositionTopRight, nil
		case geometry.IsNearPoint(x, y, el.X1, el.Y2, tol.Handle):
			return PositionBottomLeft, nil
		case geometry.IsNearPoint(x, y, el.X2, el.Y2, tol.Handle):
			return PositionBottomRight, nil
		}
		if geometry.NewBounds(el.X1, el.Y1, el.X2, el.Y2).Contains(x, y) {
			return PositionInside, nil
		}
		return PositionNone, nil

	case TypePencil:
		for i := 0; i+1 < len(el.Points); i++ {
			p, q := el.Points[i], el.Points[i+1]
			if p.IsErased || q.IsErased {
				continue
			}
			if geometry.IsOnSegment(p.X, p.Y, q.X, q.Y, x, y, tol.Stroke) {
				return PositionInside, nil
			}
		}
		// A single-point stroke is a dot.
		if el.VisiblePoints() == 1 {
			for _, p := range el.Points {
				if !p.IsErased && geometry.IsNearPoint(x, y, p.X, p.Y, math.Max(tol.Stroke, el.Size/2)) {
					return PositionInside, nil
				}
			}
		}
		return PositionNone, nil

	case TypeText:
		if geometry.NewBounds(el.X1, el.Y1, el.X2, el.Y2).Contains(x, y) {
			return PositionInside, nil
		}
		return PositionNone, nil

	default:
		return PositionNone, &UnrecognizedTypeError{Type: el.Type}
	}
}

// Hit is the result of a successful LocateAt.
type Hit struct {
	Element  Element  `json:"element"`
	Position Position `json:"position"`
}

// LocateAt returns the first element, in collection order, that (x, y)
// falls on. The earliest-created element wins when several overlap.
func LocateAt(x, y float64, elements []Element, tol Tolerances) (Hit, bool, error) {
	for _, el := range elements {
		pos, err := PositionWithin(x, y, el, tol)
		if err != nil {
			return Hit{}, false, err
		}
		if pos != PositionNone {
			return Hit{Element: el, Position: pos}, true, nil
		}
	}
	return Hit{}, false, nil
}
