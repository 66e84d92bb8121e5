package element

// Coords is the corner pair of a bounded element.
type Coords struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// CoordsOf returns the corner pair of el.
func CoordsOf(el Element) Coords {
	return Coords{X1: el.X1, Y1: el.Y1, X2: el.X2, Y2: el.Y2}
}

// ResizedCoordinates moves the corner(s) owned by handle position to (x, y).
// An unknown handle returns ok=false and the caller must leave the element
// untouched.
func ResizedCoordinates(x, y float64, position Position, c Coords) (Coords, bool) {
	switch position {
	case PositionTopLeft, PositionStart:
		return Coords{X1: x, Y1: y, X2: c.X2, Y2: c.Y2}, true
	case PositionTopRight:
		return Coords{X1: c.X1, Y1: y, X2: x, Y2: c.Y2}, true
	case PositionBottomLeft:
		return Coords{X1: x, Y1: c.Y1, X2: c.X2, Y2: y}, true
	case PositionBottomRight, PositionEnd:
		return Coords{X1: c.X1, Y1: c.Y1, X2: x, Y2: y}, true
	default:
		return Coords{}, false
	}
}

// AdjustmentRequired reports whether elements of type t are canonicalized
// when an interaction completes.
func AdjustmentRequired(t Type) bool {
	switch t {
	case TypeLine, TypeRectangle, TypeCapture:
		return true
	}
	return false
}

// Canonicalize normalizes corner order. Rectangles and captures get
// X1 <= X2 and Y1 <= Y2. Lines put the endpoint with the smaller X first,
// breaking ties with the smaller Y. Other types are returned unchanged.
// Canonicalize is idempotent.
func Canonicalize(el Element) (Element, error) {
	switch el.Type {
	case TypeRectangle, TypeCapture:
		out := el
		out.X1, out.X2 = min(el.X1, el.X2), max(el.X1, el.X2)
		out.Y1, out.Y2 = min(el.Y1, el.Y2), max(el.Y1, el.Y2)
		return out, nil
	case TypeLine:
		if el.X1 < el.X2 || (el.X1 == el.X2 && el.Y1 <= el.Y2) {
			return el, nil
		}
		out := el
		out.X1, out.Y1, out.X2, out.Y2 = el.X2, el.Y2, el.X1, el.Y1
		return out, nil
	case TypePencil, TypeText:
		return el, nil
	default:
		return el, &UnrecognizedTypeError{Type: el.Type}
	}
}
