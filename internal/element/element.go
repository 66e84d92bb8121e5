package element

import (
	"fmt"

	"github.com/ironsheep/inkboard-mcp/internal/geometry"
)

// Type tags an element variant.
type Type string

const (
	TypeLine      Type = "line"
	TypeRectangle Type = "rectangle"
	TypePencil    Type = "pencil"
	TypeText      Type = "text"
	TypeCapture   Type = "capture"
)

// Valid reports whether t is one of the known element variants.
func (t Type) Valid() bool {
	switch t {
	case TypeLine, TypeRectangle, TypePencil, TypeText, TypeCapture:
		return true
	}
	return false
}

// UnrecognizedTypeError is returned wherever an element type tag is
// dispatched and the tag is not a known variant. It aborts the current
// operation only.
type UnrecognizedTypeError struct {
	Type Type
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized element type: %q", string(e.Type))
}

// PencilPoint is one vertex of a pencil stroke. Erased points keep their
// slot so that indices stay stable while the stroke is being edited.
type PencilPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsErased bool    `json:"isErased"`
}

// Element is a single drawable object.
//
// Line, rectangle and capture use the two corners X1,Y1 and X2,Y2, which are
// not ordered while a drag is in progress. Pencil uses Points and Size. Text
// uses X1,Y1 as its anchor and X2,Y2 as the measured extent.
type Element struct {
	ID     int           `json:"id"`
	Type   Type          `json:"type"`
	X1     float64       `json:"x1"`
	Y1     float64       `json:"y1"`
	X2     float64       `json:"x2"`
	Y2     float64       `json:"y2"`
	Points []PencilPoint `json:"points,omitempty"`
	Size   float64       `json:"size,omitempty"`
	Text   string        `json:"text,omitempty"`
}

// Create builds a new element of the given type. Pencil strokes start with a
// single point at (x1, y1) and a stroke width of penSize.
func Create(id int, x1, y1, x2, y2 float64, typ Type, penSize float64) (Element, error) {
	switch typ {
	case TypeLine, TypeRectangle, TypeCapture, TypeText:
		return Element{ID: id, Type: typ, X1: x1, Y1: y1, X2: x2, Y2: y2}, nil
	case TypePencil:
		return Element{
			ID:     id,
			Type:   typ,
			Points: []PencilPoint{{X: x1, Y: y1}},
			Size:   penSize,
		}, nil
	default:
		return Element{}, &UnrecognizedTypeError{Type: typ}
	}
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	if e.Points != nil {
		pts := make([]PencilPoint, len(e.Points))
		copy(pts, e.Points)
		e.Points = pts
	}
	return e
}

// Bounds returns the normalized box covered by e. Pencil bounds span the
// un-erased points grown by half the stroke width; a pencil with no visible
// points reports ok=false.
func (e Element) Bounds() (b geometry.Bounds, ok bool, err error) {
	switch e.Type {
	case TypeLine, TypeRectangle, TypeCapture, TypeText:
		return geometry.NewBounds(e.X1, e.Y1, e.X2, e.Y2), true, nil
	case TypePencil:
		first := true
		for _, p := range e.Points {
			if p.IsErased {
				continue
			}
			pb := geometry.Bounds{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
			if first {
				b = pb
				first = false
			} else {
				b = b.Union(pb)
			}
		}
		if first {
			return geometry.Bounds{}, false, nil
		}
		return b.Inflate(e.Size / 2), true, nil
	default:
		return geometry.Bounds{}, false, &UnrecognizedTypeError{Type: e.Type}
	}
}

// VisiblePoints counts pencil points that have not been erased.
func (e Element) VisiblePoints() int {
	n := 0
	for _, p := range e.Points {
		if !p.IsErased {
			n++
		}
	}
	return n
}
