package element

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned when an update command does not apply to the
// element variant it targets.
var ErrTypeMismatch = errors.New("update does not apply to element type")

// Update is a typed mutation of a single element. The set of variants is
// closed: SetBounds, SetPoints, AppendPoint, SetText and ErasePoints.
type Update interface {
	apply(el *Element) error
}

// SetBounds replaces the corners of a line, rectangle, capture or text.
type SetBounds struct {
	X1, Y1, X2, Y2 float64
}

func (u SetBounds) apply(el *Element) error {
	switch el.Type {
	case TypeLine, TypeRectangle, TypeCapture, TypeText:
		el.X1, el.Y1, el.X2, el.Y2 = u.X1, u.Y1, u.X2, u.Y2
		return nil
	}
	return mismatch(u, el.Type)
}

// SetPoints replaces every point of a pencil stroke.
type SetPoints struct {
	Points []PencilPoint
}

func (u SetPoints) apply(el *Element) error {
	if el.Type != TypePencil {
		return mismatch(u, el.Type)
	}
	el.Points = append([]PencilPoint(nil), u.Points...)
	return nil
}

// AppendPoint extends a pencil stroke.
type AppendPoint struct {
	X, Y float64
}

func (u AppendPoint) apply(el *Element) error {
	if el.Type != TypePencil {
		return mismatch(u, el.Type)
	}
	el.Points = append(el.Points, PencilPoint{X: u.X, Y: u.Y})
	return nil
}

// SetText sets the text of a text element along with its measured extent.
type SetText struct {
	Text          string
	Width, Height float64
}

func (u SetText) apply(el *Element) error {
	if el.Type != TypeText {
		return mismatch(u, el.Type)
	}
	el.Text = u.Text
	el.X2 = el.X1 + u.Width
	el.Y2 = el.Y1 + u.Height
	return nil
}

// ErasePoints marks pencil points as erased without removing their slots.
type ErasePoints struct {
	Indices []int
}

func (u ErasePoints) apply(el *Element) error {
	if el.Type != TypePencil {
		return mismatch(u, el.Type)
	}
	for _, i := range u.Indices {
		if i < 0 || i >= len(el.Points) {
			return fmt.Errorf("erase index %d out of range [0,%d)", i, len(el.Points))
		}
		el.Points[i].IsErased = true
	}
	return nil
}

// Apply returns a copy of el with u applied. el itself is not modified.
func Apply(el Element, u Update) (Element, error) {
	if !el.Type.Valid() {
		return el, &UnrecognizedTypeError{Type: el.Type}
	}
	out := el.Clone()
	if err := u.apply(&out); err != nil {
		return el, err
	}
	return out, nil
}

func mismatch(u Update, t Type) error {
	return fmt.Errorf("%w: %T on %s", ErrTypeMismatch, u, t)
}
