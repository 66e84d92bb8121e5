package element

import (
	"errors"
	"testing"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"line", TypeLine},
		{"rectangle", TypeRectangle},
		{"capture", TypeCapture},
		{"text", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := Create(3, 1, 2, 3, 4, tt.typ, 2)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if el.ID != 3 || el.Type != tt.typ {
				t.Errorf("got id=%d type=%s", el.ID, el.Type)
			}
			if el.X1 != 1 || el.Y1 != 2 || el.X2 != 3 || el.Y2 != 4 {
				t.Errorf("coords: got (%v,%v)-(%v,%v)", el.X1, el.Y1, el.X2, el.Y2)
			}
		})
	}
}

func TestCreate_Pencil(t *testing.T) {
	el, err := Create(0, 5, 6, 5, 6, TypePencil, 4)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(el.Points) != 1 || el.Points[0].X != 5 || el.Points[0].Y != 6 {
		t.Errorf("Points: got %+v", el.Points)
	}
	if el.Size != 4 {
		t.Errorf("Size: got %v, want 4", el.Size)
	}
}

func TestCreate_UnknownType(t *testing.T) {
	_, err := Create(0, 0, 0, 1, 1, Type("ellipse"), 1)

	var typeErr *UnrecognizedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnrecognizedTypeError, got %v", err)
	}
	if typeErr.Type != "ellipse" {
		t.Errorf("Type: got %q, want ellipse", typeErr.Type)
	}
}

func TestClone_DeepCopiesPoints(t *testing.T) {
	el, _ := Create(0, 1, 1, 1, 1, TypePencil, 2)
	c := el.Clone()
	c.Points[0].X = 99

	if el.Points[0].X != 1 {
		t.Error("Clone shares the point slice with the original")
	}
}

func TestBounds_Pencil(t *testing.T) {
	el := Element{
		Type: TypePencil,
		Size: 4,
		Points: []PencilPoint{
			{X: 10, Y: 10},
			{X: 50, Y: 20},
			{X: 500, Y: 500, IsErased: true},
		},
	}

	b, ok, err := el.Bounds()
	if err != nil || !ok {
		t.Fatalf("Bounds: ok=%v err=%v", ok, err)
	}
	if b.X1 != 8 || b.Y1 != 8 || b.X2 != 52 || b.Y2 != 22 {
		t.Errorf("Bounds: got %+v", b)
	}

	for i := range el.Points {
		el.Points[i].IsErased = true
	}
	if _, ok, _ := el.Bounds(); ok {
		t.Error("fully erased pencil should have no bounds")
	}
}
