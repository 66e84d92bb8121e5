package element

import (
	"errors"
	"testing"
)

func TestResizedCoordinates(t *testing.T) {
	start := Coords{X1: 10, Y1: 20, X2: 30, Y2: 40}

	tests := []struct {
		name string
		pos  Position
		want Coords
	}{
		{"tl", PositionTopLeft, Coords{X1: 1, Y1: 2, X2: 30, Y2: 40}},
		{"start", PositionStart, Coords{X1: 1, Y1: 2, X2: 30, Y2: 40}},
		{"tr", PositionTopRight, Coords{X1: 10, Y1: 2, X2: 1, Y2: 40}},
		{"bl", PositionBottomLeft, Coords{X1: 1, Y1: 20, X2: 30, Y2: 2}},
		{"br", PositionBottomRight, Coords{X1: 10, Y1: 20, X2: 1, Y2: 2}},
		{"end", PositionEnd, Coords{X1: 10, Y1: 20, X2: 1, Y2: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResizedCoordinates(1, 2, tt.pos, start)
			if !ok {
				t.Fatal("ResizedCoordinates returned ok=false")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizedCoordinates_UnknownHandle(t *testing.T) {
	for _, pos := range []Position{PositionInside, PositionNone, Position("middle")} {
		if _, ok := ResizedCoordinates(1, 2, pos, Coords{}); ok {
			t.Errorf("handle %q should not resize", pos)
		}
	}
}

func TestCanonicalize_Rectangle(t *testing.T) {
	corners := [][4]float64{
		{0, 0, 10, 10},
		{10, 10, 0, 0},
		{10, 0, 0, 10},
		{0, 10, 10, 0},
		{-5, 3, -20, -7},
	}

	for _, c := range corners {
		el := rect(0, c[0], c[1], c[2], c[3])
		once, err := Canonicalize(el)
		if err != nil {
			t.Fatalf("Canonicalize failed: %v", err)
		}
		if once.X1 > once.X2 || once.Y1 > once.Y2 {
			t.Errorf("%v: corners not ordered: %+v", c, once)
		}
		twice, _ := Canonicalize(once)
		if CoordsOf(twice) != CoordsOf(once) {
			t.Errorf("%v: not idempotent: %+v then %+v", c, once, twice)
		}
	}
}

func TestCanonicalize_Line(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
	}{
		{"left to right", 0, 0, 10, 5},
		{"right to left", 10, 5, 0, 0},
	}

	var results []Element
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := Element{Type: TypeLine, X1: tt.x1, Y1: tt.y1, X2: tt.x2, Y2: tt.y2}
			got, err := Canonicalize(el)
			if err != nil {
				t.Fatalf("Canonicalize failed: %v", err)
			}
			if got.X1 != 0 || got.Y1 != 0 || got.X2 != 10 || got.Y2 != 5 {
				t.Errorf("got (%v,%v)-(%v,%v)", got.X1, got.Y1, got.X2, got.Y2)
			}
			again, _ := Canonicalize(got)
			if CoordsOf(again) != CoordsOf(got) {
				t.Errorf("re-canonicalizing changed the line: %+v", again)
			}
			results = append(results, got)
		})
	}
	if len(results) == 2 && CoordsOf(results[0]) != CoordsOf(results[1]) {
		t.Errorf("draw direction changed the result: %+v vs %+v", results[0], results[1])
	}
}

func TestCanonicalize_VerticalLineTieBreak(t *testing.T) {
	el := Element{Type: TypeLine, X1: 5, Y1: 50, X2: 5, Y2: 10}
	got, _ := Canonicalize(el)
	if got.Y1 != 10 || got.Y2 != 50 {
		t.Errorf("vertical line should start at the smaller y: %+v", got)
	}
}

func TestCanonicalize_OtherTypes(t *testing.T) {
	txt := Element{Type: TypeText, X1: 10, Y1: 10, X2: 0, Y2: 0}
	got, err := Canonicalize(txt)
	if err != nil || CoordsOf(got) != CoordsOf(txt) {
		t.Errorf("text should be unchanged: %+v err=%v", got, err)
	}

	_, err = Canonicalize(Element{Type: "arc"})
	var typeErr *UnrecognizedTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected UnrecognizedTypeError, got %v", err)
	}
}

func TestAdjustmentRequired(t *testing.T) {
	want := map[Type]bool{
		TypeLine:      true,
		TypeRectangle: true,
		TypeCapture:   true,
		TypePencil:    false,
		TypeText:      false,
	}
	for typ, w := range want {
		if got := AdjustmentRequired(typ); got != w {
			t.Errorf("AdjustmentRequired(%s): got %v, want %v", typ, got, w)
		}
	}
}
