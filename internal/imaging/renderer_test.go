package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/inkboard-mcp/internal/element"
)

func newTestRenderer() *Renderer {
	return NewRenderer(color.Black, 4)
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(x, y).A
}

func TestRasterize_Empty(t *testing.T) {
	r := newTestRenderer()

	img, err := r.Rasterize(nil)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if !img.Bounds().Empty() {
		t.Errorf("empty drawing bounds: got %v, want empty", img.Bounds())
	}
}

func TestRasterize_DocumentBounds(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeRectangle, X1: 100, Y1: 200, X2: 150, Y2: 260},
	}

	img, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	// Padding 4 plus stroke width 2 on every side.
	want := image.Rect(94, 194, 157, 267)
	if img.Bounds() != want {
		t.Errorf("bounds: got %v, want %v", img.Bounds(), want)
	}

	if alphaAt(img, 100, 230) == 0 {
		t.Error("left edge of rectangle not drawn")
	}
	if alphaAt(img, 125, 230) != 0 {
		t.Error("rectangle interior should stay transparent")
	}
}

func TestRasterize_Line(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeLine, X1: 10, Y1: 10, X2: 50, Y2: 10},
	}

	img, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if alphaAt(img, 30, 10) == 0 {
		t.Error("pixel under the line should be inked")
	}
	if alphaAt(img, 30, 14) != 0 {
		t.Error("pixel 4px below the line should be transparent")
	}
}

func TestRasterize_SkipsCapture(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeCapture, X1: 0, Y1: 0, X2: 100, Y2: 100},
	}

	img, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if !img.Bounds().Empty() {
		t.Errorf("capture-only drawing should rasterize empty, got %v", img.Bounds())
	}
}

func TestRasterize_ErasedPencilPoints(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{
			ID:   0,
			Type: element.TypePencil,
			Size: 4,
			Points: []element.PencilPoint{
				{X: 10, Y: 10},
				{X: 20, Y: 10, IsErased: true},
				{X: 30, Y: 10},
			},
		},
	}

	img, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	tests := []struct {
		name  string
		x, y  int
		inked bool
	}{
		{"first point", 10, 10, true},
		{"erased point", 20, 10, false},
		{"last point", 30, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alphaAt(img, tt.x, tt.y) > 0
			if got != tt.inked {
				t.Errorf("inked at (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.inked)
			}
		})
	}
}

func TestRasterize_Text(t *testing.T) {
	r := newTestRenderer()
	w, h := MeasureText("Hi")
	elements := []element.Element{
		{ID: 0, Type: element.TypeText, X1: 0, Y1: 0, X2: w, Y2: h, Text: "Hi"},
	}

	img, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	inked := 0
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			if alphaAt(img, x, y) > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("text element drew no pixels")
	}
}

func TestRasterize_Deterministic(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeLine, X1: 3, Y1: 7, X2: 41, Y2: 29},
		{ID: 1, Type: element.TypeRectangle, X1: 20, Y1: 5, X2: 60, Y2: 45},
	}

	a, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	b, err := r.Rasterize(elements)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel data differs at byte %d", i)
		}
	}
}

func TestDraw_UnknownType(t *testing.T) {
	r := newTestRenderer()
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	err := r.Draw(dst, element.Element{Type: "circle"})

	var typeErr *element.UnrecognizedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnrecognizedTypeError, got %v", err)
	}
	if typeErr.Type != "circle" {
		t.Errorf("error type: got %q, want %q", typeErr.Type, "circle")
	}
}

func TestRasterize_UnknownTypeFails(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 7, Type: "circle", X1: 0, Y1: 0, X2: 5, Y2: 5},
	}
	if _, err := r.Rasterize(elements); err == nil {
		t.Error("Rasterize should fail for an unknown element type")
	}
}

func TestFrame_IncludeCapture(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeLine, X1: 10, Y1: 10, X2: 20, Y2: 20},
		{ID: 1, Type: element.TypeCapture, X1: 100, Y1: 100, X2: 200, Y2: 200},
	}

	without, err := r.Frame(elements, false)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	with, err := r.Frame(elements, true)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if without.Max.X >= 100 {
		t.Errorf("capture should not widen frame: %v", without)
	}
	if with.Max.X <= 200 {
		t.Errorf("capture should widen frame: %v", with)
	}
}

func TestRasterize_TooLarge(t *testing.T) {
	tests := []struct {
		name     string
		el       element.Element
		maxPixel int
	}{
		{"huge rectangle", element.Element{Type: element.TypeRectangle, X1: 0, Y1: 0, X2: 1e10, Y2: 1e10}, 0},
		{"wide line", element.Element{Type: element.TypeLine, X1: 0, Y1: 0, X2: 1e5, Y2: 1e5}, 0},
		{"far away", element.Element{Type: element.TypeLine, X1: 1e20, Y1: 0, X2: 1e20 + 5, Y2: 0}, 0},
		{"over custom limit", element.Element{Type: element.TypeRectangle, X1: 0, Y1: 0, X2: 100, Y2: 100}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer()
			r.MaxPixels = tt.maxPixel

			if _, err := r.Rasterize([]element.Element{tt.el}); !errors.Is(err, ErrRasterTooLarge) {
				t.Errorf("Rasterize: got %v, want ErrRasterTooLarge", err)
			}
			if _, err := r.Render([]element.Element{tt.el}, false); !errors.Is(err, ErrRasterTooLarge) {
				t.Errorf("Render: got %v, want ErrRasterTooLarge", err)
			}
			if _, err := r.RenderOverlay([]element.Element{tt.el}, nil, OverlayOptions{}); !errors.Is(err, ErrRasterTooLarge) {
				t.Errorf("RenderOverlay: got %v, want ErrRasterTooLarge", err)
			}
		})
	}
}

func TestRasterize_WithinLimit(t *testing.T) {
	r := newTestRenderer()
	// 10x10 rectangle plus 6 pixels on each side is 23x23 = 529 pixels.
	r.MaxPixels = 529
	elements := []element.Element{
		{Type: element.TypeRectangle, X1: 0, Y1: 0, X2: 10, Y2: 10},
	}
	if _, err := r.Rasterize(elements); err != nil {
		t.Fatalf("Rasterize at the limit failed: %v", err)
	}

	r.MaxPixels = 528
	if _, err := r.Rasterize(elements); !errors.Is(err, ErrRasterTooLarge) {
		t.Errorf("one pixel over: got %v, want ErrRasterTooLarge", err)
	}
}
