package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/element"
)

func TestRender_WhiteBackground(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeLine, X1: 20, Y1: 20, X2: 60, Y2: 20},
	}

	img, err := r.Render(elements, false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bg := img.RGBAAt(img.Bounds().Min.X, img.Bounds().Min.Y)
	if bg != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background: got %v, want white", bg)
	}
	ink := img.RGBAAt(40, 20)
	if ink.R > 10 || ink.A != 255 {
		t.Errorf("line pixel: got %v, want black", ink)
	}
}

func TestRenderOverlay(t *testing.T) {
	r := newTestRenderer()
	elements := []element.Element{
		{ID: 0, Type: element.TypeRectangle, X1: 40, Y1: 40, X2: 80, Y2: 80},
	}
	regions := []detection.Region{
		{ID: 1, Bounds: detection.Bounds{X1: 39, Y1: 39, X2: 81, Y2: 81}},
	}

	result, err := r.RenderOverlay(elements, regions, OverlayOptions{GridSpacing: 20, ShowCoordinates: true})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}

	img := decodeResult(t, result.ImageBase64)
	if img.Bounds().Dx() != result.Width || img.Bounds().Dy() != result.Height {
		t.Errorf("encoded size %v does not match result %dx%d", img.Bounds(), result.Width, result.Height)
	}

	// Region box is drawn two pixels outside the region bounds.
	want := RegionPalette(1)[0]
	got := color.RGBAModel.Convert(img.At(60-result.X, 37-result.Y)).(color.RGBA)
	if got != want {
		t.Errorf("region box pixel: got %v, want %v", got, want)
	}
}

func TestRenderOverlay_EmptyDrawing(t *testing.T) {
	r := newTestRenderer()

	result, err := r.RenderOverlay(nil, nil, OverlayOptions{})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if result.Width != 1 || result.Height != 1 {
		t.Errorf("empty overlay size: got %dx%d, want 1x1", result.Width, result.Height)
	}
}

func TestOverlayImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	regions := []detection.Region{
		{ID: 1, Bounds: detection.Bounds{X1: 10, Y1: 10, X2: 20, Y2: 20}},
		{ID: 2, Bounds: detection.Bounds{X1: 30, Y1: 30, X2: 40, Y2: 40}},
	}

	result, err := OverlayImage(src, regions, OverlayOptions{})
	if err != nil {
		t.Fatalf("OverlayImage failed: %v", err)
	}
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("size: got %dx%d, want 50x50", result.Width, result.Height)
	}

	// The source must not be modified.
	if src.NRGBAAt(8, 15).A != 0 {
		t.Error("OverlayImage drew onto its input")
	}

	if _, err := OverlayImage(image.NewNRGBA(image.Rectangle{}), regions, OverlayOptions{}); err == nil {
		t.Error("OverlayImage should fail for an empty image")
	}
}

func TestRegionPalette(t *testing.T) {
	palette := RegionPalette(8)
	if len(palette) != 8 {
		t.Fatalf("palette length: got %d, want 8", len(palette))
	}

	seen := make(map[color.RGBA]bool)
	for i, c := range palette {
		if c.A != 255 {
			t.Errorf("color %d not opaque: %v", i, c)
		}
		if seen[c] {
			t.Errorf("color %d repeats: %v", i, c)
		}
		seen[c] = true
	}

	if len(RegionPalette(0)) != 0 {
		t.Error("RegionPalette(0) should be empty")
	}
}

func TestParseInkColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}, false},
		{"#1E90FF", color.NRGBA{30, 144, 255, 255}, false},
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, false},
		{"red", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInkColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseInkColor(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInkColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseInkColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDrawLabel_BoundsCheck(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Should not panic when the label runs off the image.
	drawLabel(img, 5, 5, "12345,-67", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
}
