package imaging

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func decodeResult(t *testing.T, encoded string) image.Image {
	t.Helper()
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name          string
		rect          image.Rectangle
		scale         float64
		width, height int
	}{
		{"quarter", image.Rect(0, 0, 50, 50), 1.0, 50, 50},
		{"full image", image.Rect(0, 0, 100, 100), 1.0, 100, 100},
		{"scaled up", image.Rect(10, 10, 30, 40), 2.0, 40, 60},
		{"scaled down", image.Rect(0, 0, 100, 100), 0.5, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, tt.rect, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if result.Width != tt.width || result.Height != tt.height {
				t.Errorf("size: got %dx%d, want %dx%d", result.Width, result.Height, tt.width, tt.height)
			}
			if result.X != tt.rect.Min.X || result.Y != tt.rect.Min.Y {
				t.Errorf("origin: got (%d,%d), want %v", result.X, result.Y, tt.rect.Min)
			}
			if result.MimeType != "image/png" {
				t.Errorf("MimeType: got %s, want image/png", result.MimeType)
			}
		})
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"outside right", image.Rect(50, 50, 150, 90)},
		{"negative origin", image.Rect(-10, 0, 20, 20)},
		{"empty", image.Rect(30, 30, 30, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.rect, 1.0); err == nil {
				t.Errorf("Crop(%v) should fail", tt.rect)
			}
		})
	}
}

func TestCrop_ScaleTooLarge(t *testing.T) {
	img := createPatternImage(100, 100)
	if _, err := Crop(img, image.Rect(0, 0, 100, 100), 1e4); !errors.Is(err, ErrRasterTooLarge) {
		t.Errorf("Crop at 1e4x: got %v, want ErrRasterTooLarge", err)
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	// Top-right quadrant is green
	result, err := Crop(img, image.Rect(50, 0, 100, 50), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	cropped := decodeResult(t, result.ImageBase64)
	r, g, b, _ := cropped.At(25, 25).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	if r8 != 0 || g8 != 255 || b8 != 0 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (0,255,0)", r8, g8, b8)
	}
}

func TestCrop_OffsetOrigin(t *testing.T) {
	// A rendering positioned in document space.
	img := image.NewRGBA(image.Rect(200, 300, 260, 340))
	img.Set(210, 310, color.RGBA{255, 0, 0, 255})

	result, err := Crop(img, image.Rect(205, 305, 215, 315), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.X != 205 || result.Y != 305 {
		t.Errorf("origin: got (%d,%d), want (205,305)", result.X, result.Y)
	}

	cropped := decodeResult(t, result.ImageBase64)
	r, _, _, _ := cropped.At(5, 5).RGBA()
	if r>>8 != 255 {
		t.Errorf("expected red pixel at crop (5,5), got r=%d", r>>8)
	}
}

func TestRegionRect(t *testing.T) {
	within := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name    string
		bounds  detection.Bounds
		padding int
		want    image.Rectangle
	}{
		{"inclusive corners", detection.Bounds{X1: 10, Y1: 20, X2: 19, Y2: 29}, 0, image.Rect(10, 20, 20, 30)},
		{"padded", detection.Bounds{X1: 10, Y1: 20, X2: 19, Y2: 29}, 5, image.Rect(5, 15, 25, 35)},
		{"clipped", detection.Bounds{X1: 2, Y1: 90, X2: 40, Y2: 99}, 8, image.Rect(0, 82, 48, 100)},
		{"disjoint", detection.Bounds{X1: 200, Y1: 200, X2: 210, Y2: 210}, 0, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegionRect(tt.bounds, tt.padding, within)
			if !got.Eq(tt.want) {
				t.Errorf("RegionRect: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropRegion(img, detection.Bounds{X1: 60, Y1: 60, X2: 79, Y2: 79}, 4, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	if result.Width != 28 || result.Height != 28 {
		t.Errorf("size: got %dx%d, want 28x28", result.Width, result.Height)
	}
	if result.X != 56 || result.Y != 56 {
		t.Errorf("origin: got (%d,%d), want (56,56)", result.X, result.Y)
	}

	if _, err := CropRegion(img, detection.Bounds{X1: 500, Y1: 500, X2: 510, Y2: 510}, 0, 1.0); err == nil {
		t.Error("CropRegion should fail for a region outside the image")
	}
}
