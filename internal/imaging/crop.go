package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
)

// CropResult contains the cropped image data
type CropResult struct {
	// X and Y are the document coordinates of the crop's top-left pixel.
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from an image. The rectangle is given
// in the image's own coordinates and must lie within its bounds.
func Crop(img image.Image, rect image.Rectangle, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	// Validate coordinates
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	if scale > 0 {
		area := float64(rect.Dx()) * scale * float64(rect.Dy()) * scale
		if !(area <= DefaultMaxPixels) {
			return nil, fmt.Errorf("%w: crop at scale %g", ErrRasterTooLarge, scale)
		}
	}

	cropped := CropImage(img, rect, scale)

	encoded, err := encodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X:           rect.Min.X,
		Y:           rect.Min.Y,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// CropImage cuts rect out of img and optionally rescales it. The result is
// indexed from (0, 0).
func CropImage(img image.Image, rect image.Rectangle, scale float64) *image.NRGBA {
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped
}

// RegionRect returns the pixel rectangle of a region grown by padding and
// clipped to within.
func RegionRect(b detection.Bounds, padding int, within image.Rectangle) image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2+1, b.Y2+1).Inset(-padding).Intersect(within)
}

// CropRegion extracts a detected region, plus padding pixels of margin,
// from a rendering of the drawing.
func CropRegion(img image.Image, b detection.Bounds, padding int, scale float64) (*CropResult, error) {
	rect := RegionRect(b, padding, img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) does not overlap the image", b.X1, b.Y1, b.X2, b.Y2)
	}
	return Crop(img, rect, scale)
}
