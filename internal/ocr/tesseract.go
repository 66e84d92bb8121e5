package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in document coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a recognized word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the drawing.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the complete results of text recognition.
type OCRResult struct {
	// FullText is all recognized text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// Words contains individual words with their bounding boxes and
	// confidence scores. May be empty even when FullText is not.
	Words []TextRegion `json:"words"`
}

// RecognizeRegion runs Tesseract on the part of img inside rect.
//
// The crop is flattened onto white and enlarged by scale before
// recognition. Word boxes are mapped back into img's coordinate space, so a
// crop of a document-space rendering reports document coordinates.
func RecognizeRegion(img image.Image, rect image.Rectangle, scale float64, language string) (*OCRResult, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("recognition region does not overlap the image")
	}
	if scale <= 0 {
		scale = 1
	}

	prepared := prepare(imaging.Crop(img, rect), scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	result, err := recognize(buf.Bytes(), language)
	if err != nil {
		return nil, err
	}

	for i := range result.Words {
		result.Words[i].Bounds = toSource(result.Words[i].Bounds, rect.Min, scale)
	}
	return result, nil
}

// prepare composites a crop onto an opaque white page and rescales it.
func prepare(cropped *image.NRGBA, scale float64) *image.NRGBA {
	size := cropped.Bounds().Size()
	page := imaging.New(size.X, size.Y, color.White)
	page = imaging.Overlay(page, cropped, image.Point{}, 1.0)

	if scale != 1.0 {
		w := int(math.Round(float64(size.X) * scale))
		h := int(math.Round(float64(size.Y) * scale))
		page = imaging.Resize(page, w, h, imaging.Lanczos)
	}
	return page
}

// toSource maps a box from the prepared image back to source coordinates.
func toSource(b Bounds, origin image.Point, scale float64) Bounds {
	return Bounds{
		X1: origin.X + int(math.Floor(float64(b.X1)/scale)),
		Y1: origin.Y + int(math.Floor(float64(b.Y1)/scale)),
		X2: origin.X + int(math.Ceil(float64(b.X2)/scale)),
		Y2: origin.Y + int(math.Ceil(float64(b.Y2)/scale)),
	}
}

func recognize(data []byte, language string) (*OCRResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &OCRResult{
			FullText: text,
			Words:    []TextRegion{},
		}, nil
	}

	words := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, TextRegion{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{
		FullText: text,
		Words:    words,
	}, nil
}
