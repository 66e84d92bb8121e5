package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/anthonynsimon/bild/clone"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/element"
)

// RenderResult contains a rendered drawing as a base64 PNG.
type RenderResult struct {
	// X and Y are the document coordinates of the image's top-left pixel.
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// OverlayOptions controls what RenderOverlay draws on top of the elements.
type OverlayOptions struct {
	// IncludeCapture draws capture marquees.
	IncludeCapture bool

	// GridSpacing draws a coordinate grid every GridSpacing pixels when > 0.
	GridSpacing int

	// ShowCoordinates labels grid intersections with their coordinates.
	ShowCoordinates bool
}

// Render draws elements on an opaque white background covering the drawing.
// The result keeps document coordinates as its bounds.
func (r *Renderer) Render(elements []element.Element, includeCapture bool) (*image.RGBA, error) {
	frame, err := r.Frame(elements, includeCapture)
	if err != nil {
		return nil, err
	}
	return r.renderFrame(elements, frame, includeCapture)
}

func (r *Renderer) renderFrame(elements []element.Element, frame image.Rectangle, includeCapture bool) (*image.RGBA, error) {
	if err := r.checkSize(frame); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(frame)
	draw.Draw(dst, frame, image.White, image.Point{}, draw.Src)

	for _, el := range elements {
		if el.Type == element.TypeCapture && !includeCapture {
			continue
		}
		if err := r.Draw(dst, el); err != nil {
			return nil, fmt.Errorf("render element %d: %w", el.ID, err)
		}
	}
	return dst, nil
}

// RenderOverlay draws the elements with each region outlined and numbered
// in its own color, plus an optional coordinate grid, and encodes the result
// as PNG.
func (r *Renderer) RenderOverlay(elements []element.Element, regions []detection.Region, opts OverlayOptions) (*RenderResult, error) {
	frame, err := r.Frame(elements, opts.IncludeCapture)
	if err != nil {
		return nil, err
	}
	for _, reg := range regions {
		rr := image.Rect(reg.Bounds.X1, reg.Bounds.Y1, reg.Bounds.X2+1, reg.Bounds.Y2+1).Inset(-(r.Padding + 2))
		frame = frame.Union(rr)
	}
	if frame.Empty() {
		frame = image.Rect(0, 0, 1, 1)
	}

	img, err := r.renderFrame(elements, frame, opts.IncludeCapture)
	if err != nil {
		return nil, err
	}

	return overlayRegions(img, regions, opts)
}

// OverlayImage draws region boxes and an optional grid over a copy of an
// arbitrary raster, such as a scan that regions were detected on.
func OverlayImage(src image.Image, regions []detection.Region, opts OverlayOptions) (*RenderResult, error) {
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("cannot overlay an empty image")
	}
	return overlayRegions(clone.AsRGBA(src), regions, opts)
}

func overlayRegions(img *image.RGBA, regions []detection.Region, opts OverlayOptions) (*RenderResult, error) {
	if opts.GridSpacing > 0 {
		drawGrid(img, opts.GridSpacing, opts.ShowCoordinates)
	}

	palette := RegionPalette(len(regions))
	for i, reg := range regions {
		drawRegionBox(img, reg, palette[i])
	}

	encoded, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	frame := img.Bounds()
	return &RenderResult{
		X:           frame.Min.X,
		Y:           frame.Min.Y,
		Width:       frame.Dx(),
		Height:      frame.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// RegionPalette returns n visually distinct colors. Hues advance by the
// golden angle so neighbouring region ids never share a similar color.
func RegionPalette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := 0; i < n; i++ {
		hue := math.Mod(float64(i)*137.508, 360)
		c := colorful.Hsv(hue, 0.85, 0.85)
		r, g, b := c.RGB255()
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

// ParseInkColor parses a hex color string like "#1E90FF" into an opaque
// color.
func ParseInkColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid ink color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// drawRegionBox outlines a region two pixels outside its ink and tags it
// with its id.
func drawRegionBox(img *image.RGBA, reg detection.Region, c color.RGBA) {
	box := image.Rect(reg.Bounds.X1-2, reg.Bounds.Y1-2, reg.Bounds.X2+3, reg.Bounds.Y2+3)
	bounds := img.Bounds()

	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(bounds) {
			img.Set(x, y, c)
		}
	}
	for t := 0; t < 2; t++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			set(x, box.Min.Y+t)
			set(x, box.Max.Y-1-t)
		}
		for y := box.Min.Y; y < box.Max.Y; y++ {
			set(box.Min.X+t, y)
			set(box.Max.X-1-t, y)
		}
	}

	drawLabel(img, box.Min.X+3, box.Min.Y+3, strconv.Itoa(reg.ID), color.RGBA{255, 255, 255, 255}, c)
}

// drawGrid draws grid lines every spacing pixels, aligned to document
// coordinates, optionally labeled with their intersections.
func drawGrid(img *image.RGBA, spacing int, showCoordinates bool) {
	bounds := img.Bounds()
	gridColor := color.RGBA{255, 0, 0, 128}

	first := func(min int) int {
		v := (min / spacing) * spacing
		if v < min {
			v += spacing
		}
		return v
	}

	// Vertical lines
	for x := first(bounds.Min.X); x < bounds.Max.X; x += spacing {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			img.Set(x, y, gridColor)
		}
	}

	// Horizontal lines
	for y := first(bounds.Min.Y); y < bounds.Max.Y; y += spacing {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, gridColor)
		}
	}

	if showCoordinates {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.RGBA{0, 0, 0, 180}

		for y := first(bounds.Min.Y); y < bounds.Max.Y; y += spacing {
			for x := first(bounds.Min.X); x < bounds.Max.X; x += spacing {
				drawLabel(img, x+2, y+2, fmt.Sprintf("%d,%d", x, y), labelColor, bgColor)
			}
		}
	}
}

// drawLabel draws a small label using a built-in 3x5 pixel font for
// digits, comma and minus sign.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
		'-': {"000", "000", "111", "000", "000"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	// Draw background
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	// Draw text
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
