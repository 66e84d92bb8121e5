package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ironsheep/inkboard-mcp/internal/element"
	"github.com/ironsheep/inkboard-mcp/internal/geometry"
)

// DefaultStrokeWidth is the outline width for lines, rectangles and
// capture marquees.
const DefaultStrokeWidth = 2.0

// DefaultMaxPixels caps the area of any raster the renderer allocates.
const DefaultMaxPixels = 25_000_000

// maxCoordinate bounds document coordinates that can be mapped to pixels.
const maxCoordinate = 1 << 30

// ErrRasterTooLarge is returned when a drawing would need a raster larger
// than the renderer's MaxPixels.
var ErrRasterTooLarge = errors.New("raster too large")

// Capture marquees are drawn dashed.
const (
	captureDash = 6.0
	captureGap  = 4.0
)

// Renderer draws elements onto raster images.
//
// Rendering is deterministic: the same element state always produces the
// same pixels. Elements are positioned by their document coordinates, so a
// destination whose Bounds().Min is not the origin acts as a viewport onto
// the document.
type Renderer struct {
	// Ink is the color of every stroke.
	Ink color.Color

	// StrokeWidth is the outline width for lines, rectangles and captures.
	StrokeWidth float64

	// Padding is added around the drawing by Rasterize.
	Padding int

	// MaxPixels caps the width times height of a raster. Zero or less means
	// DefaultMaxPixels.
	MaxPixels int

	face font.Face
	ras  *vector.Rasterizer
}

// NewRenderer creates a renderer with the given ink color and raster padding.
func NewRenderer(ink color.Color, padding int) *Renderer {
	return &Renderer{
		Ink:         ink,
		StrokeWidth: DefaultStrokeWidth,
		Padding:     padding,
		MaxPixels:   DefaultMaxPixels,
		face:        TextFace(),
		ras:         &vector.Rasterizer{},
	}
}

// Draw renders a single element onto dst.
//
// Returns *element.UnrecognizedTypeError for an unknown element type.
func (r *Renderer) Draw(dst draw.Image, el element.Element) error {
	src := image.NewUniform(r.Ink)

	switch el.Type {
	case element.TypeLine:
		r.strokeSegment(dst, src, el.X1, el.Y1, el.X2, el.Y2, r.StrokeWidth)

	case element.TypeRectangle:
		for _, s := range rectangleEdges(el) {
			r.strokeSegment(dst, src, s[0], s[1], s[2], s[3], r.StrokeWidth)
		}

	case element.TypeCapture:
		for _, s := range rectangleEdges(el) {
			r.dashSegment(dst, src, s[0], s[1], s[2], s[3], r.StrokeWidth)
		}

	case element.TypePencil:
		r.drawPencil(dst, src, el)

	case element.TypeText:
		r.drawText(dst, src, el)

	default:
		return &element.UnrecognizedTypeError{Type: el.Type}
	}
	return nil
}

// Rasterize renders every element except capture marquees onto a
// transparent image that covers the drawing plus Padding on every side.
//
// The returned image's bounds are in document coordinates, so detection
// results on it need no translation. An empty drawing yields an empty
// image.
func (r *Renderer) Rasterize(elements []element.Element) (*image.NRGBA, error) {
	frame, err := r.Frame(elements, false)
	if err != nil {
		return nil, err
	}

	if err := r.checkSize(frame); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(frame)
	for _, el := range elements {
		if el.Type == element.TypeCapture {
			continue
		}
		if err := r.Draw(dst, el); err != nil {
			return nil, fmt.Errorf("rasterize element %d: %w", el.ID, err)
		}
	}
	return dst, nil
}

// Frame returns the padded pixel rectangle covering elements. Capture
// marquees count only when includeCapture is set. A frame larger than
// MaxPixels is reported as ErrRasterTooLarge.
func (r *Renderer) Frame(elements []element.Element, includeCapture bool) (image.Rectangle, error) {
	var union geometry.Bounds
	found := false
	maxStroke := r.StrokeWidth

	for _, el := range elements {
		if el.Type == element.TypeCapture && !includeCapture {
			continue
		}
		b, ok, err := el.Bounds()
		if err != nil {
			return image.Rectangle{}, err
		}
		if !ok {
			continue
		}
		if el.Type == element.TypePencil && el.Size > maxStroke {
			maxStroke = el.Size
		}
		if !found {
			union = b
			found = true
		} else {
			union = union.Union(b)
		}
	}
	if !found {
		return image.Rectangle{}, nil
	}

	union = union.Inflate(float64(r.Padding) + maxStroke)
	for _, v := range []float64{union.X1, union.Y1, union.X2, union.Y2} {
		if !(math.Abs(v) < maxCoordinate) {
			return image.Rectangle{}, fmt.Errorf("%w: coordinate %g is out of range", ErrRasterTooLarge, v)
		}
	}
	w := math.Ceil(union.X2) - math.Floor(union.X1) + 1
	h := math.Ceil(union.Y2) - math.Floor(union.Y1) + 1
	if w*h > float64(r.maxPixels()) {
		return image.Rectangle{}, fmt.Errorf("%w: drawing spans %.0fx%.0f pixels, limit is %d",
			ErrRasterTooLarge, w, h, r.maxPixels())
	}
	return image.Rect(
		int(math.Floor(union.X1)),
		int(math.Floor(union.Y1)),
		int(math.Ceil(union.X2))+1,
		int(math.Ceil(union.Y2))+1,
	), nil
}

func (r *Renderer) maxPixels() int {
	if r.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return r.MaxPixels
}

// checkSize rejects frames whose area exceeds MaxPixels.
func (r *Renderer) checkSize(frame image.Rectangle) error {
	w, h := frame.Dx(), frame.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	if w > r.maxPixels()/h {
		return fmt.Errorf("%w: %dx%d pixels, limit is %d", ErrRasterTooLarge, w, h, r.maxPixels())
	}
	return nil
}

func rectangleEdges(el element.Element) [4][4]float64 {
	return [4][4]float64{
		{el.X1, el.Y1, el.X2, el.Y1},
		{el.X2, el.Y1, el.X2, el.Y2},
		{el.X2, el.Y2, el.X1, el.Y2},
		{el.X1, el.Y2, el.X1, el.Y1},
	}
}

func (r *Renderer) drawPencil(dst draw.Image, src image.Image, el element.Element) {
	width := el.Size
	if width <= 0 {
		width = 1
	}

	pts := el.Points
	for i, p := range pts {
		if p.IsErased {
			continue
		}
		// Round joins and caps.
		r.fillDisc(dst, src, p.X, p.Y, width/2)
		if i+1 < len(pts) && !pts[i+1].IsErased {
			q := pts[i+1]
			r.strokeSegment(dst, src, p.X, p.Y, q.X, q.Y, width)
		}
	}
}

func (r *Renderer) drawText(dst draw.Image, src image.Image, el element.Element) {
	if el.Text == "" {
		return
	}
	metrics := r.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	d := &font.Drawer{Dst: dst, Src: src, Face: r.face}
	for i, line := range splitLines(el.Text) {
		d.Dot = fixed.P(int(math.Round(el.X1)), int(math.Round(el.Y1))+ascent+i*lineHeight)
		d.DrawString(line)
	}
}

// strokeSegment fills the quad covering a segment of the given width.
func (r *Renderer) strokeSegment(dst draw.Image, src image.Image, x1, y1, x2, y2, width float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		r.fillDisc(dst, src, x1, y1, width/2)
		return
	}
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	r.fillPolygon(dst, src, [][2]float64{
		{x1 + nx, y1 + ny},
		{x2 + nx, y2 + ny},
		{x2 - nx, y2 - ny},
		{x1 - nx, y1 - ny},
	})
}

// dashSegment strokes a segment as alternating dashes and gaps.
func (r *Renderer) dashSegment(dst draw.Image, src image.Image, x1, y1, x2, y2, width float64) {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	for pos := 0.0; pos < length; pos += captureDash + captureGap {
		end := math.Min(pos+captureDash, length)
		r.strokeSegment(dst, src, x1+ux*pos, y1+uy*pos, x1+ux*end, y1+uy*end, width)
	}
}

// fillDisc fills a 16-sided approximation of a circle.
func (r *Renderer) fillDisc(dst draw.Image, src image.Image, cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	const sides = 16
	pts := make([][2]float64, sides)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / sides
		pts[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	r.fillPolygon(dst, src, pts)
}

// fillPolygon rasterizes one closed polygon given in document coordinates.
// Each polygon is drawn on its own so that overlapping primitives with
// opposite winding never cancel out.
func (r *Renderer) fillPolygon(dst draw.Image, src image.Image, pts [][2]float64) {
	b := dst.Bounds()
	if b.Empty() || len(pts) < 3 {
		return
	}
	ox, oy := float64(b.Min.X), float64(b.Min.Y)

	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
	r.ras.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	r.ras.ClosePath()
	r.ras.Draw(dst, b, src, image.Point{})
}
