package detection

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/inkboard-mcp/internal/geometry"
)

// Default tunables for DetectRegions.
const (
	DefaultMinRegionSize    = 100
	DefaultGroupingDistance = 80.0
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// Both corners are inclusive: (X1, Y1) is the top-left ink pixel and
// (X2, Y2) the bottom-right ink pixel of the region.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Geometry converts b into document-space bounds.
func (b Bounds) Geometry() geometry.Bounds {
	return geometry.Bounds{X1: float64(b.X1), Y1: float64(b.Y1), X2: float64(b.X2), Y2: float64(b.Y2)}
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is a group of connected ink.
type Region struct {
	// ID is 1-based and follows the final region order.
	ID int `json:"id"`

	// Bounds encloses every pixel of the region.
	Bounds Bounds `json:"bounds"`

	// PixelCount is the number of opaque pixels in the region.
	PixelCount int `json:"pixel_count"`

	// Points lists every opaque pixel of the region.
	Points []Point `json:"-"`

	// Elements lists the ids of drawn elements overlapping the region.
	// DetectRegions leaves it empty; callers that know the element set
	// fill it in.
	Elements []int `json:"elements"`
}

// Options tunes DetectRegions.
type Options struct {
	// MinRegionSize is the minimum pixel count for a blob to survive the
	// flood fill. Smaller blobs are treated as noise.
	MinRegionSize int

	// GroupingDistance is the largest gap, in pixels, across which two
	// blobs are merged into one region.
	GroupingDistance float64

	// DilateRadius grows the ink before the flood fill when positive.
	DilateRadius float64
}

// DefaultOptions returns the standard tunables.
func DefaultOptions() Options {
	return Options{
		MinRegionSize:    DefaultMinRegionSize,
		GroupingDistance: DefaultGroupingDistance,
	}
}

// RegionsResult contains all regions detected in a raster.
type RegionsResult struct {
	// Regions is the list of detected regions in final merge order.
	Regions []Region `json:"regions"`

	// Count is the number of regions detected.
	Count int `json:"count"`
}

// DetectRegions groups the opaque pixels of img into regions of connected
// ink.
//
// Parameters:
//   - img: The raster to scan. Any pixel with alpha > 0 counts as ink.
//     Bounds honor img.Bounds().Min, so a raster placed at a document
//     offset reports document coordinates.
//   - opts: Tunables. See Options.
//
// Returns:
//   - *RegionsResult: The regions, empty for a blank raster.
//   - error: Non-nil only for invalid options.
//
// # Algorithm
//
//  1. Flood Fill: Scan pixels in raster order. Each unvisited ink pixel
//     seeds an 8-connected breadth-first fill that collects the blob's
//     pixels and bounding box. Blobs smaller than MinRegionSize are dropped.
//  2. Merge: Scan all pairs of blobs. Two blobs whose bounding boxes are
//     within GroupingDistance of each other are merged and the scan
//     restarts, so merges cascade (A joins B, then AB joins C). The pass
//     ends when a full scan merges nothing.
//  3. Labeling: Surviving blobs become regions with ids 1..n.
//
// # Performance
//
// The fill is O(width × height). The merge is O(n²) per pass and up to n
// passes, which is fine for the tens of regions a drawing produces.
func DetectRegions(img image.Image, opts Options) (*RegionsResult, error) {
	if opts.MinRegionSize < 0 {
		return nil, fmt.Errorf("min region size must be >= 0, got %d", opts.MinRegionSize)
	}
	if opts.GroupingDistance < 0 {
		return nil, fmt.Errorf("grouping distance must be >= 0, got %g", opts.GroupingDistance)
	}
	if opts.DilateRadius < 0 {
		return nil, fmt.Errorf("dilate radius must be >= 0, got %g", opts.DilateRadius)
	}

	origin := img.Bounds().Min
	mask := opaqueMask(img)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if opts.DilateRadius > 0 && width > 0 && height > 0 {
		mask = dilateMask(mask, width, height, opts.DilateRadius)
	}

	blobs := findBlobs(mask, width, height, opts.MinRegionSize)
	blobs = mergeNearby(blobs, opts.GroupingDistance)

	regions := make([]Region, 0, len(blobs))
	for i, b := range blobs {
		points := make([]Point, len(b.points))
		for j, p := range b.points {
			points[j] = Point{X: p.X + origin.X, Y: p.Y + origin.Y}
		}
		regions = append(regions, Region{
			ID: i + 1,
			Bounds: Bounds{
				X1: b.minX + origin.X,
				Y1: b.minY + origin.Y,
				X2: b.maxX + origin.X,
				Y2: b.maxY + origin.Y,
			},
			PixelCount: len(points),
			Points:     points,
			Elements:   []int{},
		})
	}

	return &RegionsResult{
		Regions: regions,
		Count:   len(regions),
	}, nil
}

// opaqueMask returns a [height][width] grid marking pixels with alpha > 0.
// The grid is indexed from 0 regardless of img.Bounds().Min.
func opaqueMask(img image.Image) [][]bool {
	nrgba := imaging.Clone(img)
	width := nrgba.Bounds().Dx()
	height := nrgba.Bounds().Dy()

	mask := make([][]bool, height)
	for y := 0; y < height; y++ {
		mask[y] = make([]bool, width)
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			mask[y][x] = row[x*4+3] > 0
		}
	}
	return mask
}

// dilateMask grows the ink in mask by radius pixels on every side.
//
// The mask is drawn white on black before dilation. Dilate keeps the
// brightest neighbor, and ink against a transparent background would tie
// with it.
func dilateMask(mask [][]bool, width, height int, radius float64) [][]bool {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] {
				gray.Pix[y*gray.Stride+x] = 0xff
			}
		}
	}

	grown := effect.Dilate(gray, radius)

	out := make([][]bool, height)
	for y := 0; y < height; y++ {
		out[y] = make([]bool, width)
		row := grown.Pix[y*grown.Stride : y*grown.Stride+width*4]
		for x := 0; x < width; x++ {
			out[y][x] = row[x*4] > 0x7f
		}
	}
	return out
}

// blob is a connected set of ink pixels with its running bounding box.
type blob struct {
	minX, minY, maxX, maxY int
	points                 []Point
}

func (b blob) bounds() geometry.Bounds {
	return geometry.Bounds{X1: float64(b.minX), Y1: float64(b.minY), X2: float64(b.maxX), Y2: float64(b.maxY)}
}

func (b blob) union(other blob) blob {
	points := make([]Point, 0, len(b.points)+len(other.points))
	points = append(points, b.points...)
	points = append(points, other.points...)
	return blob{
		minX:   min(b.minX, other.minX),
		minY:   min(b.minY, other.minY),
		maxX:   max(b.maxX, other.maxX),
		maxY:   max(b.maxY, other.maxY),
		points: points,
	}
}

// findBlobs finds connected components in a binary ink mask.
//
// Connectivity is 8-connected (includes diagonals). Blobs with fewer than
// minSize pixels are discarded as noise.
func findBlobs(mask [][]bool, width, height, minSize int) []blob {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	blobs := make([]blob, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] && !visited[y][x] {
				b := floodFill(mask, visited, x, y, width, height)
				if len(b.points) >= minSize {
					blobs = append(blobs, b)
				}
			}
		}
	}

	return blobs
}

// floodFill performs a breadth-first fill from a starting pixel.
//
// The queue is an explicit slice rather than recursion, so very large blobs
// cannot overflow the stack. Every pixel is marked visited when it is
// enqueued, which keeps each pixel in the queue at most once; the queue
// therefore doubles as the blob's point list.
func floodFill(mask, visited [][]bool, startX, startY, width, height int) blob {
	queue := []Point{{X: startX, Y: startY}}
	visited[startY][startX] = true
	b := blob{minX: startX, minY: startY, maxX: startX, maxY: startY}

	for head := 0; head < len(queue); head++ {
		p := queue[head]

		if p.X < b.minX {
			b.minX = p.X
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if visited[ny][nx] || !mask[ny][nx] {
					continue
				}
				visited[ny][nx] = true
				queue = append(queue, Point{X: nx, Y: ny})
			}
		}
	}

	b.points = queue
	return b
}

// mergeNearby merges blobs whose bounding boxes lie within distance of each
// other until no pair qualifies.
//
// The gap between two blobs is measured between their bounding boxes, not
// their pixels: 0 when the boxes overlap on both axes, otherwise the
// hypotenuse of the axis gaps.
func mergeNearby(blobs []blob, distance float64) []blob {
	for {
		merged := false

	scan:
		for i := 0; i < len(blobs); i++ {
			for j := i + 1; j < len(blobs); j++ {
				if geometry.GapDistance(blobs[i].bounds(), blobs[j].bounds()) <= distance {
					blobs[i] = blobs[i].union(blobs[j])
					blobs = append(blobs[:j], blobs[j+1:]...)
					merged = true
					break scan
				}
			}
		}

		if !merged {
			return blobs
		}
	}
}
