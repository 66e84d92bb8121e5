package canvas

import (
	"fmt"

	"github.com/ironsheep/inkboard-mcp/internal/detection"
	"github.com/ironsheep/inkboard-mcp/internal/element"
	"github.com/ironsheep/inkboard-mcp/internal/imaging"
	"github.com/ironsheep/inkboard-mcp/internal/ocr"
)

// OCR works better on enlarged handwriting.
const ocrScale = 3.0

// DetectRegions rasterizes the current drawing and groups its ink into
// regions. Each region lists the elements whose bounds intersect it. The
// result is kept as the board's current regions.
func (b *Board) DetectRegions() (*detection.RegionsResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detectLocked(b.detect)
}

// DetectRegionsWith is DetectRegions with tunables for this call only. The
// board's configured options are left unchanged.
func (b *Board) DetectRegionsWith(opts detection.Options) (*detection.RegionsResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detectLocked(opts)
}

// DetectionOptions returns the tunables used by DetectRegions and idle
// detection.
func (b *Board) DetectionOptions() detection.Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detect
}

func (b *Board) detectLocked(opts detection.Options) (*detection.RegionsResult, error) {
	elements := b.current().Elements()

	raster, err := b.renderer.Rasterize(elements)
	if err != nil {
		return nil, fmt.Errorf("rasterize drawing: %w", err)
	}

	result, err := detection.DetectRegions(raster, opts)
	if err != nil {
		return nil, err
	}
	associate(result.Regions, elements)
	b.regions = result.Regions

	b.logger.Debug("regions detected",
		"regions", result.Count,
		"elements", len(elements),
		"raster", raster.Bounds().String())
	return result, nil
}

// associate fills each region's element list with the ids of elements
// whose bounds intersect it. Capture marquees are not ink and never match.
func associate(regions []detection.Region, elements []element.Element) {
	for i := range regions {
		rb := regions[i].Bounds.Geometry()
		ids := []int{}
		for _, el := range elements {
			if el.Type == element.TypeCapture {
				continue
			}
			b, ok, err := el.Bounds()
			if err != nil || !ok {
				continue
			}
			if b.Intersects(rb) {
				ids = append(ids, el.ID)
			}
		}
		regions[i].Elements = ids
	}
}

func (b *Board) detectOnIdle() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	result, err := b.detectLocked(b.detect)
	notify := b.onRegions
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("idle region detection failed", "error", err)
		return
	}
	b.logger.Info("idle region detection", "regions", result.Count)
	if notify != nil {
		notify(result)
	}
}

// Regions returns the regions from the most recent detection. They are not
// updated by later edits.
func (b *Board) Regions() []detection.Region {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]detection.Region(nil), b.regions...)
}

func (b *Board) regionLocked(id int) (detection.Region, error) {
	for _, r := range b.regions {
		if r.ID == id {
			return r, nil
		}
	}
	return detection.Region{}, fmt.Errorf("region %d: %w", id, ErrRegionNotFound)
}

// Render draws the current document as a PNG. With showRegions, the
// regions from the most recent detection are outlined and numbered.
func (b *Board) Render(opts imaging.OverlayOptions, showRegions bool) (*imaging.RenderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var regions []detection.Region
	if showRegions {
		regions = b.regions
	}
	return b.renderer.RenderOverlay(b.current().Elements(), regions, opts)
}

// CropRegion renders the current document and cuts out a detected region
// with padding pixels of margin.
func (b *Board) CropRegion(id, padding int, scale float64) (*imaging.CropResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	region, err := b.regionLocked(id)
	if err != nil {
		return nil, err
	}
	img, err := b.renderer.Render(b.current().Elements(), false)
	if err != nil {
		return nil, err
	}
	return imaging.CropRegion(img, region.Bounds, padding, scale)
}

// RecognizeRegion runs OCR over a detected region. Word boxes come back in
// document coordinates. Recognition runs without the board lock held.
func (b *Board) RecognizeRegion(id, padding int, language string) (*ocr.OCRResult, error) {
	b.mu.Lock()
	region, err := b.regionLocked(id)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	raster, err := b.renderer.Rasterize(b.current().Elements())
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rect := imaging.RegionRect(region.Bounds, padding, raster.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region %d is no longer on the drawing", id)
	}
	return ocr.RecognizeRegion(raster, rect, ocrScale, language)
}
