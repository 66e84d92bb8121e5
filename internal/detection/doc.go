// Package detection finds regions of connected ink in a rasterized drawing.
//
// A region is a bounding box around ink pixels that belong together: pixels
// that touch (including diagonally) form a blob, and blobs that sit close to
// each other are merged. Regions are recomputed from scratch on every call
// and carry no ownership over the elements that produced the ink.
//
// # Algorithm Overview
//
//  1. Ink Mask: Any pixel with alpha > 0 is ink. Color is ignored, so the
//     raster is normally an offscreen rendering on a transparent background.
//  2. Flood Fill: 8-connected breadth-first fill over the mask, keeping
//     blobs of at least MinRegionSize pixels (default 100).
//  3. Merge: Pairwise merge of blobs whose bounding boxes are within
//     GroupingDistance (default 80) of each other, repeated until stable.
//  4. Labeling: Regions are numbered 1..n in their final order.
//
// # Coordinate System
//
// Coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Region bounds are inclusive on both corners
//
// A raster whose Bounds().Min is not the origin reports coordinates in the
// raster's own space. The imaging package uses this to rasterize a drawing
// at its document position so regions come back in document units.
//
// # Distance Between Regions
//
// The merge distance is measured between bounding boxes, not between the
// closest pixels. Two boxes overlapping on both axes are 0 apart; otherwise
// the distance is the hypotenuse of the horizontal and vertical gaps. This
// over-merges L-shaped ink slightly but keeps the merge pass cheap.
//
// # Performance Considerations
//
// The flood fill visits every pixel once. For very large canvases, callers
// may run DetectRegions on a background goroutine: it only reads the raster
// it is given.
package detection
