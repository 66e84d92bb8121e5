// Package imaging turns drawing elements into pixels and pixels into MCP
// payloads.
//
// The Renderer draws every element variant deterministically with
// golang.org/x/image/vector. Rasterize produces the transparent offscreen
// image that region detection runs on, while Render and RenderOverlay produce
// opaque images for clients, optionally with numbered region boxes and a
// coordinate grid. Crop and CropRegion cut pieces out of a rendering and
// return them as base64 PNG.
//
// # Coordinate System
//
// Images produced here keep document coordinates as their bounds: a drawing
// whose leftmost ink sits at x=240 yields an image whose Bounds().Min.X is a
// little below 240, not 0. Region bounds found on such an image therefore
// need no translation. X increases rightward and Y increases downward.
//
// For crop rectangles, (x1,y1) is inclusive and (x2,y2) is exclusive, as in
// image.Rectangle. Region bounds from the detection package are inclusive on
// both corners and are converted by RegionRect.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. A Renderer reuses one rasterizer and
// must not be shared between goroutines without synchronization; the canvas
// package only uses it while holding its board lock.
//
// # Colors
//
// Ink colors are parsed from "#RRGGBB" strings with go-colorful. Region
// overlays pick one color per region by stepping the hue around the color
// wheel, so neighbouring ids stay distinguishable.
package imaging
