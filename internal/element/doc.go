// Package element defines the drawable objects of an ink board and the
// operations that inspect and mutate them.
//
// # Variants
//
// Every Element carries a Type tag:
//
//   - line: two endpoints (X1,Y1) and (X2,Y2)
//   - rectangle: two opposite corners
//   - pencil: an ordered polyline of PencilPoints with a stroke Size
//   - text: an anchor (X1,Y1) plus the measured extent (X2,Y2)
//   - capture: a selection marquee, shaped like a rectangle
//
// Any function that dispatches on the tag returns *UnrecognizedTypeError for
// an unknown tag.
//
// # Hit Testing
//
// PositionWithin answers which part of an element a point falls on: a
// resize handle ("tl", "tr", "bl", "br", "start", "end"), the body
// ("inside"), or nothing. LocateAt scans a slice in creation order and
// returns the first hit, so older elements win over newer ones.
//
// Handle tests use a square tolerance box rather than a radius, and segment
// tests compare the endpoint distances against the segment length. See the
// geometry package.
//
// # Resizing
//
// ResizedCoordinates maps a handle drag to new corners. Corners may end up
// in any order while the drag is live; Canonicalize restores a stable order
// once the interaction completes.
//
// # Identity
//
// Element ids are assigned by the owner of a Collection from a counter that
// only grows. A Collection resolves elements by id; removal filters the
// element out and leaves every other id untouched.
package element
