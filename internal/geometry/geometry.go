// Package geometry provides the distance and proximity tests used for
// hit-testing drawn elements and for measuring gaps between ink regions.
//
// All coordinates are document-space float64 values with the origin at the
// top-left, X increasing rightward and Y increasing downward.
package geometry

import "math"

// DefaultNearTolerance is the half-width of the square box used by
// IsNearPoint when matching a pointer against a handle.
const DefaultNearTolerance = 5.0

// DefaultSegmentSlack is the slack allowed by IsOnSegment for line bodies.
const DefaultSegmentSlack = 1.0

// Point is a 2D point in document space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// IsNearPoint reports whether (x, y) lies inside the square box of
// half-width tolerance centered on (px, py).
//
// This is deliberately not a radius test: both axis deltas must be strictly
// below tolerance.
func IsNearPoint(x, y, px, py, tolerance float64) bool {
	return math.Abs(x-px) < tolerance && math.Abs(y-py) < tolerance
}

// IsOnSegment reports whether (x, y) lies on the segment (x1,y1)-(x2,y2)
// within maxDistance of slack.
//
// The test compares the segment length with the sum of the distances from
// the point to both endpoints. For a point exactly on the segment the two
// are equal; the further the point strays, the larger the sum grows.
func IsOnSegment(x1, y1, x2, y2, x, y, maxDistance float64) bool {
	a := Point{X: x1, Y: y1}
	b := Point{X: x2, Y: y2}
	c := Point{X: x, Y: y}
	offset := Distance(a, b) - (Distance(a, c) + Distance(b, c))
	return math.Abs(offset) < maxDistance
}
