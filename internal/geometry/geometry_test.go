package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"horizontal", Point{0, 0}, Point{10, 0}, 10},
		{"3-4-5 triangle", Point{0, 0}, Point{3, 4}, 5},
		{"negative coordinates", Point{-3, -4}, Point{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestIsNearPoint(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"exact", 10, 10, true},
		{"inside box", 14, 6, true},
		{"on box edge", 15, 10, false},
		{"box corner beyond radius", 14.5, 14.5, true},
		{"outside on one axis", 10, 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNearPoint(tt.x, tt.y, 10, 10, DefaultNearTolerance); got != tt.want {
				t.Errorf("IsNearPoint(%v, %v): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsOnSegment(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		slack float64
		want  bool
	}{
		{"midpoint", 50, 50, 1, true},
		{"endpoint", 0, 0, 1, true},
		{"slightly off", 50, 51, 1, true},
		{"well off", 50, 70, 1, false},
		{"beyond the end", 110, 110, 1, false},
		{"loose slack", 50, 70, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOnSegment(0, 0, 100, 100, tt.x, tt.y, tt.slack); got != tt.want {
				t.Errorf("IsOnSegment(%v, %v): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGapDistance(t *testing.T) {
	a := Bounds{X1: 0, Y1: 0, X2: 10, Y2: 10}

	tests := []struct {
		name string
		b    Bounds
		want float64
	}{
		{"overlapping", Bounds{5, 5, 20, 20}, 0},
		{"touching", Bounds{10, 0, 20, 10}, 0},
		{"horizontal gap", Bounds{30, 0, 40, 10}, 20},
		{"vertical gap", Bounds{0, 25, 10, 30}, 15},
		{"diagonal gap", Bounds{13, 14, 20, 20}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GapDistance(a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("GapDistance: got %f, want %f", got, tt.want)
			}
			if got := GapDistance(tt.b, a); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("GapDistance (swapped): got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(10, 20, 0, 5)
	if b != (Bounds{X1: 0, Y1: 5, X2: 10, Y2: 20}) {
		t.Fatalf("NewBounds: got %+v", b)
	}
	if !b.Contains(0, 5) || !b.Contains(10, 20) || b.Contains(11, 10) {
		t.Error("Contains: edge handling incorrect")
	}
	u := b.Union(Bounds{X1: -5, Y1: 10, X2: 3, Y2: 30})
	if u != (Bounds{X1: -5, Y1: 5, X2: 10, Y2: 30}) {
		t.Errorf("Union: got %+v", u)
	}
	if !b.Intersects(Bounds{X1: 10, Y1: 20, X2: 15, Y2: 25}) {
		t.Error("Intersects: touching corners should intersect")
	}
	if b.Intersects(Bounds{X1: 11, Y1: 0, X2: 15, Y2: 25}) {
		t.Error("Intersects: disjoint boxes reported as intersecting")
	}
}
