package model

import (
	"math"
	"testing"
)

func TestBBoxFromPoints(t *testing.T) {
	pts := []Point{{X: 3, Y: 8}, {X: -1, Y: 2}, {X: 5, Y: 4}}
	b := BBoxFromPoints(pts)

	if b.Left() != -1 || b.Bottom() != 2 || b.Right() != 5 || b.Top() != 8 {
		t.Errorf("unexpected box: %+v", b)
	}
}

func TestBBoxFromPointsDegenerate(t *testing.T) {
	// A single point collapses to a zero-size box, not an error
	b := BBoxFromPoints([]Point{{X: 2, Y: 3}})
	if b.Width != 0 || b.Height != 0 || b.X != 2 || b.Y != 3 {
		t.Errorf("expected degenerate box at point, got %+v", b)
	}

	// Collinear points collapse one dimension
	b = BBoxFromPoints([]Point{{X: 0, Y: 1}, {X: 10, Y: 1}})
	if b.Height != 0 || b.Width != 10 {
		t.Errorf("expected line box, got %+v", b)
	}
}

func TestBBoxDistanceTo(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)

	if d := b.DistanceTo(Point{X: 5, Y: 5}); d != 0 {
		t.Errorf("inside point should have distance 0, got %f", d)
	}
	if d := b.DistanceTo(Point{X: 13, Y: 5}); math.Abs(d-3) > 1e-9 {
		t.Errorf("expected distance 3, got %f", d)
	}
	if d := b.DistanceTo(Point{X: 13, Y: 14}); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestPolygonArea(t *testing.T) {
	// 10 x 8 rectangle, shoelace area 80
	pg := Polygon{{0, 0}, {10, 0}, {10, 8}, {0, 8}}
	if a := pg.Area(); math.Abs(a-80) > 1e-9 {
		t.Errorf("expected area 80, got %f", a)
	}
	if p := pg.Perimeter(); math.Abs(p-36) > 1e-9 {
		t.Errorf("expected perimeter 36, got %f", p)
	}

	// Counterclockwise order gives positive signed area
	if s := pg.SignedArea(); s <= 0 {
		t.Errorf("expected positive signed area, got %f", s)
	}
}

func TestPolygonCentroidContains(t *testing.T) {
	pg := Polygon{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	c := pg.Centroid()
	if math.Abs(c.X-2) > 1e-9 || math.Abs(c.Y-2) > 1e-9 {
		t.Errorf("unexpected centroid %+v", c)
	}

	if !pg.Contains(Point{X: 1, Y: 1}) {
		t.Error("interior point not contained")
	}
	if pg.Contains(Point{X: 5, Y: 1}) {
		t.Error("exterior point contained")
	}
}

func TestMatrixTransform(t *testing.T) {
	m := Translate(10, 20).Multiply(Scaling(2, 2))
	p := m.Transform(Point{X: 1, Y: 1})
	if p.X != 22 || p.Y != 42 {
		t.Errorf("unexpected transform result %+v", p)
	}
}

func TestScaleLength(t *testing.T) {
	// 1:50 metric: 72 points = 1 inch = 25.4mm on paper = 1270mm real
	s := Scale{Raw: "1:50", Ratio: 50, Metric: true}
	if got := s.Length(72); math.Abs(got-1270) > 1e-6 {
		t.Errorf("expected 1270mm, got %f", got)
	}

	// 1/4" = 1'-0": 72 points = 1 inch on paper = 48 inches real
	s = Scale{Raw: `1/4" = 1'-0"`, Ratio: 48, Metric: false}
	if got := s.Length(72); math.Abs(got-48) > 1e-6 {
		t.Errorf("expected 48in, got %f", got)
	}
}

func TestRoomIDDeterministic(t *testing.T) {
	pg := Polygon{{0, 0}, {10, 0}, {10, 8}, {0, 8}}
	if RoomID(pg) != RoomID(Polygon{{0, 0}, {10, 0}, {10, 8}, {0, 8}}) {
		t.Error("identical polygons must produce identical IDs")
	}
	if RoomID(pg) == RoomID(Polygon{{0, 0}, {9, 0}, {9, 8}, {0, 8}}) {
		t.Error("different polygons should produce different IDs")
	}
}

func TestSegmentDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	if d := SegmentDistance(Point{X: 5, Y: 3}, a, b); math.Abs(d-3) > 1e-9 {
		t.Errorf("expected 3, got %f", d)
	}
	// Beyond the endpoint the distance is to the endpoint itself
	if d := SegmentDistance(Point{X: 14, Y: 3}, a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5, got %f", d)
	}
}
