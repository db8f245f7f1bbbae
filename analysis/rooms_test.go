package analysis

import (
	"math"
	"testing"

	"github.com/tsawler/planvec/model"
)

func wallSeg(x1, y1, x2, y2 float64) model.VectorElement {
	return model.VectorElement{
		Type:        model.VectorTypeWall,
		Points:      []model.Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
		StrokeWidth: 4,
	}
}

func wallLoop(x, y, w, h float64) model.VectorElement {
	return model.VectorElement{
		Type: model.VectorTypeWall,
		Points: []model.Point{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
		Closed: true,
		IsRect: true,
	}
}

func TestSingleLoopRoom(t *testing.T) {
	// Corners jittered within the snap tolerance, as CAD exports do
	walls := []model.VectorElement{
		wallSeg(100, 100, 400, 100.5),
		wallSeg(400.4, 100.3, 400, 400),
		wallSeg(400.2, 400.4, 100, 400.2),
		wallSeg(100.3, 400, 100, 100.4),
	}

	rooms := buildRooms(walls, DefaultConfig())
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if math.Abs(rooms[0].Area-90000) > 500 {
		t.Errorf("expected area near 90000, got %f", rooms[0].Area)
	}
	if math.Abs(rooms[0].Perimeter-1200) > 5 {
		t.Errorf("expected perimeter near 1200, got %f", rooms[0].Perimeter)
	}
}

func TestClosedRectangleRoom(t *testing.T) {
	// A closed wall polygon forms a room with its shoelace area
	rooms := buildRooms([]model.VectorElement{wallLoop(0, 0, 10, 8)}, DefaultConfig())
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if math.Abs(rooms[0].Area-80) > 1e-9 {
		t.Errorf("expected area 80, got %f", rooms[0].Area)
	}
	if math.Abs(rooms[0].Perimeter-36) > 1e-9 {
		t.Errorf("expected perimeter 36, got %f", rooms[0].Perimeter)
	}
}

func TestCenterlineReduction(t *testing.T) {
	// A thin elongated rectangle is a wall drawn at its real thickness
	// and collapses to its centerline
	segs := centerlineSegments(wallLoop(100, 100, 300, 6), DefaultConfig())
	if len(segs) != 1 {
		t.Fatalf("expected 1 centerline segment, got %d", len(segs))
	}
	if segs[0].halfT != 3 {
		t.Errorf("expected half thickness 3, got %f", segs[0].halfT)
	}
	a, b := segs[0].a, segs[0].b
	if math.Abs(a.Y-103) > 1e-9 || math.Abs(b.Y-103) > 1e-9 {
		t.Errorf("centerline not at mid-thickness: %+v %+v", a, b)
	}
	if math.Abs(math.Abs(a.X-b.X)-300) > 1e-9 {
		t.Errorf("centerline length wrong: %+v %+v", a, b)
	}

	// A squat rectangle is a room outline, not a wall run
	segs = centerlineSegments(wallLoop(0, 0, 10, 8), DefaultConfig())
	if len(segs) != 4 {
		t.Errorf("expected 4 edge segments, got %d", len(segs))
	}
}

func TestRectangleDrawnWallsFormRoom(t *testing.T) {
	// Four wall runs drawn at a 6 unit thickness, overlapping at the
	// corners. Each centerline ends half a thickness short of its
	// neighbor's, so corner joining must reach beyond the snap
	// tolerance.
	walls := []model.VectorElement{
		wallLoop(100, 100, 300, 6),
		wallLoop(100, 394, 300, 6),
		wallLoop(100, 100, 6, 300),
		wallLoop(394, 100, 6, 300),
	}

	rooms := buildRooms(walls, DefaultConfig())
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room from rectangle-drawn walls, got %d", len(rooms))
	}
	// Interior between the centerlines is 294 x 294
	if math.Abs(rooms[0].Area-86436) > 1 {
		t.Errorf("expected area 86436, got %f", rooms[0].Area)
	}
}

func TestAbuttingPartitionSplitsRoom(t *testing.T) {
	// Interior partition drawn as a rectangle butting end-to-face into
	// the top and bottom runs
	walls := []model.VectorElement{
		wallLoop(100, 100, 300, 6),
		wallLoop(100, 394, 300, 6),
		wallLoop(100, 100, 6, 300),
		wallLoop(394, 100, 6, 300),
		wallLoop(247, 106, 6, 288),
	}

	rooms := buildRooms(walls, DefaultConfig())
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	for _, r := range rooms {
		if math.Abs(r.Area-43218) > 1 {
			t.Errorf("expected area 43218, got %f", r.Area)
		}
	}
}

func TestTJunctionRooms(t *testing.T) {
	// A divider abutting the outer loop mid-run splits it into two rooms
	walls := []model.VectorElement{
		wallSeg(0, 0, 40, 0),
		wallSeg(40, 0, 40, 20),
		wallSeg(40, 20, 0, 20),
		wallSeg(0, 20, 0, 0),
		wallSeg(20, 0, 20, 20),
	}

	rooms := buildRooms(walls, DefaultConfig())
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	for _, r := range rooms {
		if math.Abs(r.Area-400) > 1e-6 {
			t.Errorf("expected area 400, got %f", r.Area)
		}
	}
}

func TestDegenerateLoopDiscarded(t *testing.T) {
	walls := []model.VectorElement{
		wallSeg(0, 0, 10, 0),
		wallSeg(10, 0, 10, 0.1),
		wallSeg(10, 0.1, 0, 0),
	}
	if rooms := buildRooms(walls, DefaultConfig()); len(rooms) != 0 {
		t.Errorf("expected no rooms from a near-zero-area loop, got %d", len(rooms))
	}
}

func TestSelfIntersects(t *testing.T) {
	bowtie := model.Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
	}
	if !selfIntersects(bowtie) {
		t.Error("bowtie should self-intersect")
	}
	square := model.Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	if selfIntersects(square) {
		t.Error("square should not self-intersect")
	}
}

func TestRoomOrderDeterministic(t *testing.T) {
	walls := []model.VectorElement{
		wallSeg(0, 0, 40, 0),
		wallSeg(40, 0, 40, 20),
		wallSeg(40, 20, 0, 20),
		wallSeg(0, 20, 0, 0),
		wallSeg(20, 0, 20, 20),
	}
	a := buildRooms(walls, DefaultConfig())
	b := buildRooms(walls, DefaultConfig())
	if len(a) != len(b) {
		t.Fatal("room count differs between runs")
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("room %d: ID differs between runs", i)
		}
	}
}
