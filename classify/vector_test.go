package classify

import (
	"math"
	"testing"

	"github.com/tsawler/planvec/graphics"
	"github.com/tsawler/planvec/model"
)

func wallRect(x, y, w, h float64) graphics.Polyline {
	return graphics.Polyline{
		Points: []model.Point{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
		Closed:  true,
		Stroked: true,
	}
}

func strokedLine(x1, y1, x2, y2, width float64) graphics.Polyline {
	return graphics.Polyline{
		Points:      []model.Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
		StrokeWidth: width,
		Stroked:     true,
	}
}

func quarterArc(cx, cy, r float64) graphics.Polyline {
	// 9 samples over 90 degrees
	pts := make([]model.Point, 0, 9)
	for i := 0; i <= 8; i++ {
		ang := float64(i) / 8 * math.Pi / 2
		pts = append(pts, model.Point{
			X: cx + r*math.Cos(ang),
			Y: cy + r*math.Sin(ang),
		})
	}
	return graphics.Polyline{Points: pts, Stroked: true, HasCurve: true}
}

func TestClassifyWallRect(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{wallRect(100, 100, 300, 6)}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeWall {
		t.Errorf("expected Wall, got %v", elems[0].Type)
	}
}

func TestClassifyWallStrokedLine(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{strokedLine(100, 100, 400, 100, 4)}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeWall {
		t.Errorf("expected Wall, got %v", elems[0].Type)
	}
}

func TestThinLineNotWall(t *testing.T) {
	cfg := DefaultConfig()
	// Hairline stroke below the thickness band
	polys := []graphics.Polyline{strokedLine(100, 100, 400, 100, 0.4)}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type == model.VectorTypeWall {
		t.Error("hairline should not classify as wall")
	}
}

func TestClassifyDoorArc(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{quarterArc(200, 200, 40)}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeDoor {
		t.Errorf("expected Door, got %v", elems[0].Type)
	}
}

func TestClassifyWindowPair(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{
		wallRect(100, 100, 300, 6), // the wall run
		strokedLine(180, 101, 220, 101, 0.5),
		strokedLine(180, 105, 220, 105, 0.5),
	}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[1].Type != model.VectorTypeWindow || elems[2].Type != model.VectorTypeWindow {
		t.Errorf("expected Window pair, got %v / %v", elems[1].Type, elems[2].Type)
	}
}

func TestClassifyDimensionLine(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{strokedLine(100, 300, 400, 300, 0.5)}
	texts := []model.TextElement{{
		Text: "3800mm",
		Type: model.TextTypeDimension,
		BBox: model.NewBBox(230, 305, 40, 10),
	}}

	elems := ClassifyVectors(polys, texts, false, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeDimensionLine {
		t.Errorf("expected DimensionLine, got %v", elems[0].Type)
	}
}

func TestDimensionLineNeedsNearbyText(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{strokedLine(100, 300, 400, 300, 0.5)}
	texts := []model.TextElement{{
		Text: "3800mm",
		Type: model.TextTypeDimension,
		BBox: model.NewBBox(700, 500, 40, 10), // far away
	}}

	elems := ClassifyVectors(polys, texts, false, 842, 595, cfg)
	if elems[0].Type == model.VectorTypeDimensionLine {
		t.Error("distant text should not make a dimension line")
	}
}

func TestClassifyBoundaryOnSitePlan(t *testing.T) {
	cfg := DefaultConfig()
	big := wallRect(50, 50, 700, 480) // most of the page
	polys := []graphics.Polyline{big}

	// Only on site plans
	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type == model.VectorTypeBoundary {
		t.Error("boundary rule must not fire on floor plans")
	}

	elems = ClassifyVectors(polys, nil, true, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeBoundary {
		t.Errorf("expected Boundary, got %v", elems[0].Type)
	}
}

func TestBoundaryRejectsSubdividedOutline(t *testing.T) {
	cfg := DefaultConfig()
	outline := wallRect(100, 100, 600, 400)
	divider := wallRect(380, 100, 12, 400) // partition spanning to the border

	elems := ClassifyVectors([]graphics.Polyline{outline, divider}, nil, true, 842, 595, cfg)
	for i, el := range elems {
		if el.Type == model.VectorTypeBoundary {
			t.Errorf("element %d: subdivided outline must not become the boundary", i)
		}
	}
}

func TestBoundaryAllowsDetachedFootprint(t *testing.T) {
	cfg := DefaultConfig()
	parcel := wallRect(50, 50, 700, 480)
	footprint := wallRect(200, 150, 250, 180) // well inside the parcel

	elems := ClassifyVectors([]graphics.Polyline{parcel, footprint}, nil, true, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeBoundary {
		t.Errorf("expected parcel Boundary, got %v", elems[0].Type)
	}
	if elems[1].Type == model.VectorTypeBoundary {
		t.Error("footprint must not become the boundary")
	}
}

func TestClassifyHatchFamily(t *testing.T) {
	cfg := DefaultConfig()
	var polys []graphics.Polyline
	for i := 0; i < 8; i++ {
		x := 100 + float64(i)*6
		polys = append(polys, strokedLine(x, 100, x+8, 108, 0.3))
	}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	for i, el := range elems {
		if el.Type != model.VectorTypeHatch {
			t.Errorf("segment %d: expected Hatch, got %v", i, el.Type)
		}
	}
}

func TestUnknownFallback(t *testing.T) {
	cfg := DefaultConfig()
	polys := []graphics.Polyline{strokedLine(100, 100, 150, 140, 0.5)}

	elems := ClassifyVectors(polys, nil, false, 842, 595, cfg)
	if elems[0].Type != model.VectorTypeUnknown {
		t.Errorf("expected Unknown, got %v", elems[0].Type)
	}
}
