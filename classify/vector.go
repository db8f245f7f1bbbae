package classify

import (
	"math"

	"github.com/tsawler/planvec/graphics"
	"github.com/tsawler/planvec/model"
)

// ClassifyVectors assigns a VectorType to each painted polyline, applying
// the heuristics in precedence order: wall, door, window, dimension line,
// boundary, hatch, unknown. dimensionTexts must already be classified;
// only elements of type Dimension are consulted. sitePlan enables the
// boundary rule.
func ClassifyVectors(polys []graphics.Polyline, dimensionTexts []model.TextElement, sitePlan bool, pageWidth, pageHeight float64, cfg Config) []model.VectorElement {
	elems := make([]model.VectorElement, len(polys))
	for i, pl := range polys {
		elems[i] = model.VectorElement{
			Type:        model.VectorTypeUnknown,
			Points:      pl.Points,
			StrokeWidth: pl.StrokeWidth,
			Closed:      pl.Closed,
			IsRect:      pl.IsRect(),
			HasCurve:    pl.HasCurve,
		}
	}

	// Pass 1: per-primitive rules in precedence order
	for i := range elems {
		pl := polys[i]
		switch {
		case isWall(pl, cfg):
			elems[i].Type = model.VectorTypeWall
		case isDoorArc(pl, cfg):
			elems[i].Type = model.VectorTypeDoor
		}
	}

	// Pass 2: window pairs among segments still unclassified
	markWindows(elems, cfg)

	// Pass 3: dimension lines from adjacent dimension text
	for i := range elems {
		if elems[i].Type != model.VectorTypeUnknown {
			continue
		}
		if nearDimensionText(elems[i], dimensionTexts, cfg.DimensionTextDistance) {
			elems[i].Type = model.VectorTypeDimensionLine
		}
	}

	// Pass 4: site-plan boundary
	if sitePlan {
		markBoundary(elems, pageWidth, pageHeight, cfg)
	}

	// Pass 5: hatch families
	markHatches(elems, cfg)

	return elems
}

// isWall applies the wall rule: a closed rectangle whose short side lies
// in the thickness band (a wall drawn at its real thickness), or an open
// straight run stroked at a width inside the band.
func isWall(pl graphics.Polyline, cfg Config) bool {
	if pl.IsRect() {
		bb := pl.BBox()
		short := math.Min(bb.Width, bb.Height)
		long := math.Max(bb.Width, bb.Height)
		return short >= cfg.WallThicknessMin && short <= cfg.WallThicknessMax &&
			long >= cfg.WallMinLength
	}
	if pl.Closed || pl.HasCurve || !pl.Stroked {
		return false
	}
	if !isStraight(pl.Points) {
		return false
	}
	return pl.StrokeWidth >= cfg.WallThicknessMin && pl.StrokeWidth <= cfg.WallThicknessMax &&
		pl.Length() >= cfg.WallMinLength
}

// isDoorArc detects a door swing: an open curved polyline sweeping
// roughly a quarter turn over a modest chord
func isDoorArc(pl graphics.Polyline, cfg Config) bool {
	if pl.Closed || !pl.HasCurve || len(pl.Points) < 3 {
		return false
	}
	chord := pl.Points[0].Distance(pl.Points[len(pl.Points)-1])
	if chord == 0 || chord > cfg.DoorMaxChord {
		return false
	}
	sweep := sweepDegrees(pl.Points)
	return math.Abs(sweep-cfg.DoorSweepDegrees) <= cfg.DoorSweepTolerance
}

// sweepDegrees measures the total tangent rotation along the polyline
func sweepDegrees(pts []model.Point) float64 {
	var total float64
	var prev float64
	havePrev := false
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		if dx == 0 && dy == 0 {
			continue
		}
		ang := math.Atan2(dy, dx)
		if havePrev {
			d := ang - prev
			for d > math.Pi {
				d -= 2 * math.Pi
			}
			for d < -math.Pi {
				d += 2 * math.Pi
			}
			total += d
		}
		prev = ang
		havePrev = true
	}
	return math.Abs(total) * 180 / math.Pi
}

// markWindows finds pairs of short parallel segments embedded in a wall
// run and classifies both as windows
func markWindows(elems []model.VectorElement, cfg Config) {
	type candidate struct {
		idx    int
		mid    model.Point
		angle  float64
		length float64
	}

	var cands []candidate
	var wallBoxes []model.BBox
	for _, el := range elems {
		if el.Type == model.VectorTypeWall {
			wallBoxes = append(wallBoxes, el.BBox().Expand(cfg.WallThicknessMax))
		}
	}
	if len(wallBoxes) == 0 {
		return
	}

	for i, el := range elems {
		if el.Type != model.VectorTypeUnknown || el.Closed || el.HasCurve {
			continue
		}
		if len(el.Points) < 2 || !isStraight(el.Points) {
			continue
		}
		length := el.Length()
		if length == 0 || length > cfg.WindowMaxSpan {
			continue
		}
		a := el.Points[0]
		b := el.Points[len(el.Points)-1]
		mid := model.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		if !insideAny(mid, wallBoxes) {
			continue
		}
		cands = append(cands, candidate{
			idx:    i,
			mid:    mid,
			angle:  segmentAngle(a, b),
			length: length,
		})
	}

	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			a, b := cands[i], cands[j]
			if elems[a.idx].Type != model.VectorTypeUnknown ||
				elems[b.idx].Type != model.VectorTypeUnknown {
				continue
			}
			if angleDiff(a.angle, b.angle) > 5 {
				continue
			}
			if a.mid.Distance(b.mid) > cfg.WindowPairGap {
				continue
			}
			elems[a.idx].Type = model.VectorTypeWindow
			elems[b.idx].Type = model.VectorTypeWindow
		}
	}
}

// nearDimensionText reports whether a dimension text sits within the
// distance threshold of any segment of the element
func nearDimensionText(el model.VectorElement, texts []model.TextElement, maxDist float64) bool {
	if len(el.Points) < 2 {
		return false
	}
	for _, te := range texts {
		if te.Type != model.TextTypeDimension {
			continue
		}
		c := te.BBox.Center()
		for i := 1; i < len(el.Points); i++ {
			if model.SegmentDistance(c, el.Points[i-1], el.Points[i]) <= maxDist {
				return true
			}
		}
	}
	return false
}

// markBoundary promotes the largest qualifying closed rectangle on a
// site plan to the parcel boundary. A rectangle qualifies when it
// encloses at least the configured fraction of the page and no other
// rectangle subdivides it.
func markBoundary(elems []model.VectorElement, pageWidth, pageHeight float64, cfg Config) {
	minArea := pageWidth * pageHeight * cfg.BoundaryMinAreaFraction
	best := -1
	var bestArea float64
	for i, el := range elems {
		if el.Type != model.VectorTypeUnknown || !el.IsRect {
			continue
		}
		area := el.BBox().Area()
		if area < minArea || area <= bestArea {
			continue
		}
		if subdivided(elems, i, cfg) {
			continue
		}
		best = i
		bestArea = area
	}
	if best >= 0 {
		elems[best].Type = model.VectorTypeBoundary
	}
}

// subdivided reports whether another closed rectangle partitions the
// candidate's interior. A rectangle reaching within a wall thickness of
// the candidate's border, or covering at least the configured fraction
// of it, marks the candidate as a building outline rather than a parcel
// boundary; a detached footprint well inside the candidate does not.
func subdivided(elems []model.VectorElement, cand int, cfg Config) bool {
	outer := elems[cand].BBox()
	inset := outer.Expand(-cfg.WallThicknessMax)
	for i, el := range elems {
		if i == cand || !el.Closed || !el.IsRect {
			continue
		}
		inner := el.BBox()
		if !containsBox(outer, inner) {
			continue
		}
		if inner.Area() >= outer.Area()*cfg.BoundarySubdivisionFraction {
			return true
		}
		if !containsBox(inset, inner) {
			return true
		}
	}
	return false
}

func containsBox(outer, inner model.BBox) bool {
	return inner.Left() >= outer.Left() && inner.Right() <= outer.Right() &&
		inner.Bottom() >= outer.Bottom() && inner.Top() <= outer.Top()
}

// markHatches classifies families of short parallel strokes as hatching
func markHatches(elems []model.VectorElement, cfg Config) {
	// Bucket unclassified short straight segments by quantized angle
	buckets := make(map[int][]int)
	for i, el := range elems {
		if el.Type != model.VectorTypeUnknown || el.Closed || el.HasCurve {
			continue
		}
		if len(el.Points) < 2 || !isStraight(el.Points) {
			continue
		}
		if el.Length() > cfg.HatchMaxSegmentLength {
			continue
		}
		a := el.Points[0]
		b := el.Points[len(el.Points)-1]
		key := int(math.Round(segmentAngle(a, b)/15)) % 12
		buckets[key] = append(buckets[key], i)
	}

	for _, idxs := range buckets {
		if len(idxs) < cfg.HatchMinFamily {
			continue
		}
		// Require spatial coherence: the family must sit in a compact
		// region, not be scattered page-wide ticks
		box := elems[idxs[0]].BBox()
		for _, i := range idxs[1:] {
			box = box.Union(elems[i].BBox())
		}
		limit := cfg.HatchMaxSegmentLength * 12
		if box.Width > limit || box.Height > limit {
			continue
		}
		for _, i := range idxs {
			elems[i].Type = model.VectorTypeHatch
		}
	}
}

func isStraight(pts []model.Point) bool {
	if len(pts) <= 2 {
		return len(pts) == 2
	}
	a := pts[0]
	b := pts[len(pts)-1]
	for _, p := range pts[1 : len(pts)-1] {
		if model.SegmentDistance(p, a, b) > 0.5 {
			return false
		}
	}
	return true
}

// segmentAngle returns the undirected angle of a-b in degrees [0, 180)
func segmentAngle(a, b model.Point) float64 {
	ang := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	for ang < 0 {
		ang += 180
	}
	for ang >= 180 {
		ang -= 180
	}
	return ang
}

func angleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 90 {
		d = 180 - d
	}
	return d
}

func insideAny(p model.Point, boxes []model.BBox) bool {
	for _, b := range boxes {
		if b.Contains(p) {
			return true
		}
	}
	return false
}
