package analysis

import (
	"sort"
	"strings"

	"github.com/tsawler/planvec/model"
)

// analyzeSetback measures the distances from the building footprint to
// the parcel boundary. The footprint is the convex hull of all wall
// geometry. The front edge is the longest boundary edge nearest a
// "front" text when one exists, otherwise the bottom-most edge; the
// rear edge is the boundary edge farthest from the front edge, and the
// side distance is the minimum over the remaining edges. Distances are
// in page units; the caller applies the scale.
//
// Returns nil when the page has no boundary or too little wall geometry
// to form a footprint.
func analyzeSetback(boundary *model.VectorElement, walls []model.VectorElement, texts []model.TextElement) *model.SetbackAnalysis {
	if boundary == nil || len(boundary.Points) < 3 {
		return nil
	}

	var pts []model.Point
	for _, w := range walls {
		pts = append(pts, w.Points...)
	}
	footprint := convexHull(pts)
	if len(footprint) < 3 {
		return nil
	}

	bpg := model.Polygon(boundary.Points)
	front := frontEdge(bpg, texts)

	sb := &model.SetbackAnalysis{
		Boundary:  bpg,
		Footprint: footprint,
	}

	frontDist := edgeDistance(footprint, bpg[front], bpg[(front+1)%len(bpg)])
	sb.Front = &frontDist

	rear := rearEdge(bpg, front)
	if rear >= 0 {
		d := edgeDistance(footprint, bpg[rear], bpg[(rear+1)%len(bpg)])
		sb.Rear = &d
	}

	side := -1.0
	for i := range bpg {
		if i == front || i == rear {
			continue
		}
		d := edgeDistance(footprint, bpg[i], bpg[(i+1)%len(bpg)])
		if side < 0 || d < side {
			side = d
		}
	}
	if side >= 0 {
		sb.Side = &side
	}
	return sb
}

// frontEdge picks the boundary edge index regarded as the street front
func frontEdge(bpg model.Polygon, texts []model.TextElement) int {
	n := len(bpg)

	var anchor *model.Point
	for _, te := range texts {
		if strings.Contains(strings.ToUpper(te.Text), "FRONT") {
			p := te.Position
			anchor = &p
			break
		}
	}

	if anchor != nil {
		// Longest edge nearest the label. Length dominates so lot lines
		// beat dimension ticks; among comparably long edges the nearest
		// wins.
		best := 0
		bestScore := -1.0
		for i := 0; i < n; i++ {
			a, b := bpg[i], bpg[(i+1)%n]
			length := a.Distance(b)
			dist := model.SegmentDistance(*anchor, a, b)
			score := length / (1 + dist)
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		return best
	}

	// Bottom-most edge, by midpoint height; longest wins ties
	best := 0
	bestY := 0.0
	bestLen := 0.0
	for i := 0; i < n; i++ {
		a, b := bpg[i], bpg[(i+1)%n]
		y := (a.Y + b.Y) / 2
		length := a.Distance(b)
		if i == 0 || y < bestY || (y == bestY && length > bestLen) {
			best = i
			bestY = y
			bestLen = length
		}
	}
	return best
}

// rearEdge picks the edge whose midpoint is farthest from the front
// edge midpoint
func rearEdge(bpg model.Polygon, front int) int {
	n := len(bpg)
	fm := mid(bpg[front], bpg[(front+1)%n])
	best := -1
	bestDist := 0.0
	for i := 0; i < n; i++ {
		if i == front {
			continue
		}
		m := mid(bpg[i], bpg[(i+1)%n])
		d := fm.Distance(m)
		if best < 0 || d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// edgeDistance returns the minimum distance from the footprint's
// vertices to the boundary edge a-b
func edgeDistance(footprint model.Polygon, a, b model.Point) float64 {
	min := -1.0
	for _, p := range footprint {
		d := model.SegmentDistance(p, a, b)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

// convexHull computes the convex hull of the points using the monotone
// chain algorithm, returned in counterclockwise order.
func convexHull(pts []model.Point) model.Polygon {
	if len(pts) < 3 {
		return nil
	}
	sorted := make([]model.Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var lower, upper []model.Point
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil
	}
	return model.Polygon(hull)
}
