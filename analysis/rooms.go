package analysis

import (
	"math"
	"sort"

	"github.com/tsawler/planvec/model"
)

// wallGraph is an arena of snapped wall endpoints with an adjacency
// list of wall segments, indexed by integers rather than pointers.
type wallGraph struct {
	nodes []model.Point
	adj   [][]int
	index map[[2]int64]int
	edges map[[2]int]struct{}
	tol   float64
}

func newWallGraph(tol float64) *wallGraph {
	return &wallGraph{
		index: make(map[[2]int64]int),
		edges: make(map[[2]int]struct{}),
		tol:   tol,
	}
}

// node returns the arena index for p, merging points that quantize to
// the same cell at the snap tolerance. The first point seen in a cell
// fixes the node position, so output depends only on input order.
func (g *wallGraph) node(p model.Point) int {
	key := [2]int64{
		int64(math.Round(p.X / g.tol)),
		int64(math.Round(p.Y / g.tol)),
	}
	if i, ok := g.index[key]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, p)
	g.adj = append(g.adj, nil)
	g.index[key] = i
	return i
}

func (g *wallGraph) addSegment(a, b model.Point) {
	ai := g.node(a)
	bi := g.node(b)
	if ai == bi {
		return
	}
	lo, hi := ai, bi
	if lo > hi {
		lo, hi = hi, lo
	}
	if _, dup := g.edges[[2]int{lo, hi}]; dup {
		return
	}
	g.edges[[2]int{lo, hi}] = struct{}{}
	g.adj[ai] = append(g.adj[ai], bi)
	g.adj[bi] = append(g.adj[bi], ai)
}

// sortAdjacency orders each node's neighbors counterclockwise by angle.
// The face sweep depends on this ordering.
func (g *wallGraph) sortAdjacency() {
	for u := range g.adj {
		nbrs := g.adj[u]
		p := g.nodes[u]
		sort.Slice(nbrs, func(i, j int) bool {
			ai := math.Atan2(g.nodes[nbrs[i]].Y-p.Y, g.nodes[nbrs[i]].X-p.X)
			aj := math.Atan2(g.nodes[nbrs[j]].Y-p.Y, g.nodes[nbrs[j]].X-p.X)
			if ai != aj {
				return ai < aj
			}
			return nbrs[i] < nbrs[j]
		})
	}
}

// faces enumerates the bounded faces of the planar subdivision by
// rotational sweep: each directed edge is consumed once, and from the
// edge u->v the walk continues along v's neighbor immediately clockwise
// of the return edge. Interior faces come out counterclockwise; the
// unbounded outer face comes out clockwise and is dropped by the caller
// through its negative signed area.
func (g *wallGraph) faces() []model.Polygon {
	visited := make(map[[2]int]bool)
	maxSteps := 0
	for _, nbrs := range g.adj {
		maxSteps += len(nbrs)
	}

	var out []model.Polygon
	for u := range g.adj {
		for _, v := range g.adj[u] {
			start := [2]int{u, v}
			if visited[start] {
				continue
			}
			var face []int
			cur := start
			for steps := 0; steps <= maxSteps; steps++ {
				visited[cur] = true
				face = append(face, cur[0])
				a, b := cur[0], cur[1]
				nbrs := g.adj[b]
				i := 0
				for k, n := range nbrs {
					if n == a {
						i = k
						break
					}
				}
				cur = [2]int{b, nbrs[(i-1+len(nbrs))%len(nbrs)]}
				if cur == start {
					break
				}
			}
			if len(face) < 3 {
				continue
			}
			pg := make(model.Polygon, len(face))
			for i, n := range face {
				pg[i] = g.nodes[n]
			}
			out = append(out, pg)
		}
	}
	return out
}

// wallSegment is a centerline candidate for the wall graph. halfT is
// half the drawn thickness for runs reduced from wall rectangles, zero
// for segments taken as drawn.
type wallSegment struct {
	a, b  model.Point
	halfT float64
}

func (s *wallSegment) end(i int) model.Point {
	if i == 0 {
		return s.a
	}
	return s.b
}

func (s *wallSegment) setEnd(i int, p model.Point) {
	if i == 0 {
		s.a = p
	} else {
		s.b = p
	}
}

// centerlineSegments reduces a wall element to the segments it
// contributes to the wall graph. A closed rectangle thin and elongated
// enough to be a wall run drawn at its real thickness collapses to the
// centerline between the midpoints of its short sides; any other
// element contributes its polyline edges directly.
func centerlineSegments(el model.VectorElement, cfg Config) []wallSegment {
	pts := el.Points
	if len(pts) < 2 {
		return nil
	}

	if el.Closed && el.IsRect && len(pts) == 4 {
		s01 := pts[0].Distance(pts[1])
		s12 := pts[1].Distance(pts[2])
		short, long := s01, s12
		if short > long {
			short, long = long, short
		}
		if short > 0 && short <= cfg.WallRectMaxThickness && long >= cfg.WallRectMinAspect*short {
			if s01 <= s12 {
				return []wallSegment{{a: mid(pts[0], pts[1]), b: mid(pts[2], pts[3]), halfT: short / 2}}
			}
			return []wallSegment{{a: mid(pts[1], pts[2]), b: mid(pts[3], pts[0]), halfT: short / 2}}
		}
	}

	segs := make([]wallSegment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		segs = append(segs, wallSegment{a: pts[i-1], b: pts[i]})
	}
	if el.Closed {
		segs = append(segs, wallSegment{a: pts[len(pts)-1], b: pts[0]})
	}
	return segs
}

func mid(a, b model.Point) model.Point {
	return model.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// joinCorners moves centerline endpoints that meet at a wall corner to
// the intersection of their supporting lines. Collapsing a rectangle to
// its centerline pulls each end back from the true corner by the
// adjoining run's half thickness, so the join reach grows with both
// thicknesses; zero-thickness segments keep the plain snap tolerance.
func joinCorners(segs []wallSegment, tol float64) {
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			reach := tol + segs[i].halfT + segs[j].halfT
			for ei := 0; ei < 2; ei++ {
				for ej := 0; ej < 2; ej++ {
					pi := segs[i].end(ei)
					pj := segs[j].end(ej)
					if pi.Distance(pj) > reach {
						continue
					}
					p, ok := lineIntersection(segs[i].a, segs[i].b, segs[j].a, segs[j].b)
					if !ok || pi.Distance(p) > reach || pj.Distance(p) > reach {
						p = mid(pi, pj)
					}
					segs[i].setEnd(ei, p)
					segs[j].setEnd(ej, p)
				}
			}
		}
	}
}

// snapToRuns projects an endpoint onto a run it butts into end-to-face.
// The abutting run's centerline stops half the through run's thickness
// short of the through run's centerline; the projection puts it on the
// run so splitAtJunctions can make the junction a node.
func snapToRuns(segs []wallSegment, tol float64) {
	for i := range segs {
		for e := 0; e < 2; e++ {
			p := segs[i].end(e)
			for j := range segs {
				if j == i {
					continue
				}
				reach := tol + segs[i].halfT + segs[j].halfT
				a, b := segs[j].a, segs[j].b
				if p.Distance(a) <= reach || p.Distance(b) <= reach {
					// corner, handled by joinCorners
					continue
				}
				if model.SegmentDistance(p, a, b) > reach {
					continue
				}
				segs[i].setEnd(e, projectOntoSegment(p, a, b))
				break
			}
		}
	}
}

// lineIntersection intersects the infinite lines through a1-a2 and
// b1-b2; ok is false for parallel lines.
func lineIntersection(a1, a2, b1, b2 model.Point) (model.Point, bool) {
	d1x, d1y := a2.X-a1.X, a2.Y-a1.Y
	d2x, d2y := b2.X-b1.X, b2.Y-b1.Y
	den := d1x*d2y - d1y*d2x
	if math.Abs(den) < 1e-9 {
		return model.Point{}, false
	}
	t := ((b1.X-a1.X)*d2y - (b1.Y-a1.Y)*d2x) / den
	return model.Point{X: a1.X + t*d1x, Y: a1.Y + t*d1y}, true
}

func projectOntoSegment(p, a, b model.Point) model.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return model.Point{X: a.X + t*dx, Y: a.Y + t*dy}
}

// splitAtJunctions subdivides segments at T-junctions: wherever another
// segment's endpoint lands on a segment's interior within the snap
// tolerance, the segment is split there so the junction becomes a graph
// node. Without this, a partition wall abutting mid-run would dangle.
func splitAtJunctions(segs [][2]model.Point, tol float64) [][2]model.Point {
	var ends []model.Point
	for _, s := range segs {
		ends = append(ends, s[0], s[1])
	}

	var out [][2]model.Point
	for _, s := range segs {
		a, b := s[0], s[1]
		length := a.Distance(b)
		if length == 0 {
			continue
		}
		dx := (b.X - a.X) / length
		dy := (b.Y - a.Y) / length

		// Interior split positions as distances along the segment
		var ts []float64
		for _, p := range ends {
			t := (p.X-a.X)*dx + (p.Y-a.Y)*dy
			if t <= tol || t >= length-tol {
				continue
			}
			if model.SegmentDistance(p, a, b) <= tol {
				ts = append(ts, t)
			}
		}
		if len(ts) == 0 {
			out = append(out, s)
			continue
		}
		sort.Float64s(ts)
		prev := a
		for _, t := range ts {
			next := model.Point{X: a.X + t*dx, Y: a.Y + t*dy}
			out = append(out, [2]model.Point{prev, next})
			prev = next
		}
		out = append(out, [2]model.Point{prev, b})
	}
	return out
}

// buildRooms reconstructs rooms from wall elements: snap endpoints,
// enumerate wall-loop faces, discard the outer face, degenerate loops
// and self-intersecting cycles, and return the survivors in canonical
// order.
func buildRooms(walls []model.VectorElement, cfg Config) []model.Room {
	var wsegs []wallSegment
	for _, w := range walls {
		wsegs = append(wsegs, centerlineSegments(w, cfg)...)
	}
	joinCorners(wsegs, cfg.SnapTolerance)
	snapToRuns(wsegs, cfg.SnapTolerance)

	segs := make([][2]model.Point, 0, len(wsegs))
	for _, s := range wsegs {
		if s.a.Distance(s.b) == 0 {
			continue
		}
		segs = append(segs, [2]model.Point{s.a, s.b})
	}
	segs = splitAtJunctions(segs, cfg.SnapTolerance)

	g := newWallGraph(cfg.SnapTolerance)
	for _, seg := range segs {
		g.addSegment(seg[0], seg[1])
	}
	g.sortAdjacency()

	var rooms []model.Room
	for _, pg := range g.faces() {
		if pg.SignedArea() < cfg.MinRoomArea {
			continue
		}
		if selfIntersects(pg) {
			continue
		}
		pg = canonical(pg)
		rooms = append(rooms, model.Room{
			ID:        model.RoomID(pg),
			Polygon:   pg,
			Type:      model.RoomTypeUnspecified,
			Area:      pg.Area(),
			Perimeter: pg.Perimeter(),
			Centroid:  pg.Centroid(),
			Box:       pg.BBox(),
		})
	}

	sort.Slice(rooms, func(i, j int) bool {
		a, b := rooms[i].Polygon[0], rooms[j].Polygon[0]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return rooms[i].Area < rooms[j].Area
	})
	return rooms
}

// canonical rotates the vertex sequence so the lexicographically
// smallest vertex comes first, preserving orientation, so the same loop
// always serializes identically.
func canonical(pg model.Polygon) model.Polygon {
	best := 0
	for i := 1; i < len(pg); i++ {
		if pg[i].X < pg[best].X || (pg[i].X == pg[best].X && pg[i].Y < pg[best].Y) {
			best = i
		}
	}
	if best == 0 {
		return pg
	}
	out := make(model.Polygon, 0, len(pg))
	out = append(out, pg[best:]...)
	out = append(out, pg[:best]...)
	return out
}

// selfIntersects reports whether any two non-adjacent edges of the
// closed polygon cross
func selfIntersects(pg model.Polygon) bool {
	n := len(pg)
	for i := 0; i < n; i++ {
		a1 := pg[i]
		a2 := pg[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1 := pg[j]
			b2 := pg[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(a1, a2, b1, b2 model.Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b model.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
