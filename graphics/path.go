package graphics

import (
	"math"

	"github.com/tsawler/planvec/model"
)

// segmentType defines the type of path segment
type segmentType int

const (
	segMoveTo segmentType = iota
	segLineTo
	segCurveTo
	segClosePath
)

// segment is a single piece of a path under construction.
// For curveTo the points are control point 1, control point 2, end point.
type segment struct {
	typ    segmentType
	points []model.Point
}

// Path is a graphics path being constructed in user space
type Path struct {
	segments []segment

	current      model.Point
	subpathStart model.Point
	hasCurrent   bool
}

// NewPath creates a new empty path
func NewPath() *Path {
	return &Path{segments: make([]segment, 0, 8)}
}

// MoveTo starts a new subpath at the specified point (m operator)
func (p *Path) MoveTo(x, y float64) {
	pt := model.Point{X: x, Y: y}
	p.segments = append(p.segments, segment{typ: segMoveTo, points: []model.Point{pt}})
	p.current = pt
	p.subpathStart = pt
	p.hasCurrent = true
}

// LineTo appends a line segment from the current point to (x, y) (l operator)
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := model.Point{X: x, Y: y}
	p.segments = append(p.segments, segment{typ: segLineTo, points: []model.Point{pt}})
	p.current = pt
}

// CurveTo appends a cubic Bézier curve (c operator)
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.hasCurrent {
		p.MoveTo(x1, y1)
	}
	p.segments = append(p.segments, segment{typ: segCurveTo, points: []model.Point{
		{X: x1, Y: y1},
		{X: x2, Y: y2},
		{X: x3, Y: y3},
	}})
	p.current = model.Point{X: x3, Y: y3}
}

// CurveToV appends a curve with the first control point at the current
// point (v operator)
func (p *Path) CurveToV(x2, y2, x3, y3 float64) {
	if !p.hasCurrent {
		return
	}
	p.CurveTo(p.current.X, p.current.Y, x2, y2, x3, y3)
}

// CurveToY appends a curve with the second control point at the end point
// (y operator)
func (p *Path) CurveToY(x1, y1, x3, y3 float64) {
	if !p.hasCurrent {
		return
	}
	p.CurveTo(x1, y1, x3, y3, x3, y3)
}

// ClosePath closes the current subpath (h operator)
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.segments = append(p.segments, segment{typ: segClosePath})
	p.current = p.subpathStart
}

// Rectangle appends a rectangle as a complete subpath (re operator)
func (p *Path) Rectangle(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.ClosePath()
}

// Clear resets the path
func (p *Path) Clear() {
	p.segments = p.segments[:0]
	p.hasCurrent = false
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Polyline is a painted subpath flattened to device space
type Polyline struct {
	Points      []model.Point
	StrokeWidth float64
	Closed      bool
	Stroked     bool
	Filled      bool
	HasCurve    bool
}

// IsRect reports whether the polyline is a closed quadrilateral with
// four near-right angles.
func (pl Polyline) IsRect() bool {
	if !pl.Closed || pl.HasCurve {
		return false
	}
	pts := pl.Points
	// Drop an explicit closing vertex
	if len(pts) == 5 && pts[0].NearlyEqual(pts[4], 0.1) {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		a := pts[i]
		b := pts[(i+1)%4]
		c := pts[(i+2)%4]
		ux, uy := b.X-a.X, b.Y-a.Y
		vx, vy := c.X-b.X, c.Y-b.Y
		lu := math.Hypot(ux, uy)
		lv := math.Hypot(vx, vy)
		if lu == 0 || lv == 0 {
			return false
		}
		dot := (ux*vx + uy*vy) / (lu * lv)
		if math.Abs(dot) > 0.05 {
			return false
		}
	}
	return true
}

// BBox returns the polyline's bounding box
func (pl Polyline) BBox() model.BBox {
	return model.BBoxFromPoints(pl.Points)
}

// Length returns the total polyline length
func (pl Polyline) Length() float64 {
	var sum float64
	for i := 1; i < len(pl.Points); i++ {
		sum += pl.Points[i-1].Distance(pl.Points[i])
	}
	if pl.Closed && len(pl.Points) > 1 {
		sum += pl.Points[len(pl.Points)-1].Distance(pl.Points[0])
	}
	return sum
}

// flatten converts the path to one polyline per subpath, transformed to
// device space. curveSamples controls how many chords each Bézier
// becomes.
func (p *Path) flatten(gs *State, stroked, filled bool, curveSamples int) []Polyline {
	if curveSamples < 2 {
		curveSamples = 2
	}

	var out []Polyline
	var pts []model.Point
	var hasCurve, closed bool
	var current, subStart model.Point

	emit := func() {
		if len(pts) >= 2 {
			out = append(out, Polyline{
				Points:      pts,
				StrokeWidth: gs.DeviceLineWidth(),
				Closed:      closed,
				Stroked:     stroked,
				Filled:      filled,
				HasCurve:    hasCurve,
			})
		}
		pts = nil
		hasCurve = false
		closed = false
	}

	for _, seg := range p.segments {
		switch seg.typ {
		case segMoveTo:
			emit()
			current = seg.points[0]
			subStart = current
			pts = []model.Point{gs.CTM.Transform(current)}

		case segLineTo:
			pts = append(pts, gs.CTM.Transform(seg.points[0]))
			current = seg.points[0]

		case segCurveTo:
			c1, c2, end := seg.points[0], seg.points[1], seg.points[2]
			for i := 1; i <= curveSamples; i++ {
				t := float64(i) / float64(curveSamples)
				pts = append(pts, gs.CTM.Transform(bezierPoint(current, c1, c2, end, t)))
			}
			hasCurve = true
			current = end

		case segClosePath:
			closed = true
			current = subStart
		}
	}
	emit()

	return out
}

// bezierPoint evaluates a cubic Bézier at parameter t
func bezierPoint(p0, c1, c2, p3 model.Point, t float64) model.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return model.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}
