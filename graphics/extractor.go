package graphics

import (
	"github.com/tsawler/planvec/contentstream"
	"github.com/tsawler/planvec/model"
)

// ImagePlacement records where an XObject was painted on the page.
// PDF paints images into the unit square of user space, so the placement
// box is the CTM image of that square.
type ImagePlacement struct {
	Name string
	BBox model.BBox
}

// Extractor walks content-stream operations and collects painted vector
// primitives and image placements
type Extractor struct {
	// Polylines are the painted subpaths in device space
	Polylines []Polyline

	// Images are the placements of painted XObjects
	Images []ImagePlacement

	// CurveSamples is the number of chords each Bézier is flattened to
	CurveSamples int

	// MinLength filters out degenerate primitives (device units)
	MinLength float64

	gs   *State
	path *Path
}

// NewExtractor creates a vector extractor with default settings
func NewExtractor() *Extractor {
	return &Extractor{
		CurveSamples: 8,
		MinLength:    0.5,
		gs:           NewState(),
		path:         NewPath(),
	}
}

// SetTransform installs a base transformation applied beneath all
// content-stream operations, used to honor page rotation.
func (e *Extractor) SetTransform(m model.Matrix) {
	e.gs.CTM = m
}

// ExtractFromBytes parses raw content-stream data and extracts all
// painted primitives
func (e *Extractor) ExtractFromBytes(data []byte) error {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return err
	}
	return e.Extract(ops)
}

// Extract processes a sequence of content-stream operations
func (e *Extractor) Extract(ops []contentstream.Operation) error {
	for _, op := range ops {
		if err := e.processOperation(op); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) processOperation(op contentstream.Operation) error {
	switch op.Operator {
	// Graphics state
	case "q":
		e.gs.Save()
	case "Q":
		// Tolerate underflow: malformed CAD exports sometimes emit
		// unbalanced Q, and the geometry is still usable
		_ = e.gs.Restore()
	case "cm":
		if len(op.Operands) == 6 {
			e.gs.Transform(model.Matrix{
				op.Float(0), op.Float(1), op.Float(2),
				op.Float(3), op.Float(4), op.Float(5),
			})
		}
	case "w":
		if len(op.Operands) == 1 {
			e.gs.LineWidth = op.Float(0)
		}

	// Path construction
	case "m":
		e.path.MoveTo(op.Float(0), op.Float(1))
	case "l":
		e.path.LineTo(op.Float(0), op.Float(1))
	case "c":
		e.path.CurveTo(op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(4), op.Float(5))
	case "v":
		e.path.CurveToV(op.Float(0), op.Float(1), op.Float(2), op.Float(3))
	case "y":
		e.path.CurveToY(op.Float(0), op.Float(1), op.Float(2), op.Float(3))
	case "h":
		e.path.ClosePath()
	case "re":
		e.path.Rectangle(op.Float(0), op.Float(1), op.Float(2), op.Float(3))

	// Path painting
	case "S":
		e.paint(true, false)
	case "s":
		e.path.ClosePath()
		e.paint(true, false)
	case "f", "F", "f*":
		e.paint(false, true)
	case "B", "B*":
		e.paint(true, true)
	case "b", "b*":
		e.path.ClosePath()
		e.paint(true, true)
	case "n":
		e.path.Clear()

	// XObject painting
	case "Do":
		if len(op.Operands) == 1 && op.Operands[0].Kind == contentstream.KindName {
			e.Images = append(e.Images, ImagePlacement{
				Name: op.Operands[0].Name,
				BBox: e.unitSquareBBox(),
			})
		}
	}
	return nil
}

// paint flattens the current path into polylines and keeps those above the
// degenerate-length filter
func (e *Extractor) paint(stroked, filled bool) {
	polys := e.path.flatten(e.gs, stroked, filled, e.CurveSamples)
	for _, pl := range polys {
		if pl.Length() < e.MinLength {
			continue
		}
		e.Polylines = append(e.Polylines, pl)
	}
	e.path.Clear()
}

// unitSquareBBox maps the unit square through the CTM
func (e *Extractor) unitSquareBBox() model.BBox {
	corners := []model.Point{
		e.gs.CTM.Transform(model.Point{X: 0, Y: 0}),
		e.gs.CTM.Transform(model.Point{X: 1, Y: 0}),
		e.gs.CTM.Transform(model.Point{X: 1, Y: 1}),
		e.gs.CTM.Transform(model.Point{X: 0, Y: 1}),
	}
	return model.BBoxFromPoints(corners)
}
