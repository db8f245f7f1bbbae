package analysis

import (
	"fmt"

	"github.com/tsawler/planvec/model"
)

// Analyzer turns a page's classified elements into rooms, associated
// annotations and an optional setback analysis. It holds no per-page
// state and is safe to share across goroutines.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with default thresholds
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with the given thresholds
func NewAnalyzerWithConfig(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Input is the full element set for one page
type Input struct {
	Vectors []model.VectorElement
	Text    []model.TextElement
	Meta    model.PageMetadata

	// SitePlan enables boundary and setback handling, from a caller
	// hint or auto-detection
	SitePlan bool
}

// Analyze runs the analysis pass. It never mutates its input; revised
// classifications are emitted as new elements with Revised set.
func (a *Analyzer) Analyze(in Input) *model.DrawingExtractionResult {
	cfg := a.cfg

	vectors := make([]model.VectorElement, len(in.Vectors))
	copy(vectors, in.Vectors)
	vectors = append(vectors, reviseDoorGaps(vectors, cfg)...)

	var walls []model.VectorElement
	var boundary *model.VectorElement
	for i := range vectors {
		switch vectors[i].Type {
		case model.VectorTypeWall:
			walls = append(walls, vectors[i])
		case model.VectorTypeBoundary:
			if boundary == nil {
				boundary = &vectors[i]
			}
		}
	}

	rooms := buildRooms(walls, cfg)
	attachLabels(rooms, in.Text, cfg)
	unplaced := attachAnnotations(rooms, in.Text, cfg)

	result := &model.DrawingExtractionResult{
		Page:               in.Meta,
		Vectors:            vectors,
		Text:               in.Text,
		Rooms:              rooms,
		UnplacedDimensions: unplaced,
	}

	if in.SitePlan || boundary != nil {
		result.Setback = analyzeSetback(boundary, walls, in.Text)
		if in.SitePlan && boundary == nil {
			result.Warn(model.WarnNoBoundary, "site plan has no detectable parcel boundary")
		}
	}

	a.applyScale(result)

	for _, te := range in.Text {
		if te.Type == model.TextTypeDimension && te.Dimension == nil {
			result.Warn(model.WarnUnparsedDimension, fmt.Sprintf("could not parse dimension %q", te.Text))
		}
	}

	result.Confidence = confidence(result)
	return result
}

// reviseDoorGaps looks for unclassified short segments bridging two
// wall endpoints, the usual rendering of a door leaf across a wall
// opening, and emits a revised Door element for each. Originals are
// kept so the revision stays traceable.
func reviseDoorGaps(vectors []model.VectorElement, cfg Config) []model.VectorElement {
	var wallEnds []model.Point
	for _, v := range vectors {
		if v.Type != model.VectorTypeWall {
			continue
		}
		for _, seg := range centerlineSegments(v, cfg) {
			wallEnds = append(wallEnds, seg.a, seg.b)
		}
	}
	if len(wallEnds) == 0 {
		return nil
	}

	nearWallEnd := func(p model.Point) bool {
		for _, e := range wallEnds {
			if p.Distance(e) <= cfg.GapEndpointTolerance {
				return true
			}
		}
		return false
	}

	var revised []model.VectorElement
	for _, v := range vectors {
		if v.Type != model.VectorTypeUnknown || v.Closed || len(v.Points) < 2 {
			continue
		}
		length := v.Length()
		if length == 0 || length > cfg.DoorGapMax {
			continue
		}
		a := v.Points[0]
		b := v.Points[len(v.Points)-1]
		if !nearWallEnd(a) || !nearWallEnd(b) {
			continue
		}
		r := v
		r.Type = model.VectorTypeDoor
		r.Revised = true
		r.RevisedFrom = v.Type
		revised = append(revised, r)
	}
	return revised
}

// applyScale converts room and setback measurements to real-world
// units when the page carried a scale annotation; otherwise everything
// stays in page units and is flagged unscaled.
func (a *Analyzer) applyScale(result *model.DrawingExtractionResult) {
	scale := result.Page.Scale
	if scale == nil {
		result.Unscaled = true
		for i := range result.Rooms {
			result.Rooms[i].Unscaled = true
		}
		if result.Setback != nil {
			result.Setback.Unscaled = true
		}
		if len(result.Rooms) > 0 || result.Setback != nil {
			result.Warn(model.WarnNoScale, "no scale annotation detected; measurements are in page units")
		}
		return
	}

	for i := range result.Rooms {
		result.Rooms[i].Area = scale.Area(result.Rooms[i].Area)
		result.Rooms[i].Perimeter = scale.Length(result.Rooms[i].Perimeter)
	}
	if sb := result.Setback; sb != nil {
		for _, d := range []*float64{sb.Front, sb.Side, sb.Rear} {
			if d != nil {
				*d = scale.Length(*d)
			}
		}
	}
}

// confidence grades the page by the fraction of vector and text
// elements that classified successfully. Setback results are capped at
// MEDIUM because the edge-selection heuristic is a best-effort
// estimate.
func confidence(result *model.DrawingExtractionResult) model.ConfidenceTier {
	classified := 0
	total := 0
	for _, v := range result.Vectors {
		total++
		if v.Type != model.VectorTypeUnknown {
			classified++
		}
	}
	for _, te := range result.Text {
		total++
		if te.Type != model.TextTypeUnknown {
			classified++
		}
	}
	if total == 0 {
		return model.ConfidenceLow
	}

	frac := float64(classified) / float64(total)
	tier := model.ConfidenceLow
	switch {
	case frac >= 0.75:
		tier = model.ConfidenceHigh
	case frac >= 0.4:
		tier = model.ConfidenceMedium
	}
	if result.Setback != nil && tier > model.ConfidenceMedium {
		tier = model.ConfidenceMedium
	}
	return tier
}
