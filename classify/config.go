package classify

// Config holds all classification thresholds, in page units (PDF points)
// unless stated otherwise
type Config struct {
	// Wall detection: a closed rectangle whose short side falls inside
	// [WallThicknessMin, WallThicknessMax] is a wall drawn with its real
	// thickness; an open straight segment qualifies when its stroke
	// width falls in the same band.
	WallThicknessMin float64
	WallThicknessMax float64

	// WallMinLength rejects fragments too short to be a wall run
	WallMinLength float64

	// Door detection: open arcs sweeping roughly a quarter turn
	DoorSweepDegrees   float64 // expected sweep
	DoorSweepTolerance float64 // allowed deviation from the sweep
	DoorMaxChord       float64 // maximum straight-line span of the arc

	// Window detection: pairs of short parallel segments embedded in a
	// wall run
	WindowMaxSpan float64 // maximum segment length
	WindowPairGap float64 // maximum separation of the pair

	// DimensionTextDistance associates a primitive with dimension text
	// near its endpoints
	DimensionTextDistance float64

	// Boundary detection: minimum fraction of the page area a closed
	// rectangle must enclose on a site plan, and the fraction of a
	// candidate a contained rectangle must cover to count as an
	// interior subdivision
	BoundaryMinAreaFraction     float64
	BoundarySubdivisionFraction float64

	// Hatch detection: families of short parallel strokes
	HatchMaxSegmentLength float64
	HatchMinFamily        int

	// Title-block banding: fraction of the page height (bottom band) and
	// width (right band) treated as title-block territory
	TitleBlockBand float64

	// OCRMinConfidence marks recognized spans below it as low confidence
	// (scale 0..1). They are kept, not suppressed.
	OCRMinConfidence float64
}

// DefaultConfig returns thresholds tuned for metric architectural drawings
// exported around 1:50 on A3-ish pages
func DefaultConfig() Config {
	return Config{
		WallThicknessMin:            1.5,
		WallThicknessMax:            18.0,
		WallMinLength:               20.0,
		DoorSweepDegrees:            90.0,
		DoorSweepTolerance:          25.0,
		DoorMaxChord:                80.0,
		WindowMaxSpan:               60.0,
		WindowPairGap:               10.0,
		DimensionTextDistance:       25.0,
		BoundaryMinAreaFraction:     0.30,
		BoundarySubdivisionFraction: 0.50,
		HatchMaxSegmentLength:       15.0,
		HatchMinFamily:              6,
		TitleBlockBand:              0.12,
		OCRMinConfidence:            0.60,
	}
}
