// Package analysis reconstructs rooms from classified wall geometry,
// attaches nearby labels and dimensions, and measures setbacks on site
// plans. The analyzer is a pure function of its inputs; identical input
// always produces identical output.
package analysis

// Config holds the geometric thresholds the analyzer works with. All
// values are in page units (PDF points). Thresholds are injected rather
// than hard-coded because drawing scale varies between documents.
type Config struct {
	// SnapTolerance merges near-coincident wall endpoints into one
	// graph node. CAD exports rarely produce exact coincidence.
	SnapTolerance float64

	// MinRoomArea discards near-degenerate wall loops
	MinRoomArea float64

	// WallRectMaxThickness and WallRectMinAspect decide when a closed
	// rectangular wall element is a wall run drawn at its real thickness
	// (reduced to its centerline) rather than a room outline.
	WallRectMaxThickness float64
	WallRectMinAspect    float64

	// LabelMargin extends each room polygon when matching room labels,
	// so a label lettered just outside its room still binds.
	LabelMargin float64

	// AssociationDistance is the farthest a dimension or note may sit
	// from a room's bounding geometry and still attach to it
	AssociationDistance float64

	// DoorGapMax bounds the length of an unknown segment bridging two
	// wall ends before it can be reclassified as a door leaf
	DoorGapMax float64

	// GapEndpointTolerance is how close a bridging segment's endpoint
	// must be to a wall endpoint
	GapEndpointTolerance float64
}

// DefaultConfig returns thresholds tuned for residential plans plotted
// at common architectural scales on A3/A1 sheets.
func DefaultConfig() Config {
	return Config{
		SnapTolerance:        2.0,
		MinRoomArea:          4.0,
		WallRectMaxThickness: 18.0,
		WallRectMinAspect:    3.0,
		LabelMargin:          10.0,
		AssociationDistance:  40.0,
		DoorGapMax:           60.0,
		GapEndpointTolerance: 4.0,
	}
}
