// Package classify assigns semantic types to extracted primitives: vector
// polylines become walls, doors, windows, dimension lines or boundaries,
// and text spans become dimensions, room labels, notes or title-block
// fields. It also parses dimension strings and drawing-scale annotations.
//
// Every threshold the heuristics depend on lives in Config and is injected
// by the caller; drawing scale varies too much between exports for
// hard-coded constants.
//
// The same text classifier is applied to native and OCR-derived spans so
// the two sources are classified consistently.
package classify
