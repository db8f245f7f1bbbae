// Package model defines the shared vocabulary of the drawing-extraction
// pipeline: geometry primitives, classified vector and text elements,
// parsed dimensions, and the per-page extraction result.
//
// Values in this package are plain data. Coordinates are in page space
// (native PDF units, y increasing upward) until a detected drawing scale
// converts derived quantities to real-world units.
package model
