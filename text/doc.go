// Package text extracts native (embedded, non-rasterized) text runs from
// content-stream operations, with their positions in page space.
//
// CAD exporters write annotation text with simple encodings, so the
// extractor decodes strings directly (UTF-16BE when a byte-order mark is
// present, Latin-1 otherwise) instead of carrying full font and CMap
// machinery. Glyph widths are estimated from the font size; for drawing
// annotations the resulting boxes are accurate enough for spatial
// association, which is all downstream consumers need.
package text
