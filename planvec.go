// Package planvec extracts structured drawing data from CAD-exported
// vector PDF pages: classified wall/door/window geometry, reconstructed
// rooms with areas and types, parsed dimension annotations, and setback
// measurements on site plans.
//
// Basic usage:
//
//	result, err := planvec.Open("plans.pdf").ExtractPage(ctx, 1)
//	if err != nil {
//	    // handle error
//	}
//	if len(result.Warnings) > 0 {
//	    log.Println(planvec.FormatWarnings(result.Warnings))
//	}
//
// With options:
//
//	results, err := planvec.Open("plans.pdf").
//	    WithDocumentType(planvec.DocSitePlan).
//	    Pages(2, 3).
//	    ExtractAll(ctx)
//
// Pages whose content is purely rasterized carry no vector geometry and
// return ErrNoVectorContent; route those to an external raster OCR or
// vision path instead.
//
// For advanced use cases, the lower-level reader, classify and analysis
// packages are also available.
package planvec

import (
	"errors"
	"strings"

	"github.com/tsawler/planvec/model"
	"github.com/tsawler/planvec/reader"
)

// DocumentType hints which drawing heuristics apply. Setback analysis
// runs only for site plans, hinted or auto-detected.
type DocumentType string

const (
	DocFloorPlan DocumentType = "floor_plan"
	DocSitePlan  DocumentType = "site_plan"
	DocElevation DocumentType = "elevation"
	DocSection   DocumentType = "section"
)

// ErrNoVectorContent is returned for pages with no vector drawing
// primitives, typically scanned raster content. The page is not an
// error in itself; the caller should route it to a raster pipeline.
var ErrNoVectorContent = errors.New("page contains no vector content")

// Open opens a PDF file and returns an Extractor for fluent
// configuration. The returned Extractor must be closed when done,
// either explicitly via Close() or implicitly through the terminal
// ExtractAll call.
//
// Example:
//
//	result, err := planvec.Open("plans.pdf").ExtractPage(ctx, 1)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor from an already-opened
// reader.Document. The caller keeps ownership and is responsible for
// closing the document.
func FromDocument(doc *reader.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		opened:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings renders warnings as a single human-readable string
func FormatWarnings(warnings []model.Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
