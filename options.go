package planvec

import (
	"time"

	"github.com/tsawler/planvec/analysis"
	"github.com/tsawler/planvec/classify"
)

// ExtractOptions holds configuration for drawing extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Heuristic tuning
	docType  DocumentType
	classify classify.Config
	analysis analysis.Config

	// Concurrency and OCR
	workers     int
	ocrTimeout  time.Duration
	ocrLanguage string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil, // nil means all pages
		docType:     "",  // auto-detect
		classify:    classify.DefaultConfig(),
		analysis:    analysis.DefaultConfig(),
		workers:     4,
		ocrTimeout:  30 * time.Second,
		ocrLanguage: "",
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
