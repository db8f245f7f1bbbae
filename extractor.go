package planvec

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/planvec/analysis"
	"github.com/tsawler/planvec/classify"
	"github.com/tsawler/planvec/contentstream"
	"github.com/tsawler/planvec/graphics"
	"github.com/tsawler/planvec/model"
	"github.com/tsawler/planvec/ocr"
	"github.com/tsawler/planvec/reader"
	"github.com/tsawler/planvec/text"
)

// Extractor provides a fluent interface for extracting drawing data
// from vector PDFs. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	doc      *reader.Document

	// Lifecycle
	ownsDoc bool // true if we opened the document and should close it
	opened  bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability: each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		doc:      e.doc,
		ownsDoc:  e.ownsDoc,
		opened:   e.opened,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// Pages specifies which pages to extract (1-indexed). Multiple calls
// are cumulative. Without a Pages call every page is extracted.
func (e *Extractor) Pages(nums ...int) *Extractor {
	ne := e.clone()
	ne.options.pages = append(ne.options.pages, nums...)
	return ne
}

// WithDocumentType hints the drawing kind, tuning which heuristics
// apply. Without a hint, site plans are auto-detected from page text.
func (e *Extractor) WithDocumentType(dt DocumentType) *Extractor {
	ne := e.clone()
	ne.options.docType = dt
	return ne
}

// Workers bounds the page worker pool used by ExtractAll
func (e *Extractor) Workers(n int) *Extractor {
	ne := e.clone()
	if n < 1 {
		n = 1
	}
	ne.options.workers = n
	return ne
}

// OCRTimeout bounds each OCR invocation. On timeout the page completes
// with its native text only.
func (e *Extractor) OCRTimeout(d time.Duration) *Extractor {
	ne := e.clone()
	ne.options.ocrTimeout = d
	return ne
}

// OCRLanguage sets the recognition language(s), e.g. "eng" or "eng+fra"
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	ne := e.clone()
	ne.options.ocrLanguage = lang
	return ne
}

// WithClassifyConfig replaces the vector/text classification thresholds
func (e *Extractor) WithClassifyConfig(cfg classify.Config) *Extractor {
	ne := e.clone()
	ne.options.classify = cfg
	return ne
}

// WithAnalysisConfig replaces the geometry-analysis thresholds
func (e *Extractor) WithAnalysisConfig(cfg analysis.Config) *Extractor {
	ne := e.clone()
	ne.options.analysis = cfg
	return ne
}

// ensureDocument opens the document if not already open
func (e *Extractor) ensureDocument() error {
	if e.err != nil {
		return e.err
	}
	if e.opened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	doc, err := reader.Open(e.filename)
	if err != nil {
		return err
	}
	e.doc = doc
	e.ownsDoc = true
	e.opened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		e.ownsDoc = false
		return err
	}
	return nil
}

// PageCount returns the number of pages in the document
func (e *Extractor) PageCount() (int, error) {
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// PageResult pairs one page's extraction outcome with its page number.
// A failed page carries its error here; it never aborts other pages.
type PageResult struct {
	Page   int
	Result *model.DrawingExtractionResult
	Err    error
}

// ExtractPage runs the full pipeline on one page (1-indexed)
func (e *Extractor) ExtractPage(ctx context.Context, number int) (*model.DrawingExtractionResult, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	return e.extractPage(ctx, number)
}

// ExtractAll runs the pipeline on the selected pages (all pages when
// none were selected) with a bounded worker pool. Page failures,
// including ErrNoVectorContent, are reported per page in the returned
// slice; only document-level failures return an error. The Extractor is
// closed when ExtractAll returns.
func (e *Extractor) ExtractAll(ctx context.Context) ([]PageResult, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	defer e.Close()

	pages := e.pageSelection()
	results := make([]PageResult, len(pages))

	var g errgroup.Group
	g.SetLimit(e.options.workers)
	for i, pageNo := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = PageResult{Page: pageNo, Err: err}
				return nil
			}
			res, err := e.extractPage(ctx, pageNo)
			results[i] = PageResult{Page: pageNo, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// pageSelection resolves the configured page numbers, sorted and
// deduplicated, defaulting to every page.
func (e *Extractor) pageSelection() []int {
	if len(e.options.pages) == 0 {
		all := make([]int, e.doc.PageCount())
		for i := range all {
			all[i] = i + 1
		}
		return all
	}
	seen := make(map[int]bool)
	var pages []int
	for _, n := range e.options.pages {
		if !seen[n] {
			seen[n] = true
			pages = append(pages, n)
		}
	}
	sort.Ints(pages)
	return pages
}

// pageContent is the raw harvest of one page's content stream
type pageContent struct {
	polylines []graphics.Polyline
	images    []graphics.ImagePlacement
	runs      []text.Run
	width     float64
	height    float64
}

// pendingWarning defers a warning until the result exists
type pendingWarning struct {
	code    string
	message string
}

func (e *Extractor) extractPage(ctx context.Context, number int) (*model.DrawingExtractionResult, error) {
	pg, err := e.doc.Page(number)
	if err != nil {
		return nil, err
	}
	content, err := pg.Content()
	if err != nil {
		return nil, err
	}

	pc, err := parseContent(content, pg.Width, pg.Height, pg.Rotate)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	if len(pc.polylines) == 0 {
		return nil, ErrNoVectorContent
	}

	var pending []pendingWarning
	ocrTexts := e.recognizeImages(ctx, pg, pc.images, func(code, message string) {
		pending = append(pending, pendingWarning{code, message})
	})

	return e.assemble(pc, ocrTexts, number, pending)
}

// parseContent tokenizes the content stream and harvests vector
// polylines, image placements and native text runs. Page rotation is
// folded into the device transform so all coordinates come out in the
// displayed orientation.
func parseContent(content []byte, width, height float64, rotate int) (*pageContent, error) {
	ops, err := contentstream.NewParser(content).Parse()
	if err != nil {
		return nil, fmt.Errorf("malformed content stream: %w", err)
	}

	base, w, h := rotationTransform(rotate, width, height)

	gx := graphics.NewExtractor()
	gx.SetTransform(base)
	if err := gx.Extract(ops); err != nil {
		return nil, err
	}

	tx := text.NewExtractor()
	tx.SetTransform(base)
	if err := tx.Extract(ops); err != nil {
		return nil, err
	}

	return &pageContent{
		polylines: gx.Polylines,
		images:    gx.Images,
		runs:      tx.Runs,
		width:     w,
		height:    h,
	}, nil
}

// rotationTransform maps content coordinates into the displayed
// orientation for a /Rotate value, returning the transform and the
// effective page size.
func rotationTransform(rotate int, width, height float64) (model.Matrix, float64, float64) {
	switch rotate {
	case 90:
		return model.Matrix{0, -1, 1, 0, 0, width}, height, width
	case 180:
		return model.Matrix{-1, 0, 0, -1, width, height}, width, height
	case 270:
		return model.Matrix{0, 1, -1, 0, height, 0}, height, width
	default:
		return model.Identity(), width, height
	}
}

// assemble classifies the harvested elements and runs the geometry
// analysis, producing the page result.
func (e *Extractor) assemble(pc *pageContent, ocrTexts []model.TextElement, pageNumber int, pending []pendingWarning) (*model.DrawingExtractionResult, error) {
	if len(pc.polylines) == 0 {
		return nil, ErrNoVectorContent
	}
	ccfg := e.options.classify

	texts := make([]model.TextElement, 0, len(pc.runs)+len(ocrTexts))
	for _, run := range pc.runs {
		texts = append(texts, model.TextElement{
			Text:       run.Text,
			Position:   run.Position,
			BBox:       run.BBox,
			Source:     model.SourceNative,
			Confidence: 1,
		})
	}
	texts = append(texts, ocrTexts...)

	// Native and OCR text go through the same classifier
	for i := range texts {
		te := &texts[i]
		te.Type = classify.ClassifyText(*te, pc.width, pc.height, ccfg)
		if te.Type == model.TextTypeDimension {
			te.Dimension = classify.ParseDimension(te.Text)
		}
		if te.Source == model.SourceOCR && te.Confidence < ccfg.OCRMinConfidence {
			te.LowConfidence = true
		}
	}

	scale := classify.DetectScale(texts)
	sitePlan := e.options.docType == DocSitePlan ||
		(e.options.docType == "" && mentionsSitePlan(texts))

	vectors := classify.ClassifyVectors(pc.polylines, texts, sitePlan, pc.width, pc.height, ccfg)

	analyzer := analysis.NewAnalyzerWithConfig(e.options.analysis)
	result := analyzer.Analyze(analysis.Input{
		Vectors: vectors,
		Text:    texts,
		Meta: model.PageMetadata{
			Width:      pc.width,
			Height:     pc.height,
			PageNumber: pageNumber,
			Scale:      scale,
		},
		SitePlan: sitePlan,
	})

	for _, p := range pending {
		result.Warn(p.code, p.message)
	}
	return result, nil
}

// recognizeImages OCRs each placed raster image and maps the word boxes
// back to page coordinates. OCR problems degrade to warnings; the page
// still completes with its native text.
func (e *Extractor) recognizeImages(ctx context.Context, pg *reader.Page, placements []graphics.ImagePlacement, warn func(code, message string)) []model.TextElement {
	if len(placements) == 0 {
		return nil
	}

	client, err := ocr.New()
	if err != nil {
		warn(model.WarnOCRUnavailable, err.Error())
		return nil
	}
	defer client.Close()
	if e.options.ocrLanguage != "" {
		if err := client.SetLanguage(e.options.ocrLanguage); err != nil {
			warn(model.WarnOCRFailed, fmt.Sprintf("failed to set language: %v", err))
			return nil
		}
	}

	var out []model.TextElement
	for _, placement := range placements {
		if ctx.Err() != nil {
			warn(model.WarnOCRTimeout, "cancelled before all images were recognized")
			break
		}

		img, err := pg.Image(placement.Name)
		if err != nil {
			warn(model.WarnImageSkipped, err.Error())
			continue
		}
		img = ocr.Upscale(img, minOCRWidth)

		octx, cancel := context.WithTimeout(ctx, e.options.ocrTimeout)
		words, err := client.Recognize(octx, img)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				warn(model.WarnOCRTimeout, fmt.Sprintf("image %s: recognition timed out", placement.Name))
			} else {
				warn(model.WarnOCRFailed, fmt.Sprintf("image %s: %v", placement.Name, err))
			}
			continue
		}

		bounds := img.Bounds()
		for _, word := range words {
			box := ocr.MapBox(word.Box, bounds.Dx(), bounds.Dy(), placement.BBox)
			out = append(out, model.TextElement{
				Text:       word.Text,
				Position:   model.Point{X: box.X, Y: box.Y},
				BBox:       box,
				Source:     model.SourceOCR,
				Confidence: word.Confidence,
			})
		}
	}
	return out
}

// minOCRWidth is the raster width Tesseract recognizes drawing
// annotations at reliably
const minOCRWidth = 800

func mentionsSitePlan(texts []model.TextElement) bool {
	for _, te := range texts {
		if strings.Contains(strings.ToUpper(te.Text), "SITE PLAN") {
			return true
		}
	}
	return false
}
