// Package reader provides page-level access to vector drawing PDFs: page
// lookup, media box and rotation, content-stream bytes, and the raster
// image XObjects the OCR path needs.
package reader

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// Document is an open PDF drawing file
type Document struct {
	r     *pdf.Reader
	pages int
}

// Open opens the named PDF file. The returned Document must be closed
// after use.
func Open(filename string) (*Document, error) {
	r, err := pdf.Open(filename, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	n, err := pagetree.NumPages(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to read page tree: %w", err)
	}
	return &Document{r: r, pages: n}, nil
}

// Close releases the underlying file
func (d *Document) Close() error {
	return d.r.Close()
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return d.pages
}

// Page is one drawing page. Width and Height are the media box extent
// in PDF points; Rotate is the normalized /Rotate value in degrees.
type Page struct {
	Number int
	Width  float64
	Height float64
	Rotate int

	doc  *Document
	dict pdf.Dict
}

// Page returns the page with the given 1-based number
func (d *Document) Page(number int) (*Page, error) {
	if number < 1 || number > d.pages {
		return nil, fmt.Errorf("page %d out of range 1..%d", number, d.pages)
	}
	_, dict, err := pagetree.GetPage(d.r, number-1)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %d: %w", number, err)
	}

	p := &Page{Number: number, doc: d, dict: dict}

	box, err := pdf.GetRectangle(d.r, dict["MediaBox"])
	if err == nil && box != nil && box.URx > box.LLx && box.URy > box.LLy {
		p.Width = box.URx - box.LLx
		p.Height = box.URy - box.LLy
	} else {
		// US Letter, the PDF default when the media box is unusable
		p.Width, p.Height = 612, 792
	}

	if rot, err := pdf.GetInteger(d.r, dict["Rotate"]); err == nil {
		p.Rotate = normalizeRotation(int(rot))
	}
	return p, nil
}

// Content returns the page's decoded content stream. Multiple content
// streams are concatenated.
func (p *Page) Content() ([]byte, error) {
	stm, err := pagetree.ContentStream(p.doc.r, p.dict)
	if err != nil {
		return nil, fmt.Errorf("failed to open content stream: %w", err)
	}
	data, err := io.ReadAll(stm)
	if err != nil {
		return nil, fmt.Errorf("failed to read content stream: %w", err)
	}
	return data, nil
}

// normalizeRotation folds a /Rotate value into 0, 90, 180 or 270.
// Values that are not multiples of 90 are rounded down to one.
func normalizeRotation(deg int) int {
	deg = ((deg % 360) + 360) % 360
	return deg - deg%90
}
