package text

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/planvec/contentstream"
	"github.com/tsawler/planvec/model"
)

// Run is a positioned piece of native text
type Run struct {
	Text     string
	Position model.Point // baseline origin in page space
	BBox     model.BBox
	FontSize float64 // effective size in page space
}

// approximate average glyph advance as a fraction of the font size,
// used when no width data is available
const avgGlyphWidth = 0.55

// Extractor extracts text runs from content streams
type Extractor struct {
	Runs []Run

	ctm      model.Matrix
	ctmStack []model.Matrix

	tm       model.Matrix // text matrix
	tlm      model.Matrix // text line matrix
	fontSize float64
	leading  float64
	inText   bool
}

// NewExtractor creates a new text extractor
func NewExtractor() *Extractor {
	return &Extractor{
		ctm:      model.Identity(),
		tm:       model.Identity(),
		tlm:      model.Identity(),
		fontSize: 12,
	}
}

// SetTransform installs a base transformation applied beneath all
// content-stream operations, used to honor page rotation.
func (e *Extractor) SetTransform(m model.Matrix) {
	e.ctm = m
}

// ExtractFromBytes parses raw content-stream data and extracts all text runs
func (e *Extractor) ExtractFromBytes(data []byte) error {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return err
	}
	return e.Extract(ops)
}

// Extract processes a sequence of content-stream operations
func (e *Extractor) Extract(ops []contentstream.Operation) error {
	for _, op := range ops {
		e.processOperation(op)
	}
	return nil
}

func (e *Extractor) processOperation(op contentstream.Operation) {
	switch op.Operator {
	case "q":
		e.ctmStack = append(e.ctmStack, e.ctm)
	case "Q":
		if n := len(e.ctmStack); n > 0 {
			e.ctm = e.ctmStack[n-1]
			e.ctmStack = e.ctmStack[:n-1]
		}
	case "cm":
		if len(op.Operands) == 6 {
			m := model.Matrix{
				op.Float(0), op.Float(1), op.Float(2),
				op.Float(3), op.Float(4), op.Float(5),
			}
			e.ctm = m.Multiply(e.ctm)
		}

	case "BT":
		e.tm = model.Identity()
		e.tlm = model.Identity()
		e.inText = true
	case "ET":
		e.inText = false

	case "Tf":
		if len(op.Operands) == 2 {
			e.fontSize = op.Float(1)
		}
	case "TL":
		e.leading = op.Float(0)

	case "Tm":
		if len(op.Operands) == 6 {
			e.tm = model.Matrix{
				op.Float(0), op.Float(1), op.Float(2),
				op.Float(3), op.Float(4), op.Float(5),
			}
			e.tlm = e.tm
		}
	case "Td":
		e.tlm = model.Translate(op.Float(0), op.Float(1)).Multiply(e.tlm)
		e.tm = e.tlm
	case "TD":
		e.leading = -op.Float(1)
		e.tlm = model.Translate(op.Float(0), op.Float(1)).Multiply(e.tlm)
		e.tm = e.tlm
	case "T*":
		e.nextLine()

	case "Tj":
		if len(op.Operands) == 1 {
			e.showString(op.Operands[0].Str)
		}
	case "'":
		if len(op.Operands) == 1 {
			e.nextLine()
			e.showString(op.Operands[0].Str)
		}
	case "\"":
		if len(op.Operands) == 3 {
			e.nextLine()
			e.showString(op.Operands[2].Str)
		}
	case "TJ":
		if len(op.Operands) == 1 && op.Operands[0].Kind == contentstream.KindArray {
			e.showArray(op.Operands[0].Arr)
		}
	}
}

func (e *Extractor) nextLine() {
	e.tlm = model.Translate(0, -e.leading).Multiply(e.tlm)
	e.tm = e.tlm
}

// showString decodes and records a single shown string, then advances the
// text matrix by the estimated width
func (e *Extractor) showString(raw []byte) {
	if !e.inText || len(raw) == 0 {
		return
	}
	s := DecodeString(raw)
	if s == "" {
		e.advance(estimateAdvance(len(raw), e.fontSize))
		return
	}

	trm := e.tm.Multiply(e.ctm)
	origin := trm.Transform(model.Point{})
	size := e.fontSize * trm.ScaleFactor()
	width := float64(len([]rune(s))) * avgGlyphWidth * size

	run := Run{
		Text:     s,
		Position: origin,
		FontSize: size,
		BBox:     model.NewBBox(origin.X, origin.Y, width, size),
	}
	if trimmed := strings.TrimSpace(run.Text); trimmed != "" {
		e.Runs = append(e.Runs, run)
	}

	e.advance(float64(len([]rune(s))) * avgGlyphWidth * e.fontSize)
}

// showArray handles the TJ operator: strings interleaved with kerning
// adjustments in thousandths of the font size
func (e *Extractor) showArray(arr []contentstream.Value) {
	if !e.inText {
		return
	}

	// Merge the array into one run; CAD exports kern within a single
	// annotation far more often than they juxtapose separate ones.
	start := e.tm
	var buf strings.Builder
	for _, v := range arr {
		switch v.Kind {
		case contentstream.KindString:
			buf.WriteString(DecodeString(v.Str))
			e.advance(float64(len(v.Str)) * avgGlyphWidth * e.fontSize)
		case contentstream.KindNumber:
			e.advance(-v.Num / 1000 * e.fontSize)
		}
	}

	s := strings.TrimSpace(buf.String())
	if s == "" {
		return
	}

	trm := start.Multiply(e.ctm)
	origin := trm.Transform(model.Point{})
	size := e.fontSize * trm.ScaleFactor()
	width := float64(len([]rune(s))) * avgGlyphWidth * size

	e.Runs = append(e.Runs, Run{
		Text:     s,
		Position: origin,
		FontSize: size,
		BBox:     model.NewBBox(origin.X, origin.Y, width, size),
	})
}

// advance moves the text matrix along the baseline by tx (text space)
func (e *Extractor) advance(tx float64) {
	e.tm = model.Translate(tx, 0).Multiply(e.tm)
}

func estimateAdvance(nbytes int, fontSize float64) float64 {
	return float64(nbytes) * avgGlyphWidth * fontSize
}

var utf16Decoder = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)

// DecodeString converts a PDF string to UTF-8. Strings with a UTF-16BE
// byte-order mark are decoded as such; strings that look like BOM-less
// UTF-16BE (alternating zero high bytes) are decoded the same way;
// everything else is treated as Latin-1.
func DecodeString(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		out, _, err := transform.Bytes(utf16Decoder.NewDecoder(), raw)
		if err == nil {
			return string(out)
		}
		raw = raw[2:]
	}

	if looksLikeUTF16BE(raw) {
		var buf bytes.Buffer
		for i := 0; i+1 < len(raw); i += 2 {
			buf.WriteRune(rune(uint16(raw[i])<<8 | uint16(raw[i+1])))
		}
		return buf.String()
	}

	var buf bytes.Buffer
	for _, b := range raw {
		buf.WriteRune(rune(b))
	}
	return buf.String()
}

func looksLikeUTF16BE(raw []byte) bool {
	if len(raw) < 4 || len(raw)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 0; i < len(raw); i += 2 {
		if raw[i] == 0 {
			zeros++
		}
	}
	pairs := len(raw) / 2
	return zeros*4 >= pairs*3 // at least 75% of high bytes are zero
}
