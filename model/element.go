package model

// VectorType classifies a drawing primitive
type VectorType int

const (
	VectorTypeUnknown VectorType = iota
	VectorTypeWall
	VectorTypeDoor
	VectorTypeWindow
	VectorTypeDimensionLine
	VectorTypeHatch
	VectorTypeBoundary
)

func (vt VectorType) String() string {
	switch vt {
	case VectorTypeWall:
		return "Wall"
	case VectorTypeDoor:
		return "Door"
	case VectorTypeWindow:
		return "Window"
	case VectorTypeDimensionLine:
		return "DimensionLine"
	case VectorTypeHatch:
		return "Hatch"
	case VectorTypeBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// VectorElement is a classified drawing primitive: a polyline of points in
// page space plus the attributes the classifier used. Elements are created
// once during extraction and never mutated; when the analyzer revises a
// classification from context it emits a new element with Revised set and
// RevisedFrom carrying the provisional type.
type VectorElement struct {
	Type        VectorType `json:"type"`
	Points      []Point    `json:"points"`
	StrokeWidth float64    `json:"stroke_width"`
	Closed      bool       `json:"closed"`
	IsRect      bool       `json:"is_rect"`
	HasCurve    bool       `json:"has_curve"`

	Revised     bool       `json:"revised,omitempty"`
	RevisedFrom VectorType `json:"revised_from,omitempty"`
}

// BBox returns the element's bounding box
func (e VectorElement) BBox() BBox {
	return BBoxFromPoints(e.Points)
}

// Length returns the total polyline length, including the closing edge
// for closed elements.
func (e VectorElement) Length() float64 {
	if len(e.Points) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(e.Points); i++ {
		sum += e.Points[i-1].Distance(e.Points[i])
	}
	if e.Closed {
		sum += e.Points[len(e.Points)-1].Distance(e.Points[0])
	}
	return sum
}

// TextType classifies a text annotation
type TextType int

const (
	TextTypeUnknown TextType = iota
	TextTypeDimension
	TextTypeRoomLabel
	TextTypeNote
	TextTypeTitleBlock
)

func (tt TextType) String() string {
	switch tt {
	case TextTypeDimension:
		return "Dimension"
	case TextTypeRoomLabel:
		return "RoomLabel"
	case TextTypeNote:
		return "Note"
	case TextTypeTitleBlock:
		return "TitleBlock"
	default:
		return "Unknown"
	}
}

// TextSource records how a text element was obtained
type TextSource int

const (
	// SourceNative is text embedded as glyph data in the PDF
	SourceNative TextSource = iota
	// SourceOCR is text recognized from rasterized page regions
	SourceOCR
)

func (ts TextSource) String() string {
	if ts == SourceOCR {
		return "ocr"
	}
	return "native"
}

// TextElement is a positioned text annotation. Confidence is 1.0 for
// native text; OCR-derived elements carry the engine's confidence and are
// kept even below the configured threshold, with LowConfidence set, so
// that callers can flag rather than lose data.
type TextElement struct {
	Text          string           `json:"text"`
	Position      Point            `json:"position"`
	BBox          BBox             `json:"bounding_box"`
	Source        TextSource       `json:"source"`
	Type          TextType         `json:"type"`
	Confidence    float64          `json:"confidence"`
	LowConfidence bool             `json:"low_confidence,omitempty"`
	Dimension     *ParsedDimension `json:"dimension,omitempty"`
}

// Unit is a real-world length unit
type Unit int

const (
	UnitMillimetre Unit = iota
	UnitMetre
	UnitFeet
	UnitInch
)

func (u Unit) String() string {
	switch u {
	case UnitMetre:
		return "m"
	case UnitFeet:
		return "ft"
	case UnitInch:
		return "in"
	default:
		return "mm"
	}
}

// Metric reports whether the unit belongs to the metric family
func (u Unit) Metric() bool {
	return u == UnitMillimetre || u == UnitMetre
}

// FeetInches holds the two parts of a compound imperial dimension
type FeetInches struct {
	Feet   float64 `json:"feet"`
	Inches float64 `json:"inches"`
}

// ParsedDimension is the numeric interpretation of a dimension string.
// Value is normalized to the unit family's base unit: millimetres for
// metric input, inches for imperial input. Unit records the unit as
// written. Compound is set for feet-inches notations.
type ParsedDimension struct {
	Raw      string      `json:"raw"`
	Value    float64     `json:"value"`
	Unit     Unit        `json:"unit"`
	Compound *FeetInches `json:"compound,omitempty"`
}
