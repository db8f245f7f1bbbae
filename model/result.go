package model

import (
	"fmt"

	"github.com/google/uuid"
)

// RoomType classifies a reconstructed room
type RoomType int

const (
	RoomTypeUnspecified RoomType = iota
	RoomTypeBedroom
	RoomTypeBathroom
	RoomTypeKitchen
	RoomTypeLiving
	RoomTypeGarage
	RoomTypeStair
	RoomTypeCorridor
)

func (rt RoomType) String() string {
	switch rt {
	case RoomTypeBedroom:
		return "Bedroom"
	case RoomTypeBathroom:
		return "Bathroom"
	case RoomTypeKitchen:
		return "Kitchen"
	case RoomTypeLiving:
		return "Living"
	case RoomTypeGarage:
		return "Garage"
	case RoomTypeStair:
		return "Stair"
	case RoomTypeCorridor:
		return "Corridor"
	default:
		return "Unspecified"
	}
}

// Room is a closed wall loop interpreted as a room. Area and Perimeter are
// in real-world units when the page carried a scale, otherwise in page
// units with Unscaled set.
type Room struct {
	ID        string        `json:"id"`
	Polygon   Polygon       `json:"polygon"`
	Type      RoomType      `json:"type"`
	Area      float64       `json:"area"`
	Perimeter float64       `json:"perimeter"`
	Centroid  Point         `json:"centroid"`
	Box       BBox          `json:"bounding_box"`
	Labels    []TextElement `json:"labels,omitempty"`

	// Dimensions are dimension/note annotations associated with this room
	Dimensions []TextElement `json:"dimensions,omitempty"`

	Unscaled bool `json:"unscaled,omitempty"`
}

// RoomID derives a stable identifier from the room polygon so that
// identical input always yields identical output.
func RoomID(pg Polygon) string {
	var buf []byte
	for _, p := range pg {
		buf = fmt.Appendf(buf, "%.4f,%.4f;", p.X, p.Y)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, buf).String()
}

// SetbackAnalysis reports the distances from the building footprint to the
// parcel boundary on a site plan. The edge-selection heuristic (the longest
// boundary edge nearest a "front" label, else the bottom-most edge) is a
// best-effort estimate, not a survey computation; results containing a
// SetbackAnalysis are capped at ConfidenceMedium.
type SetbackAnalysis struct {
	Boundary  Polygon `json:"boundary"`
	Footprint Polygon `json:"building_footprint"`

	Front *float64 `json:"front"`
	Side  *float64 `json:"side"`
	Rear  *float64 `json:"rear"`

	Unscaled bool `json:"unscaled,omitempty"`
}

// Scale is a detected drawing-scale annotation. Ratio is the real-world
// length represented by one unit of page-space drawing, e.g. 50 for
// "1:50" and 48 for `1/4" = 1'-0"`. Metric selects the unit family the
// annotation was written in.
type Scale struct {
	Raw    string  `json:"raw"`
	Ratio  float64 `json:"ratio"`
	Metric bool    `json:"metric"`
}

const pointsPerInch = 72.0

// Length converts a page-space length (PDF points) to the scale's base
// unit: millimetres for metric scales, inches for imperial.
func (s Scale) Length(pts float64) float64 {
	if s.Metric {
		return pts / pointsPerInch * 25.4 * s.Ratio
	}
	return pts / pointsPerInch * s.Ratio
}

// Area converts a page-space area to the scale's base unit squared
func (s Scale) Area(ptsSq float64) float64 {
	f := s.Length(1)
	return ptsSq * f * f
}

// PageMetadata describes the page the elements came from
type PageMetadata struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PageNumber int     `json:"page_number"`
	Scale      *Scale  `json:"detected_scale,omitempty"`
}

// ConfidenceTier grades how much of the page was successfully classified
// and associated
type ConfidenceTier int

const (
	ConfidenceLow ConfidenceTier = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c ConfidenceTier) String() string {
	switch c {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as
// their names.
func (c ConfidenceTier) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Warning codes for degraded-content conditions. These never abort the
// pipeline; each lowers the confidence tier and/or leaves a field null.
const (
	WarnNoScale           = "no_scale"
	WarnUnparsedDimension = "unparsed_dimension"
	WarnOCRTimeout        = "ocr_timeout"
	WarnOCRUnavailable    = "ocr_unavailable"
	WarnOCRFailed         = "ocr_failed"
	WarnNoBoundary        = "no_boundary"
	WarnImageSkipped      = "image_skipped"
)

// Warning describes a degraded-content condition encountered on a page
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Page    int    `json:"page"`
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s: %s", w.Page, w.Code, w.Message)
}

// Warn appends a warning tagged with the result's page number
func (r *DrawingExtractionResult) Warn(code, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Code:    code,
		Message: message,
		Page:    r.Page.PageNumber,
	})
}

// DrawingExtractionResult is the aggregate output for one page, the only
// entity exposed across the pipeline boundary.
type DrawingExtractionResult struct {
	Page PageMetadata `json:"page"`

	Vectors []VectorElement `json:"vectors"`
	Text    []TextElement   `json:"text"`

	Rooms []Room `json:"rooms"`

	// UnplacedDimensions are dimension annotations farther than the
	// association threshold from any geometry
	UnplacedDimensions []TextElement `json:"unplaced_dimensions,omitempty"`

	Setback *SetbackAnalysis `json:"setback,omitempty"`

	Confidence ConfidenceTier `json:"extraction_confidence"`
	Unscaled   bool           `json:"unscaled,omitempty"`
	Warnings   []Warning      `json:"warnings,omitempty"`
}
