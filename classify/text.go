package classify

import (
	"strings"

	"github.com/tsawler/planvec/model"
)

// roomVocabulary maps known room-name words to room types. Matching is
// case-insensitive and ignores trailing numbering ("BEDROOM 2").
var roomVocabulary = map[string]model.RoomType{
	"BEDROOM":  model.RoomTypeBedroom,
	"BED":      model.RoomTypeBedroom,
	"MASTER":   model.RoomTypeBedroom,
	"BATHROOM": model.RoomTypeBathroom,
	"BATH":     model.RoomTypeBathroom,
	"ENSUITE":  model.RoomTypeBathroom,
	"WC":       model.RoomTypeBathroom,
	"TOILET":   model.RoomTypeBathroom,
	"KITCHEN":  model.RoomTypeKitchen,
	"PANTRY":   model.RoomTypeKitchen,
	"LIVING":   model.RoomTypeLiving,
	"LOUNGE":   model.RoomTypeLiving,
	"DINING":   model.RoomTypeLiving,
	"FAMILY":   model.RoomTypeLiving,
	"GARAGE":   model.RoomTypeGarage,
	"CARPORT":  model.RoomTypeGarage,
	"STAIR":    model.RoomTypeStair,
	"STAIRS":   model.RoomTypeStair,
	"HALL":     model.RoomTypeCorridor,
	"HALLWAY":  model.RoomTypeCorridor,
	"CORRIDOR": model.RoomTypeCorridor,
	"ENTRY":    model.RoomTypeCorridor,
}

// maximum number of words a room label may have; longer strings are notes
const maxLabelWords = 4

// ClassifyText assigns a TextType to a recognized span. Rules are
// evaluated in order: dimension grammar, room-name vocabulary,
// title-block banding, then NOTE as the default.
func ClassifyText(te model.TextElement, pageWidth, pageHeight float64, cfg Config) model.TextType {
	s := strings.TrimSpace(te.Text)
	if s == "" {
		return model.TextTypeUnknown
	}

	if ParseDimension(s) != nil {
		return model.TextTypeDimension
	}

	if IsRoomLabel(s) {
		return model.TextTypeRoomLabel
	}

	if inTitleBlock(te.Position, pageWidth, pageHeight, cfg.TitleBlockBand) {
		return model.TextTypeTitleBlock
	}

	return model.TextTypeNote
}

// IsRoomLabel reports whether the string is a short room-name label
func IsRoomLabel(s string) bool {
	words := strings.Fields(strings.ToUpper(s))
	if len(words) == 0 || len(words) > maxLabelWords {
		return false
	}
	for _, w := range words {
		if _, ok := roomVocabulary[strings.Trim(w, ".,:")]; ok {
			return true
		}
	}
	return false
}

// RoomTypeForLabel maps a room-label string to its room type
func RoomTypeForLabel(s string) model.RoomType {
	for _, w := range strings.Fields(strings.ToUpper(s)) {
		if rt, ok := roomVocabulary[strings.Trim(w, ".,:")]; ok {
			return rt
		}
	}
	return model.RoomTypeUnspecified
}

// inTitleBlock applies bottom and right margin banding: title blocks sit
// along the bottom or the right edge of architectural sheets
func inTitleBlock(p model.Point, pageWidth, pageHeight, band float64) bool {
	if band <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return false
	}
	return p.Y < pageHeight*band || p.X > pageWidth*(1-band)
}
