package classify

import (
	"testing"

	"github.com/tsawler/planvec/model"
)

func te(text string, x, y float64) model.TextElement {
	return model.TextElement{
		Text:     text,
		Position: model.Point{X: x, Y: y},
		BBox:     model.NewBBox(x, y, 40, 10),
	}
}

func TestClassifyTextOrder(t *testing.T) {
	const pageW, pageH = 842.0, 595.0
	cfg := DefaultConfig()

	tests := []struct {
		name string
		el   model.TextElement
		want model.TextType
	}{
		{"dimension mm", te("3800mm", 400, 300), model.TextTypeDimension},
		{"dimension imperial", te(`12'-6"`, 400, 300), model.TextTypeDimension},
		{"room label", te("BEDROOM 2", 400, 300), model.TextTypeRoomLabel},
		{"room label lowercase", te("kitchen", 400, 300), model.TextTypeRoomLabel},
		{"note", te("all walls fire rated", 400, 300), model.TextTypeNote},
		{"title block bottom", te("DRAWN BY: JM", 400, 20), model.TextTypeTitleBlock},
		{"title block right", te("SHEET A-101", 820, 300), model.TextTypeTitleBlock},
		{"empty", te("  ", 400, 300), model.TextTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyText(tt.el, pageW, pageH, cfg); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// A dimension in the title-block band is still a dimension: the dimension
// rule precedes banding.
func TestDimensionBeatsTitleBlock(t *testing.T) {
	cfg := DefaultConfig()
	got := ClassifyText(te("2400mm", 400, 10), 842, 595, cfg)
	if got != model.TextTypeDimension {
		t.Errorf("expected Dimension, got %v", got)
	}
}

func TestRoomTypeForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  model.RoomType
	}{
		{"BEDROOM 2", model.RoomTypeBedroom},
		{"Master Bed", model.RoomTypeBedroom},
		{"W.C.", model.RoomTypeUnspecified}, // punctuation inside the word
		{"WC", model.RoomTypeBathroom},
		{"KITCHEN", model.RoomTypeKitchen},
		{"LOUNGE", model.RoomTypeLiving},
		{"GARAGE", model.RoomTypeGarage},
		{"STAIR", model.RoomTypeStair},
		{"HALLWAY", model.RoomTypeCorridor},
		{"STORE", model.RoomTypeUnspecified},
	}
	for _, tt := range tests {
		if got := RoomTypeForLabel(tt.label); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.label, tt.want, got)
		}
	}
}
