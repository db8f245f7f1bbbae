package analysis

import (
	"math"

	"github.com/tsawler/planvec/classify"
	"github.com/tsawler/planvec/model"
)

// attachLabels binds each room-label text to the room that contains it,
// or is within LabelMargin of it, and assigns the room's type from the
// label nearest its centroid. A label binds to at most one room; ties
// are broken by centroid distance, then by input order.
func attachLabels(rooms []model.Room, texts []model.TextElement, cfg Config) {
	for _, te := range texts {
		if te.Type != model.TextTypeRoomLabel {
			continue
		}
		best := -1
		bestDist := 0.0
		for i := range rooms {
			d := polygonDistance(te.Position, rooms[i].Polygon)
			if d > cfg.LabelMargin {
				continue
			}
			cd := te.Position.Distance(rooms[i].Centroid)
			if best < 0 || cd < bestDist {
				best = i
				bestDist = cd
			}
		}
		if best >= 0 {
			rooms[best].Labels = append(rooms[best].Labels, te)
		}
	}

	for i := range rooms {
		room := &rooms[i]
		bestDist := 0.0
		for _, lb := range room.Labels {
			rt := classify.RoomTypeForLabel(lb.Text)
			if rt == model.RoomTypeUnspecified {
				continue
			}
			d := lb.Position.Distance(room.Centroid)
			if room.Type == model.RoomTypeUnspecified || d < bestDist {
				room.Type = rt
				bestDist = d
			}
		}
	}
}

// attachAnnotations binds each dimension and note text to the nearest
// room within AssociationDistance. Each text has at most one owner.
// Dimension texts that bind nowhere are returned so the caller can
// surface them as unplaced.
func attachAnnotations(rooms []model.Room, texts []model.TextElement, cfg Config) []model.TextElement {
	var unplaced []model.TextElement
	for _, te := range texts {
		if te.Type != model.TextTypeDimension && te.Type != model.TextTypeNote {
			continue
		}
		best := -1
		bestDist := 0.0
		for i := range rooms {
			d := polygonDistance(te.Position, rooms[i].Polygon)
			if d > cfg.AssociationDistance {
				continue
			}
			if best < 0 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		if best >= 0 {
			rooms[best].Dimensions = append(rooms[best].Dimensions, te)
		} else if te.Type == model.TextTypeDimension {
			unplaced = append(unplaced, te)
		}
	}
	return unplaced
}

// polygonDistance returns the distance from p to the polygon's
// boundary, zero when p lies inside
func polygonDistance(p model.Point, pg model.Polygon) float64 {
	if len(pg) < 2 {
		return math.Inf(1)
	}
	if pg.Contains(p) {
		return 0
	}
	min := -1.0
	for i := range pg {
		d := model.SegmentDistance(p, pg[i], pg[(i+1)%len(pg)])
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}
