package classify

import (
	"math"
	"testing"

	"github.com/tsawler/planvec/model"
)

func TestParseScaleMetric(t *testing.T) {
	s := ParseScale("SCALE 1:50")
	if s == nil {
		t.Fatal("failed to parse metric scale")
	}
	if !s.Metric || s.Ratio != 50 {
		t.Errorf("unexpected scale: %+v", s)
	}

	s = ParseScale("1 : 100 @ A3")
	if s == nil || s.Ratio != 100 {
		t.Errorf("expected ratio 100, got %+v", s)
	}
}

func TestParseScaleImperial(t *testing.T) {
	s := ParseScale(`1/4" = 1'-0"`)
	if s == nil {
		t.Fatal("failed to parse imperial scale")
	}
	if s.Metric {
		t.Error("imperial scale marked metric")
	}
	if math.Abs(s.Ratio-48) > 1e-9 {
		t.Errorf("expected ratio 48, got %f", s.Ratio)
	}

	s = ParseScale(`1" = 10'`)
	if s == nil || math.Abs(s.Ratio-120) > 1e-9 {
		t.Errorf("expected ratio 120, got %+v", s)
	}
}

func TestParseScaleRejects(t *testing.T) {
	for _, in := range []string{"BEDROOM 2", "3800mm", "", "scale:"} {
		if s := ParseScale(in); s != nil {
			t.Errorf("expected %q to be rejected, got %+v", in, s)
		}
	}
}

func TestDetectScale(t *testing.T) {
	texts := []model.TextElement{
		{Text: "FLOOR PLAN"},
		{Text: "SCALE 1:50"},
		{Text: "3800mm"},
	}
	s := DetectScale(texts)
	if s == nil || s.Ratio != 50 {
		t.Errorf("expected 1:50, got %+v", s)
	}

	// Absence is not an error
	if s := DetectScale(texts[2:]); s != nil {
		t.Errorf("expected no scale, got %+v", s)
	}
}
