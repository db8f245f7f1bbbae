package classify

import (
	"math"
	"testing"

	"github.com/tsawler/planvec/model"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  model.Unit
	}{
		{"3800mm", 3800, model.UnitMillimetre},
		{"3.8 m", 3800, model.UnitMetre},
		{"3,8 m", 3800, model.UnitMetre},
		{"2400 mm", 2400, model.UnitMillimetre},
		{`12'-6"`, 150, model.UnitFeet},
		{`12' 6 1/2"`, 150.5, model.UnitFeet},
		{`12'`, 144, model.UnitFeet},
		{`6"`, 6, model.UnitInch},
		{`6 1/2"`, 6.5, model.UnitInch},
		{`30in`, 30, model.UnitInch},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := ParseDimension(tt.in)
			if d == nil {
				t.Fatalf("failed to parse %q", tt.in)
			}
			if math.Abs(d.Value-tt.value) > 1e-9 {
				t.Errorf("expected value %f, got %f", tt.value, d.Value)
			}
			if d.Unit != tt.unit {
				t.Errorf("expected unit %v, got %v", tt.unit, d.Unit)
			}
			if d.Raw != tt.in {
				t.Errorf("raw not preserved: %q", d.Raw)
			}
		})
	}
}

func TestParseDimensionCompound(t *testing.T) {
	d := ParseDimension(`12'-6"`)
	if d == nil || d.Compound == nil {
		t.Fatal("expected compound dimension")
	}
	if d.Compound.Feet != 12 || d.Compound.Inches != 6 {
		t.Errorf("unexpected compound: %+v", d.Compound)
	}

	// Feet-only has no compound part
	d = ParseDimension(`12'`)
	if d == nil {
		t.Fatal("failed to parse feet-only")
	}
	if d.Compound != nil {
		t.Errorf("feet-only should not set compound, got %+v", d.Compound)
	}
}

func TestParseDimensionRejects(t *testing.T) {
	for _, in := range []string{
		"BEDROOM 2",
		"SCALE 1:50",
		"",
		"mm",
		"3800", // bare number, no unit token
		"fire rated wall",
	} {
		if d := ParseDimension(in); d != nil {
			t.Errorf("expected %q to be rejected, got %+v", in, d)
		}
	}
}

// Formatting a parsed dimension back to its canonical string and
// re-parsing must yield the same numeric value.
func TestDimensionRoundTrip(t *testing.T) {
	for _, in := range []string{
		"3800mm",
		"3.8m",
		`12'-6"`,
		`12' 6 1/2"`,
		`6 1/2"`,
		`12'`,
	} {
		t.Run(in, func(t *testing.T) {
			d := ParseDimension(in)
			if d == nil {
				t.Fatalf("failed to parse %q", in)
			}
			formatted := FormatDimension(d)
			d2 := ParseDimension(formatted)
			if d2 == nil {
				t.Fatalf("failed to re-parse %q", formatted)
			}
			if math.Abs(d.Value-d2.Value) > 1e-9 {
				t.Errorf("round trip changed value: %f -> %f (via %q)", d.Value, d2.Value, formatted)
			}
			if d.Unit.Metric() != d2.Unit.Metric() {
				t.Errorf("round trip changed unit family (via %q)", formatted)
			}
		})
	}
}
