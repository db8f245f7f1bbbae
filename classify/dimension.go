package classify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/planvec/model"
)

// Dimension grammar. Parsing is strict about unit tokens but lenient
// about whitespace and punctuation variants (hyphen or en-dash between
// feet and inches, curly or straight quote marks).
var (
	metricRe = regexp.MustCompile(`(?i)^\s*(\d+(?:[.,]\d+)?)\s*(mm|m)\.?\s*$`)

	// 12'  12'-6"  12' 6"  12' 6 1/2"
	feetInchesRe = regexp.MustCompile(`^\s*(\d+)\s*['’]\s*[-–]?\s*(?:(\d+(?:\.\d+)?)(?:\s+(\d+)\s*/\s*(\d+))?\s*["”]?)?\s*$`)

	// 6"  6.5"  6 1/2"  6in
	inchesRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)(?:\s+(\d+)\s*/\s*(\d+))?\s*(?:["”]|in\.?)\s*$`)
)

// ParseDimension parses a dimension string into a ParsedDimension.
// Metric values normalize to millimetres, imperial to inches. It returns
// nil when the string does not match the dimension grammar; callers keep
// the raw text in that case rather than discarding the element.
func ParseDimension(raw string) *model.ParsedDimension {
	if m := metricRe.FindStringSubmatch(raw); m != nil {
		num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			return nil
		}
		unit := model.UnitMillimetre
		value := num
		if strings.EqualFold(m[2], "m") {
			unit = model.UnitMetre
			value = num * 1000
		}
		return &model.ParsedDimension{Raw: raw, Value: value, Unit: unit}
	}

	if m := feetInchesRe.FindStringSubmatch(raw); m != nil {
		feet, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		inches := 0.0
		hasInches := m[2] != ""
		if hasInches {
			inches, err = strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil
			}
			if m[3] != "" {
				num, _ := strconv.ParseFloat(m[3], 64)
				den, _ := strconv.ParseFloat(m[4], 64)
				if den == 0 {
					return nil
				}
				inches += num / den
			}
		}
		d := &model.ParsedDimension{
			Raw:   raw,
			Value: feet*12 + inches,
			Unit:  model.UnitFeet,
		}
		if hasInches {
			d.Compound = &model.FeetInches{Feet: feet, Inches: inches}
		}
		return d
	}

	if m := inchesRe.FindStringSubmatch(raw); m != nil {
		inches, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		if m[2] != "" {
			num, _ := strconv.ParseFloat(m[2], 64)
			den, _ := strconv.ParseFloat(m[3], 64)
			if den == 0 {
				return nil
			}
			inches += num / den
		}
		return &model.ParsedDimension{Raw: raw, Value: inches, Unit: model.UnitInch}
	}

	return nil
}

// FormatDimension renders a parsed dimension back to its canonical unit
// string. Re-parsing the result yields the same numeric value.
func FormatDimension(d *model.ParsedDimension) string {
	switch d.Unit {
	case model.UnitMillimetre:
		return formatFloat(d.Value) + "mm"
	case model.UnitMetre:
		return formatFloat(d.Value/1000) + "m"
	case model.UnitInch:
		return formatInches(d.Value) + `"`
	case model.UnitFeet:
		if d.Compound == nil {
			return formatFloat(d.Value/12) + "'"
		}
		feet := formatFloat(d.Compound.Feet)
		whole, frac := splitFraction(d.Compound.Inches)
		if frac == "" {
			return fmt.Sprintf(`%s'-%s"`, feet, formatFloat(d.Compound.Inches))
		}
		return fmt.Sprintf(`%s' %d %s"`, feet, whole, frac)
	}
	return d.Raw
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInches(v float64) string {
	whole, frac := splitFraction(v)
	if frac == "" {
		return formatFloat(v)
	}
	if whole == 0 {
		return frac
	}
	return fmt.Sprintf("%d %s", whole, frac)
}

// splitFraction expresses the fractional part of v as a power-of-two
// inch fraction when one fits exactly, which is how drawings write them
func splitFraction(v float64) (int, string) {
	whole := int(math.Floor(v))
	rem := v - float64(whole)
	if rem < 1e-9 {
		return whole, ""
	}
	for _, den := range []int{2, 4, 8, 16, 32} {
		num := rem * float64(den)
		if math.Abs(num-math.Round(num)) < 1e-9 {
			n := int(math.Round(num))
			g := gcd(n, den)
			return whole, fmt.Sprintf("%d/%d", n/g, den/g)
		}
	}
	return whole, ""
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
