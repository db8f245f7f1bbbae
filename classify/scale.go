package classify

import (
	"regexp"
	"strconv"

	"github.com/tsawler/planvec/model"
)

var (
	// "1:50", "SCALE 1 : 100"
	ratioScaleRe = regexp.MustCompile(`\b1\s*:\s*(\d+)\b`)

	// `1/4" = 1'-0"`, `1/8"=1'`, `1" = 10'`
	imperialScaleRe = regexp.MustCompile(`(\d+)(?:\s*/\s*(\d+))?\s*["”]\s*=\s*(\d+)\s*['’](?:\s*[-–]?\s*(\d+)\s*["”])?`)
)

// DetectScale scans text elements for an explicit drawing-scale
// annotation and returns the parsed scale, or nil when none is present.
// Absence is not an error; downstream unit handling falls back to
// per-dimension unit hints.
func DetectScale(texts []model.TextElement) *model.Scale {
	for _, te := range texts {
		if s := ParseScale(te.Text); s != nil {
			return s
		}
	}
	return nil
}

// ParseScale parses a single scale annotation string
func ParseScale(s string) *model.Scale {
	if m := imperialScaleRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den := 1.0
		if m[2] != "" {
			den, _ = strconv.ParseFloat(m[2], 64)
		}
		if num == 0 || den == 0 {
			return nil
		}
		paperInches := num / den

		feet, _ := strconv.ParseFloat(m[3], 64)
		inches := 0.0
		if m[4] != "" {
			inches, _ = strconv.ParseFloat(m[4], 64)
		}
		realInches := feet*12 + inches
		if realInches == 0 {
			return nil
		}

		return &model.Scale{
			Raw:    m[0],
			Ratio:  realInches / paperInches,
			Metric: false,
		}
	}

	if m := ratioScaleRe.FindStringSubmatch(s); m != nil {
		ratio, err := strconv.ParseFloat(m[1], 64)
		if err != nil || ratio == 0 {
			return nil
		}
		return &model.Scale{Raw: m[0], Ratio: ratio, Metric: true}
	}

	return nil
}
