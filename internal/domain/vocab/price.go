package vocab

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	betweenPattern = regexp.MustCompile(`\bbetween\s+\$?\s?(\d+(?:\.\d+)?)\s*(?:and|to|-)\s*\$?\s?(\d+(?:\.\d+)?)`)
	rangePattern   = regexp.MustCompile(`\$\s?(\d+(?:\.\d+)?)\s*(?:-|to)\s*\$\s?(\d+(?:\.\d+)?)`)
	underPattern   = regexp.MustCompile(`(?:\b(?:under|below|less than|cheaper than|up to|no more than|max|maximum)|أقل من|تحت)\s*\$?\s?(\d+(?:\.\d+)?)`)
	overPattern    = regexp.MustCompile(`(?:\b(?:over|above|more than|at least)|أكثر من|فوق)\s*\$?\s?(\d+(?:\.\d+)?)`)
)

// PriceBound is a price constraint read from text. At most one field is set.
type PriceBound struct {
	Under   *float64
	Over    *float64
	Between *[2]float64
}

// IsZero reports whether no bound was found.
func (p PriceBound) IsZero() bool {
	return p.Under == nil && p.Over == nil && p.Between == nil
}

// ParsePrice reads the first price constraint. Patterns are mutually
// exclusive and tried as between, under, over. Between bounds are sorted.
func ParsePrice(text string) PriceBound {
	lower := strings.ToLower(text)
	for _, re := range []*regexp.Regexp{betweenPattern, rangePattern} {
		if m := re.FindStringSubmatch(lower); m != nil {
			lo, hi := parseFloat(m[1]), parseFloat(m[2])
			if lo > hi {
				lo, hi = hi, lo
			}
			return PriceBound{Between: &[2]float64{lo, hi}}
		}
	}
	if m := underPattern.FindStringSubmatch(lower); m != nil {
		v := parseFloat(m[1])
		return PriceBound{Under: &v}
	}
	if m := overPattern.FindStringSubmatch(lower); m != nil {
		v := parseFloat(m[1])
		return PriceBound{Over: &v}
	}
	return PriceBound{}
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
