package session

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

var (
	measurementPattern = regexp.MustCompile(`\b(bust|chest|waist|hips?|height|weight)\s*(?:is|:|of|=|-)?\s*(\d{2,3}(?:\.\d+)?)\s*(cm|centimet(?:er|re)s?|inches|inch|in|"|kg|kgs|kilos?|lbs?|pounds)?`)
	reversedPattern    = regexp.MustCompile(`\b(\d{2,3}(?:\.\d+)?)\s*(cm|inches|inch|in|")\s+(bust|chest|waist|hips?)\b`)
	feetPattern        = regexp.MustCompile(`\b([4-7])\s*(?:'|ft|feet|foot)\s*(\d{1,2})?\s*(?:"|in|inches)?`)
	tallPattern        = regexp.MustCompile(`\b(\d{3})\s*cm\s+tall\b`)
	weighPattern       = regexp.MustCompile(`\bweigh\s+(\d{2,3})\s*(kg|kgs|kilos?|lbs?|pounds)\b`)
	sizePattern        = regexp.MustCompile(`\bsize\s*:?\s+(xxs|xs|s|m|l|xl|xxl|2xl|3xl|xxxl|small|medium|large|\d{1,2})\b`)
	wearPattern        = regexp.MustCompile(`\b(?:i wear|i'm|i am|usually)\s+(?:a\s+|an\s+)?(xxs|xs|small|medium|large|xl|xxl)\b`)
)

var sizeAliases = map[string]string{"small": "S", "medium": "M", "large": "L", "2xl": "XXL", "3xl": "XXXL"}

// ExtractPreferences harvests preference mentions from message into prefs.
// List categories are additive and de-duplicated; scalar categories overwrite.
func ExtractPreferences(prefs models.Preferences, message string) models.Preferences {
	lower := strings.ToLower(message)
	out := prefs
	out.Measurements = copyMeasurements(prefs.Measurements)

	for _, m := range measurementPattern.FindAllStringSubmatch(lower, -1) {
		name := canonicalMeasurement(m[1])
		out.Measurements[name] = models.Measurement{Value: parseFloat(m[2]), Unit: canonicalUnit(m[3], name)}
	}
	for _, m := range reversedPattern.FindAllStringSubmatch(lower, -1) {
		name := canonicalMeasurement(m[3])
		out.Measurements[name] = models.Measurement{Value: parseFloat(m[1]), Unit: canonicalUnit(m[2], name)}
	}
	if m := feetPattern.FindStringSubmatch(lower); m != nil {
		inches := parseFloat(m[1]) * 12
		if m[2] != "" {
			inches += parseFloat(m[2])
		}
		out.Measurements["height"] = models.Measurement{Value: inches, Unit: "in"}
	}
	if m := tallPattern.FindStringSubmatch(lower); m != nil {
		out.Measurements["height"] = models.Measurement{Value: parseFloat(m[1]), Unit: "cm"}
	}
	if m := weighPattern.FindStringSubmatch(lower); m != nil {
		out.Measurements["weight"] = models.Measurement{Value: parseFloat(m[1]), Unit: canonicalUnit(m[2], "weight")}
	}
	if len(out.Measurements) == 0 {
		out.Measurements = nil
	}

	if m := sizePattern.FindStringSubmatch(lower); m != nil {
		out.Size = canonicalSize(m[1])
	} else if m := wearPattern.FindStringSubmatch(lower); m != nil {
		out.Size = canonicalSize(m[1])
	}

	tokens := textutil.Tokenize(message)
	out.Colors = appendUnique(prefs.Colors, vocab.Colors.All(tokens)...)
	out.Styles = appendUnique(prefs.Styles, vocab.Styles.All(tokens)...)
	out.Occasions = appendUnique(prefs.Occasions, vocab.Themes.All(tokens)...)

	price := vocab.ParsePrice(message)
	switch {
	case price.Between != nil:
		out.Budget = &models.Budget{Min: price.Between[0], Max: price.Between[1]}
	case price.Under != nil:
		out.Budget = &models.Budget{Max: *price.Under}
	case price.Over != nil:
		out.Budget = &models.Budget{Min: *price.Over}
	}
	return out
}

func canonicalMeasurement(name string) string {
	switch name {
	case "hip":
		return "hips"
	case "chest":
		return "bust"
	default:
		return name
	}
}

func canonicalUnit(unit, measurement string) string {
	switch {
	case unit == "":
		if measurement == "weight" {
			return "kg"
		}
		return "cm"
	case strings.HasPrefix(unit, "c"):
		return "cm"
	case strings.HasPrefix(unit, "in"), unit == `"`:
		return "in"
	case strings.HasPrefix(unit, "k"):
		return "kg"
	default:
		return "lb"
	}
}

func canonicalSize(s string) string {
	if alias, ok := sizeAliases[s]; ok {
		return alias
	}
	return strings.ToUpper(s)
}

func copyMeasurements(in map[string]models.Measurement) map[string]models.Measurement {
	out := make(map[string]models.Measurement, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func appendUnique(existing []string, values ...string) []string {
	if len(values) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(values))
	out := make([]string, 0, len(existing)+len(values))
	for _, v := range append(append([]string(nil), existing...), values...) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
