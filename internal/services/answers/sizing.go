package answers

import (
	"fmt"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// Fit is one row of the size chart, ranges in centimetres.
type Fit struct {
	Size  string
	Bust  [2]float64
	Waist [2]float64
	Hips  [2]float64
}

// SizeChart is the house size chart, smallest first.
var SizeChart = []Fit{
	{"XS", [2]float64{78, 82}, [2]float64{60, 64}, [2]float64{86, 90}},
	{"S", [2]float64{82, 86}, [2]float64{64, 68}, [2]float64{90, 94}},
	{"M", [2]float64{86, 92}, [2]float64{68, 74}, [2]float64{94, 100}},
	{"L", [2]float64{92, 98}, [2]float64{74, 80}, [2]float64{100, 106}},
	{"XL", [2]float64{98, 104}, [2]float64{80, 86}, [2]float64{106, 112}},
	{"XXL", [2]float64{104, 110}, [2]float64{86, 92}, [2]float64{112, 118}},
}

var bodyMeasurements = []string{"bust", "waist", "hips"}

// RecommendSize picks the smallest size that fits every known body
// measurement. It reports false when no bust, waist or hips is known.
func RecommendSize(prefs models.Preferences) (string, bool) {
	best, found := 0, false
	for _, name := range bodyMeasurements {
		m, ok := prefs.Measurements[name]
		if !ok {
			continue
		}
		found = true
		if idx := fitIndex(name, m.Centimeters()); idx > best {
			best = idx
		}
	}
	if !found {
		return "", false
	}
	return SizeChart[best].Size, true
}

func fitIndex(name string, cm float64) int {
	for i, f := range SizeChart {
		if cm <= f.upper(name) {
			return i
		}
	}
	return len(SizeChart) - 1
}

func (f Fit) upper(name string) float64 {
	switch name {
	case "bust":
		return f.Bust[1]
	case "waist":
		return f.Waist[1]
	default:
		return f.Hips[1]
	}
}

// SizeAdvice recommends a size from the stored measurements, describes a
// stated size, or asks for measurements.
func SizeAdvice(lang string, prefs models.Preferences) string {
	if size, ok := RecommendSize(prefs); ok {
		return Text(lang, KeySizeRecommend, describeMeasurements(lang, prefs), size)
	}
	if prefs.Size != "" {
		for _, f := range SizeChart {
			if strings.EqualFold(f.Size, prefs.Size) {
				return Text(lang, KeySizeKnown, f.Size, span(f.Bust), span(f.Waist), span(f.Hips))
			}
		}
	}
	if h, ok := prefs.Measurements["height"]; ok {
		return Text(lang, KeySizeHeightOnly, formatCM(lang, h.Centimeters()))
	}
	return Text(lang, KeyAskMeasurements)
}

func describeMeasurements(lang string, prefs models.Preferences) string {
	labels := map[string]string{"bust": "bust", "waist": "waist", "hips": "hips"}
	if lang == LangArabic {
		labels = map[string]string{"bust": "الصدر", "waist": "الخصر", "hips": "الأرداف"}
	}
	var parts []string
	for _, name := range bodyMeasurements {
		if m, ok := prefs.Measurements[name]; ok {
			parts = append(parts, labels[name]+" "+formatCM(lang, m.Centimeters()))
		}
	}
	return join(lang, parts)
}

func formatCM(lang string, cm float64) string {
	if lang == LangArabic {
		return fmt.Sprintf("%.0f سم", cm)
	}
	return fmt.Sprintf("%.0f cm", cm)
}

func span(r [2]float64) string {
	return fmt.Sprintf("%.0f-%.0f", r[0], r[1])
}
