package discovery

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

var gridTemplate = template.Must(template.New("grid").Parse(`<div class="sa-products">
<p class="sa-products-header">{{.Header}}</p>
<div class="sa-product-grid">
{{- range .Cards}}
<a class="sa-product-card" href="{{.URL}}" target="_blank" rel="noopener">
{{- if .Image}}<img src="{{.Image}}" alt="{{.Title}}" loading="lazy">{{end -}}
<span class="sa-product-title">{{.Title}}</span><span class="sa-product-price">{{.Price}}</span></a>
{{- end}}
</div>
</div>`))

type card struct {
	URL   string
	Image string
	Title string
	Price string
}

var categoryLabels = map[string][2]string{
	"dress":     {"dresses", "فساتين"},
	"jacket":    {"jackets", "جاكيتات"},
	"skirt":     {"skirts", "تنانير"},
	"bag":       {"bags", "حقائب"},
	"shoes":     {"shoes", "أحذية"},
	"jewelry":   {"jewelry pieces", "مجوهرات"},
	"accessory": {"accessories", "إكسسوارات"},
}

var arabicColors = map[string]string{
	"red": "الأحمر", "pink": "الوردي", "orange": "البرتقالي", "yellow": "الأصفر",
	"green": "الأخضر", "blue": "الأزرق", "purple": "البنفسجي", "black": "الأسود",
	"white": "الأبيض", "beige": "البيج", "brown": "البني", "gold": "الذهبي",
	"silver": "الفضي", "grey": "الرمادي",
}

var arabicThemes = map[string]string{
	"wedding": "الزفاف", "engagement": "الخطوبة", "night-out": "السهرات", "graduation": "التخرج",
	"birthday": "أعياد الميلاد", "eid": "العيد", "office": "العمل", "beach": "الشاطئ",
	"summer": "الصيف", "evening": "السهرة", "party": "الحفلات", "casual": "الإطلالات اليومية",
}

var currencySymbols = map[string]string{"USD": "$", "EUR": "€", "GBP": "£"}

// FormatPrice renders an amount with its currency.
func FormatPrice(amount float64, currency string) string {
	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
}

// ProductURL links to a product page, preselecting variantID when set.
func ProductURL(domain, handle string, variantID int64) string {
	u := "/products/" + handle
	if domain != "" {
		u = "https://" + strings.TrimSuffix(domain, "/") + u
	}
	if variantID != 0 {
		u += fmt.Sprintf("?variant=%d", variantID)
	}
	return u
}

// Header describes the applied filter in the customer's language.
func Header(f models.SearchFilter, lang string, found bool) string {
	if lang == "ar" {
		return arabicHeader(f, found)
	}
	desc := categoryLabel(f.Category, 0)
	if f.Color != "" {
		desc = f.Color + " " + desc
	}
	if !found {
		if f.Theme != "" {
			desc += " for " + themeLabel(f.Theme)
		}
		return fmt.Sprintf("I couldn't find %s matching that right now. Would you like me to widen the search?", desc)
	}
	if f.Theme != "" {
		return fmt.Sprintf("Here are some %s from our %s edit:", desc, cases.Title(language.English).String(themeLabel(f.Theme)))
	}
	return fmt.Sprintf("Here are some %s you might like:", desc)
}

func arabicHeader(f models.SearchFilter, found bool) string {
	desc := categoryLabel(f.Category, 1)
	if c, ok := arabicColors[f.Color]; ok {
		desc += " باللون " + c
	} else if f.Color != "" {
		desc += " باللون " + f.Color
	}
	if f.Theme != "" {
		theme, ok := arabicThemes[f.Theme]
		if !ok {
			theme = themeLabel(f.Theme)
		}
		desc += " لمناسبة " + theme
	}
	if !found {
		return fmt.Sprintf("لم أجد %s حالياً. هل تريد توسيع البحث؟", desc)
	}
	return fmt.Sprintf("إليك بعض %s:", desc)
}

func categoryLabel(category string, lang int) string {
	if l, ok := categoryLabels[category]; ok {
		return l[lang]
	}
	return categoryLabels["dress"][lang]
}

func themeLabel(theme string) string {
	return strings.ReplaceAll(theme, "-", " ")
}

// Render produces the header plus product grid for a searched result, or ""
// when no search ran.
func Render(res Result, lang string) string {
	if !res.Searched {
		return ""
	}
	header := Header(res.Filter, lang, len(res.Items) > 0)
	if len(res.Items) == 0 {
		return header
	}

	cards := make([]card, 0, len(res.Items))
	for _, it := range res.Items {
		cards = append(cards, card{URL: it.URL, Image: it.Image, Title: it.Title, Price: FormatPrice(it.Price, it.Currency)})
	}
	var buf bytes.Buffer
	if err := gridTemplate.Execute(&buf, struct {
		Header string
		Cards  []card
	}{header, cards}); err != nil {
		log.Warn().Err(err).Msg("failed to render product grid")
		return header
	}
	return buf.String()
}
