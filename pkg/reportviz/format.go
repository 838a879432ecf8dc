package reportviz

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	EmptyCell = "—"
	yesLabel  = "Yes"
	noLabel   = "No"
)

// Formatter renders cell values for tables and summaries in one locale.
type Formatter struct {
	printer    *message.Printer
	dateLayout string
}

var dateLayouts = map[string]string{
	"en": "Jan 2, 2006",
	"de": "02.01.2006",
	"fr": "02/01/2006",
	"es": "02/01/2006",
	"ar": "2006/01/02",
}

// SupportedLocales are the locales reports render in. The first is the fallback.
var SupportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("de-DE"),
	language.MustParse("fr-FR"),
	language.MustParse("es-ES"),
	language.Arabic,
}

var localeMatcher = language.NewMatcher(SupportedLocales)

// MatchLocale maps a locale or Accept-Language value onto the closest supported
// locale, so "fr-CH" becomes "fr-FR" and unparseable input becomes "en-US".
func MatchLocale(locale string) string {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil {
		tags = nil
	}
	_, index, _ := localeMatcher.Match(tags...)
	return SupportedLocales[index].String()
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-US". Unknown
// locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	base, _ := tag.Base()
	layout, ok := dateLayouts[base.String()]
	if !ok {
		layout = dateLayouts["en"]
	}
	return &Formatter{
		printer:    message.NewPrinter(tag),
		dateLayout: layout,
	}
}

// Format renders any cell value as display text.
func (f *Formatter) Format(v any) string {
	switch val := v.(type) {
	case nil:
		return EmptyCell
	case bool:
		if val {
			return yesLabel
		}
		return noLabel
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return EmptyCell
		}
		return val.Format(f.dateLayout)
	case primitive.DateTime:
		return val.Time().UTC().Format(f.dateLayout)
	case primitive.ObjectID:
		return val.Hex()
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = f.Format(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case map[string]any, Result:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
	if n, ok := toFloat(v); ok {
		return f.Number(n)
	}
	return fmt.Sprintf("%v", v)
}

// Number formats n with the locale's grouping and at most two fraction digits.
func (f *Formatter) Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return EmptyCell
	}
	return f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}

// Percent formats a 0-100 percentage.
func (f *Formatter) Percent(p float64) string {
	return f.Number(p) + "%"
}
