// Package i18n resolves the dashboard language and renders labels and numbers
// for English and Arabic.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Supported lists the dashboard languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Arabic}

var (
	matcher  = language.NewMatcher(Supported)
	messages = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range arabic {
		_ = b.SetString(language.Arabic, key, msg)
	}
	return b
}

// Match picks a supported language from an explicit choice (such as a query
// parameter) and then from an Accept-Language header.
func Match(explicit, acceptLanguage string) language.Tag {
	var prefs []language.Tag
	if tag, err := language.Parse(strings.TrimSpace(explicit)); err == nil {
		prefs = append(prefs, tag)
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		prefs = append(prefs, tags...)
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Translator renders labels for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for tag, falling back to English.
func New(tag language.Tag) *Translator {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	resolved := Supported[idx]
	return &Translator{tag: resolved, printer: message.NewPrinter(resolved, message.Catalog(messages))}
}

// T returns the label for key, or key itself when no translation exists.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}

// Lang returns the base language code ("en" or "ar").
func (t *Translator) Lang() string {
	base, _ := t.tag.Base()
	return base.String()
}

// Dir returns the text direction for HTML dir attributes.
func (t *Translator) Dir() string {
	if t.tag == language.Arabic {
		return "rtl"
	}
	return "ltr"
}

// Number formats v with a fixed number of fraction digits in the
// translator's locale.
func (t *Translator) Number(v float64, decimals int) string {
	return t.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Labels returns every label for use by templates.
func (t *Translator) Labels() map[string]string {
	out := make(map[string]string, len(english))
	for key := range english {
		out[key] = t.T(key)
	}
	return out
}
