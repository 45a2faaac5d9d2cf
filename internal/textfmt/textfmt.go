// Package textfmt renders strength verdicts as localized display text.
package textfmt

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/passkit/internal/strength"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

const summaryKey = "Strength: %s (Entropy: %.2f bits)"

var supportedTags = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
}

var tagMatcher = language.NewMatcher(supportedTags)

func init() {
	de := language.German
	message.SetString(de, summaryKey, "Stärke: %s (Entropie: %.2f Bit)")
	message.SetString(de, "Very Weak", "Sehr schwach")
	message.SetString(de, "Weak", "Schwach")
	message.SetString(de, "Moderate", "Mittel")
	message.SetString(de, "Strong", "Stark")
	message.SetString(de, "Very Strong", "Sehr stark")

	es := language.Spanish
	message.SetString(es, summaryKey, "Fortaleza: %s (Entropía: %.2f bits)")
	message.SetString(es, "Very Weak", "Muy débil")
	message.SetString(es, "Weak", "Débil")
	message.SetString(es, "Moderate", "Moderada")
	message.SetString(es, "Strong", "Fuerte")
	message.SetString(es, "Very Strong", "Muy fuerte")
}

// Default returns the fallback language.
func Default() language.Tag { return language.English }

// Supported returns a copy of the supported tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Label is the localized category name.
func Label(p *message.Printer, c strength.Category) string {
	return p.Sprintf(message.Key(c.String(), c.String()))
}

// Summary renders e.g. "Strength: Strong (Entropy: 78.66 bits)".
func Summary(p *message.Printer, res strength.Result) string {
	return p.Sprintf(summaryKey, Label(p, res.Category), res.EntropyBits)
}

// Match picks the best supported tag for a language string or
// Accept-Language style list. Unknown input falls back to English.
func Match(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, conf := tagMatcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supportedTags[idx]
}

// ResolveTag checks the lang query param, then Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		return Match(v)
	}
	return Match(r.Header.Get("Accept-Language"))
}
