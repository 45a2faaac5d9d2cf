package textfmt

import (
	"net/http/httptest"
	"testing"

	"github.com/5w1tchy/passkit/internal/strength"
	"golang.org/x/text/language"
)

func TestSummaryEnglish(t *testing.T) {
	p := Printer(language.English)
	got := Summary(p, strength.Evaluate("Aa1!Aa1!Aa1!Aa1!"))
	want := "Strength: Very Strong (Entropy: 104.87 bits)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSummaryEmpty(t *testing.T) {
	got := Summary(Printer(language.English), strength.Evaluate(""))
	if got != "Strength: Very Weak (Entropy: 0.00 bits)" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSummaryGerman(t *testing.T) {
	got := Summary(Printer(language.German), strength.Evaluate("Aa1!Aa1!Aa1!Aa1!"))
	want := "Stärke: Sehr stark (Entropie: 104,87 Bit)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestLabelSpanish(t *testing.T) {
	if got := Label(Printer(language.Spanish), strength.Weak); got != "Débil" {
		t.Fatalf("got %q", got)
	}
}

func TestLabelAllCategories(t *testing.T) {
	en := Printer(language.English)
	de := Printer(language.German)
	want := map[strength.Category][2]string{
		strength.VeryWeak:   {"Very Weak", "Sehr schwach"},
		strength.Weak:       {"Weak", "Schwach"},
		strength.Moderate:   {"Moderate", "Mittel"},
		strength.Strong:     {"Strong", "Stark"},
		strength.VeryStrong: {"Very Strong", "Sehr stark"},
	}
	for c, w := range want {
		if got := Label(en, c); got != w[0] {
			t.Errorf("en %v: got %q", c, got)
		}
		if got := Label(de, c); got != w[1] {
			t.Errorf("de %v: got %q", c, got)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := map[string]language.Tag{
		"":                     language.English,
		"de":                   language.German,
		"de-DE,de;q=0.9":       language.German,
		"es-MX":                language.Spanish,
		"fr-FR":                language.English,
		"not a language tag!!": language.English,
	}
	for in, want := range cases {
		if got := Match(in); got != want {
			t.Errorf("Match(%q) = %s; want %s", in, got, want)
		}
	}
}

func TestResolveTag(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/evaluate?lang=es", nil)
	r.Header.Set("Accept-Language", "de")
	if got := ResolveTag(r); got != language.Spanish {
		t.Fatalf("query param should win, got %s", got)
	}

	r = httptest.NewRequest("GET", "/v1/evaluate", nil)
	r.Header.Set("Accept-Language", "de-AT;q=0.8, en;q=0.5")
	if got := ResolveTag(r); got != language.German {
		t.Fatalf("want German from header, got %s", got)
	}

	if got := ResolveTag(nil); got != language.English {
		t.Fatalf("nil request should default to English, got %s", got)
	}
}
