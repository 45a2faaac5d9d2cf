// Package strength scores passwords by character-class coverage and a
// coarse entropy estimate. Every function is pure and safe for concurrent use.
package strength

import "unicode/utf8"

// Metrics are the inputs the rule table is evaluated against.
type Metrics struct {
	Length  int
	Classes ClassSet
	Score   int
	Entropy float64
}

// Measure derives Metrics for pwd. Length counts characters, not bytes.
func Measure(pwd string) Metrics {
	cs := Detect(pwd)
	n := utf8.RuneCountInString(pwd)
	return Metrics{
		Length:  n,
		Classes: cs,
		Score:   cs.Score(),
		Entropy: entropyOf(n, cs),
	}
}

type rule struct {
	category Category
	match    func(Metrics) bool
}

// rules is ordered strongest first; conditions overlap, so the first match wins.
var rules = []rule{
	{VeryStrong, func(m Metrics) bool { return m.Length >= 16 && m.Score == 4 && m.Entropy >= 80 }},
	{Strong, func(m Metrics) bool { return m.Length >= 12 && m.Score == 4 && m.Entropy >= 60 }},
	{Moderate, func(m Metrics) bool { return m.Length >= 8 && m.Score >= 3 && m.Entropy >= 40 }},
	{Weak, func(m Metrics) bool { return m.Length >= 6 && m.Score >= 2 }},
}

// Classify walks the rule table and falls back to VeryWeak.
func Classify(m Metrics) Category {
	for _, r := range rules {
		if r.match(m) {
			return r.category
		}
	}
	return VeryWeak
}

// Result is the verdict returned to callers.
type Result struct {
	EntropyBits float64  `json:"entropy_bits"`
	Category    Category `json:"category"`
	Progress    int      `json:"progress"`
	Length      int      `json:"length"`
	Classes     ClassSet `json:"classes"`
}

// Evaluate never fails: the empty string is VeryWeak with 0 bits.
func Evaluate(pwd string) Result {
	m := Measure(pwd)
	c := Classify(m)
	return Result{
		EntropyBits: m.Entropy,
		Category:    c,
		Progress:    c.Progress(),
		Length:      m.Length,
		Classes:     m.Classes,
	}
}
