// Package generator builds random passwords from selectable character classes.
//
// Randomness comes from math/rand/v2. That is fine for a convenience tool but
// the output is not meant for key material.
package generator

import (
	"math/rand/v2"
	"strings"

	"github.com/5w1tchy/passkit/internal/strength"
)

const (
	MinLength     = 4
	DefaultLength = 12

	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower  = "abcdefghijklmnopqrstuvwxyz"
	Digits = "0123456789"
	// Ambiguous characters are dropped when ExcludeAmbiguous is set.
	Ambiguous = "l1I0O"
)

// Symbols matches the set the strength estimator counts.
const Symbols = strength.Symbols

type Config struct {
	Length           int  `json:"length"`
	IncludeUpper     bool `json:"include_upper"`
	IncludeLower     bool `json:"include_lower"`
	IncludeDigits    bool `json:"include_digits"`
	IncludeSymbols   bool `json:"include_symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

// DefaultConfig: 12 characters, every class, nothing excluded.
func DefaultConfig() Config {
	return Config{
		Length:         DefaultLength,
		IncludeUpper:   true,
		IncludeLower:   true,
		IncludeDigits:  true,
		IncludeSymbols: true,
	}
}

// Alphabet returns the candidate characters for cfg (upper, lower, digits,
// symbols, in that order) with ambiguous characters removed on request.
func Alphabet(cfg Config) string {
	var b strings.Builder
	if cfg.IncludeUpper {
		b.WriteString(Upper)
	}
	if cfg.IncludeLower {
		b.WriteString(Lower)
	}
	if cfg.IncludeDigits {
		b.WriteString(Digits)
	}
	if cfg.IncludeSymbols {
		b.WriteString(Symbols)
	}
	chars := b.String()
	if cfg.ExcludeAmbiguous {
		chars = strings.Map(func(r rune) rune {
			if strings.ContainsRune(Ambiguous, r) {
				return -1
			}
			return r
		}, chars)
	}
	return chars
}

// Validate checks cfg without generating anything.
func Validate(cfg Config) error {
	if cfg.Length < MinLength {
		return &ConfigurationError{Reason: ErrLengthTooShort, Length: cfg.Length}
	}
	if Alphabet(cfg) == "" {
		return &ConfigurationError{Reason: ErrEmptyAlphabet, Length: cfg.Length}
	}
	return nil
}

// Generator draws characters with a caller-supplied source.
// A Generator built on a *rand.Rand is not safe for concurrent use.
type Generator struct {
	intN func(n int) int
}

// New returns a Generator over r. A nil r uses the global source.
func New(r *rand.Rand) *Generator {
	if r == nil {
		return &Generator{intN: rand.IntN}
	}
	return &Generator{intN: r.IntN}
}

// Generate returns exactly cfg.Length characters, each picked uniformly and
// independently from Alphabet(cfg). Repeats are allowed.
func (g *Generator) Generate(cfg Config) (string, error) {
	if err := Validate(cfg); err != nil {
		return "", err
	}
	chars := Alphabet(cfg)

	var sb strings.Builder
	sb.Grow(cfg.Length)
	for i := 0; i < cfg.Length; i++ {
		sb.WriteByte(chars[g.intN(len(chars))])
	}
	return sb.String(), nil
}

var global = New(nil)

// Generate uses the process-wide source and is safe for concurrent use.
func Generate(cfg Config) (string, error) {
	return global.Generate(cfg)
}
