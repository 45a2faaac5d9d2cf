package strength

import "strings"

// Per-class alphabet sizes used by the entropy estimate.
const (
	UpperSize  = 26
	LowerSize  = 26
	DigitSize  = 10
	SymbolSize = len(Symbols)
)

// Symbols is the fixed ASCII punctuation set (32 chars).
const Symbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ClassSet records which character classes appear in a password.
type ClassSet struct {
	Upper  bool `json:"upper"`
	Lower  bool `json:"lower"`
	Digit  bool `json:"digit"`
	Symbol bool `json:"symbol"`
}

// Detect scans pwd once. Characters outside the four classes are ignored.
func Detect(pwd string) ClassSet {
	var cs ClassSet
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			cs.Upper = true
		case r >= 'a' && r <= 'z':
			cs.Lower = true
		case r >= '0' && r <= '9':
			cs.Digit = true
		case r < 0x80 && strings.ContainsRune(Symbols, r):
			cs.Symbol = true
		}
	}
	return cs
}

// Score is the number of classes present (0..4).
func (cs ClassSet) Score() int {
	n := 0
	for _, b := range []bool{cs.Upper, cs.Lower, cs.Digit, cs.Symbol} {
		if b {
			n++
		}
	}
	return n
}

// AlphabetSize sums the full size of every detected class.
func (cs ClassSet) AlphabetSize() int {
	size := 0
	if cs.Upper {
		size += UpperSize
	}
	if cs.Lower {
		size += LowerSize
	}
	if cs.Digit {
		size += DigitSize
	}
	if cs.Symbol {
		size += SymbolSize
	}
	return size
}
