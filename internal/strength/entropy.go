package strength

import (
	"math"
	"unicode/utf8"
)

// Entropy estimates brute-force bits as length × log2(alphabet).
//
// The alphabet is the full size of every class seen in pwd, so a single
// uppercase letter counts all 26. Dictionary words, repeats and keyboard
// patterns are not considered: treat the value as a coarse upper bound,
// not the real information content of the password.
func Entropy(pwd string) float64 {
	return entropyOf(utf8.RuneCountInString(pwd), Detect(pwd))
}

func entropyOf(length int, cs ClassSet) float64 {
	size := cs.AlphabetSize()
	if size == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(size))
}
