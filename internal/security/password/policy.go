package password

import (
	"errors"
	"strings"

	"github.com/5w1tchy/passkit/internal/strength"
)

const MinLen = 8

var (
	ErrTooShort = errors.New("weak_password.length")
)

type Warning struct {
	Category    strength.Category `json:"category"`
	Message     string            `json:"message"`     // brief
	Suggestions []string          `json:"suggestions"` // short hints
}

// Validate trims the password; blocks only on MinLen; returns warn-only info
// when the verdict is below Strong or the password contains a hint.
func Validate(pwd string, hints ...string) (trimmed string, res strength.Result, warn *Warning, err error) {
	trimmed = strings.TrimSpace(pwd)
	res = strength.Evaluate(trimmed)

	if res.Length < MinLen {
		return trimmed, res, nil, ErrTooShort
	}

	msg, sugg := advice(res)
	if containsHint(trimmed, hints) {
		if msg == "" {
			msg = "Contains personal information."
		}
		sugg = append(sugg, "Avoid your email or username in the password.")
	}
	if msg != "" || len(sugg) > 0 {
		warn = &Warning{Category: res.Category, Message: msg, Suggestions: sugg}
	}
	return trimmed, res, warn, nil
}

func advice(res strength.Result) (string, []string) {
	switch res.Category {
	case strength.VeryStrong, strength.Strong:
		return "", nil
	case strength.Moderate:
		return "Decent, but could be longer.", []string{"Use 12+ chars with upper/lower, numbers and symbols."}
	case strength.Weak:
		return "Short or low variety.", []string{"Add length and mix letters/numbers/symbols."}
	default:
		return "Very weak password.", []string{"Use 12+ chars with upper/lower, numbers, symbols."}
	}
}

func containsHint(pwd string, hints []string) bool {
	lp := strings.ToLower(pwd)
	for _, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && strings.Contains(lp, h) {
			return true
		}
	}
	return false
}
