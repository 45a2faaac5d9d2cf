package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxHintRunes = 254

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{8,128}$`)

// SessionID checks the shape of a client-chosen history key.
func SessionID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !sessionIDRe.MatchString(s) {
		return "", errors.New("session id must be 8-128 characters of [A-Za-z0-9_.-]")
	}
	return s, nil
}

// RequireBounded ensures a character-count bound without trimming;
// passwords keep their whitespace.
func RequireBounded(name, s string, min, max int) error {
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		return errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return nil
}

// Hints lowercases, trims and dedupes user inputs (email, username...).
// Empty and oversized entries are dropped; at most maxCount are kept.
func Hints(in []string, maxCount int) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, raw := range in {
		s := strings.ToLower(strings.TrimSpace(raw))
		if s == "" || utf8.RuneCountInString(s) > maxHintRunes {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == maxCount {
			break
		}
	}
	return out
}
