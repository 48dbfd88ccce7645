package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCard  = regexp.MustCompile(`^[0-9]{13,19}$`)
	reCVV   = regexp.MustCompile(`^[0-9]{3,4}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// CardNumber accepts 13-19 digits after whitespace removal.
func CardNumber(s string) bool {
	s = strings.Join(strings.Fields(s), "")
	return reCard.MatchString(s)
}

func CVV(s string) bool {
	return reCVV.MatchString(strings.TrimSpace(s))
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Qty parses a form quantity, defaulting to 1 and clamping abuse upward.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
