package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// phoneDigits is the number of digits in a local Israeli mobile number (e.g. 050-123-4567).
const phoneDigits = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone strips every non-digit character from phone.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}
		return -1
	}, phone)
}

// IsValidPhone reports whether phone contains exactly 10 digits once
// separators are removed.
func IsValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) == phoneDigits
}
