package utils

import (
	"regexp"
	"strings"
)

var cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)

// NormalizeCardNumber strips all whitespace from a card number.
func NormalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

func IsValidCardNumber(number string) bool {
	return cardNumberPattern.MatchString(NormalizeCardNumber(number))
}

// CardLast4 returns the last four digits of a normalized card number.
// The full number must never leave the request scope.
func CardLast4(number string) string {
	n := NormalizeCardNumber(number)
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}
