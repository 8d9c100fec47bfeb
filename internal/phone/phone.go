// Package phone handles the guest contact format: a two-digit area code,
// a five-digit prefix and a four-digit suffix, displayed as (11) 91234-5678.
package phone

import (
	"regexp"
	"strings"
)

// CountryCode is prepended when a contact is converted to international form.
const CountryCode = "55"

const maxDigits = 11

var (
	maskPattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// Valid reports whether contact matches the display mask exactly.
func Valid(contact string) bool {
	return maskPattern.MatchString(contact)
}

// Digits strips everything but digits.
func Digits(contact string) string {
	return nonDigit.ReplaceAllString(contact, "")
}

// Mask applies the display mask to whatever digits were typed so far.
// Extra digits beyond the eleventh are dropped.
func Mask(input string) string {
	digits := Digits(input)
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	var b strings.Builder
	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 2:
		b.WriteString("(")
		b.WriteString(digits)
	case len(digits) <= 7:
		b.WriteString("(")
		b.WriteString(digits[:2])
		b.WriteString(") ")
		b.WriteString(digits[2:])
	default:
		b.WriteString("(")
		b.WriteString(digits[:2])
		b.WriteString(") ")
		b.WriteString(digits[2:7])
		b.WriteString("-")
		b.WriteString(digits[7:])
	}
	return b.String()
}

// International converts a masked contact into country code + digits, the
// form used by messaging transports. Input that already carries the
// country code is returned unchanged.
func International(contact string) string {
	digits := Digits(contact)
	if len(digits) == maxDigits {
		return CountryCode + digits
	}
	return digits
}
