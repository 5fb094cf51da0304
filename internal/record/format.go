package record

import (
	"fmt"
	"strings"
	"unicode"
)

// IsExactLength strips all whitespace from value and reports whether the
// remaining length equals n. Used for bank account numbers (26), PESEL (11)
// and NIP (10), which arrive space-grouped from the extraction step.
func IsExactLength(value string, n int) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	return len(cleaned) == n
}

// reviewAnnotation embeds an invalid identifier in a human-readable marker.
// The record is never rejected over a format mismatch; it is flagged for
// manual follow-up instead.
func reviewAnnotation(value string) string {
	return fmt.Sprintf("NEEDS MANUAL REVIEW: %s", value)
}

// identifierCell returns the spreadsheet cell value for an identifier field:
// empty when absent, annotated when it fails its length check.
func identifierCell(value string, length int) string {
	if value == "" {
		return ""
	}
	if !IsExactLength(value, length) {
		return reviewAnnotation(value)
	}
	return value
}

// CapitalizeName normalizes a name to capitalized-first-letter form. The
// extraction prompt already asks for this shape; this is the backstop.
func CapitalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FullName joins a capitalized name and last name.
func FullName(name, lastName string) string {
	return strings.TrimSpace(CapitalizeName(name) + " " + CapitalizeName(lastName))
}
