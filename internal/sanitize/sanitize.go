// Package sanitize normalizes free-text fields before storage and comparison,
// so that "J. R. R. Tolkien" and "j. r. r. tolkien " name the same novelist.
package sanitize

import (
	"strings"
	"unicode"
)

// Normalize strips every rune that is not a letter, digit, whitespace or
// ASCII punctuation, collapses whitespace runs to single spaces, trims, and
// lower-cases the result. It is total and idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || isASCIIPunct(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// isASCIIPunct reports whether r is a printable ASCII character that is
// neither alphanumeric nor a space.
func isASCIIPunct(r rune) bool {
	return r >= '!' && r <= '~' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
