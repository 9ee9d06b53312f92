package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Email returns a normalized form of an email address suitable for
// storage and comparisons. Normalization currently trims surrounding
// whitespace and lower-cases the address.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Fold returns s trimmed and case-folded for case-insensitive matching.
// Folding handles cases plain lower-casing misses, such as "ß" and "SS".
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
