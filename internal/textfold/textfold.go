// Package textfold normalizes free text for accent- and case-insensitive matching.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases value, strips combining marks and collapses whitespace,
// so "  Düsseldorf " and "dusseldorf" compare equal.
func Fold(value string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, value)
	if err != nil {
		out = value
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Contains reports whether needle occurs in haystack after folding both.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Filter keeps the items matching term; an empty term keeps everything.
func Filter(items []string, term string) []string {
	if strings.TrimSpace(term) == "" {
		return items
	}
	needle := Fold(term)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(Fold(item), needle) {
			out = append(out, item)
		}
	}
	return out
}
