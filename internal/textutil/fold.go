package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EqualFold reports whether a and b are equal under Unicode case folding.
// Accents are significant: "Mbappé" and "MBAPPÉ" match, "Mbappe" does not.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return FoldKey(a) == FoldKey(b)
}

// FoldKey returns the case-folded NFC form of value for use as a map key.
func FoldKey(value string) string {
	return cases.Fold().String(norm.NFC.String(value))
}

// MatchKey folds case, strips diacritics, and collapses whitespace so loosely
// written names compare equal ("Kylian  Mbappé" -> "kylian mbappe").
func MatchKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}
