// Package textnorm provides the case- and diacritic-insensitive string
// folding used by every text comparison in the catalog filters. Accented
// Portuguese input ("Lavândula", "insônia") must never miss its unaccented
// counterpart.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s and strips combining marks. It is total: invalid
// UTF-8 and empty input fold to themselves.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(chain(), s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// Contains reports whether the folded form of s contains the folded form of
// substr. An empty substr always matches.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Normalize(s), Normalize(substr))
}

// Equal reports whether a and b fold to the same string.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Join folds each value and joins them with single spaces, producing the
// searchable blobs the filter engines match against.
func Join(values ...string) string {
	folded := make([]string, 0, len(values))
	for _, v := range values {
		folded = append(folded, Normalize(v))
	}
	return strings.Join(folded, " ")
}

// Transformers hold state across writes, so each fold builds a fresh chain.
func chain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
