package cities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"camperwatch/internal/offer"
)

// stripMarks decomposes accented characters and removes the combining
// marks, so "Zürich" folds to "Zurich" before lowercasing.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares a place name for comparison: trim, lowercase,
// strip accents.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		return name
	}
	return folded
}

// NormalizeAll normalizes a list of filter names, dropping entries that
// normalize to the empty string
func NormalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if nn := Normalize(n); nn != "" {
			out = append(out, nn)
		}
	}
	return out
}

// Matches reports whether any normalized filter is a substring of the
// offer's normalized origin or arrival. Substring matching is intentional:
// it tolerates partial names ("Zurich Airport") at the cost of false
// positives on very short filters.
func Matches(o offer.Offer, normFilters []string) bool {
	origin := Normalize(o.Origin)
	arrival := Normalize(o.Arrival)
	for _, f := range normFilters {
		if f == "" {
			continue
		}
		if strings.Contains(origin, f) || strings.Contains(arrival, f) {
			return true
		}
	}
	return false
}

// Filter returns the offers whose origin or arrival matches any of the
// given city names. An empty city list matches nothing; callers that
// want "no filtering" skip the call.
func Filter(offers []offer.Offer, cityNames []string) []offer.Offer {
	normFilters := NormalizeAll(cityNames)
	if len(normFilters) == 0 {
		return nil
	}

	var filtered []offer.Offer
	for _, o := range offers {
		if Matches(o, normFilters) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
