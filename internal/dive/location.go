package dive

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownLocation is the canonical key for dives with no recorded location.
const UnknownLocation = "unknown"

// locationAliases merges known misspellings into one canonical key.
// Keys and values are already folded (lowercase, diacritics stripped).
var locationAliases = map[string]string{
	"curaco": "curacao",
}

// displayNames restores the preferred display spelling for canonical
// keys whose folded form loses information.
var displayNames = map[string]string{
	"curacao": "Curaçao",
	"unknown": "Unknown",
}

// NormalizeLocation maps a raw location label to its canonical key:
// diacritics stripped, case folded, whitespace collapsed, known
// misspellings merged. It is called before every equality comparison
// involving location or trip identity.
func NormalizeLocation(raw string) string {
	key := foldLocation(raw)
	if key == "" {
		return UnknownLocation
	}
	if canonical, ok := locationAliases[key]; ok {
		return canonical
	}
	return key
}

// DisplayLocation returns the display spelling for a raw location label,
// collapsing alias variants to one canonical form.
func DisplayLocation(raw string) string {
	key := NormalizeLocation(raw)
	if name, ok := displayNames[key]; ok {
		return name
	}
	raw = collapseWhitespace(raw)
	if raw == "" {
		return displayNames[UnknownLocation]
	}
	return raw
}

// foldLocation lowercases, strips diacritics and collapses whitespace.
func foldLocation(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))

	// NFD + strip combining marks + NFC turns "curaçao" into "curacao"
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
