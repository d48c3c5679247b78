package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching:
// case-fold to lower and strip separators, so "FineWeb-Edu" and
// "fineweb_edu" compare equal.
func NormalizeIdent(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// isSeparator returns true if the rune is a common separator in
// dataset IDs and mixture names.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', '/':
		return true
	default:
		return false
	}
}
