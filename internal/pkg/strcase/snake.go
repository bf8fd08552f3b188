// Package strcase converts Go identifier casing to wire casing.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a CamelCase identifier to snake_case.
//
// Acronyms stay intact: userID becomes user_id, HTTPServer becomes
// http_server.
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && boundaryBefore(runes, i) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// boundaryBefore reports whether a word boundary sits before position i,
// which holds an upper-case rune. A boundary exists after a lower-case rune
// or digit, and between an acronym and the word that follows it.
func boundaryBefore(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}

	return false
}
