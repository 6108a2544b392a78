// Package textnorm canonicalizes free-text guesses and dataset names so that
// they compare equal across accents, abbreviations, and punctuation. The same
// function runs on indexed names and on live queries; if the two ever diverge,
// recall degrades silently.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Official datasets truncate "Saint"/"Sainte" in longer names and players type
// the short forms too. Expansion operates on whole tokens, after accent
// stripping, so the abbreviations are plain ASCII by then.
var abbreviations = map[string]string{
	"st":  "saint",
	"ste": "sainte",
	"cdg": "charlesdegaulle",
}

// Normalize lowercases s, strips diacritics, expands known French
// abbreviation tokens, and removes every character outside [a-z0-9].
// Whitespace, hyphens, and apostrophes all vanish in the final pass.
// It is pure, total, and idempotent; empty input yields an empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	if stripped, _, err := transform.String(stripAccents, s); err == nil {
		s = stripped
	}

	tokens := strings.FieldsFunc(s, isTokenSeparator)
	var b strings.Builder
	b.Grow(len(s))
	for _, token := range tokens {
		if expanded, ok := abbreviations[token]; ok {
			token = expanded
		}
		for _, r := range token {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func isTokenSeparator(r rune) bool {
	return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
}
