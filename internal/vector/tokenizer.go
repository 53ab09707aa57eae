package vector

import (
	"strings"
	"unicode"
)

// Tokenize normalizes text for vocabulary lookup: lowercase, every rune
// outside [a-z0-9] and whitespace becomes a separator, tokens shorter
// than two bytes are dropped. Order and duplicates are preserved so
// repeated words bias an averaged embedding toward themselves.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	var tokens []string
	for _, t := range strings.Fields(mapped) {
		if len(t) >= 2 {
			tokens = append(tokens, t)
		}
	}

	return tokens
}
