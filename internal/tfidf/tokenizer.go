package tfidf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest run of word characters kept as a term
const MinTokenLength = 2

// Tokenize lowercases text and splits it into terms.
//
// A term is a maximal run of Unicode letters, digits and underscores at least
// MinTokenLength runes long. Every other rune is a boundary, so "foo.bar"
// yields [foo bar] while "foo_bar" stays a single term.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	tokens := make([]string, 0, len(text)/6)

	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, text[start:])
	}

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func appendToken(tokens []string, token string) []string {
	if utf8.RuneCountInString(token) < MinTokenLength {
		return tokens
	}
	return append(tokens, token)
}

// termCounts counts occurrences of each token
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
