package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple words", "add numbers returns sum", []string{"add", "numbers", "returns", "sum"}},
		{"lowercases", "ParseFile HTTP", []string{"parsefile", "http"}},
		{"dot splits", "foo.bar", []string{"foo", "bar"}},
		{"underscore joins", "foo_bar", []string{"foo_bar"}},
		{"single runes dropped", "a + b = c", []string{}},
		{"digits kept", "utf8 v2 x1", []string{"utf8", "v2", "x1"}},
		{"go source", "func (s *Server) Close() error {", []string{"func", "server", "close", "error"}},
		{"unicode letters", "Grüße naïve", []string{"grüße", "naïve"}},
		{"two rune unicode", "éa ü", []string{"éa"}},
		{"empty", "", []string{}},
		{"whitespace only", "  \t\n ", []string{}},
		{"trailing token", "return x1", []string{"return", "x1"}},
		{"repeated", "sum sum Sum", []string{"sum", "sum", "sum"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTermCounts(t *testing.T) {
	counts := termCounts(Tokenize("sum numbers sum"))
	assert.Equal(t, map[string]int{"sum": 2, "numbers": 1}, counts)
}
