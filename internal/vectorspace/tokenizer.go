package vectorspace

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into runs of two or more word
// characters (letters, digits, combining marks, underscore), dropping stop words.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			tok := text[start:end]
			if !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		start, runes = -1, 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}
