// Package text provides the text cleaning applied to corpus fields and
// user profiles before vectorisation.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var asterisks = regexp.MustCompile(`\*+`)

// Clean normalises text to NFKC, case-folds it and strips ASCII punctuation.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Map(func(r rune) rune {
		if isASCIIPunct(r) {
			return -1
		}
		return r
	}, s)
}

// RemoveAsterisks deletes runs of '*' used as emphasis in titles.
func RemoveAsterisks(s string) string {
	return asterisks.ReplaceAllString(s, "")
}

// Join concatenates parts with single spaces, keeping empty parts in place.
func Join(parts ...string) string {
	return strings.Join(parts, " ")
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}
