// Package textnorm folds free-text search input into a canonical key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

const maxPasses = 8

// Normalize lowercases s, drops everything except letters, digits, combining marks and
// whitespace, collapses whitespace runs to one space and trims the ends.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	out := fold(s)
	// Dropping a separator can leave a base letter next to a combining mark that NFKC composes
	// on the next pass, so fold until the result is stable.
	for i := 0; i < maxPasses; i++ {
		next := fold(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func fold(s string) string {
	if s == "" {
		return ""
	}
	folded := norm.NFKC.String(lower.String(norm.NFKC.String(s)))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
