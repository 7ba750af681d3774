// Package lexical maps visually confusable characters onto their canonical
// Latin form and classifies the scripts a string is written in.
package lexical

import (
	"strings"
	"unicode"
)

// Confusables maps a confusable code point to the lowercase ASCII letter or
// digit it imitates. The mapping is many-to-one and not reversible.
type Confusables map[rune]rune

// Lookup returns the canonical character for r, if r is confusable.
func (c Confusables) Lookup(r rune) (rune, bool) {
	canonical, ok := c[r]
	return canonical, ok
}

// Normalize substitutes every confusable rune with its canonical character and
// lowercases everything else. The output has exactly as many runes as the input.
func (c Confusables) Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if canonical, ok := c[r]; ok {
			b.WriteRune(canonical)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Contains reports whether text has at least one confusable rune.
func (c Confusables) Contains(text string) bool {
	for _, r := range text {
		if _, ok := c[r]; ok {
			return true
		}
	}
	return false
}
