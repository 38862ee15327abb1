// Package textutil holds the text normalisation shared by the matchers.
package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Normalize lowercases s, replaces every non letter/digit rune with a space
// and collapses whitespace. It is the cache key form of a message.
func Normalize(s string) string {
	return strings.Join(Tokenize(s), " ")
}

// Tokenize splits s into lowercased runs of letters and digits.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsSequence reports whether needle appears as a contiguous token run in tokens.
func ContainsSequence(tokens, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(tokens); i++ {
		for j := range needle {
			if tokens[i+j] != needle[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

// ContainsWord reports whether phrase occurs in text on token boundaries,
// so "fit" does not match "outfit".
func ContainsWord(text, phrase string) bool {
	return ContainsSequence(Tokenize(text), Tokenize(phrase))
}

// Slug lowercases s and joins its tokens with hyphens.
func Slug(s string) string {
	return strings.Join(Tokenize(s), "-")
}

var (
	tagPattern   = regexp.MustCompile(`(?s)<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup and entities and collapses whitespace.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// Truncate shortens s to at most max runes, cutting at the last space and
// appending an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}

// HasArabic reports whether s contains Arabic script.
func HasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
