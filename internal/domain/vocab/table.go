// Package vocab holds the declarative synonym tables used to interpret
// free text. Adding a synonym or category is a data edit in tables.go.
package vocab

import "github.com/storefront-ai/assistant-service/internal/pkg/textutil"

// Entry maps a canonical value to the words and phrases that express it.
type Entry struct {
	Canonical string
	Synonyms  []string
}

// Table is an ordered list of entries. Earlier entries win ties.
type Table []Entry

// First returns the canonical value of the first entry with a synonym present
// in tokens. Matching is on token boundaries.
func (t Table) First(tokens []string) (string, bool) {
	for _, e := range t {
		if e.matches(tokens) {
			return e.Canonical, true
		}
	}
	return "", false
}

// All returns every canonical value with a synonym present in tokens, in table order.
func (t Table) All(tokens []string) []string {
	var out []string
	for _, e := range t {
		if e.matches(tokens) {
			out = append(out, e.Canonical)
		}
	}
	return out
}

// Synonyms returns the synonyms of canonical, including the canonical itself.
func (t Table) Synonyms(canonical string) []string {
	for _, e := range t {
		if e.Canonical == canonical {
			return append([]string{e.Canonical}, e.Synonyms...)
		}
	}
	return nil
}

// MatchesText reports whether text mentions canonical through any synonym.
func (t Table) MatchesText(text, canonical string) bool {
	tokens := textutil.Tokenize(text)
	for _, s := range t.Synonyms(canonical) {
		if textutil.ContainsSequence(tokens, textutil.Tokenize(s)) {
			return true
		}
	}
	return false
}

func (e Entry) matches(tokens []string) bool {
	if textutil.ContainsSequence(tokens, textutil.Tokenize(e.Canonical)) {
		return true
	}
	for _, s := range e.Synonyms {
		if textutil.ContainsSequence(tokens, textutil.Tokenize(s)) {
			return true
		}
	}
	return false
}

// WordList is a flat list of cue words.
type WordList []string

// AnyIn reports whether any word of the list appears in tokens.
func (w WordList) AnyIn(tokens []string) bool {
	return w.CountIn(tokens) > 0
}

// CountIn returns how many words of the list appear in tokens.
func (w WordList) CountIn(tokens []string) int {
	n := 0
	for _, word := range w {
		if textutil.ContainsSequence(tokens, textutil.Tokenize(word)) {
			n++
		}
	}
	return n
}
