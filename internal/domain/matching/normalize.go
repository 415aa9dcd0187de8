package matching

import (
	"strings"
	"unicode"
)

// stopWords are common English function words stripped before scoring.
// Technical terms are deliberately absent so stack names survive.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "how": {}, "man": {}, "new": {}, "now": {}, "old": {},
	"see": {}, "two": {}, "way": {}, "who": {}, "boy": {}, "did": {},
	"its": {}, "let": {}, "put": {}, "say": {}, "she": {}, "too": {},
	"use": {}, "will": {}, "about": {}, "after": {}, "again": {},
	"against": {}, "also": {}, "any": {}, "because": {}, "been": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "each": {},
	"few": {}, "from": {}, "have": {}, "here": {}, "into": {},
	"more": {}, "most": {}, "only": {}, "other": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "their": {}, "them": {},
	"these": {}, "they": {}, "this": {}, "through": {}, "very": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "with": {}, "would": {}, "your": {},
}

const minTokenLen = 3

// Tokenize lowercases text, treats punctuation as whitespace, and returns
// the remaining tokens in order. Tokens shorter than three runes, purely
// numeric tokens, and stop words are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		if keepToken(w) {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// KeywordSet returns the distinct normalized tokens of text.
func KeywordSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func keepToken(w string) bool {
	if len([]rune(w)) < minTokenLen {
		return false
	}
	if _, ok := stopWords[w]; ok {
		return false
	}
	return !isNumeric(w)
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(w) > 0
}
