// Package match scores stored postings against a resume: TF-IDF cosine
// similarity plus fixed heuristic boosts, with human-readable explanations.
package match

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "being": {}, "been": {},
	"to": {}, "of": {}, "in": {}, "that": {}, "it": {}, "for": {}, "on": {},
	"with": {}, "as": {}, "at": {}, "this": {}, "by": {}, "from": {},
	"we": {}, "you": {}, "your": {}, "our": {}, "they": {}, "their": {}, "them": {},
	"he": {}, "she": {}, "his": {}, "her": {},
	"not": {}, "can": {}, "will": {}, "would": {}, "should": {}, "could": {},
}

// NormalizeText strips markup and anything outside [a-z0-9 ], lowercased,
// whitespace collapsed. Deterministic, no dictionaries.
func NormalizeText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	input = htmlTagRe.ReplaceAllString(input, " ")
	input = strings.ToLower(input)
	input = nonAlnumRe.ReplaceAllString(input, " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(input, " "))
}

// Tokenize splits normalized text into stemmed tokens, dropping stop-words
// and anything two characters or shorter. Token order is preserved.
func Tokenize(input string) []string {
	normalized := NormalizeText(input)
	if normalized == "" {
		return nil
	}

	var tokens []string
	for _, token := range strings.Split(normalized, " ") {
		if len(token) <= 2 {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		tokens = append(tokens, stem(token))
	}
	return tokens
}

// stem applies minimal suffix stripping: ing, then ed, then es, then a
// plural s on words longer than three characters.
func stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ing"):
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "es"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}
