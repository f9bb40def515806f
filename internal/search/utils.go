package search

import (
	"strings"
	"unicode"
)

// words carrying no search signal, skipped during tokenization
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "who": {}, "with": {},
}

// splits a query into lowercase terms, dropping stopwords and
// single-character fragments; returns terms in first-seen order
func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '+' && r != '#'
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fraction of query terms appearing as substrings of any of the fields
func termCoverage(tokens []string, fields ...string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatPtr(v float64) *float64 {
	return &v
}
