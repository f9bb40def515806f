package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

const (
	highlightOpen    = "<em>"
	highlightClose   = "</em>"
	snippetRadius    = 60
	maxSnippetsField = 3
)

// returns per-field snippets with each matched term wrapped in <em> tags,
// preserving the original casing of the source text
func memberHighlights(m members.Member, tokens []string) map[string][]string {
	fields := map[string]string{
		"name":    m.Name,
		"bio":     derefOr(m.Bio),
		"title":   derefOr(m.Title),
		"company": derefOr(m.Company),
		"skills":  strings.Join(m.Skills, ", "),
	}
	return buildHighlights(fields, tokens)
}

func storyHighlights(s stories.Story, tokens []string) map[string][]string {
	fields := map[string]string{
		"title":   s.Title,
		"content": s.Content,
		"summary": derefOr(s.Summary),
		"tags":    strings.Join(s.Tags, ", "),
	}
	return buildHighlights(fields, tokens)
}

func buildHighlights(fields map[string]string, tokens []string) map[string][]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string][]string, len(fields))
	for name, text := range fields {
		snippets := fieldSnippets(text, tokens)
		if len(snippets) > 0 {
			out[name] = snippets
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type span struct{ start, end int }

// lowerOffsets lowercases text and builds a byte-offset table mapping every
// position in the lowered copy back to the position of its source rune in
// text. Lowercasing can change a rune's encoded length (U+0130 shrinks,
// U+023A grows), so offsets found on the lowered copy must be translated
// through the table before slicing the original.
func lowerOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		b.WriteRune(unicode.ToLower(r))
		for len(offsets) < b.Len() {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return b.String(), offsets
}

// termSpans finds term occurrences case-insensitively and returns their
// spans as byte offsets into the original text.
func termSpans(text string, tokens []string, limit int) []span {
	lower, toOrig := lowerOffsets(text)
	var spans []span
	for _, tok := range tokens {
		from := 0
		for {
			i := strings.Index(lower[from:], tok)
			if i < 0 {
				break
			}
			at := from + i
			spans = append(spans, span{toOrig[at], toOrig[at+len(tok)]})
			from = at + len(tok)
			if limit > 0 && len(spans) >= limit {
				break
			}
		}
	}
	return spans
}

// extracts up to maxSnippetsField windows around term occurrences within
// one field, merging windows that overlap
func fieldSnippets(text string, tokens []string) []string {
	if text == "" {
		return nil
	}
	spans := termSpans(text, tokens, maxSnippetsField*len(tokens))
	if len(spans) == 0 {
		return nil
	}

	// windows around each hit, widened to whole words
	var windows []span
	for _, s := range spans {
		lo := s.start - snippetRadius
		if lo < 0 {
			lo = 0
		}
		hi := s.end + snippetRadius
		if hi > len(text) {
			hi = len(text)
		}
		for lo > 0 && text[lo-1] != ' ' && text[lo-1] != '\n' {
			lo--
		}
		for hi < len(text) && text[hi] != ' ' && text[hi] != '\n' {
			hi++
		}
		merged := false
		for i := range windows {
			if lo <= windows[i].end {
				if hi > windows[i].end {
					windows[i].end = hi
				}
				merged = true
				break
			}
		}
		if !merged {
			windows = append(windows, span{lo, hi})
		}
		if len(windows) >= maxSnippetsField {
			break
		}
	}

	snippets := make([]string, 0, len(windows))
	for _, w := range windows {
		snippets = append(snippets, markTerms(text[w.start:w.end], tokens))
	}
	return snippets
}

// wraps every term occurrence in a snippet with <em> tags, case-insensitively
func markTerms(snippet string, tokens []string) string {
	hits := termSpans(snippet, tokens, 0)
	if len(hits) == 0 {
		return snippet
	}
	// hits interleave across tokens; order by position, then assemble
	// left to right skipping hits inside an already-marked span
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	var b strings.Builder
	prev := 0
	for _, h := range hits {
		if h.start < prev {
			continue
		}
		b.WriteString(snippet[prev:h.start])
		b.WriteString(highlightOpen)
		b.WriteString(snippet[h.start:h.end])
		b.WriteString(highlightClose)
		prev = h.end
	}
	b.WriteString(snippet[prev:])
	return b.String()
}
