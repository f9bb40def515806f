package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const summarySystemPrompt = `You summarize search results for a talent marketplace.
Given a query and the top matching member profiles and stories, write a
concise synopsis (2-3 sentences) of what was found and who stands out.
Do not invent people or facts not present in the results.`

const summaryTopN = 5

// asks the text generator for a short narrative over the top-ranked hits;
// any failure is logged and the summary is simply omitted
func (e *Engine) generateSummary(ctx context.Context, query string, memberResults []MemberResult, storyResults []StoryResult) *string {
	if e.generator == nil {
		return nil
	}
	if len(memberResults) == 0 && len(storyResults) == 0 {
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, e.opts.SummaryTimeout)
	defer cancel()

	text, err := e.generator.GenerateText(sctx, summarySystemPrompt, summaryPrompt(query, memberResults, storyResults))
	if err != nil {
		e.log.Warn("summary generation failed", "error", err)
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

// renders the top results as a compact prompt the generator can ground on
func summaryPrompt(query string, memberResults []MemberResult, storyResults []StoryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q\n\n", query)

	if len(memberResults) > 0 {
		b.WriteString("Top members:\n")
		for i, r := range memberResults {
			if i >= summaryTopN {
				break
			}
			line := r.Member.Name
			if r.Member.Title != nil && *r.Member.Title != "" {
				line += ", " + *r.Member.Title
			}
			if r.Member.Company != nil && *r.Member.Company != "" {
				line += " at " + *r.Member.Company
			}
			if len(r.Member.Skills) > 0 {
				line += " (" + strings.Join(truncateList(r.Member.Skills, 6), ", ") + ")"
			}
			fmt.Fprintf(&b, "- %s [score %.2f]\n", line, r.Score)
		}
		b.WriteString("\n")
	}

	if len(storyResults) > 0 {
		b.WriteString("Top stories:\n")
		for i, r := range storyResults {
			if i >= summaryTopN {
				break
			}
			line := r.Story.Title
			if r.Story.Summary != nil && *r.Story.Summary != "" {
				line += ": " + truncateText(*r.Story.Summary, 160)
			} else {
				line += ": " + truncateText(r.Story.Content, 160)
			}
			fmt.Fprintf(&b, "- %s [score %.2f]\n", line, r.Score)
		}
	}
	return b.String()
}

func truncateList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func truncateText(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	// back up so the cut lands on a rune boundary
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
