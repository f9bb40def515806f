package search

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 160))
	assert.Equal(t, "one two", truncateText("one\ntwo", 160))

	long := strings.Repeat("x", 200)
	got := truncateText(long, 160)
	assert.Equal(t, strings.Repeat("x", 160)+"...", got)
}

// the cut point must not split a multi-byte rune
func TestTruncateTextRuneBoundary(t *testing.T) {
	accented := strings.Repeat("é", 100)
	for n := 1; n <= 10; n++ {
		got := truncateText(accented, n)
		require.True(t, utf8.ValidString(got), "n=%d produced invalid UTF-8", n)
		assert.True(t, strings.HasSuffix(got, "..."))
	}
	// odd byte count lands mid-rune and backs up one byte
	assert.Equal(t, "é...", truncateText(accented, 3))
}

func TestSummaryPromptShape(t *testing.T) {
	now := time.Now()
	m := testMember("m1", "Ada Lovelace", now)
	m.Title = strPtr("Engineer")
	m.Company = strPtr("Analytical Ltd")
	s := testStory("s1", "Engine Notes", now)
	s.Content = "A long account of the engine. " + strings.Repeat("More detail. ", 30)

	prompt := summaryPrompt("engineering", []MemberResult{{Member: m, Score: 0.91}}, []StoryResult{{Story: s, Score: 0.72}})

	assert.Contains(t, prompt, `Query: "engineering"`)
	assert.Contains(t, prompt, "Ada Lovelace, Engineer at Analytical Ltd")
	assert.Contains(t, prompt, "Engine Notes: ")
	assert.Contains(t, prompt, "...", "long story content is truncated")
	assert.NotContains(t, prompt, strings.Repeat("More detail. ", 30), "content is not embedded whole")
}
