package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberHighlightsPreserveCase(t *testing.T) {
	m := testMember("m1", "Ada Lovelace", time.Now())
	m.Bio = strPtr("Pioneered Analytical Engine programming in London.")

	got := memberHighlights(m, []string{"analytical", "london"})
	require.Contains(t, got, "bio")
	require.Len(t, got["bio"], 1)

	snippet := got["bio"][0]
	assert.Contains(t, snippet, "<em>Analytical</em>", "original casing survives marking")
	assert.Contains(t, snippet, "<em>London</em>")
}

func TestStoryHighlightsWindowed(t *testing.T) {
	s := testStory("s1", "Scaling Postgres", time.Now())
	s.Content = strings.Repeat("filler text here. ", 40) +
		"We sharded Postgres across three regions." +
		strings.Repeat(" more filler text.", 40)

	got := storyHighlights(s, []string{"sharded"})
	require.Contains(t, got, "content")
	snippet := got["content"][0]

	assert.Contains(t, snippet, "<em>sharded</em>")
	assert.Less(t, len(snippet), 200, "snippet is a window, not the whole field")
}

func TestHighlightsCapPerField(t *testing.T) {
	s := testStory("s1", "go", time.Now())
	s.Content = strings.Repeat("go is great. "+strings.Repeat("pad ", 60), 10)

	got := storyHighlights(s, []string{"go"})
	require.Contains(t, got, "content")
	assert.LessOrEqual(t, len(got["content"]), maxSnippetsField)
}

// Lowercasing can change a rune's byte length, so offsets found on the
// lowered copy are not offsets into the original. U+0130 shrinks from two
// bytes to one and U+023A grows from two to three; both must still yield
// well-formed markers against the original text.
func TestHighlightsLengthChangingCaseMappings(t *testing.T) {
	shrink := testMember("m1", "İstanbul Developer", time.Now())
	got := memberHighlights(shrink, tokenize("istanbul"))
	require.Contains(t, got, "name")
	assert.Equal(t, "<em>İstanbul</em> Developer", got["name"][0])

	grow := testMember("m2", "Ⱥ test", time.Now())
	got = memberHighlights(grow, tokenize("test"))
	require.Contains(t, got, "name")
	assert.Equal(t, "Ⱥ <em>test</em>", got["name"][0])
}

func TestHighlightsNoMatch(t *testing.T) {
	m := testMember("m1", "Ada Lovelace", time.Now())

	assert.Nil(t, memberHighlights(m, []string{"quantum"}))
	assert.Nil(t, memberHighlights(m, nil))
}
