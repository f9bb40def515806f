package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/searchlog"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

type fakeMemberStore struct {
	mu     sync.Mutex
	text   []members.TextMatch
	vector []members.VectorMatch
	count  int
	err    error
	calls  int
}

func (f *fakeMemberStore) bump() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeMemberStore) SearchText(_ context.Context, _, _ string, _ members.Filter, _ int) ([]members.TextMatch, error) {
	f.bump()
	return f.text, f.err
}

func (f *fakeMemberStore) SearchVector(_ context.Context, _ string, _ []float32, _ int, _ float64, _ members.Filter) ([]members.VectorMatch, error) {
	f.bump()
	return f.vector, f.err
}

func (f *fakeMemberStore) Count(_ context.Context, _, _ string, _ members.Filter) (int, error) {
	f.bump()
	return f.count, f.err
}

type fakeStoryStore struct {
	mu     sync.Mutex
	text   []stories.TextMatch
	vector []stories.VectorMatch
	count  int
	err    error
	calls  int
}

func (f *fakeStoryStore) bump() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeStoryStore) SearchText(_ context.Context, _, _ string, _ stories.Filter, _ int) ([]stories.TextMatch, error) {
	f.bump()
	return f.text, f.err
}

func (f *fakeStoryStore) SearchVector(_ context.Context, _ string, _ []float32, _ int, _ float64, _ stories.Filter) ([]stories.VectorMatch, error) {
	f.bump()
	return f.vector, f.err
}

func (f *fakeStoryStore) Count(_ context.Context, _, _ string, _ stories.Filter) (int, error) {
	f.bump()
	return f.count, f.err
}

type fakeEmbedder struct {
	embedding []float32
	err       error
	calls     int
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateText(_ context.Context, _, _ string) (string, error) {
	return f.text, f.err
}

type fakeQueryLog struct {
	popular []searchlog.PopularQuery
	err     error
}

func (f *fakeQueryLog) TopQueries(_ context.Context, _ string, _ int) ([]searchlog.PopularQuery, error) {
	return f.popular, f.err
}

func (f *fakeQueryLog) TopQueriesMatching(_ context.Context, _, _ string, _ int) ([]searchlog.PopularQuery, error) {
	return f.popular, f.err
}

const testCauldron = "cauldron-1"

func testMember(id, name string, created time.Time) members.Member {
	return members.Member{
		ID:         id,
		CauldronID: testCauldron,
		Email:      name + "@example.com",
		Name:       name,
		IsActive:   true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func testStory(id, title string, created time.Time) stories.Story {
	return stories.Story{
		ID:         id,
		CauldronID: testCauldron,
		Title:      title,
		Content:    "a story about " + title,
		Status:     stories.StatusPublished,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func newTestEngine(ms *fakeMemberStore, ss *fakeStoryStore, emb *fakeEmbedder) *Engine {
	return New(Deps{Members: ms, Stories: ss, Embedder: emb})
}

func TestExecuteEmptyQueryFastPath(t *testing.T) {
	ms := &fakeMemberStore{}
	ss := &fakeStoryStore{}
	emb := &fakeEmbedder{embedding: []float32{0.1, 0.2}}
	engine := newTestEngine(ms, ss, emb)

	resp, err := engine.Execute(context.Background(), Request{Query: "   "}, testCauldron)
	require.NoError(t, err)

	assert.Empty(t, resp.MemberResults)
	assert.Empty(t, resp.StoryResults)
	assert.Zero(t, resp.MemberTotal)
	assert.Zero(t, resp.StoryTotal)
	assert.Equal(t, 0, emb.calls, "embedder must not be called")
	assert.Equal(t, 0, ms.calls, "member store must not be called")
	assert.Equal(t, 0, ss.calls, "story store must not be called")
}

func TestExecuteRequiresCauldron(t *testing.T) {
	engine := newTestEngine(&fakeMemberStore{}, &fakeStoryStore{}, &fakeEmbedder{})

	_, err := engine.Execute(context.Background(), Request{Query: "go"}, "")
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "cauldron_id", fieldErr.FieldName())
}

func TestExecuteValidation(t *testing.T) {
	engine := newTestEngine(&fakeMemberStore{}, &fakeStoryStore{}, &fakeEmbedder{})

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	bad := 1.5

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"query too long", Request{Query: string(long)}, "query"},
		{"unknown scope", Request{Query: "go", Scope: "everything"}, "scope"},
		{"unknown mode", Request{Query: "go", Mode: "fuzzy"}, "search_type"},
		{"negative page", Request{Query: "go", Page: -1}, "page"},
		{"oversized page", Request{Query: "go", PageSize: 500}, "page_size"},
		{"threshold out of range", Request{Query: "go", SemanticThreshold: &bad}, "semantic_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Execute(context.Background(), tt.req, testCauldron)
			require.Error(t, err)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.FieldName())
		})
	}
}

func TestExecuteMergesBothPaths(t *testing.T) {
	now := time.Now()
	shared := testMember("m1", "Ada Lovelace", now)
	textOnly := testMember("m2", "Grace Hopper", now)
	vectorOnly := testMember("m3", "Alan Kay", now)

	ms := &fakeMemberStore{
		text: []members.TextMatch{
			{Member: shared, Rank: 0.8},
			{Member: textOnly, Rank: 0.5},
		},
		vector: []members.VectorMatch{
			{Member: shared, Similarity: 0.9},
			{Member: vectorOnly, Similarity: 0.7},
		},
		count: 2,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{embedding: []float32{0.3}})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "programming pioneers",
		Scope: ScopeMembers,
	}, testCauldron)
	require.NoError(t, err)

	require.Len(t, resp.MemberResults, 3, "shared hit must be deduplicated")
	assert.Equal(t, 3, resp.MemberTotal, "semantic-only hits extend the text count")
	assert.Equal(t, ModeHybrid, resp.Metadata.SearchType)
	assert.True(t, resp.Metadata.SemanticUsed)

	for _, r := range resp.MemberResults {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
	// the candidate seen by both paths carries the strongest evidence
	assert.Equal(t, "m1", resp.MemberResults[0].Member.ID)
}

func TestExecuteSemanticOnlyHitSurfaces(t *testing.T) {
	now := time.Now()
	ms := &fakeMemberStore{
		vector: []members.VectorMatch{
			{Member: testMember("m9", "Barbara Liskov", now), Similarity: 0.85},
		},
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{embedding: []float32{0.2}})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "substitution principle",
		Scope: ScopeMembers,
	}, testCauldron)
	require.NoError(t, err)

	require.Len(t, resp.MemberResults, 1)
	assert.Equal(t, "m9", resp.MemberResults[0].Member.ID)
	assert.Equal(t, 1, resp.MemberTotal)
	assert.Equal(t, ModeSemantic, resp.Metadata.SearchType)
}

func TestExecuteDegradesWhenEmbedderFails(t *testing.T) {
	now := time.Now()
	ms := &fakeMemberStore{
		text:  []members.TextMatch{{Member: testMember("m1", "Ada Lovelace", now), Rank: 0.7}},
		count: 1,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{err: errors.New("provider down")})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "ada",
		Scope: ScopeMembers,
	}, testCauldron)
	require.NoError(t, err, "embedder failure must not fail the search")

	require.Len(t, resp.MemberResults, 1)
	assert.Equal(t, ModeText, resp.Metadata.SearchType)
	assert.False(t, resp.Metadata.SemanticUsed)
	assert.Contains(t, resp.Explanation, "semantic path unavailable")
}

func TestExecuteStoreFailureIsUnavailable(t *testing.T) {
	ms := &fakeMemberStore{err: errors.New("connection refused")}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{embedding: []float32{0.1}})

	_, err := engine.Execute(context.Background(), Request{Query: "go"}, testCauldron)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestExecuteFailsClosedOnCauldronLeak(t *testing.T) {
	now := time.Now()
	leaked := testMember("m1", "Ada Lovelace", now)
	leaked.CauldronID = "other-cauldron"

	ms := &fakeMemberStore{
		text:  []members.TextMatch{{Member: leaked, Rank: 0.9}},
		count: 1,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{err: errors.New("skip semantic")})

	resp, err := engine.Execute(context.Background(), Request{Query: "ada", Mode: ModeText}, testCauldron)
	require.NoError(t, err)

	assert.Empty(t, resp.MemberResults)
	assert.Empty(t, resp.StoryResults)
	assert.Zero(t, resp.MemberTotal)
}

func TestExecuteDeterministicOrdering(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// identical evidence: ordering falls back to created_at, then id
	ms := &fakeMemberStore{
		text: []members.TextMatch{
			{Member: testMember("m-b", "Sam", older), Rank: 0.5},
			{Member: testMember("m-a", "Sam", older), Rank: 0.5},
			{Member: testMember("m-c", "Sam", newer), Rank: 0.5},
		},
		count: 3,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{})

	var first []string
	for i := 0; i < 3; i++ {
		resp, err := engine.Execute(context.Background(), Request{
			Query: "sam", Scope: ScopeMembers, Mode: ModeText,
		}, testCauldron)
		require.NoError(t, err)

		ids := make([]string, 0, len(resp.MemberResults))
		for _, r := range resp.MemberResults {
			ids = append(ids, r.Member.ID)
		}
		if first == nil {
			first = ids
			assert.Equal(t, []string{"m-c", "m-a", "m-b"}, ids)
		} else {
			assert.Equal(t, first, ids)
		}
	}
}

func TestExecutePagination(t *testing.T) {
	now := time.Now()
	var hits []stories.TextMatch
	for i := 0; i < 25; i++ {
		hits = append(hits, stories.TextMatch{
			Story: testStory(fmt.Sprintf("s-%02d", i), fmt.Sprintf("story %d", i), now.Add(-time.Duration(i)*time.Hour)),
			Rank:  1.0 - float64(i)*0.01,
		})
	}
	ss := &fakeStoryStore{text: hits, count: 25}
	engine := newTestEngine(&fakeMemberStore{}, ss, &fakeEmbedder{})

	tests := []struct {
		page    int
		wantLen int
		hasNext bool
		hasPrev bool
	}{
		{1, 10, true, false},
		{2, 10, true, true},
		{3, 5, false, true},
		{4, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page_%d", tt.page), func(t *testing.T) {
			resp, err := engine.Execute(context.Background(), Request{
				Query: "story", Scope: ScopeStories, Mode: ModeText,
				Page: tt.page, PageSize: 10,
			}, testCauldron)
			require.NoError(t, err)

			assert.Len(t, resp.StoryResults, tt.wantLen)
			assert.Equal(t, 25, resp.StoryTotal)
			assert.Equal(t, tt.hasNext, resp.HasNext)
			assert.Equal(t, tt.hasPrev, resp.HasPrevious)
		})
	}
}

// The fetch limit caps how many candidates come back, but the store count
// reports the full match population. Paging flags follow the count, not the
// fetched slice, so a page past the fetched candidates still reports more.
func TestExecuteHasNextFollowsStoreCount(t *testing.T) {
	now := time.Now()
	var hits []stories.TextMatch
	for i := 0; i < 5; i++ {
		hits = append(hits, stories.TextMatch{
			Story: testStory(fmt.Sprintf("s-%d", i), fmt.Sprintf("story %d", i), now),
			Rank:  0.9,
		})
	}
	ss := &fakeStoryStore{text: hits, count: 300}
	engine := newTestEngine(&fakeMemberStore{}, ss, &fakeEmbedder{})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "story", Scope: ScopeStories, Mode: ModeText,
		Page: 1, PageSize: 10,
	}, testCauldron)
	require.NoError(t, err)

	assert.Equal(t, 300, resp.StoryTotal)
	assert.True(t, resp.HasNext, "count exceeds one page even though fewer candidates were fetched")

	resp, err = engine.Execute(context.Background(), Request{
		Query: "story", Scope: ScopeStories, Mode: ModeText,
		Page: 30, PageSize: 10,
	}, testCauldron)
	require.NoError(t, err)
	assert.False(t, resp.HasNext)
}

func TestExecuteExactNameRanksFirst(t *testing.T) {
	now := time.Now()
	exact := testMember("m1", "Ada Lovelace", now)
	partial := testMember("m2", "Ada Smith", now)
	partial.Bio = strPtr("worked with Lovelace archives")

	ms := &fakeMemberStore{
		text: []members.TextMatch{
			{Member: partial, Rank: 0.6},
			{Member: exact, Rank: 0.9},
		},
		count: 2,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "Ada Lovelace", Scope: ScopeMembers, Mode: ModeText,
	}, testCauldron)
	require.NoError(t, err)

	require.Len(t, resp.MemberResults, 2)
	assert.Equal(t, "m1", resp.MemberResults[0].Member.ID)
}

func TestExecuteSummaryFailureIsIsolated(t *testing.T) {
	now := time.Now()
	ms := &fakeMemberStore{
		text:  []members.TextMatch{{Member: testMember("m1", "Ada Lovelace", now), Rank: 0.7}},
		count: 1,
	}
	engine := New(Deps{
		Members:   ms,
		Stories:   &fakeStoryStore{},
		Embedder:  &fakeEmbedder{},
		Generator: &fakeGenerator{err: errors.New("model overloaded")},
	})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "ada", Scope: ScopeMembers, Mode: ModeText, GenerateSummary: true,
	}, testCauldron)
	require.NoError(t, err)

	assert.Nil(t, resp.AISummary)
	require.Len(t, resp.MemberResults, 1)
}

func TestExecuteSummaryAttached(t *testing.T) {
	now := time.Now()
	ms := &fakeMemberStore{
		text:  []members.TextMatch{{Member: testMember("m1", "Ada Lovelace", now), Rank: 0.7}},
		count: 1,
	}
	engine := New(Deps{
		Members:   ms,
		Stories:   &fakeStoryStore{},
		Embedder:  &fakeEmbedder{},
		Generator: &fakeGenerator{text: "One strong match: Ada Lovelace."},
	})

	resp, err := engine.Execute(context.Background(), Request{
		Query: "ada", Scope: ScopeMembers, Mode: ModeText, GenerateSummary: true,
	}, testCauldron)
	require.NoError(t, err)

	require.NotNil(t, resp.AISummary)
	assert.Contains(t, *resp.AISummary, "Ada Lovelace")
}

func TestExecuteScopeLimitsStores(t *testing.T) {
	ms := &fakeMemberStore{}
	ss := &fakeStoryStore{}
	engine := newTestEngine(ms, ss, &fakeEmbedder{})

	_, err := engine.Execute(context.Background(), Request{
		Query: "go", Scope: ScopeMembers, Mode: ModeText,
	}, testCauldron)
	require.NoError(t, err)

	assert.NotZero(t, ms.calls)
	assert.Zero(t, ss.calls, "story store must not be queried for a member-scoped search")
}

func TestQuickSearchDefaults(t *testing.T) {
	now := time.Now()
	ms := &fakeMemberStore{
		text:  []members.TextMatch{{Member: testMember("m1", "Ada Lovelace", now), Rank: 0.7}},
		count: 1,
	}
	engine := newTestEngine(ms, &fakeStoryStore{}, &fakeEmbedder{embedding: []float32{0.1}})

	resp, err := engine.QuickSearch(context.Background(), "ada", ScopeAll, 0, testCauldron)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.MemberResults, 1)
	assert.NotEmpty(t, resp.MemberResults[0].Highlights)
}

func TestSuggest(t *testing.T) {
	log := &fakeQueryLog{popular: []searchlog.PopularQuery{
		{Query: "golang developers", Count: 10},
		{Query: "golang mentors", Count: 5},
	}}
	engine := New(Deps{
		Members:  &fakeMemberStore{},
		Stories:  &fakeStoryStore{},
		Embedder: &fakeEmbedder{},
		QueryLog: log,
	})

	got, err := engine.Suggest(context.Background(), testCauldron, "gol", 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "golang developers", got[0].Query)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.InDelta(t, 0.5, got[1].Score, 1e-9)

	_, err = engine.Suggest(context.Background(), "", "gol", 5)
	require.Error(t, err)

	empty, err := engine.Suggest(context.Background(), testCauldron, "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBuildSuggestionsNeverEchoesQuery(t *testing.T) {
	log := &fakeQueryLog{popular: []searchlog.PopularQuery{
		{Query: "Golang Developers", Count: 10},
		{Query: "rust developers", Count: 4},
	}}
	engine := New(Deps{
		Members:  &fakeMemberStore{},
		Stories:  &fakeStoryStore{},
		Embedder: &fakeEmbedder{},
		QueryLog: log,
	})

	got := engine.buildSuggestions(context.Background(), Request{Query: "golang developers"}, testCauldron, 10)
	assert.Equal(t, []string{"rust developers"}, got)
}

func strPtr(s string) *string {
	return &s
}
