package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Starling-Strategy/stonesoup/internal/logger"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// Engine runs hybrid searches: full-text and vector retrieval in
// parallel per entity kind, merged and re-scored in process. Every
// operation is scoped to a single cauldron.
type Engine struct {
	members   MemberStore
	stories   StoryStore
	embedder  Embedder
	generator Summarizer
	queryLog  QueryLog

	weights Weights
	opts    Options
	log     *slog.Logger
}

// everything an engine talks to; Generator and QueryLog may be nil,
// which disables summaries and suggestions respectively
type Deps struct {
	Members   MemberStore
	Stories   StoryStore
	Embedder  Embedder
	Generator Summarizer
	QueryLog  QueryLog
}

// creates an engine with the default weights and options
func New(deps Deps) *Engine {
	return NewWithConfig(deps, DefaultWeights(), DefaultOptions())
}

func NewWithConfig(deps Deps, weights Weights, opts Options) *Engine {
	return &Engine{
		members:   deps.Members,
		stories:   deps.Stories,
		embedder:  deps.Embedder,
		generator: deps.Generator,
		queryLog:  deps.QueryLog,
		weights:   weights,
		opts:      opts,
		log:       logger.With("component", "search"),
	}
}

func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

// fills unset request fields with their defaults
func (e *Engine) applyDefaults(req *Request) {
	if req.Scope == "" {
		req.Scope = ScopeAll
	}
	if req.Mode == "" {
		req.Mode = ModeHybrid
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}
}

// rejects malformed requests before any collaborator is called
func (e *Engine) validate(req Request) error {
	if len(req.Query) > e.opts.MaxQueryLength {
		return &FieldError{Field: "query", Reason: fmt.Sprintf("longer than %d characters", e.opts.MaxQueryLength)}
	}
	switch req.Scope {
	case ScopeAll, ScopeMembers, ScopeStories:
	default:
		return &FieldError{Field: "scope", Reason: fmt.Sprintf("unknown scope %q", req.Scope)}
	}
	switch req.Mode {
	case ModeText, ModeSemantic, ModeHybrid:
	default:
		return &FieldError{Field: "search_type", Reason: fmt.Sprintf("unknown search type %q", req.Mode)}
	}
	if req.Page < 1 {
		return &FieldError{Field: "page", Reason: "must be at least 1"}
	}
	if req.PageSize < 1 || req.PageSize > e.opts.MaxPageSize {
		return &FieldError{Field: "page_size", Reason: fmt.Sprintf("must be between 1 and %d", e.opts.MaxPageSize)}
	}
	if req.SemanticThreshold != nil && (*req.SemanticThreshold < 0 || *req.SemanticThreshold > 1) {
		return &FieldError{Field: "semantic_threshold", Reason: "must be between 0 and 1"}
	}
	return nil
}

// Execute runs one search for the given cauldron and returns the merged,
// scored, paginated response. Store failures surface as
// ErrBackendUnavailable; embedder failures degrade the search to
// text-only instead of failing it.
func (e *Engine) Execute(ctx context.Context, req Request, cauldronID string) (*Response, error) {
	start := time.Now()

	if cauldronID == "" {
		return nil, &FieldError{Field: "cauldron_id", Reason: "required"}
	}
	e.applyDefaults(&req)
	if err := e.validate(req); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(req.Query)
	tokens := tokenize(trimmed)

	// nothing to look for: answer without touching any collaborator
	if trimmed == "" && req.Filters.Empty() {
		resp := e.emptyResponse(req, start)
		resp.Explanation = "empty query with no filters"
		return resp, nil
	}

	// one embedding serves both entity kinds; the provider sees the
	// original text since trimming shifts token boundaries
	var embedding []float32
	degraded := false
	if req.Mode != ModeText && trimmed != "" {
		ectx, cancel := context.WithTimeout(ctx, e.opts.EmbedTimeout)
		emb, err := e.embedder.GenerateEmbedding(ectx, req.Query)
		cancel()
		if err != nil {
			e.log.Warn("embedding failed, degrading to text search",
				"cauldron_id", cauldronID, "error", err)
			degraded = true
		} else {
			embedding = emb
		}
	}

	threshold := e.opts.DefaultThreshold
	if req.SemanticThreshold != nil {
		threshold = *req.SemanticThreshold
	}

	searchMembers := req.Scope == ScopeAll || req.Scope == ScopeMembers
	searchStories := req.Scope == ScopeAll || req.Scope == ScopeStories
	textPath := req.Mode != ModeSemantic || embedding == nil
	mf := req.Filters.memberFilter()
	sf := req.Filters.storyFilter()

	sctx, cancel := context.WithTimeout(ctx, e.opts.StoreTimeout)
	defer cancel()

	var (
		wg sync.WaitGroup
		mu sync.Mutex

		memberText   []members.TextMatch
		memberVector []members.VectorMatch
		storyText    []stories.TextMatch
		storyVector  []stories.VectorMatch
		memberCount  int
		storyCount   int
		lookupErr    error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil && lookupErr == nil {
			lookupErr = err
		}
	}

	if searchMembers && textPath {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := e.members.SearchText(sctx, cauldronID, trimmed, mf, e.opts.FetchLimit)
			memberText = hits
			record(err)
		}()
	}
	if searchMembers && embedding != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := e.members.SearchVector(sctx, cauldronID, embedding, e.opts.FetchLimit, threshold, mf)
			memberVector = hits
			record(err)
		}()
	}
	if searchStories && textPath {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := e.stories.SearchText(sctx, cauldronID, trimmed, sf, e.opts.FetchLimit)
			storyText = hits
			record(err)
		}()
	}
	if searchStories && embedding != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := e.stories.SearchVector(sctx, cauldronID, embedding, e.opts.FetchLimit, threshold, sf)
			storyVector = hits
			record(err)
		}()
	}
	if searchMembers && textPath {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := e.members.Count(sctx, cauldronID, trimmed, mf)
			memberCount = n
			record(err)
		}()
	}
	if searchStories && textPath {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := e.stories.Count(sctx, cauldronID, trimmed, sf)
			storyCount = n
			record(err)
		}()
	}
	wg.Wait()

	if lookupErr != nil {
		return nil, wrapUnavailable(lookupErr)
	}

	memberCandidates := mergeMembers(memberText, memberVector)
	storyCandidates := mergeStories(storyText, storyVector)

	// a row from another cauldron is a fatal bug, not something to
	// filter quietly: fail closed with zero results
	if e.detectLeak(memberCandidates, storyCandidates, cauldronID) {
		resp := e.emptyResponse(req, start)
		resp.Explanation = "search failed"
		return resp, nil
	}

	now := time.Now()
	memberResults := make([]MemberResult, 0, len(memberCandidates))
	for _, c := range memberCandidates {
		score, exp := scoreMember(c, tokens, trimmed, e.weights, req.BoostRecent, now)
		r := MemberResult{Member: c.member, Score: score}
		if req.ExplainScores {
			r.Breakdown = exp
		}
		if req.IncludeHighlights {
			r.Highlights = memberHighlights(c.member, tokens)
		}
		memberResults = append(memberResults, r)
	}
	storyResults := make([]StoryResult, 0, len(storyCandidates))
	for _, c := range storyCandidates {
		score, exp := scoreStory(c, tokens, trimmed, e.weights, req.BoostRecent, req.BoostPopular, now)
		r := StoryResult{Story: c.story, Score: score}
		if req.ExplainScores {
			r.Breakdown = exp
		}
		if req.IncludeHighlights {
			r.Highlights = storyHighlights(c.story, tokens)
		}
		storyResults = append(storyResults, r)
	}

	sortMemberResults(memberResults)
	sortStoryResults(storyResults)

	// semantic hits can land outside the text predicate, so the text
	// count alone may undercount
	if len(memberResults) > memberCount {
		memberCount = len(memberResults)
	}
	if len(storyResults) > storyCount {
		storyCount = len(storyResults)
	}

	resp := &Response{
		MemberResults: pageMembers(memberResults, req.Page, req.PageSize),
		MemberTotal:   memberCount,
		StoryResults:  pageStories(storyResults, req.Page, req.PageSize),
		StoryTotal:    storyCount,
		Page:          req.Page,
		PageSize:      req.PageSize,
		HasPrevious:   req.Page > 1,
	}
	resp.HasNext = req.Page*req.PageSize < memberCount ||
		req.Page*req.PageSize < storyCount

	semanticContributed := len(memberVector) > 0 || len(storyVector) > 0
	textContributed := len(memberText) > 0 || len(storyText) > 0
	used := modeUsed(embedding != nil, semanticContributed, textContributed)
	resp.Metadata = Metadata{
		Query:          req.Query,
		SearchType:     used,
		SemanticUsed:   embedding != nil,
		FiltersApplied: req.Filters.applied(),
		Timestamp:      now.UTC(),
	}
	resp.Explanation = e.explain(used, degraded, len(memberResults), len(storyResults))

	if req.GenerateSummary {
		resp.AISummary = e.generateSummary(ctx, trimmed, resp.MemberResults, resp.StoryResults)
	}
	if req.IncludeSuggestions {
		resp.Suggestions = e.buildSuggestions(ctx, req, cauldronID, memberCount+storyCount)
	}

	resp.Metadata.ExecutionTimeMS = float64(time.Since(start).Microseconds()) / 1000
	return resp, nil
}

// QuickSearch runs a search with the default knobs: hybrid mode, first
// page, boosts on, highlights and suggestions included.
func (e *Engine) QuickSearch(ctx context.Context, query string, scope Scope, limit int, cauldronID string) (*Response, error) {
	if limit <= 0 {
		limit = 10
	}
	return e.Execute(ctx, Request{
		Query:              query,
		Scope:              scope,
		Mode:               ModeHybrid,
		Page:               1,
		PageSize:           limit,
		BoostRecent:        true,
		BoostPopular:       true,
		IncludeHighlights:  true,
		IncludeSuggestions: true,
	}, cauldronID)
}

// returns true, after logging loudly, if any candidate belongs to a
// different cauldron than the one searched
func (e *Engine) detectLeak(mc []memberCandidate, sc []storyCandidate, cauldronID string) bool {
	for _, c := range mc {
		if c.member.CauldronID != cauldronID {
			e.log.Error("cauldron isolation violation",
				"expected", cauldronID, "got", c.member.CauldronID, "member_id", c.member.ID)
			return true
		}
	}
	for _, c := range sc {
		if c.story.CauldronID != cauldronID {
			e.log.Error("cauldron isolation violation",
				"expected", cauldronID, "got", c.story.CauldronID, "story_id", c.story.ID)
			return true
		}
	}
	return false
}

// names the retrieval paths that actually contributed hits; an empty
// result set falls back to whether the semantic path was available
func modeUsed(semanticAvailable, semanticContributed, textContributed bool) Mode {
	switch {
	case semanticContributed && textContributed:
		return ModeHybrid
	case semanticContributed:
		return ModeSemantic
	case textContributed:
		return ModeText
	case semanticAvailable:
		return ModeHybrid
	default:
		return ModeText
	}
}

func (e *Engine) explain(used Mode, degraded bool, memberHits, storyHits int) string {
	var b strings.Builder
	switch used {
	case ModeHybrid:
		b.WriteString("combined full-text and semantic retrieval")
	case ModeSemantic:
		b.WriteString("semantic retrieval")
	default:
		b.WriteString("full-text retrieval")
	}
	if degraded {
		b.WriteString(" (semantic path unavailable)")
	}
	fmt.Fprintf(&b, ": %d member and %d story candidates ranked", memberHits, storyHits)
	return b.String()
}

func (e *Engine) emptyResponse(req Request, start time.Time) *Response {
	return &Response{
		MemberResults: []MemberResult{},
		StoryResults:  []StoryResult{},
		Page:          req.Page,
		PageSize:      req.PageSize,
		HasPrevious:   req.Page > 1,
		Metadata: Metadata{
			Query:           req.Query,
			SearchType:      ModeText,
			FiltersApplied:  req.Filters.applied(),
			Timestamp:       time.Now().UTC(),
			ExecutionTimeMS: float64(time.Since(start).Microseconds()) / 1000,
		},
	}
}
