package search

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/internal/auth"
	"github.com/Starling-Strategy/stonesoup/internal/errors"
	"github.com/Starling-Strategy/stonesoup/internal/logger"
	"github.com/Starling-Strategy/stonesoup/internal/search"
)

// SearchHandler runs a fully-configured hybrid search for the caller's cauldron
func SearchHandler(engine Engine, recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		var req search.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		resp, err := engine.Execute(c.Request.Context(), req, cauldronID)
		if err != nil {
			respondSearchError(c, err)
			return
		}

		recordQuery(recorder, cauldronID, req.Query, resp.MemberTotal+resp.StoryTotal)
		c.JSON(http.StatusOK, resp)
	}
}

// QuickSearchHandler runs a search with default knobs, for simple clients
func QuickSearchHandler(engine Engine, recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		var req QuickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		scope := search.ScopeAll
		if req.Scope != "" {
			scope = search.Scope(req.Scope)
		}

		resp, err := engine.QuickSearch(c.Request.Context(), req.Query, scope, req.Limit, cauldronID)
		if err != nil {
			respondSearchError(c, err)
			return
		}

		recordQuery(recorder, cauldronID, req.Query, resp.MemberTotal+resp.StoryTotal)
		c.JSON(http.StatusOK, resp)
	}
}

// SuggestionsHandler returns type-ahead completions for a query prefix
func SuggestionsHandler(engine Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		prefix := c.Query("q")
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

		suggestions, err := engine.Suggest(c.Request.Context(), cauldronID, prefix, limit)
		if err != nil {
			respondSearchError(c, err)
			return
		}

		c.JSON(http.StatusOK, SuggestionsResponse{
			Query:       prefix,
			Suggestions: suggestions,
		})
	}
}

// maps engine failures onto the HTTP error taxonomy
func respondSearchError(c *gin.Context, err error) {
	var fieldErr *search.FieldError
	switch {
	case stderrors.As(err, &fieldErr):
		errors.ValidationError(c, err)
	case stderrors.Is(err, search.ErrBackendUnavailable):
		errors.ServiceUnavailable(c, "search backend unavailable", err)
	default:
		errors.InternalError(c, "search failed", err)
	}
}

// logs the query off the request path; a logging failure never affects
// the response already sent
func recordQuery(recorder Recorder, cauldronID, query string, resultCount int) {
	if recorder == nil || strings.TrimSpace(query) == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.Record(ctx, cauldronID, query, resultCount); err != nil {
			logger.Warn("failed to record search query", "error", err)
		}
	}()
}
