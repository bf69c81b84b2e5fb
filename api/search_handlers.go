package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-fuzzy-search/model"
)

// MaxMultiSearchQueries bounds the number of queries in one multi-search request.
const MaxMultiSearchQueries = 20

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query string `json:"query"`
}

// MultiSearchRequest represents the JSON request for multi-search
type MultiSearchRequest struct {
	Queries []NamedSearchRequest `json:"queries" binding:"required"`
}

// NamedSearchRequest represents a single named search query in the request
type NamedSearchRequest struct {
	Name  string `json:"name" binding:"required"`
	Query string `json:"query"`
}

// NamedSearchResult is the outcome, or the failure, of one named query.
type NamedSearchResult struct {
	Outcome *model.Outcome `json:"outcome,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// MultiSearchResponse maps each query name to its result.
type MultiSearchResponse struct {
	Results map[string]NamedSearchResult `json:"results"`
}

// SearchHandler handles POST /search with a JSON SearchRequest body.
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	api.search(c, req)
}

// SearchQueryHandler handles GET /search?q=...
func (api *API) SearchQueryHandler(c *gin.Context) {
	api.search(c, SearchRequest{Query: c.Query("q")})
}

func (api *API) search(c *gin.Context, req SearchRequest) {
	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	outcome, err := api.engine.Lookup(c.Request.Context(), req.Query)
	if err != nil {
		SendQueryError(c, req.Query, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// MultiSearchHandler runs several named queries concurrently. A failing query
// is reported in its own result and does not fail the request.
func (api *API) MultiSearchHandler(c *gin.Context) {
	var req MultiSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	result := &ValidationResult{Valid: true}
	if len(req.Queries) == 0 {
		result.AddError("queries", "At least one query is required")
	}
	if len(req.Queries) > MaxMultiSearchQueries {
		result.AddError("queries", "Too many queries in one request")
	}
	seen := make(map[string]bool, len(req.Queries))
	for _, q := range req.Queries {
		if seen[q.Name] {
			result.AddError("queries", "Duplicate query name '"+q.Name+"'")
		}
		seen[q.Name] = true
		if r := ValidateSearchRequest(&SearchRequest{Query: q.Query}); r.HasErrors() {
			result.AddError("queries."+q.Name, r.Errors[0].Message)
		}
	}
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var mu sync.Mutex
	results := make(map[string]NamedSearchResult, len(req.Queries))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for _, q := range req.Queries {
		q := q
		g.Go(func() error {
			outcome, err := api.engine.Lookup(ctx, q.Query)
			res := NamedSearchResult{Outcome: outcome}
			if err != nil {
				res.Error = err.Error()
			}
			mu.Lock()
			results[q.Name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	c.JSON(http.StatusOK, MultiSearchResponse{Results: results})
}
