package chi

import (
	"time"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/result"
)

// ErrorCode is the machine-readable error code of an API error.
type ErrorCode string

// API error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthenticated  ErrorCode = "unauthenticated"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeTimeout          ErrorCode = "timeout"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// WorkspaceRef identifies the workspace owning a result.
type WorkspaceRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// BoardRef identifies the board owning a result.
type BoardRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CardRef identifies the card owning a result.
type CardRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SearchResultItem is one search hit.
type SearchResultItem struct {
	ID         string       `json:"id"`
	EntityType string       `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Title      string       `json:"title"`
	Snippet    string       `json:"snippet,omitempty"`
	URL        string       `json:"url"`
	Workspace  WorkspaceRef `json:"workspace"`
	Board      *BoardRef    `json:"board,omitempty"`
	Card       *CardRef     `json:"card,omitempty"`
	UpdatedAt  *time.Time   `json:"updated_at,omitempty"`
	Score      float64      `json:"score"`
}

// AppliedFilters echoes the parsed request.
type AppliedFilters struct {
	Query                     string   `json:"q"`
	Type                      string   `json:"type"`
	Match                     string   `json:"match"`
	Members                   []string `json:"members"`
	Labels                    []string `json:"labels"`
	Due                       []string `json:"due"`
	Status                    []string `json:"status"`
	Workspace                 *string  `json:"workspace"`
	Limit                     int      `json:"limit"`
	BoardsHiddenByCardFilters bool     `json:"boards_hidden_by_card_filters"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Items          []SearchResultItem `json:"items"`
	NextCursor     *string            `json:"next_cursor"`
	AppliedFilters AppliedFilters     `json:"applied_filters"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchResponseFromResult renders a search response in its wire shape.
func SearchResponseFromResult(resp *result.Response) SearchResponse {
	items := make([]SearchResultItem, len(resp.Items))
	for i := range resp.Items {
		items[i] = searchItemToDTO(&resp.Items[i])
	}

	out := SearchResponse{
		Items:          items,
		AppliedFilters: appliedFiltersToDTO(resp.AppliedFilters),
	}
	if resp.NextCursor != "" {
		c := resp.NextCursor
		out.NextCursor = &c
	}
	return out
}

func searchItemToDTO(it *result.Item) SearchResultItem {
	item := SearchResultItem{
		ID:         it.ID,
		EntityType: string(it.EntityType),
		EntityID:   it.EntityID,
		Title:      it.Title,
		Snippet:    it.Snippet,
		URL:        it.URL,
		Workspace:  WorkspaceRef{ID: it.Workspace.ID, Slug: it.Workspace.Slug, Name: it.Workspace.Name},
		Score:      it.Score,
	}
	if it.Board != nil {
		item.Board = &BoardRef{ID: it.Board.ID, Name: it.Board.Name}
	}
	if it.Card != nil {
		item.Card = &CardRef{ID: it.Card.ID, Title: it.Card.Title}
	}
	if !it.UpdatedAt.IsZero() {
		ts := it.UpdatedAt.UTC()
		item.UpdatedAt = &ts
	}
	return item
}

func appliedFiltersToDTO(f result.AppliedFilters) AppliedFilters {
	out := AppliedFilters{
		Query:                     f.Query,
		Type:                      string(f.Type),
		Match:                     f.Match,
		Members:                   orEmpty(f.Members),
		Labels:                    orEmpty(f.Labels),
		Due:                       orEmpty(f.Due),
		Status:                    orEmpty(f.Status),
		Limit:                     f.Limit,
		BoardsHiddenByCardFilters: f.BoardsHiddenByCardFilters,
	}
	if f.Workspace != "" {
		ws := f.Workspace
		out.Workspace = &ws
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
