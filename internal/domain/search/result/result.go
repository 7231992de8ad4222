// Package result holds the shaped search results returned to callers.
package result

import (
	"time"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
)

// WorkspaceRef identifies the owning workspace of an item.
type WorkspaceRef struct {
	ID   string
	Slug string
	Name string
}

// BoardRef identifies the owning board of an item.
type BoardRef struct {
	ID   string
	Name string
}

// CardRef identifies the owning card of a card-derived item.
type CardRef struct {
	ID    string
	Title string
}

// Item is a single search result. ID is "type:entityId" and unique per response.
type Item struct {
	ID         string
	EntityType entity.Type
	EntityID   string
	Title      string
	Snippet    string
	URL        string
	Workspace  WorkspaceRef
	Board      *BoardRef
	Card       *CardRef
	UpdatedAt  time.Time
	Score      float64
}

// AppliedFilters echoes the parsed request.
type AppliedFilters struct {
	Query                     string
	Type                      entity.Type
	Match                     string
	Members                   []string
	Labels                    []string
	Due                       []string
	Status                    []string
	Workspace                 string
	Limit                     int
	BoardsHiddenByCardFilters bool
}

// Response is one page of results. NextCursor is "" when exhausted.
type Response struct {
	Items          []Item
	NextCursor     string
	AppliedFilters AppliedFilters
}
