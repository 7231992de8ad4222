package boardsearch

import (
	"time"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/result"
)

// EntityType selects what kind of entity a result is, or which kinds to search.
type EntityType string

// Entity types.
const (
	TypeAll        EntityType = EntityType(entity.All)
	TypeBoard      EntityType = EntityType(entity.Board)
	TypeCard       EntityType = EntityType(entity.Card)
	TypeComment    EntityType = EntityType(entity.Comment)
	TypeChecklist  EntityType = EntityType(entity.Checklist)
	TypeAttachment EntityType = EntityType(entity.Attachment)
)

// MatchMode controls how active card facets combine.
type MatchMode string

// Match modes.
const (
	MatchAny MatchMode = MatchMode(filter.MatchAny)
	MatchAll MatchMode = MatchMode(filter.MatchAll)
)

// DueBucket is a due-date facet value.
type DueBucket string

// Due buckets.
const (
	DueOverdue    DueBucket = DueBucket(filter.DueOverdue)
	DueTomorrow   DueBucket = DueBucket(filter.DueTomorrow)
	DueNext7Days  DueBucket = DueBucket(filter.DueNext7Days)
	DueNext30Days DueBucket = DueBucket(filter.DueNext30Days)
	DueNone       DueBucket = DueBucket(filter.DueNone)
)

// Status is a completion facet value.
type Status string

// Statuses.
const (
	StatusCompleted    Status = Status(filter.StatusCompleted)
	StatusNotCompleted Status = Status(filter.StatusNotCompleted)
)

// Facet sentinels.
const (
	// MemberMe matches cards assigned to the viewer.
	MemberMe = filter.MemberMe
	// MemberNone matches cards without assignees.
	MemberNone = filter.MemberNone
	// LabelNone matches cards without labels.
	LabelNone = filter.LabelNone
)

// Ref names an owning entity.
type Ref struct {
	ID   string
	Name string
}

// WorkspaceRef names the owning workspace.
type WorkspaceRef struct {
	ID   string
	Slug string
	Name string
}

// Result is one search hit.
type Result struct {
	ID         string
	EntityType EntityType
	EntityID   string
	Title      string
	Snippet    string
	URL        string
	Workspace  WorkspaceRef
	Board      *Ref
	Card       *Ref
	UpdatedAt  time.Time
	Score      float64
}

// Page is one page of results. NextCursor is empty when no more results exist.
type Page struct {
	Results    []Result
	NextCursor string
	// BoardsHidden reports that card facets excluded board results.
	BoardsHidden bool
}

func fromResponse(resp *result.Response) *Page {
	out := make([]Result, len(resp.Items))
	for i := range resp.Items {
		it := &resp.Items[i]
		r := Result{
			ID:         it.ID,
			EntityType: EntityType(it.EntityType),
			EntityID:   it.EntityID,
			Title:      it.Title,
			Snippet:    it.Snippet,
			URL:        it.URL,
			Workspace:  WorkspaceRef{ID: it.Workspace.ID, Slug: it.Workspace.Slug, Name: it.Workspace.Name},
			UpdatedAt:  it.UpdatedAt,
			Score:      it.Score,
		}
		if it.Board != nil {
			r.Board = &Ref{ID: it.Board.ID, Name: it.Board.Name}
		}
		if it.Card != nil {
			r.Card = &Ref{ID: it.Card.ID, Name: it.Card.Title}
		}
		out[i] = r
	}
	return &Page{
		Results:      out,
		NextCursor:   resp.NextCursor,
		BoardsHidden: resp.AppliedFilters.BoardsHiddenByCardFilters,
	}
}
