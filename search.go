package boardsearch

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for one search.
type SearchBuilder struct {
	client   *Client
	viewerID string

	query     string
	typ       EntityType
	match     MatchMode
	members   []string
	labels    []string
	due       []string
	status    []string
	workspace string
	limit     int
	cursor    string
}

// Query sets the free-text query.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = q
	return b
}

// Type restricts results to one entity type.
func (b *SearchBuilder) Type(t EntityType) *SearchBuilder {
	b.typ = t
	return b
}

// Match sets how card facets combine.
func (b *SearchBuilder) Match(m MatchMode) *SearchBuilder {
	b.match = m
	return b
}

// Members adds assignee facet values. Accepts MemberMe and MemberNone.
func (b *SearchBuilder) Members(ids ...string) *SearchBuilder {
	b.members = append(b.members, ids...)
	return b
}

// Labels adds label facet values. Accepts LabelNone.
func (b *SearchBuilder) Labels(ids ...string) *SearchBuilder {
	b.labels = append(b.labels, ids...)
	return b
}

// Due adds due-date facet values.
func (b *SearchBuilder) Due(buckets ...DueBucket) *SearchBuilder {
	for _, d := range buckets {
		b.due = append(b.due, string(d))
	}
	return b
}

// Status adds completion facet values.
func (b *SearchBuilder) Status(statuses ...Status) *SearchBuilder {
	for _, s := range statuses {
		b.status = append(b.status, string(s))
	}
	return b
}

// Workspace narrows the search to the workspace with this slug.
func (b *SearchBuilder) Workspace(slug string) *SearchBuilder {
	b.workspace = slug
	return b
}

// Limit sets the page size.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Cursor continues from a previous page.
func (b *SearchBuilder) Cursor(c string) *SearchBuilder {
	b.cursor = c
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (*Page, error) {
	req, err := b.request()
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", domain.ErrInvalidRequest, err)
	}

	resp, err := b.client.svc.Search(b.client.ctx(ctx), b.viewerID, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResponse(&resp), nil
}

// request validates the builder. Filters on a short query are not validated
// since the search answers empty regardless.
func (b *SearchBuilder) request() (request.Request, error) {
	if request.IsShort(b.query) {
		return request.New(b.query, entity.All, filter.Facets{}, b.workspace, 0, "")
	}
	facets, err := filter.NewFacets(b.members, b.labels, b.due, b.status, filter.MatchMode(b.match))
	if err != nil {
		return request.Request{}, err
	}
	return request.New(b.query, entity.Type(b.typ), facets, b.workspace, b.limit, b.cursor)
}

// All runs the search and follows cursors until the result set is exhausted.
func (b *SearchBuilder) All(ctx context.Context) ([]Result, error) {
	var out []Result
	next := *b
	for {
		page, err := next.Do(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		if page.NextCursor == "" {
			return out, nil
		}
		next.cursor = page.NextCursor
	}
}
