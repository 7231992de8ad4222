// Package request parses and validates search parameters.
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
)

// Search parameter limits.
const (
	// MaxQueryLength bounds the raw query in bytes before normalization.
	MaxQueryLength = 1024
	// MinQueryLength is the normalized rune count below which a search is a no-op.
	MinQueryLength = 2
	DefaultLimit   = 20
	MinLimit       = 1
	MaxLimit       = 50
	// MaxWindow caps rows fetched per entity type and phase.
	MaxWindow = 240
)

// Query parameter names.
const (
	ParamQuery     = "q"
	ParamType      = "type"
	ParamMatch     = "match"
	ParamMembers   = "members"
	ParamLabels    = "labels"
	ParamDue       = "due"
	ParamStatus    = "status"
	ParamWorkspace = "workspace"
	ParamLimit     = "limit"
	ParamCursor    = "cursor"
)

// Request is a validated search request.
type Request struct {
	rawQuery   string
	normalized string
	entityType entity.Type
	facets     filter.Facets
	workspace  string
	limit      int
	cursor     string
}

// New validates and normalizes search parameters. Empty type defaults to all,
// limit is clamped to [MinLimit, MaxLimit] with 0 meaning DefaultLimit.
func New(
	query string,
	t entity.Type,
	facets filter.Facets,
	workspace string,
	limit int,
	cursor string,
) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d bytes)", MaxQueryLength)
	}
	if t == "" {
		t = entity.All
	}
	if !t.IsValidFilter() {
		return Request{}, fmt.Errorf("invalid type: %q", t)
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < MinLimit:
		limit = MinLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Request{
		rawQuery:   strings.TrimSpace(query),
		normalized: text.Normalize(query),
		entityType: t,
		facets:     facets,
		workspace:  strings.TrimSpace(workspace),
		limit:      limit,
		cursor:     strings.TrimSpace(cursor),
	}, nil
}

// Parse builds a Request from flat key/value parameters. A short query answers
// empty whatever its filters, so its invalid filter values are dropped rather
// than rejected.
func Parse(v url.Values) (Request, error) {
	r, err := parse(v)
	if err != nil && IsShort(v.Get(ParamQuery)) {
		return New(v.Get(ParamQuery), entity.All, filter.Facets{}, v.Get(ParamWorkspace), 0, "")
	}
	return r, err
}

// IsShort reports whether q normalizes to fewer than MinQueryLength runes.
func IsShort(q string) bool {
	return utf8.RuneCountInString(text.Normalize(q)) < MinQueryLength
}

func parse(v url.Values) (Request, error) {
	facets, err := filter.NewFacets(
		filter.SplitList(v.Get(ParamMembers)),
		filter.SplitList(v.Get(ParamLabels)),
		filter.SplitList(v.Get(ParamDue)),
		filter.SplitList(v.Get(ParamStatus)),
		filter.MatchMode(strings.TrimSpace(v.Get(ParamMatch))),
	)
	if err != nil {
		return Request{}, err
	}

	limit := 0
	if raw := strings.TrimSpace(v.Get(ParamLimit)); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return Request{}, fmt.Errorf("limit must be an integer, got %q", raw)
		}
		if limit == 0 {
			limit = MinLimit
		}
	}

	return New(
		v.Get(ParamQuery),
		entity.Type(strings.TrimSpace(v.Get(ParamType))),
		facets,
		v.Get(ParamWorkspace),
		limit,
		v.Get(ParamCursor),
	)
}

// Values renders r back into query parameters. Parse(r.Values()) reproduces r.
func (r *Request) Values() url.Values {
	v := url.Values{}
	v.Set(ParamQuery, r.rawQuery)
	v.Set(ParamType, string(r.entityType))
	v.Set(ParamMatch, string(r.facets.Match()))
	v.Set(ParamLimit, strconv.Itoa(r.limit))
	setList := func(key string, items []string) {
		if len(items) > 0 {
			v.Set(key, strings.Join(items, ","))
		}
	}
	setList(ParamMembers, r.facets.Members())
	setList(ParamLabels, r.facets.Labels())
	setList(ParamDue, bucketsToStrings(r.facets.Due()))
	setList(ParamStatus, statusesToStrings(r.facets.Status()))
	if r.workspace != "" {
		v.Set(ParamWorkspace, r.workspace)
	}
	if r.cursor != "" {
		v.Set(ParamCursor, r.cursor)
	}
	return v
}

// RawQuery returns the trimmed query as typed, used for the exact-match index.
func (r *Request) RawQuery() string { return r.rawQuery }

// Query returns the normalized query.
func (r *Request) Query() string { return r.normalized }

// TooShort reports whether the normalized query is below MinQueryLength runes.
func (r *Request) TooShort() bool {
	return utf8.RuneCountInString(r.normalized) < MinQueryLength
}

// Type returns the entity type filter.
func (r *Request) Type() entity.Type { return r.entityType }

// Facets returns the card facets.
func (r *Request) Facets() filter.Facets { return r.facets }

// Workspace returns the workspace slug narrowing, or "".
func (r *Request) Workspace() string { return r.workspace }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Cursor returns the opaque continuation token, or "".
func (r *Request) Cursor() string { return r.cursor }

// Window returns how many rows each fetcher phase may return for a page
// starting at offset: min(MaxWindow, offset + limit*6 + 40).
func (r *Request) Window(offset int) int {
	w := offset + r.limit*6 + 40
	if w > MaxWindow || w < 0 {
		return MaxWindow
	}
	return w
}

func bucketsToStrings(in []filter.DueBucket) []string {
	out := make([]string, len(in))
	for i, b := range in {
		out[i] = string(b)
	}
	return out
}

func statusesToStrings(in []filter.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
