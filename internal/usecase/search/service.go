package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/cursor"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/request"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/result"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
	"github.com/kailas-cloud/boardsearch/internal/logger"
	"github.com/kailas-cloud/boardsearch/internal/metrics"
)

// Request outcomes recorded in metrics.
const (
	outcomeOK         = "ok"
	outcomeShortQuery = "short_query"
	outcomeEmptyScope = "empty_scope"
	outcomeError      = "error"
)

// Service runs workspace-scoped searches over boards, cards and their children.
// It keeps no state between requests; every search reads the store fresh.
type Service struct {
	store    Store
	now      func() time.Time
	location *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the reference zone for due-date day boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides the time source used for due buckets.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a search service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, location: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs req on behalf of viewerID and returns one page of results.
// Short queries and empty scopes yield an empty response, not an error.
func (s *Service) Search(ctx context.Context, viewerID string, req *request.Request) (result.Response, error) {
	if viewerID == "" {
		return result.Response{}, domain.ErrUnauthenticated
	}
	facets := req.Facets()
	resp := result.Response{
		Items:          []result.Item{},
		AppliedFilters: appliedFilters(req),
	}

	if req.TooShort() {
		metrics.SearchRequestsTotal.WithLabelValues(outcomeShortQuery).Inc()
		return resp, nil
	}

	sc, err := s.resolveScope(ctx, viewerID, req.Workspace())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(outcomeError).Inc()
		return result.Response{}, fmt.Errorf("resolve scope: %w", err)
	}
	if sc.empty() {
		metrics.SearchRequestsTotal.WithLabelValues(outcomeEmptyScope).Inc()
		return resp, nil
	}

	offset := cursor.Decode(req.Cursor())
	q := query{
		raw:        req.RawQuery(),
		normalized: req.Query(),
		pattern:    text.FuzzyLikeValue(req.Query()),
		window:     req.Window(offset),
	}

	set, err := s.fetchAll(ctx, sc, q, req.Type(), facets.Active())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(outcomeError).Inc()
		return result.Response{}, err
	}

	cc, err := s.loadCardContext(ctx, sc, set.CardIDs(), facets)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(outcomeError).Inc()
		return result.Response{}, fmt.Errorf("card context: %w", err)
	}

	b := builder{
		sc:         sc,
		cc:         cc,
		typ:        req.Type(),
		facets:     facets,
		query:      req.Query(),
		viewerID:   viewerID,
		clock:      filter.Clock{Now: s.now(), Location: s.location},
		hideBoards: facets.Active(),
	}
	items := b.build(set)
	result.Sort(items)

	page, next := result.Page(items, offset, req.Limit())
	resp.Items = page
	resp.NextCursor = cursor.Encode(next)

	metrics.SearchRequestsTotal.WithLabelValues(outcomeOK).Inc()
	metrics.SearchItemsReturned.Observe(float64(len(page)))
	logger.FromContext(ctx).Debug("Search completed",
		zap.String("type", string(req.Type())),
		zap.Int("boards_in_scope", len(sc.boardIDs)),
		zap.Int("window", q.window),
		zap.Int("offset", offset),
		zap.Int("board_hits", set.Boards.Len()),
		zap.Int("card_hits", set.Cards.Len()),
		zap.Int("comment_hits", set.Comments.Len()),
		zap.Int("checklist_hits", set.Checklists.Len()),
		zap.Int("attachment_hits", set.Attachments.Len()),
		zap.Int("candidates", len(items)),
		zap.Int("returned", len(page)),
	)
	return resp, nil
}

// fetchAll runs the fetchers for every allowed entity type concurrently. Each
// fetcher owns its table; the first failure cancels the rest.
func (s *Service) fetchAll(
	ctx context.Context, sc scope, q query, typ entity.Type, facetsActive bool,
) (hit.Set, error) {
	set := hit.NewSet()
	g, gctx := errgroup.WithContext(ctx)

	if typ.Allows(entity.Board) && !facetsActive {
		g.Go(func() error { return s.fetchBoards(gctx, sc, q, set.Boards) })
	}
	if typ.Allows(entity.Card) {
		g.Go(func() error { return s.fetchCards(gctx, sc, q, set.Cards) })
	}
	if typ.Allows(entity.Comment) {
		g.Go(func() error { return s.fetchComments(gctx, sc, q, set.Comments) })
	}
	if typ.Allows(entity.Checklist) {
		g.Go(func() error { return s.fetchChecklists(gctx, sc, q, set.Checklists) })
	}
	if typ.Allows(entity.Attachment) {
		g.Go(func() error { return s.fetchAttachments(gctx, sc, q, set.Attachments) })
	}

	if err := g.Wait(); err != nil {
		return hit.Set{}, fmt.Errorf("fetch: %w", err)
	}
	return set, nil
}

func appliedFilters(req *request.Request) result.AppliedFilters {
	f := req.Facets()
	due := make([]string, 0, len(f.Due()))
	for _, d := range f.Due() {
		due = append(due, string(d))
	}
	status := make([]string, 0, len(f.Status()))
	for _, st := range f.Status() {
		status = append(status, string(st))
	}
	return result.AppliedFilters{
		Query:                     req.RawQuery(),
		Type:                      req.Type(),
		Match:                     string(f.Match()),
		Members:                   nonNil(f.Members()),
		Labels:                    nonNil(f.Labels()),
		Due:                       due,
		Status:                    status,
		Workspace:                 req.Workspace(),
		Limit:                     req.Limit(),
		BoardsHiddenByCardFilters: f.Active(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
