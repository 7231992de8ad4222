package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
	"github.com/kailas-cloud/boardsearch/internal/logger"
	"github.com/kailas-cloud/boardsearch/internal/metrics"
)

const (
	phaseExact = "exact"
	phaseFuzzy = "fuzzy"
	phaseScope = "scope"
)

// query is the per-request retrieval input shared by every fetcher.
type query struct {
	raw        string // exact-index input
	normalized string
	pattern    string // LIKE pattern over the normalized column
	window     int
}

// timed runs fn and records its duration. Missing-column errors are not
// counted as fetch errors; the caller decides whether to degrade on them.
func timed[T any](t entity.Type, phase string, fn func() ([]T, error)) ([]T, error) {
	start := time.Now()
	rows, err := fn()
	metrics.SearchFetchDuration.WithLabelValues(string(t), phase).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, db.ErrMissingColumn) {
		metrics.SearchFetchErrorsTotal.WithLabelValues(string(t), phase).Inc()
	}
	return rows, err
}

func boardText(b domain.Board) string { return text.Join(b.Name, b.Description) }

func cardText(c domain.Card) string { return text.Join(c.Title, c.Description) }

func attachmentText(a domain.Attachment) string { return text.Join(a.FileName, a.ExternalURL) }

func (s *Service) fetchBoards(ctx context.Context, sc scope, q query, tbl *hit.Table[hit.Board]) error {
	exact, err := timed(entity.Board, phaseExact, func() ([]domain.Board, error) {
		return s.store.SearchBoardsExact(ctx, sc.boardIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("boards exact: %w", err)
	}
	for _, b := range exact {
		tbl.AddExact(b.ID, hit.Board{Board: b}, boardText(b))
	}

	fuzzy, err := timed(entity.Board, phaseFuzzy, func() ([]domain.Board, error) {
		return s.store.SearchBoardsFuzzy(ctx, sc.boardIDs, q.pattern, q.window)
	})
	if errors.Is(err, db.ErrMissingColumn) {
		logger.FromContext(ctx).Warn("Board normalized text unavailable, using in-process match",
			zap.Int("boards", len(sc.boardIDs)),
			zap.Error(err),
		)
		metrics.SearchFallbackTotal.WithLabelValues(string(entity.Board)).Inc()
		boardContainment(sc, q, tbl)
		return nil
	}
	if err != nil {
		return fmt.Errorf("boards fuzzy: %w", err)
	}
	for _, b := range fuzzy {
		tbl.AddFuzzy(b.ID, hit.Board{Board: b}, b.SearchText)
	}
	return nil
}

// boardContainment matches the normalized query as a substring of each scoped
// board's normalized name and description.
func boardContainment(sc scope, q query, tbl *hit.Table[hit.Board]) {
	found := 0
	for _, id := range sc.boardIDs {
		if found >= q.window {
			return
		}
		b := sc.boards[id]
		st := boardText(b)
		if !strings.Contains(st, q.normalized) {
			continue
		}
		tbl.AddFuzzy(b.ID, hit.Board{Board: b}, st)
		found++
	}
}

func (s *Service) fetchCards(ctx context.Context, sc scope, q query, tbl *hit.Table[hit.Card]) error {
	exact, err := timed(entity.Card, phaseExact, func() ([]domain.Card, error) {
		return s.store.SearchCardsExact(ctx, sc.boardIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("cards exact: %w", err)
	}
	for _, c := range exact {
		tbl.AddExact(c.ID, hit.Card{Card: c}, cardText(c))
	}

	fuzzy, err := timed(entity.Card, phaseFuzzy, func() ([]domain.Card, error) {
		return s.store.SearchCardsFuzzy(ctx, sc.boardIDs, q.pattern, q.window)
	})
	if err != nil {
		return fmt.Errorf("cards fuzzy: %w", err)
	}
	for _, c := range fuzzy {
		tbl.AddFuzzy(c.ID, hit.Card{Card: c}, c.SearchText)
	}
	return nil
}

func (s *Service) fetchComments(ctx context.Context, sc scope, q query, tbl *hit.Table[hit.Comment]) error {
	exact, err := timed(entity.Comment, phaseExact, func() ([]domain.Comment, error) {
		return s.store.SearchCommentsExact(ctx, sc.boardIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("comments exact: %w", err)
	}
	for _, m := range exact {
		tbl.AddExact(m.ID, hit.Comment{Comment: m}, text.Join(m.Body))
	}

	fuzzy, err := timed(entity.Comment, phaseFuzzy, func() ([]domain.Comment, error) {
		return s.store.SearchCommentsFuzzy(ctx, sc.boardIDs, q.pattern, q.window)
	})
	if err != nil {
		return fmt.Errorf("comments fuzzy: %w", err)
	}
	for _, m := range fuzzy {
		tbl.AddFuzzy(m.ID, hit.Comment{Comment: m}, m.SearchText)
	}
	return nil
}

// fetchChecklists fills one table with checklist-name and checklist-item hits.
// Items are only searched under checklists that belong to in-scope cards.
func (s *Service) fetchChecklists(
	ctx context.Context, sc scope, q query, tbl *hit.Table[hit.ChecklistEntry],
) error {
	exact, err := timed(entity.Checklist, phaseExact, func() ([]domain.Checklist, error) {
		return s.store.SearchChecklistsExact(ctx, sc.boardIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("checklists exact: %w", err)
	}
	for i := range exact {
		e := hit.ChecklistEntry{Kind: hit.KindChecklist, Checklist: &exact[i]}
		tbl.AddExact(e.TableID(), e, text.Join(exact[i].Name))
	}

	fuzzy, err := timed(entity.Checklist, phaseFuzzy, func() ([]domain.Checklist, error) {
		return s.store.SearchChecklistsFuzzy(ctx, sc.boardIDs, q.pattern, q.window)
	})
	if err != nil {
		return fmt.Errorf("checklists fuzzy: %w", err)
	}
	for i := range fuzzy {
		e := hit.ChecklistEntry{Kind: hit.KindChecklist, Checklist: &fuzzy[i]}
		tbl.AddFuzzy(e.TableID(), e, fuzzy[i].SearchText)
	}

	checklistIDs, err := timed(entity.Checklist, phaseScope, func() ([]string, error) {
		return s.store.ChecklistIDsForBoards(ctx, sc.boardIDs)
	})
	if err != nil {
		return fmt.Errorf("checklist scope: %w", err)
	}
	if len(checklistIDs) == 0 {
		return nil
	}

	items, err := timed(entity.Checklist, phaseExact, func() ([]domain.ChecklistItem, error) {
		return s.store.SearchChecklistItemsExact(ctx, checklistIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("checklist items exact: %w", err)
	}
	for i := range items {
		e := hit.ChecklistEntry{Kind: hit.KindItem, Item: &items[i]}
		tbl.AddExact(e.TableID(), e, text.Join(items[i].Body))
	}

	items, err = timed(entity.Checklist, phaseFuzzy, func() ([]domain.ChecklistItem, error) {
		return s.store.SearchChecklistItemsFuzzy(ctx, checklistIDs, q.pattern, q.window)
	})
	if err != nil {
		return fmt.Errorf("checklist items fuzzy: %w", err)
	}
	for i := range items {
		e := hit.ChecklistEntry{Kind: hit.KindItem, Item: &items[i]}
		tbl.AddFuzzy(e.TableID(), e, items[i].SearchText)
	}
	return nil
}

func (s *Service) fetchAttachments(ctx context.Context, sc scope, q query, tbl *hit.Table[hit.Attachment]) error {
	exact, err := timed(entity.Attachment, phaseExact, func() ([]domain.Attachment, error) {
		return s.store.SearchAttachmentsExact(ctx, sc.boardIDs, q.raw, q.window)
	})
	if err != nil {
		return fmt.Errorf("attachments exact: %w", err)
	}
	for _, a := range exact {
		tbl.AddExact(a.ID, hit.Attachment{Attachment: a}, attachmentText(a))
	}

	fuzzy, err := timed(entity.Attachment, phaseFuzzy, func() ([]domain.Attachment, error) {
		return s.store.SearchAttachmentsFuzzy(ctx, sc.boardIDs, q.pattern, q.window)
	})
	if err != nil {
		return fmt.Errorf("attachments fuzzy: %w", err)
	}
	for _, a := range fuzzy {
		tbl.AddFuzzy(a.ID, hit.Attachment{Attachment: a}, a.SearchText)
	}
	return nil
}
