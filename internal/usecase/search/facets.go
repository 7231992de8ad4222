package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
)

// cardContext holds scoped card rows and, when the matching facet is active,
// their assignee and label sets.
type cardContext struct {
	cards     map[string]domain.Card
	assignees map[string]map[string]struct{}
	labels    map[string]map[string]struct{}
}

// card returns the predicate view of the card with id.
func (cc cardContext) card(id string) (filter.Card, bool) {
	c, ok := cc.cards[id]
	if !ok {
		return filter.Card{}, false
	}
	return filter.Card{
		DueAt:     c.DueAt,
		Completed: c.Completed,
		Assignees: cc.assignees[id],
		Labels:    cc.labels[id],
	}, true
}

// loadCardContext loads the card rows for cardIDs within the board scope.
// Associations are only read for facets that are active.
func (s *Service) loadCardContext(
	ctx context.Context, sc scope, cardIDs []string, facets filter.Facets,
) (cardContext, error) {
	cc := cardContext{cards: make(map[string]domain.Card, len(cardIDs))}
	if len(cardIDs) == 0 {
		return cc, nil
	}

	var (
		rows      []domain.Card
		assignees []domain.CardLink
		labels    []domain.CardLink
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.CardsByIDs(gctx, sc.boardIDs, cardIDs)
		if err != nil {
			return fmt.Errorf("load cards: %w", err)
		}
		return nil
	})
	if facets.HasMembers() {
		g.Go(func() error {
			var err error
			assignees, err = s.store.ListAssigneesForCards(gctx, cardIDs)
			if err != nil {
				return fmt.Errorf("load assignees: %w", err)
			}
			return nil
		})
	}
	if facets.HasLabels() {
		g.Go(func() error {
			var err error
			labels, err = s.store.ListLabelsForCards(gctx, cardIDs)
			if err != nil {
				return fmt.Errorf("load labels: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cardContext{}, err
	}

	for _, c := range rows {
		cc.cards[c.ID] = c
	}
	if facets.HasMembers() {
		cc.assignees = groupLinks(assignees)
	}
	if facets.HasLabels() {
		cc.labels = groupLinks(labels)
	}
	return cc, nil
}

func groupLinks(links []domain.CardLink) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, l := range links {
		set, ok := out[l.CardID]
		if !ok {
			set = make(map[string]struct{})
			out[l.CardID] = set
		}
		set[l.RefID] = struct{}{}
	}
	return out
}
