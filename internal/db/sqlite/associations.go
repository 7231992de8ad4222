package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

func scanLink(sc scanner) (domain.CardLink, error) {
	var l domain.CardLink
	err := sc.Scan(&l.CardID, &l.RefID)
	return l, err
}

// ListLabelsForCards returns (card, label) pairs for cardIDs.
func (s *Store) ListLabelsForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	q := `SELECT card_id, label_id FROM card_labels
		WHERE card_id IN (` + idSet + `)`
	return queryAll(ctx, s.db, db.OpLabelsForCards, q, idArg(cardIDs), scanLink)
}

// ListAssigneesForCards returns (card, user) pairs for cardIDs.
func (s *Store) ListAssigneesForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	q := `SELECT card_id, user_id FROM card_assignees
		WHERE card_id IN (` + idSet + `)`
	return queryAll(ctx, s.db, db.OpAssigneesForCards, q, idArg(cardIDs), scanLink)
}
