package sqlite

import (
	"context"
	"database/sql"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

const cardColumns = `c.id, c.board_id, c.title, c.description, c.due_at, c.completed, c.updated_at`

func scanCard(sc scanner) (domain.Card, error) {
	return scanCardInto(sc, false)
}

func scanCardWithText(sc scanner) (domain.Card, error) {
	return scanCardInto(sc, true)
}

func scanCardInto(sc scanner, withText bool) (domain.Card, error) {
	var c domain.Card
	var due sql.NullInt64
	var updated int64
	dest := []any{&c.ID, &c.BoardID, &c.Title, &c.Description, &due, &c.Completed, &updated}
	if withText {
		dest = append(dest, &c.SearchText)
	}
	if err := sc.Scan(dest...); err != nil {
		return c, err
	}
	c.DueAt = nullableTime(due)
	c.UpdatedAt = fromUnix(updated)
	return c, nil
}

// SearchCardsExact queries cards_fts for query on non-archived cards of boardIDs.
func (s *Store) SearchCardsExact(
	ctx context.Context, boardIDs []string, query string, limit int,
) ([]domain.Card, error) {
	match := ftsMatch(query)
	if len(boardIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT ` + cardColumns + `
		FROM cards_fts
		JOIN cards c ON c.pk = cards_fts.rowid
		WHERE cards_fts MATCH ?
			AND c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
		ORDER BY bm25(cards_fts), c.id
		LIMIT ?`
	args := append([]any{match}, idArg(boardIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpCardsExact, q, args, scanCard)
}

// SearchCardsFuzzy matches pattern against cards.search_text on boardIDs.
func (s *Store) SearchCardsFuzzy(
	ctx context.Context, boardIDs []string, pattern string, limit int,
) ([]domain.Card, error) {
	if len(boardIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT ` + cardColumns + `, c.search_text
		FROM cards c
		WHERE c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
			AND c.search_text LIKE ? ESCAPE '\'
		ORDER BY c.updated_at DESC, c.id
		LIMIT ?`
	args := append(idArg(boardIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpCardsFuzzy, q, args, scanCardWithText)
}

// CardsByIDs loads non-archived cards among cardIDs that sit on boardIDs.
func (s *Store) CardsByIDs(ctx context.Context, boardIDs, cardIDs []string) ([]domain.Card, error) {
	if len(boardIDs) == 0 || len(cardIDs) == 0 {
		return nil, nil
	}
	q := `SELECT ` + cardColumns + `
		FROM cards c
		WHERE c.archived_at IS NULL
			AND c.id IN (` + idSet + `)
			AND c.board_id IN (` + idSet + `)`
	args := append(idArg(cardIDs), idArg(boardIDs)...)
	return queryAll(ctx, s.db, db.OpCardsByIDs, q, args, scanCard)
}
