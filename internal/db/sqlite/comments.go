package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

func scanComment(sc scanner) (domain.Comment, error) {
	var m domain.Comment
	var updated int64
	if err := sc.Scan(&m.ID, &m.CardID, &m.Body, &updated); err != nil {
		return m, err
	}
	m.UpdatedAt = fromUnix(updated)
	return m, nil
}

func scanCommentWithText(sc scanner) (domain.Comment, error) {
	var m domain.Comment
	var updated int64
	if err := sc.Scan(&m.ID, &m.CardID, &m.Body, &updated, &m.SearchText); err != nil {
		return m, err
	}
	m.UpdatedAt = fromUnix(updated)
	return m, nil
}

// SearchCommentsExact queries comments_fts for comments on live cards of boardIDs.
func (s *Store) SearchCommentsExact(
	ctx context.Context, boardIDs []string, query string, limit int,
) ([]domain.Comment, error) {
	match := ftsMatch(query)
	if len(boardIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT m.id, m.card_id, m.body, m.updated_at
		FROM comments_fts
		JOIN comments m ON m.pk = comments_fts.rowid
		JOIN cards c ON c.id = m.card_id
		WHERE comments_fts MATCH ?
			AND c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
		ORDER BY bm25(comments_fts), m.id
		LIMIT ?`
	args := append([]any{match}, idArg(boardIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpCommentsExact, q, args, scanComment)
}

// SearchCommentsFuzzy matches pattern against comments.search_text.
func (s *Store) SearchCommentsFuzzy(
	ctx context.Context, boardIDs []string, pattern string, limit int,
) ([]domain.Comment, error) {
	if len(boardIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT m.id, m.card_id, m.body, m.updated_at, m.search_text
		FROM comments m
		JOIN cards c ON c.id = m.card_id
		WHERE c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
			AND m.search_text LIKE ? ESCAPE '\'
		ORDER BY m.updated_at DESC, m.id
		LIMIT ?`
	args := append(idArg(boardIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpCommentsFuzzy, q, args, scanCommentWithText)
}
