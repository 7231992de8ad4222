package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

func scanBoard(sc scanner) (domain.Board, error) {
	var b domain.Board
	var updated int64
	if err := sc.Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Description, &updated); err != nil {
		return b, err
	}
	b.UpdatedAt = fromUnix(updated)
	return b, nil
}

func scanBoardWithText(sc scanner) (domain.Board, error) {
	var b domain.Board
	var updated int64
	if err := sc.Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Description, &updated, &b.SearchText); err != nil {
		return b, err
	}
	b.UpdatedAt = fromUnix(updated)
	return b, nil
}

// SearchBoardsExact queries boards_fts for query within boardIDs.
func (s *Store) SearchBoardsExact(
	ctx context.Context, boardIDs []string, query string, limit int,
) ([]domain.Board, error) {
	match := ftsMatch(query)
	if len(boardIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT b.id, b.workspace_id, b.name, b.description, b.updated_at
		FROM boards_fts
		JOIN boards b ON b.pk = boards_fts.rowid
		WHERE boards_fts MATCH ?
			AND b.archived_at IS NULL
			AND b.id IN (` + idSet + `)
		ORDER BY bm25(boards_fts), b.id
		LIMIT ?`
	args := append([]any{match}, idArg(boardIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpBoardsExact, q, args, scanBoard)
}

// SearchBoardsFuzzy matches pattern against boards.search_text within boardIDs.
// A schema without search_text yields an error wrapping db.ErrMissingColumn.
func (s *Store) SearchBoardsFuzzy(
	ctx context.Context, boardIDs []string, pattern string, limit int,
) ([]domain.Board, error) {
	if len(boardIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT id, workspace_id, name, description, updated_at, search_text
		FROM boards
		WHERE archived_at IS NULL
			AND id IN (` + idSet + `)
			AND search_text LIKE ? ESCAPE '\'
		ORDER BY updated_at DESC, id
		LIMIT ?`
	args := append(idArg(boardIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpBoardsFuzzy, q, args, scanBoardWithText)
}

// HasBoardSearchText reports whether the boards table carries search_text.
func (s *Store) HasBoardSearchText(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('boards') WHERE name = 'search_text'`,
	).Scan(&n)
	if err != nil {
		return false, wrap(db.OpSchemaInfo, err)
	}
	return n > 0, nil
}
