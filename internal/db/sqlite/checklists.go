package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

func scanChecklist(sc scanner) (domain.Checklist, error) {
	var k domain.Checklist
	var updated int64
	if err := sc.Scan(&k.ID, &k.CardID, &k.Name, &updated); err != nil {
		return k, err
	}
	k.UpdatedAt = fromUnix(updated)
	return k, nil
}

func scanChecklistWithText(sc scanner) (domain.Checklist, error) {
	var k domain.Checklist
	var updated int64
	if err := sc.Scan(&k.ID, &k.CardID, &k.Name, &updated, &k.SearchText); err != nil {
		return k, err
	}
	k.UpdatedAt = fromUnix(updated)
	return k, nil
}

const itemColumns = `i.id, i.checklist_id, k.name, k.card_id, i.body, i.completed, i.updated_at`

func scanItem(sc scanner) (domain.ChecklistItem, error) {
	var it domain.ChecklistItem
	var updated int64
	if err := sc.Scan(&it.ID, &it.ChecklistID, &it.ChecklistName, &it.CardID, &it.Body, &it.Completed, &updated); err != nil {
		return it, err
	}
	it.UpdatedAt = fromUnix(updated)
	return it, nil
}

func scanItemWithText(sc scanner) (domain.ChecklistItem, error) {
	var it domain.ChecklistItem
	var updated int64
	err := sc.Scan(
		&it.ID, &it.ChecklistID, &it.ChecklistName, &it.CardID, &it.Body, &it.Completed, &updated, &it.SearchText,
	)
	if err != nil {
		return it, err
	}
	it.UpdatedAt = fromUnix(updated)
	return it, nil
}

// ChecklistIDsForBoards lists checklists on live cards of boardIDs.
func (s *Store) ChecklistIDsForBoards(ctx context.Context, boardIDs []string) ([]string, error) {
	if len(boardIDs) == 0 {
		return nil, nil
	}
	q := `SELECT k.id
		FROM checklists k
		JOIN cards c ON c.id = k.card_id
		WHERE c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
		ORDER BY k.id`
	return queryAll(ctx, s.db, db.OpChecklistsScope, q, idArg(boardIDs), func(sc scanner) (string, error) {
		var id string
		err := sc.Scan(&id)
		return id, err
	})
}

// SearchChecklistsExact queries checklists_fts for checklist names on boardIDs.
func (s *Store) SearchChecklistsExact(
	ctx context.Context, boardIDs []string, query string, limit int,
) ([]domain.Checklist, error) {
	match := ftsMatch(query)
	if len(boardIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT k.id, k.card_id, k.name, k.updated_at
		FROM checklists_fts
		JOIN checklists k ON k.pk = checklists_fts.rowid
		JOIN cards c ON c.id = k.card_id
		WHERE checklists_fts MATCH ?
			AND c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
		ORDER BY bm25(checklists_fts), k.id
		LIMIT ?`
	args := append([]any{match}, idArg(boardIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpChecklistsExact, q, args, scanChecklist)
}

// SearchChecklistsFuzzy matches pattern against checklists.search_text.
func (s *Store) SearchChecklistsFuzzy(
	ctx context.Context, boardIDs []string, pattern string, limit int,
) ([]domain.Checklist, error) {
	if len(boardIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT k.id, k.card_id, k.name, k.updated_at, k.search_text
		FROM checklists k
		JOIN cards c ON c.id = k.card_id
		WHERE c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
			AND k.search_text LIKE ? ESCAPE '\'
		ORDER BY k.updated_at DESC, k.id
		LIMIT ?`
	args := append(idArg(boardIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpChecklistsFuzzy, q, args, scanChecklistWithText)
}

// SearchChecklistItemsExact queries checklist_items_fts within checklistIDs.
func (s *Store) SearchChecklistItemsExact(
	ctx context.Context, checklistIDs []string, query string, limit int,
) ([]domain.ChecklistItem, error) {
	match := ftsMatch(query)
	if len(checklistIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT ` + itemColumns + `
		FROM checklist_items_fts
		JOIN checklist_items i ON i.pk = checklist_items_fts.rowid
		JOIN checklists k ON k.id = i.checklist_id
		WHERE checklist_items_fts MATCH ?
			AND i.checklist_id IN (` + idSet + `)
		ORDER BY bm25(checklist_items_fts), i.id
		LIMIT ?`
	args := append([]any{match}, idArg(checklistIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpItemsExact, q, args, scanItem)
}

// SearchChecklistItemsFuzzy matches pattern against checklist_items.search_text
// within checklistIDs.
func (s *Store) SearchChecklistItemsFuzzy(
	ctx context.Context, checklistIDs []string, pattern string, limit int,
) ([]domain.ChecklistItem, error) {
	if len(checklistIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT ` + itemColumns + `, i.search_text
		FROM checklist_items i
		JOIN checklists k ON k.id = i.checklist_id
		WHERE i.checklist_id IN (` + idSet + `)
			AND i.search_text LIKE ? ESCAPE '\'
		ORDER BY i.updated_at DESC, i.id
		LIMIT ?`
	args := append(idArg(checklistIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpItemsFuzzy, q, args, scanItemWithText)
}
