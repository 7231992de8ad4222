package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

// ListWorkspacesForViewer returns the workspaces viewerID is a member of, by slug.
func (s *Store) ListWorkspacesForViewer(ctx context.Context, viewerID string) ([]domain.Workspace, error) {
	const q = `SELECT w.id, w.slug, w.name
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = ?
		ORDER BY w.slug`
	return queryAll(ctx, s.db, db.OpListWorkspaces, q, []any{viewerID}, func(sc scanner) (domain.Workspace, error) {
		var w domain.Workspace
		err := sc.Scan(&w.ID, &w.Slug, &w.Name)
		return w, err
	})
}

// ListBoardsForWorkspaces returns non-archived boards of the given workspaces.
func (s *Store) ListBoardsForWorkspaces(ctx context.Context, workspaceIDs []string) ([]domain.Board, error) {
	if len(workspaceIDs) == 0 {
		return nil, nil
	}
	q := `SELECT id, workspace_id, name, description, updated_at
		FROM boards
		WHERE archived_at IS NULL AND workspace_id IN (` + idSet + `)
		ORDER BY id`
	return queryAll(ctx, s.db, db.OpListBoards, q, idArg(workspaceIDs), scanBoard)
}
