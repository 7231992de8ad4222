package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/boardsearch/internal/domain"
)

// scope is the request's searchable territory.
type scope struct {
	workspaces map[string]domain.Workspace
	boards     map[string]domain.Board
	boardIDs   []string
}

func (sc scope) empty() bool { return len(sc.boardIDs) == 0 }

// resolveScope lists the viewer's workspaces, narrows them to slug when given,
// and loads their non-archived boards. A slug the viewer is not a member of
// yields an empty scope.
func (s *Service) resolveScope(ctx context.Context, viewerID, slug string) (scope, error) {
	all, err := s.store.ListWorkspacesForViewer(ctx, viewerID)
	if err != nil {
		return scope{}, fmt.Errorf("list workspaces: %w", err)
	}

	sc := scope{
		workspaces: make(map[string]domain.Workspace, len(all)),
		boards:     make(map[string]domain.Board),
	}
	ids := make([]string, 0, len(all))
	for _, w := range all {
		if slug != "" && w.Slug != slug {
			continue
		}
		sc.workspaces[w.ID] = w
		ids = append(ids, w.ID)
	}
	if len(ids) == 0 {
		return sc, nil
	}

	boards, err := s.store.ListBoardsForWorkspaces(ctx, ids)
	if err != nil {
		return scope{}, fmt.Errorf("list boards: %w", err)
	}
	for _, b := range boards {
		if _, ok := sc.workspaces[b.WorkspaceID]; !ok {
			continue
		}
		if _, dup := sc.boards[b.ID]; dup {
			continue
		}
		sc.boards[b.ID] = b
		sc.boardIDs = append(sc.boardIDs, b.ID)
	}
	return sc, nil
}
