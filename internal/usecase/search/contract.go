package search

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/domain"
)

// ScopeReader resolves the workspaces and boards a viewer may search.
type ScopeReader interface {
	ListWorkspacesForViewer(ctx context.Context, viewerID string) ([]domain.Workspace, error)
	ListBoardsForWorkspaces(ctx context.Context, workspaceIDs []string) ([]domain.Board, error)
}

// BoardReader runs exact and fuzzy board retrieval within a board scope.
type BoardReader interface {
	SearchBoardsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Board, error)
	SearchBoardsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Board, error)
}

// CardReader runs card retrieval and loads scoped card rows by id.
type CardReader interface {
	SearchCardsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Card, error)
	SearchCardsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Card, error)
	CardsByIDs(ctx context.Context, boardIDs, cardIDs []string) ([]domain.Card, error)
}

// CommentReader runs comment retrieval.
type CommentReader interface {
	SearchCommentsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Comment, error)
	SearchCommentsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Comment, error)
}

// ChecklistReader runs checklist-name retrieval and item retrieval bounded by
// a checklist scope.
type ChecklistReader interface {
	ChecklistIDsForBoards(ctx context.Context, boardIDs []string) ([]string, error)
	SearchChecklistsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Checklist, error)
	SearchChecklistsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Checklist, error)
	SearchChecklistItemsExact(
		ctx context.Context, checklistIDs []string, query string, limit int,
	) ([]domain.ChecklistItem, error)
	SearchChecklistItemsFuzzy(
		ctx context.Context, checklistIDs []string, pattern string, limit int,
	) ([]domain.ChecklistItem, error)
}

// AttachmentReader runs attachment retrieval.
type AttachmentReader interface {
	SearchAttachmentsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Attachment, error)
	SearchAttachmentsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Attachment, error)
}

// AssociationReader loads card labels and assignees.
type AssociationReader interface {
	ListLabelsForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error)
	ListAssigneesForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error)
}

// Store is everything the search service reads.
type Store interface {
	ScopeReader
	BoardReader
	CardReader
	CommentReader
	ChecklistReader
	AttachmentReader
	AssociationReader
}
