// Package db defines the storage facade the search engine reads from.
package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/boardsearch/internal/domain"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	MembershipReader
	BoardSearcher
	CardSearcher
	CommentSearcher
	ChecklistSearcher
	AttachmentSearcher
	AssociationReader
	SchemaInspector
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MembershipReader resolves what a viewer may search.
type MembershipReader interface {
	ListWorkspacesForViewer(ctx context.Context, viewerID string) ([]domain.Workspace, error)
	ListBoardsForWorkspaces(ctx context.Context, workspaceIDs []string) ([]domain.Board, error)
}

// BoardSearcher searches non-archived boards by id scope.
type BoardSearcher interface {
	SearchBoardsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Board, error)
	SearchBoardsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Board, error)
}

// CardSearcher searches cards on the given boards and loads cards by id.
type CardSearcher interface {
	SearchCardsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Card, error)
	SearchCardsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Card, error)
	CardsByIDs(ctx context.Context, boardIDs, cardIDs []string) ([]domain.Card, error)
}

// CommentSearcher searches comments on cards of the given boards.
type CommentSearcher interface {
	SearchCommentsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Comment, error)
	SearchCommentsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Comment, error)
}

// ChecklistSearcher searches checklist names on cards of the given boards and
// checklist items under an explicit checklist scope.
type ChecklistSearcher interface {
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

// AttachmentSearcher searches attachments on cards of the given boards.
type AttachmentSearcher interface {
	SearchAttachmentsExact(ctx context.Context, boardIDs []string, query string, limit int) ([]domain.Attachment, error)
	SearchAttachmentsFuzzy(ctx context.Context, boardIDs []string, pattern string, limit int) ([]domain.Attachment, error)
}

// AssociationReader loads card labels and assignees.
type AssociationReader interface {
	ListLabelsForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error)
	ListAssigneesForCards(ctx context.Context, cardIDs []string) ([]domain.CardLink, error)
}

// SchemaInspector reports optional schema capabilities.
type SchemaInspector interface {
	// HasBoardSearchText reports whether boards carry the normalized-text column.
	HasBoardSearchText(ctx context.Context) (bool, error)
}
