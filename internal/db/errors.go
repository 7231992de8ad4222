package db

import "errors"

// Sentinel errors for database operations.
var (
	// ErrMissingColumn signals that a query referenced a column the live schema
	// does not have. Callers may degrade on it; everything else is a hard failure.
	ErrMissingColumn = errors.New("db: missing column")
	ErrClosed        = errors.New("db: store closed")
)

// Op constants name store operations for error context.
const (
	OpListWorkspaces    = "workspaces.list_for_viewer"
	OpListBoards        = "boards.list_for_workspaces"
	OpBoardsExact       = "boards.search_exact"
	OpBoardsFuzzy       = "boards.search_fuzzy"
	OpCardsExact        = "cards.search_exact"
	OpCardsFuzzy        = "cards.search_fuzzy"
	OpCardsByIDs        = "cards.by_ids"
	OpCommentsExact     = "comments.search_exact"
	OpCommentsFuzzy     = "comments.search_fuzzy"
	OpChecklistsScope   = "checklists.list_for_boards"
	OpChecklistsExact   = "checklists.search_exact"
	OpChecklistsFuzzy   = "checklists.search_fuzzy"
	OpItemsExact        = "checklist_items.search_exact"
	OpItemsFuzzy        = "checklist_items.search_fuzzy"
	OpAttachmentsExact  = "attachments.search_exact"
	OpAttachmentsFuzzy  = "attachments.search_fuzzy"
	OpLabelsForCards    = "card_labels.list"
	OpAssigneesForCards = "card_assignees.list"
	OpSchemaInfo        = "schema.column_info"
	OpSeed              = "seed"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
