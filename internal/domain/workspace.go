package domain

import "time"

// Workspace is a tenant boundary. Viewers search the workspaces they belong to.
type Workspace struct {
	ID   string
	Slug string
	Name string
}

// Board is a non-archived board inside a workspace.
type Board struct {
	ID          string
	WorkspaceID string
	Name        string
	Description string
	UpdatedAt   time.Time
	// SearchText is the store-computed normalized text. Empty when the row
	// did not come from the normalized-text column.
	SearchText string
}
