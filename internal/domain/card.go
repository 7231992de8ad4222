package domain

import "time"

// Card is a card row. DueAt is nil when the card has no due date.
type Card struct {
	ID          string
	BoardID     string
	Title       string
	Description string
	DueAt       *time.Time
	Completed   bool
	UpdatedAt   time.Time
	SearchText  string
}

// Comment is a comment on a card.
type Comment struct {
	ID         string
	CardID     string
	Body       string
	UpdatedAt  time.Time
	SearchText string
}

// Checklist is a named checklist on a card.
type Checklist struct {
	ID         string
	CardID     string
	Name       string
	UpdatedAt  time.Time
	SearchText string
}

// ChecklistItem is one entry of a checklist. CardID is denormalized from the
// owning checklist by the store.
type ChecklistItem struct {
	ID            string
	ChecklistID   string
	ChecklistName string
	CardID        string
	Body          string
	Completed     bool
	UpdatedAt     time.Time
	SearchText    string
}

// Attachment is a file or link attached to a card.
type Attachment struct {
	ID          string
	CardID      string
	FileName    string
	ExternalURL string
	UpdatedAt   time.Time
	SearchText  string
}

// CardLink associates a card with a label or an assignee.
type CardLink struct {
	CardID string
	RefID  string
}
