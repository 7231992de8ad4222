package hit

import (
	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
)

// EntryKind distinguishes checklist-name hits from checklist-item hits.
type EntryKind string

// Checklist entry kinds.
const (
	KindChecklist EntryKind = "checklist"
	KindItem      EntryKind = "item"
)

// Board is the payload of a board hit.
type Board struct {
	Board domain.Board
}

// Card is the payload of a card hit.
type Card struct {
	Card domain.Card
}

// Comment is the payload of a comment hit.
type Comment struct {
	Comment domain.Comment
}

// ChecklistEntry is the payload of a checklist hit. Exactly one of Checklist
// and Item is set, according to Kind.
type ChecklistEntry struct {
	Kind      EntryKind
	Checklist *domain.Checklist
	Item      *domain.ChecklistItem
}

// Attachment is the payload of an attachment hit.
type Attachment struct {
	Attachment domain.Attachment
}

// CardID returns the owning card of the entry.
func (e ChecklistEntry) CardID() string {
	if e.Kind == KindItem && e.Item != nil {
		return e.Item.CardID
	}
	if e.Checklist != nil {
		return e.Checklist.CardID
	}
	return ""
}

// EntityID returns the checklist or item id.
func (e ChecklistEntry) EntityID() string {
	if e.Kind == KindItem && e.Item != nil {
		return e.Item.ID
	}
	if e.Checklist != nil {
		return e.Checklist.ID
	}
	return ""
}

// TableID is the id the entry is stored under. Item ids are prefixed so they
// never collide with checklist ids in the shared table.
func (e ChecklistEntry) TableID() string {
	if e.Kind == KindItem {
		return "item-" + e.EntityID()
	}
	return e.EntityID()
}

// Set bundles the five hit tables produced for one request.
type Set struct {
	Boards      *Table[Board]
	Cards       *Table[Card]
	Comments    *Table[Comment]
	Checklists  *Table[ChecklistEntry]
	Attachments *Table[Attachment]
}

// NewSet creates empty tables for every entity type.
func NewSet() Set {
	return Set{
		Boards:      NewTable[Board](entity.Board),
		Cards:       NewTable[Card](entity.Card),
		Comments:    NewTable[Comment](entity.Comment),
		Checklists:  NewTable[ChecklistEntry](entity.Checklist),
		Attachments: NewTable[Attachment](entity.Attachment),
	}
}

// CardIDs returns the union of card ids referenced by any card-derived hit,
// in first-seen order.
func (s Set) CardIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	s.Cards.Each(func(_ string, r *Record[Card]) { add(r.Payload.Card.ID) })
	s.Comments.Each(func(_ string, r *Record[Comment]) { add(r.Payload.Comment.CardID) })
	s.Checklists.Each(func(_ string, r *Record[ChecklistEntry]) { add(r.Payload.CardID()) })
	s.Attachments.Each(func(_ string, r *Record[Attachment]) { add(r.Payload.Attachment.CardID) })
	return ids
}

// Total returns the number of records across all tables.
func (s Set) Total() int {
	return s.Boards.Len() + s.Cards.Len() + s.Comments.Len() + s.Checklists.Len() + s.Attachments.Len()
}
