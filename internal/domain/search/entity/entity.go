// Package entity names the searchable entity types.
package entity

// Type is a searchable entity type.
type Type string

// Entity type constants.
const (
	Board      Type = "board"
	Card       Type = "card"
	Comment    Type = "comment"
	Checklist  Type = "checklist"
	Attachment Type = "attachment"
)

// All is the type filter value that admits every entity type.
const All Type = "all"

// Types lists every concrete entity type in a stable order.
var Types = []Type{Board, Card, Comment, Checklist, Attachment}

// IsValid reports whether t is a concrete entity type.
func (t Type) IsValid() bool {
	switch t {
	case Board, Card, Comment, Checklist, Attachment:
		return true
	}
	return false
}

// IsValidFilter reports whether t is a concrete type or All.
func (t Type) IsValidFilter() bool {
	return t == All || t.IsValid()
}

// Allows reports whether the filter t admits entity type other.
func (t Type) Allows(other Type) bool {
	return t == All || t == other
}

// CardDerived reports whether results of this type belong to a card.
func (t Type) CardDerived() bool {
	return t.IsValid() && t != Board
}

// Key builds the response-unique identity "type:id".
func Key(t Type, id string) string {
	return string(t) + ":" + id
}
