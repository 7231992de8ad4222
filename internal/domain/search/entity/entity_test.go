package entity

import "testing"

func TestType_IsValid(t *testing.T) {
	for _, typ := range Types {
		if !typ.IsValid() || !typ.IsValidFilter() {
			t.Errorf("%q should be valid", typ)
		}
	}
	if All.IsValid() {
		t.Error("all is not a concrete type")
	}
	if !All.IsValidFilter() {
		t.Error("all should be a valid filter")
	}
	if Type("task").IsValidFilter() {
		t.Error("unknown type should be invalid")
	}
}

func TestType_Allows(t *testing.T) {
	if !All.Allows(Board) || !All.Allows(Attachment) {
		t.Error("all should allow every type")
	}
	if !Card.Allows(Card) {
		t.Error("card should allow card")
	}
	if Card.Allows(Comment) {
		t.Error("card should not allow comment")
	}
}

func TestType_CardDerived(t *testing.T) {
	if Board.CardDerived() {
		t.Error("board is not card derived")
	}
	for _, typ := range []Type{Card, Comment, Checklist, Attachment} {
		if !typ.CardDerived() {
			t.Errorf("%q should be card derived", typ)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key(Comment, "c1"); got != "comment:c1" {
		t.Errorf("Key = %q", got)
	}
}
