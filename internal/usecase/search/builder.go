package search

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/result"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
)

// MaxSnippetLength is the rune cap on result snippets.
const MaxSnippetLength = 160

// builder shapes hits into result items for one request.
type builder struct {
	sc         scope
	cc         cardContext
	typ        entity.Type
	facets     filter.Facets
	query      string
	viewerID   string
	clock      filter.Clock
	hideBoards bool
}

// location is the resolved owner chain of a card-derived hit.
type location struct {
	workspace domain.Workspace
	board     domain.Board
	card      domain.Card
}

func (b *builder) build(set hit.Set) []result.Item {
	items := make([]result.Item, 0, set.Total())

	if b.typ.Allows(entity.Board) && !b.hideBoards {
		set.Boards.Each(func(_ string, r *hit.Record[hit.Board]) {
			if it, ok := b.boardItem(r); ok {
				items = append(items, it)
			}
		})
	}
	if b.typ.Allows(entity.Card) {
		set.Cards.Each(func(_ string, r *hit.Record[hit.Card]) {
			if it, ok := b.cardItem(r); ok {
				items = append(items, it)
			}
		})
	}
	if b.typ.Allows(entity.Comment) {
		set.Comments.Each(func(_ string, r *hit.Record[hit.Comment]) {
			if it, ok := b.commentItem(r); ok {
				items = append(items, it)
			}
		})
	}
	if b.typ.Allows(entity.Checklist) {
		set.Checklists.Each(func(_ string, r *hit.Record[hit.ChecklistEntry]) {
			if it, ok := b.checklistItem(r); ok {
				items = append(items, it)
			}
		})
	}
	if b.typ.Allows(entity.Attachment) {
		set.Attachments.Each(func(_ string, r *hit.Record[hit.Attachment]) {
			if it, ok := b.attachmentItem(r); ok {
				items = append(items, it)
			}
		})
	}
	return items
}

// resolveBoard finds a scoped board and its workspace.
func (b *builder) resolveBoard(boardID string) (domain.Workspace, domain.Board, bool) {
	board, ok := b.sc.boards[boardID]
	if !ok {
		return domain.Workspace{}, domain.Board{}, false
	}
	ws, ok := b.sc.workspaces[board.WorkspaceID]
	if !ok {
		return domain.Workspace{}, domain.Board{}, false
	}
	return ws, board, true
}

// resolveCard finds the owner chain of cardID and applies the facet predicate.
// ok is false when any link is missing or the card fails the facets.
func (b *builder) resolveCard(cardID string) (location, bool) {
	card, ok := b.cc.cards[cardID]
	if !ok {
		return location{}, false
	}
	ws, board, ok := b.resolveBoard(card.BoardID)
	if !ok {
		return location{}, false
	}
	view, _ := b.cc.card(cardID)
	if !b.facets.Matches(view, b.viewerID, b.clock) {
		return location{}, false
	}
	return location{workspace: ws, board: board, card: card}, true
}

func (b *builder) score(exact bool, searchable string) float64 {
	return text.Score(text.ScoreInput{
		MatchedExact:    exact,
		QueryNormalized: b.query,
		SearchableText:  searchable,
	})
}

func (b *builder) boardItem(r *hit.Record[hit.Board]) (result.Item, bool) {
	ws, board, ok := b.resolveBoard(r.Payload.Board.ID)
	if !ok {
		return result.Item{}, false
	}
	return result.Item{
		ID:         entity.Key(entity.Board, board.ID),
		EntityType: entity.Board,
		EntityID:   board.ID,
		Title:      r.Payload.Board.Name,
		Snippet:    snippet(r.Payload.Board.Description),
		URL:        boardURL(ws, board),
		Workspace:  workspaceRef(ws),
		Board:      &result.BoardRef{ID: board.ID, Name: board.Name},
		UpdatedAt:  r.Payload.Board.UpdatedAt,
		Score:      b.score(r.MatchedExact, r.SearchableText),
	}, true
}

func (b *builder) cardItem(r *hit.Record[hit.Card]) (result.Item, bool) {
	c := r.Payload.Card
	loc, ok := b.resolveCard(c.ID)
	if !ok {
		return result.Item{}, false
	}
	return result.Item{
		ID:         entity.Key(entity.Card, c.ID),
		EntityType: entity.Card,
		EntityID:   c.ID,
		Title:      c.Title,
		Snippet:    snippet(c.Description),
		URL:        cardURL(loc),
		Workspace:  workspaceRef(loc.workspace),
		Board:      &result.BoardRef{ID: loc.board.ID, Name: loc.board.Name},
		UpdatedAt:  c.UpdatedAt,
		Score:      b.score(r.MatchedExact, r.SearchableText),
	}, true
}

func (b *builder) commentItem(r *hit.Record[hit.Comment]) (result.Item, bool) {
	m := r.Payload.Comment
	loc, ok := b.resolveCard(m.CardID)
	if !ok {
		return result.Item{}, false
	}
	return result.Item{
		ID:         entity.Key(entity.Comment, m.ID),
		EntityType: entity.Comment,
		EntityID:   m.ID,
		Title:      loc.card.Title,
		Snippet:    snippet(m.Body),
		URL:        cardURL(loc) + "#comment-" + url.PathEscape(m.ID),
		Workspace:  workspaceRef(loc.workspace),
		Board:      &result.BoardRef{ID: loc.board.ID, Name: loc.board.Name},
		Card:       cardRef(loc.card),
		UpdatedAt:  m.UpdatedAt,
		Score:      b.score(r.MatchedExact, r.SearchableText),
	}, true
}

func (b *builder) checklistItem(r *hit.Record[hit.ChecklistEntry]) (result.Item, bool) {
	e := r.Payload
	loc, ok := b.resolveCard(e.CardID())
	if !ok {
		return result.Item{}, false
	}
	it := result.Item{
		ID:         entity.Key(entity.Checklist, e.TableID()),
		EntityType: entity.Checklist,
		EntityID:   e.EntityID(),
		Workspace:  workspaceRef(loc.workspace),
		Board:      &result.BoardRef{ID: loc.board.ID, Name: loc.board.Name},
		Card:       cardRef(loc.card),
		Score:      b.score(r.MatchedExact, r.SearchableText),
	}
	switch {
	case e.Kind == hit.KindItem && e.Item != nil:
		it.Title = e.Item.Body
		it.Snippet = snippet(e.Item.ChecklistName)
		it.URL = cardURL(loc) + "#checklist-item-" + url.PathEscape(e.Item.ID)
		it.UpdatedAt = e.Item.UpdatedAt
	case e.Checklist != nil:
		it.Title = e.Checklist.Name
		it.Snippet = snippet(loc.card.Title)
		it.URL = cardURL(loc) + "#checklist-" + url.PathEscape(e.Checklist.ID)
		it.UpdatedAt = e.Checklist.UpdatedAt
	default:
		return result.Item{}, false
	}
	return it, true
}

func (b *builder) attachmentItem(r *hit.Record[hit.Attachment]) (result.Item, bool) {
	a := r.Payload.Attachment
	loc, ok := b.resolveCard(a.CardID)
	if !ok {
		return result.Item{}, false
	}
	return result.Item{
		ID:         entity.Key(entity.Attachment, a.ID),
		EntityType: entity.Attachment,
		EntityID:   a.ID,
		Title:      a.FileName,
		Snippet:    snippet(a.ExternalURL),
		URL:        cardURL(loc) + "#attachment-" + url.PathEscape(a.ID),
		Workspace:  workspaceRef(loc.workspace),
		Board:      &result.BoardRef{ID: loc.board.ID, Name: loc.board.Name},
		Card:       cardRef(loc.card),
		UpdatedAt:  a.UpdatedAt,
		Score:      b.score(r.MatchedExact, r.SearchableText),
	}, true
}

func workspaceRef(w domain.Workspace) result.WorkspaceRef {
	return result.WorkspaceRef{ID: w.ID, Slug: w.Slug, Name: w.Name}
}

func cardRef(c domain.Card) *result.CardRef {
	return &result.CardRef{ID: c.ID, Title: c.Title}
}

func boardURL(w domain.Workspace, b domain.Board) string {
	return "/w/" + url.PathEscape(w.Slug) + "/b/" + url.PathEscape(b.ID)
}

func cardURL(loc location) string {
	return boardURL(loc.workspace, loc.board) + "/c/" + url.PathEscape(loc.card.ID)
}

// snippet collapses whitespace and cuts s to MaxSnippetLength runes.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= MaxSnippetLength {
		return s
	}
	return string([]rune(s)[:MaxSnippetLength])
}
