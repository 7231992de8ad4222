package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
)

// --- Mocks ---

// memStore is an in-memory Store. Exact search matches every query word as a
// whole word; fuzzy search applies the LIKE pattern to the normalized text.
type memStore struct {
	workspaces []domain.Workspace
	members    map[string][]string // workspace id -> user ids
	boards     []domain.Board
	cards      []domain.Card
	comments   []domain.Comment
	checklists []domain.Checklist
	items      []domain.ChecklistItem
	atts       []domain.Attachment
	labels     []domain.CardLink
	assignees  []domain.CardLink

	errs               map[string]error
	boardColumnMissing bool
	// goneCards are hit by searches but no longer returned by CardsByIDs.
	goneCards []string

	mu    sync.Mutex
	calls map[string]int
}

func (m *memStore) record(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[op]++
	return m.errs[op]
}

func (m *memStore) called(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func words(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(text.Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[w] = struct{}{}
	}
	return out
}

func exactMatch(query string, fields ...string) bool {
	have := words(strings.Join(fields, " "))
	want := words(query)
	if len(want) == 0 {
		return false
	}
	for w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

// likeMatch handles the %tok1%tok2% patterns built by text.FuzzyLikeValue.
func likeMatch(pattern, s string) bool {
	pos := 0
	for _, part := range strings.Split(pattern, "%") {
		if part == "" {
			continue
		}
		i := strings.Index(s[pos:], part)
		if i < 0 {
			return false
		}
		pos += i + len(part)
	}
	return true
}

func in(id string, ids []string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func capped[T any](rows []T, limit int) []T {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (m *memStore) boardOf(cardID string) string {
	for _, c := range m.cards {
		if c.ID == cardID {
			return c.BoardID
		}
	}
	return ""
}

func (m *memStore) ListWorkspacesForViewer(_ context.Context, viewerID string) ([]domain.Workspace, error) {
	if err := m.record("workspaces"); err != nil {
		return nil, err
	}
	var out []domain.Workspace
	for _, w := range m.workspaces {
		if in(viewerID, m.members[w.ID]) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memStore) ListBoardsForWorkspaces(_ context.Context, workspaceIDs []string) ([]domain.Board, error) {
	if err := m.record("boards"); err != nil {
		return nil, err
	}
	var out []domain.Board
	for _, b := range m.boards {
		if in(b.WorkspaceID, workspaceIDs) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) SearchBoardsExact(_ context.Context, boardIDs []string, q string, limit int) ([]domain.Board, error) {
	if err := m.record("boards.exact"); err != nil {
		return nil, err
	}
	var out []domain.Board
	for _, b := range m.boards {
		if in(b.ID, boardIDs) && exactMatch(q, b.Name, b.Description) {
			out = append(out, b)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchBoardsFuzzy(_ context.Context, boardIDs []string, p string, limit int) ([]domain.Board, error) {
	if err := m.record("boards.fuzzy"); err != nil {
		return nil, err
	}
	if m.boardColumnMissing {
		return nil, &db.Error{Op: db.OpBoardsFuzzy, Err: db.ErrMissingColumn}
	}
	var out []domain.Board
	for _, b := range m.boards {
		st := text.Join(b.Name, b.Description)
		if in(b.ID, boardIDs) && likeMatch(p, st) {
			b.SearchText = st
			out = append(out, b)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchCardsExact(_ context.Context, boardIDs []string, q string, limit int) ([]domain.Card, error) {
	if err := m.record("cards.exact"); err != nil {
		return nil, err
	}
	var out []domain.Card
	for _, c := range m.cards {
		if in(c.BoardID, boardIDs) && exactMatch(q, c.Title, c.Description) {
			out = append(out, c)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchCardsFuzzy(_ context.Context, boardIDs []string, p string, limit int) ([]domain.Card, error) {
	if err := m.record("cards.fuzzy"); err != nil {
		return nil, err
	}
	var out []domain.Card
	for _, c := range m.cards {
		st := text.Join(c.Title, c.Description)
		if in(c.BoardID, boardIDs) && likeMatch(p, st) {
			c.SearchText = st
			out = append(out, c)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) CardsByIDs(_ context.Context, boardIDs, cardIDs []string) ([]domain.Card, error) {
	if err := m.record("cards.by_ids"); err != nil {
		return nil, err
	}
	var out []domain.Card
	for _, c := range m.cards {
		if in(c.ID, cardIDs) && in(c.BoardID, boardIDs) && !in(c.ID, m.goneCards) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SearchCommentsExact(
	_ context.Context, boardIDs []string, q string, limit int,
) ([]domain.Comment, error) {
	if err := m.record("comments.exact"); err != nil {
		return nil, err
	}
	var out []domain.Comment
	for _, c := range m.comments {
		if in(m.boardOf(c.CardID), boardIDs) && exactMatch(q, c.Body) {
			out = append(out, c)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchCommentsFuzzy(
	_ context.Context, boardIDs []string, p string, limit int,
) ([]domain.Comment, error) {
	if err := m.record("comments.fuzzy"); err != nil {
		return nil, err
	}
	var out []domain.Comment
	for _, c := range m.comments {
		st := text.Join(c.Body)
		if in(m.boardOf(c.CardID), boardIDs) && likeMatch(p, st) {
			c.SearchText = st
			out = append(out, c)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) ChecklistIDsForBoards(_ context.Context, boardIDs []string) ([]string, error) {
	if err := m.record("checklists.scope"); err != nil {
		return nil, err
	}
	var out []string
	for _, k := range m.checklists {
		if in(m.boardOf(k.CardID), boardIDs) {
			out = append(out, k.ID)
		}
	}
	return out, nil
}

func (m *memStore) SearchChecklistsExact(
	_ context.Context, boardIDs []string, q string, limit int,
) ([]domain.Checklist, error) {
	if err := m.record("checklists.exact"); err != nil {
		return nil, err
	}
	var out []domain.Checklist
	for _, k := range m.checklists {
		if in(m.boardOf(k.CardID), boardIDs) && exactMatch(q, k.Name) {
			out = append(out, k)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchChecklistsFuzzy(
	_ context.Context, boardIDs []string, p string, limit int,
) ([]domain.Checklist, error) {
	if err := m.record("checklists.fuzzy"); err != nil {
		return nil, err
	}
	var out []domain.Checklist
	for _, k := range m.checklists {
		st := text.Join(k.Name)
		if in(m.boardOf(k.CardID), boardIDs) && likeMatch(p, st) {
			k.SearchText = st
			out = append(out, k)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchChecklistItemsExact(
	_ context.Context, checklistIDs []string, q string, limit int,
) ([]domain.ChecklistItem, error) {
	if err := m.record("items.exact"); err != nil {
		return nil, err
	}
	var out []domain.ChecklistItem
	for _, it := range m.items {
		if in(it.ChecklistID, checklistIDs) && exactMatch(q, it.Body) {
			out = append(out, it)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchChecklistItemsFuzzy(
	_ context.Context, checklistIDs []string, p string, limit int,
) ([]domain.ChecklistItem, error) {
	if err := m.record("items.fuzzy"); err != nil {
		return nil, err
	}
	var out []domain.ChecklistItem
	for _, it := range m.items {
		st := text.Join(it.Body)
		if in(it.ChecklistID, checklistIDs) && likeMatch(p, st) {
			it.SearchText = st
			out = append(out, it)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchAttachmentsExact(
	_ context.Context, boardIDs []string, q string, limit int,
) ([]domain.Attachment, error) {
	if err := m.record("attachments.exact"); err != nil {
		return nil, err
	}
	var out []domain.Attachment
	for _, a := range m.atts {
		if in(m.boardOf(a.CardID), boardIDs) && exactMatch(q, a.FileName, a.ExternalURL) {
			out = append(out, a)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) SearchAttachmentsFuzzy(
	_ context.Context, boardIDs []string, p string, limit int,
) ([]domain.Attachment, error) {
	if err := m.record("attachments.fuzzy"); err != nil {
		return nil, err
	}
	var out []domain.Attachment
	for _, a := range m.atts {
		st := text.Join(a.FileName, a.ExternalURL)
		if in(m.boardOf(a.CardID), boardIDs) && likeMatch(p, st) {
			a.SearchText = st
			out = append(out, a)
		}
	}
	return capped(out, limit), nil
}

func (m *memStore) ListLabelsForCards(_ context.Context, cardIDs []string) ([]domain.CardLink, error) {
	if err := m.record("labels"); err != nil {
		return nil, err
	}
	var out []domain.CardLink
	for _, l := range m.labels {
		if in(l.CardID, cardIDs) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) ListAssigneesForCards(_ context.Context, cardIDs []string) ([]domain.CardLink, error) {
	if err := m.record("assignees"); err != nil {
		return nil, err
	}
	var out []domain.CardLink
	for _, l := range m.assignees {
		if in(l.CardID, cardIDs) {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- Fixtures ---

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func ts(h int) time.Time { return testNow.Add(time.Duration(h) * time.Hour) }

func tp(h int) *time.Time {
	t := ts(h)
	return &t
}

// newDataset builds two workspaces. Viewer u1 belongs to acme only.
func newDataset() *memStore {
	return &memStore{
		workspaces: []domain.Workspace{
			{ID: "w1", Slug: "acme", Name: "Acme"},
			{ID: "w2", Slug: "other", Name: "Other"},
		},
		members: map[string][]string{"w1": {"u1", "u3"}, "w2": {"u2"}},
		boards: []domain.Board{
			{ID: "b1", WorkspaceID: "w1", Name: "Sprint Board", Description: "Team cadence", UpdatedAt: ts(-100)},
			{ID: "b2", WorkspaceID: "w1", Name: "Marketing", Description: "ideas for the sprint retro", UpdatedAt: ts(-90)},
			{ID: "b3", WorkspaceID: "w2", Name: "Sprint secrets", UpdatedAt: ts(-10)},
		},
		cards: []domain.Card{
			{ID: "c1", BoardID: "b1", Title: "Sprint Planning", Description: "pick goals",
				DueAt: tp(-24), UpdatedAt: ts(-5)},
			{ID: "c2", BoardID: "b1", Title: "Retro", Description: "sprints ahead of schedule",
				Completed: true, UpdatedAt: ts(-4)},
			{ID: "c3", BoardID: "b1", Title: "Sprint demo", Description: "show the build",
				DueAt: tp(5 * 24), UpdatedAt: ts(-3)},
			{ID: "c4", BoardID: "b2", Title: "Launch copy", Description: "no due date here", UpdatedAt: ts(-2)},
			{ID: "c9", BoardID: "b3", Title: "Sprint secret card", UpdatedAt: ts(-1)},
		},
		comments: []domain.Comment{
			{ID: "m1", CardID: "c1", Body: "Sprint   notes\nfrom standup", UpdatedAt: ts(-6)},
			{ID: "m9", CardID: "c9", Body: "sprint leak", UpdatedAt: ts(-1)},
		},
		checklists: []domain.Checklist{
			{ID: "k1", CardID: "c1", Name: "Prep", UpdatedAt: ts(-7)},
			{ID: "k3", CardID: "c3", Name: "Sprint demo prep", UpdatedAt: ts(-8)},
		},
		items: []domain.ChecklistItem{
			{ID: "i1", ChecklistID: "k1", ChecklistName: "Prep", CardID: "c1", Body: "Sprint agenda", UpdatedAt: ts(-9)},
		},
		atts: []domain.Attachment{
			{ID: "a1", CardID: "c3", FileName: "sprint.pdf", ExternalURL: "https://files.example.com/sprint",
				UpdatedAt: ts(-11)},
		},
		labels:    []domain.CardLink{{CardID: "c1", RefID: "bug"}, {CardID: "c3", RefID: "ux"}},
		assignees: []domain.CardLink{{CardID: "c1", RefID: "u1"}, {CardID: "c3", RefID: "u3"}},
	}
}

func newTestService(store Store) *Service {
	return New(store, WithClock(func() time.Time { return testNow }), WithLocation(time.UTC))
}
