package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
	"github.com/kailas-cloud/boardsearch/internal/fixture"
)

var seedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

const testFixture = `
workspaces:
  - id: w1
    slug: acme
    name: Acme
    members: [u1]
    boards:
      - id: b1
        name: Sprint Board
        description: Planning for the café team
        updated_at: 2026-03-01T10:00:00Z
        cards:
          - id: c1
            title: Sprint planning
            description: Décide the sprint goal
            due_in_hours: -24
            labels: [bug]
            assignees: [u1]
            updated_at: 2026-03-02T10:00:00Z
            comments:
              - id: m1
                body: Agenda for the sprint review
            checklists:
              - id: k1
                name: Sprint prep
                items:
                  - id: i1
                    body: Book the sprint room
                    completed: true
            attachments:
              - id: a1
                file_name: sprint-notes.pdf
                external_url: https://files.example.com/sprint
          - id: c2
            title: Archived sprint card
            archived: true
      - id: b2
        name: Old sprint board
        archived: true
  - id: w2
    slug: other
    name: Other
    members: [u2]
    boards:
      - id: b3
        name: Sprint elsewhere
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Init())

	f, err := fixture.Parse(strings.NewReader(testFixture))
	require.NoError(t, err)
	require.NoError(t, s.Seed(context.Background(), f, seedNow))
	return s
}

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore(Config{})
	require.Error(t, err)
}

func TestInit_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Init())
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.WaitForReady(context.Background(), time.Second))
}

func TestScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ws, err := s.ListWorkspacesForViewer(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, domain.Workspace{ID: "w1", Slug: "acme", Name: "Acme"}, ws[0])

	none, err := s.ListWorkspacesForViewer(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)

	boards, err := s.ListBoardsForWorkspaces(ctx, []string{"w1"})
	require.NoError(t, err)
	require.Len(t, boards, 1, "archived board must be excluded")
	assert.Equal(t, "b1", boards[0].ID)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), boards[0].UpdatedAt)

	empty, err := s.ListBoardsForWorkspaces(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBoards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	scope := []string{"b1", "b2"}

	exact, err := s.SearchBoardsExact(ctx, scope, "sprint", 10)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "b1", exact[0].ID)

	// remove_diacritics lets "cafe" match "café".
	exact, err = s.SearchBoardsExact(ctx, scope, "cafe", 10)
	require.NoError(t, err)
	assert.Len(t, exact, 1)

	fuzzy, err := s.SearchBoardsFuzzy(ctx, scope, text.FuzzyLikeValue("spr board"), 10)
	require.NoError(t, err)
	require.Len(t, fuzzy, 1)
	assert.Equal(t, text.Join("Sprint Board", "Planning for the café team"), fuzzy[0].SearchText)

	outOfScope, err := s.SearchBoardsExact(ctx, []string{"b3"}, "board", 10)
	require.NoError(t, err)
	assert.Empty(t, outOfScope)

	ok, err := s.HasBoardSearchText(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoards_PunctuationIsNotFTSSyntax(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SearchBoardsExact(context.Background(), []string{"b1"}, `sprint" OR (board`, 10)
	require.NoError(t, err)
}

func TestCards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exact, err := s.SearchCardsExact(ctx, []string{"b1"}, "sprint", 10)
	require.NoError(t, err)
	require.Len(t, exact, 1, "archived card must be excluded")
	c := exact[0]
	assert.Equal(t, "c1", c.ID)
	require.NotNil(t, c.DueAt)
	assert.Equal(t, seedNow.Add(-24*time.Hour), *c.DueAt)
	assert.False(t, c.Completed)

	fuzzy, err := s.SearchCardsFuzzy(ctx, []string{"b1"}, text.FuzzyLikeValue("decide goal"), 10)
	require.NoError(t, err)
	require.Len(t, fuzzy, 1)
	assert.Contains(t, fuzzy[0].SearchText, "decide the sprint goal")

	byID, err := s.CardsByIDs(ctx, []string{"b1"}, []string{"c1", "c2", "missing"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "c1", byID[0].ID)

	wrongBoard, err := s.CardsByIDs(ctx, []string{"b3"}, []string{"c1"})
	require.NoError(t, err)
	assert.Empty(t, wrongBoard)
}

func TestCardChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	scope := []string{"b1"}

	comments, err := s.SearchCommentsExact(ctx, scope, "agenda", 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].CardID)

	comments, err = s.SearchCommentsFuzzy(ctx, scope, text.FuzzyLikeValue("review"), 10)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	checklists, err := s.SearchChecklistsExact(ctx, scope, "prep", 10)
	require.NoError(t, err)
	require.Len(t, checklists, 1)
	assert.Equal(t, "Sprint prep", checklists[0].Name)

	ids, err := s.ChecklistIDsForBoards(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, ids)

	items, err := s.SearchChecklistItemsExact(ctx, ids, "room", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].CardID)
	assert.Equal(t, "Sprint prep", items[0].ChecklistName)
	assert.True(t, items[0].Completed)

	items, err = s.SearchChecklistItemsFuzzy(ctx, ids, text.FuzzyLikeValue("book room"), 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	atts, err := s.SearchAttachmentsExact(ctx, scope, "notes", 10)
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "https://files.example.com/sprint", atts[0].ExternalURL)

	atts, err = s.SearchAttachmentsFuzzy(ctx, scope, text.FuzzyLikeValue("sprint-notes"), 10)
	require.NoError(t, err)
	assert.Len(t, atts, 1)
}

func TestAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	labels, err := s.ListLabelsForCards(ctx, []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, []domain.CardLink{{CardID: "c1", RefID: "bug"}}, labels)

	assignees, err := s.ListAssigneesForCards(ctx, []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.CardLink{{CardID: "c1", RefID: "u1"}}, assignees)

	none, err := s.ListLabelsForCards(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBoardsFuzzy_MissingColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx, `ALTER TABLE boards DROP COLUMN search_text`)
	require.NoError(t, err)

	_, err = s.SearchBoardsFuzzy(ctx, []string{"b1"}, "%sprint%", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrMissingColumn), "got %v", err)

	var dbErr *db.Error
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, db.OpBoardsFuzzy, dbErr.Op)

	ok, err := s.HasBoardSearchText(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Exact search does not depend on the column.
	exact, err := s.SearchBoardsExact(ctx, []string{"b1"}, "sprint", 10)
	require.NoError(t, err)
	assert.Len(t, exact, 1)
}

func TestClosedStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())
	_, err := s.SearchCardsExact(context.Background(), []string{"b1"}, "sprint", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrClosed), "got %v", err)
}

func TestSeed_DuplicateFails(t *testing.T) {
	s := newTestStore(t)
	f, err := fixture.Parse(strings.NewReader(testFixture))
	require.NoError(t, err)
	require.Error(t, s.Seed(context.Background(), f, seedNow), "re-seeding the same card ids must fail")

	// The failed transaction left the original rows untouched.
	cards, err := s.CardsByIDs(context.Background(), []string{"b1"}, []string{"c1"})
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestQueryHelpers(t *testing.T) {
	assert.Equal(t, []any{`[]`}, idArg(nil))
	assert.Equal(t, []any{`["a","b\"c"]`}, idArg([]string{"a", `b"c`}))
	assert.Equal(t, `"a" "b""c"`, ftsMatch(` a  b"c `))
	assert.Equal(t, "", ftsMatch("   "))
	assert.True(t, fromUnix(0).IsZero())
	assert.Equal(t, int64(0), toUnix(time.Time{}))
}

// manyChecklists is past SQLite's default limit of 32766 host parameters.
const manyChecklists = 33000

func TestChecklistItems_LargeChecklistScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx, err := s.DB().BeginTx(ctx, nil)
	require.NoError(t, err)
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO checklists (id, card_id, name, updated_at, search_text) VALUES (?, 'c1', ?, 0, ?)`)
	require.NoError(t, err)
	for i := 0; i < manyChecklists; i++ {
		name := fmt.Sprintf("list %d", i)
		_, err := stmt.ExecContext(ctx, fmt.Sprintf("bulk-%d", i), name, text.Normalize(name))
		require.NoError(t, err)
	}
	require.NoError(t, stmt.Close())
	last := fmt.Sprintf("bulk-%d", manyChecklists-1)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO checklist_items (id, checklist_id, body, completed, updated_at, search_text)
		VALUES ('bulk-item', ?, 'Sprint banner', 0, 0, 'sprint banner')`, last)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	ids, err := s.ChecklistIDsForBoards(ctx, []string{"b1"})
	require.NoError(t, err)
	require.Len(t, ids, manyChecklists+1)

	exact, err := s.SearchChecklistItemsExact(ctx, ids, "banner", 10)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "bulk-item", exact[0].ID)
	assert.Equal(t, last, exact[0].ChecklistID)

	fuzzy, err := s.SearchChecklistItemsFuzzy(ctx, ids, text.FuzzyLikeValue("sprint"), 10)
	require.NoError(t, err)
	got := make([]string, len(fuzzy))
	for i, it := range fuzzy {
		got[i] = it.ID
	}
	assert.ElementsMatch(t, []string{"bulk-item", "i1"}, got)
}

func TestSearch_LargeBoardAndCardScopes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boardIDs := make([]string, 0, manyChecklists+1)
	cardIDs := make([]string, 0, manyChecklists+1)
	for i := 0; i < manyChecklists; i++ {
		boardIDs = append(boardIDs, fmt.Sprintf("gone-board-%d", i))
		cardIDs = append(cardIDs, fmt.Sprintf("gone-card-%d", i))
	}
	boardIDs = append(boardIDs, "b1")
	cardIDs = append(cardIDs, "c1")

	boards, err := s.SearchBoardsExact(ctx, boardIDs, "sprint", 10)
	require.NoError(t, err)
	require.Len(t, boards, 1)

	cards, err := s.SearchCardsFuzzy(ctx, boardIDs, text.FuzzyLikeValue("sprint"), 10)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "c1", cards[0].ID)

	byID, err := s.CardsByIDs(ctx, boardIDs, cardIDs)
	require.NoError(t, err)
	require.Len(t, byID, 1)

	labels, err := s.ListLabelsForCards(ctx, cardIDs)
	require.NoError(t, err)
	assert.Equal(t, []domain.CardLink{{CardID: "c1", RefID: "bug"}}, labels)

	comments, err := s.SearchCommentsExact(ctx, boardIDs, "agenda", 10)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
