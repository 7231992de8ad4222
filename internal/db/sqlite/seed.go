package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/text"
	"github.com/kailas-cloud/boardsearch/internal/fixture"
)

// Seed writes f in a single transaction. Relative due dates resolve against now.
// search_text columns are filled with the normalized searchable fields.
func (s *Store) Seed(ctx context.Context, f *fixture.Fixture, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(db.OpSeed, err)
	}
	defer func() { _ = tx.Rollback() }()

	w := seedWriter{ctx: ctx, tx: tx, now: now}
	for _, ws := range f.Workspaces {
		if err := w.workspace(ws); err != nil {
			return wrap(db.OpSeed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return wrap(db.OpSeed, err)
	}
	return nil
}

type seedWriter struct {
	ctx context.Context
	tx  *sql.Tx
	now time.Time
}

func (w seedWriter) exec(q string, args ...any) error {
	_, err := w.tx.ExecContext(w.ctx, q, args...)
	return err
}

func (w seedWriter) archived(flag bool, updated time.Time) sql.NullInt64 {
	if !flag {
		return sql.NullInt64{}
	}
	at := updated
	if at.IsZero() {
		at = w.now
	}
	return nullableUnix(&at)
}

func (w seedWriter) workspace(ws fixture.Workspace) error {
	err := w.exec(`INSERT INTO workspaces (id, slug, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET slug = excluded.slug, name = excluded.name`,
		ws.ID, ws.Slug, ws.Name)
	if err != nil {
		return fmt.Errorf("workspace %s: %w", ws.ID, err)
	}
	for _, m := range ws.Members {
		if err := w.exec(`INSERT OR IGNORE INTO workspace_members (workspace_id, user_id) VALUES (?, ?)`,
			ws.ID, m); err != nil {
			return fmt.Errorf("workspace %s member %s: %w", ws.ID, m, err)
		}
	}
	for _, b := range ws.Boards {
		if err := w.board(ws.ID, b); err != nil {
			return err
		}
	}
	return nil
}

func (w seedWriter) board(workspaceID string, b fixture.Board) error {
	err := w.exec(`INSERT INTO boards (id, workspace_id, name, description, archived_at, updated_at, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, workspaceID, b.Name, b.Description,
		w.archived(b.Archived, b.UpdatedAt), toUnix(b.UpdatedAt), text.Join(b.Name, b.Description))
	if err != nil {
		return fmt.Errorf("board %s: %w", b.ID, err)
	}
	for _, c := range b.Cards {
		if err := w.card(b.ID, c); err != nil {
			return err
		}
	}
	return nil
}

func (w seedWriter) card(boardID string, c fixture.Card) error {
	err := w.exec(`INSERT INTO cards
		(id, board_id, title, description, due_at, completed, archived_at, updated_at, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, boardID, c.Title, c.Description, nullableUnix(c.Due(w.now)), c.Completed,
		w.archived(c.Archived, c.UpdatedAt), toUnix(c.UpdatedAt), text.Join(c.Title, c.Description))
	if err != nil {
		return fmt.Errorf("card %s: %w", c.ID, err)
	}

	for _, l := range c.Labels {
		if err := w.exec(`INSERT OR IGNORE INTO card_labels (card_id, label_id) VALUES (?, ?)`, c.ID, l); err != nil {
			return fmt.Errorf("card %s label %s: %w", c.ID, l, err)
		}
	}
	for _, u := range c.Assignees {
		if err := w.exec(`INSERT OR IGNORE INTO card_assignees (card_id, user_id) VALUES (?, ?)`, c.ID, u); err != nil {
			return fmt.Errorf("card %s assignee %s: %w", c.ID, u, err)
		}
	}
	for _, m := range c.Comments {
		if err := w.exec(`INSERT INTO comments (id, card_id, body, updated_at, search_text) VALUES (?, ?, ?, ?, ?)`,
			m.ID, c.ID, m.Body, toUnix(m.UpdatedAt), text.Join(m.Body)); err != nil {
			return fmt.Errorf("comment %s: %w", m.ID, err)
		}
	}
	for _, k := range c.Checklists {
		if err := w.checklist(c.ID, k); err != nil {
			return err
		}
	}
	for _, a := range c.Attachments {
		err := w.exec(`INSERT INTO attachments (id, card_id, file_name, external_url, updated_at, search_text)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, c.ID, a.FileName, a.ExternalURL, toUnix(a.UpdatedAt), text.Join(a.FileName, a.ExternalURL))
		if err != nil {
			return fmt.Errorf("attachment %s: %w", a.ID, err)
		}
	}
	return nil
}

func (w seedWriter) checklist(cardID string, k fixture.Checklist) error {
	err := w.exec(`INSERT INTO checklists (id, card_id, name, updated_at, search_text) VALUES (?, ?, ?, ?, ?)`,
		k.ID, cardID, k.Name, toUnix(k.UpdatedAt), text.Join(k.Name))
	if err != nil {
		return fmt.Errorf("checklist %s: %w", k.ID, err)
	}
	for _, it := range k.Items {
		err := w.exec(`INSERT INTO checklist_items (id, checklist_id, body, completed, updated_at, search_text)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, k.ID, it.Body, it.Completed, toUnix(it.UpdatedAt), text.Join(it.Body))
		if err != nil {
			return fmt.Errorf("checklist item %s: %w", it.ID, err)
		}
	}
	return nil
}
