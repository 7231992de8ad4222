package sqlite

import (
	"context"

	"github.com/kailas-cloud/boardsearch/internal/db"
	"github.com/kailas-cloud/boardsearch/internal/domain"
)

func scanAttachment(sc scanner) (domain.Attachment, error) {
	var a domain.Attachment
	var updated int64
	if err := sc.Scan(&a.ID, &a.CardID, &a.FileName, &a.ExternalURL, &updated); err != nil {
		return a, err
	}
	a.UpdatedAt = fromUnix(updated)
	return a, nil
}

func scanAttachmentWithText(sc scanner) (domain.Attachment, error) {
	var a domain.Attachment
	var updated int64
	if err := sc.Scan(&a.ID, &a.CardID, &a.FileName, &a.ExternalURL, &updated, &a.SearchText); err != nil {
		return a, err
	}
	a.UpdatedAt = fromUnix(updated)
	return a, nil
}

// SearchAttachmentsExact queries attachments_fts for attachments on boardIDs.
func (s *Store) SearchAttachmentsExact(
	ctx context.Context, boardIDs []string, query string, limit int,
) ([]domain.Attachment, error) {
	match := ftsMatch(query)
	if len(boardIDs) == 0 || match == "" || limit <= 0 {
		return nil, nil
	}
	q := `SELECT a.id, a.card_id, a.file_name, a.external_url, a.updated_at
		FROM attachments_fts
		JOIN attachments a ON a.pk = attachments_fts.rowid
		JOIN cards c ON c.id = a.card_id
		WHERE attachments_fts MATCH ?
			AND c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
		ORDER BY bm25(attachments_fts), a.id
		LIMIT ?`
	args := append([]any{match}, idArg(boardIDs)...)
	args = append(args, limit)
	return queryAll(ctx, s.db, db.OpAttachmentsExact, q, args, scanAttachment)
}

// SearchAttachmentsFuzzy matches pattern against attachments.search_text.
func (s *Store) SearchAttachmentsFuzzy(
	ctx context.Context, boardIDs []string, pattern string, limit int,
) ([]domain.Attachment, error) {
	if len(boardIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	q := `SELECT a.id, a.card_id, a.file_name, a.external_url, a.updated_at, a.search_text
		FROM attachments a
		JOIN cards c ON c.id = a.card_id
		WHERE c.archived_at IS NULL
			AND c.board_id IN (` + idSet + `)
			AND a.search_text LIKE ? ESCAPE '\'
		ORDER BY a.updated_at DESC, a.id
		LIMIT ?`
	args := append(idArg(boardIDs), pattern, limit)
	return queryAll(ctx, s.db, db.OpAttachmentsFuzzy, q, args, scanAttachmentWithText)
}
