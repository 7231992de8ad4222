package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/boardsearch/internal/db"
)

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// idSet is the operand of an IN list bound as one JSON array parameter, so
// the number of ids never counts against SQLite's host parameter limit.
const idSet = `SELECT value FROM json_each(?)`

// idArg binds ids for idSet.
func idArg(ids []string) []any {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return []any{string(b)}
}

// ftsMatch turns free text into an FTS5 query of AND-ed quoted phrases so
// punctuation in user input never reaches the FTS5 parser as syntax.
// Returns "" when the input has no tokens.
func ftsMatch(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(parts, " ")
}

// wrap attaches op to err and classifies schema drift.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) {
		return &db.Error{Op: op, Err: errors.Join(db.ErrClosed, err)}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "no such column") {
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %s", db.ErrMissingColumn, err.Error())}
	}
	if strings.Contains(msg, "database is closed") {
		return &db.Error{Op: op, Err: errors.Join(db.ErrClosed, err)}
	}
	return &db.Error{Op: op, Err: err}
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func nullableTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func nullableUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

// queryAll runs q and scans every row with scan. Errors carry op.
func queryAll[T any](
	ctx context.Context, conn *sql.DB, op, q string, args []any, scan func(scanner) (T, error),
) ([]T, error) {
	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}
