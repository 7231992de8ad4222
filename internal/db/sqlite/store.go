// Package sqlite implements db.Store on SQLite with FTS5 as the exact-match
// text index. It is the only package that imports the SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/kailas-cloud/boardsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a SQLite store.
type Config struct {
	Path          string
	BusyTimeoutMS int
}

// Store implements db.Store on a SQLite database file.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at cfg.Path. Call Init to create the schema.
//
// busy_timeout and foreign_keys are per-connection settings, so they go into
// the DSN and apply to every pooled connection. WAL is persistent and set once.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.BusyTimeoutMS <= 0 {
		cfg.BusyTimeoutMS = 5000
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMS))
	q.Add("_pragma", "foreign_keys(1)")
	dsn := "file:" + cfg.Path + "?" + q.Encode()

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Path, err)
	}

	if _, err := conn.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &Store{db: conn}, nil
}

// Init creates tables, FTS indexes and triggers. Safe to call repeatedly.
func (s *Store) Init() error {
	return execSchema(s.db)
}

// DB exposes the underlying connection for maintenance tooling and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
