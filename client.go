package boardsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/boardsearch/internal/db/sqlite"
	"github.com/kailas-cloud/boardsearch/internal/fixture"
	"github.com/kailas-cloud/boardsearch/internal/logger"
	searchuc "github.com/kailas-cloud/boardsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the boardsearch entry point.
type Client struct {
	store  *sqlite.Store
	svc    *searchuc.Service
	clock  func() time.Time
	logger *zap.Logger
}

// New opens the database, creates the schema if needed and waits until it answers.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readiness: defaultReadinessTimeout,
		location:  time.UTC,
		clock:     time.Now,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.path == "" {
		return nil, errors.New("boardsearch: database path required (use WithSQLite)")
	}
	if cfg.location == nil {
		cfg.location = time.UTC
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := sqlite.NewStore(sqlite.Config{
		Path:          cfg.path,
		BusyTimeoutMS: cfg.busyTimeoutMS,
	})
	if err != nil {
		return nil, fmt.Errorf("boardsearch: create store: %w", err)
	}
	if err := store.Init(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("boardsearch: init schema: %w", err)
	}
	if err := store.WaitForReady(context.Background(), cfg.readiness); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("boardsearch: database not ready: %w", err)
	}

	svc := searchuc.New(store,
		searchuc.WithLocation(cfg.location),
		searchuc.WithClock(cfg.clock),
	)

	return &Client{
		store:  store,
		svc:    svc,
		clock:  cfg.clock,
		logger: cfg.logger,
	}, nil
}

// Close releases the database.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SeedFile loads a YAML fixture file in one transaction.
func (c *Client) SeedFile(ctx context.Context, path string) error {
	f, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return c.seed(ctx, f)
}

// Seed loads a YAML fixture from r in one transaction.
func (c *Client) Seed(ctx context.Context, r io.Reader) error {
	f, err := fixture.Parse(r)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return c.seed(ctx, f)
}

func (c *Client) seed(ctx context.Context, f *fixture.Fixture) error {
	if err := c.store.Seed(ctx, f, c.clock()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	c.logger.Info("Fixture loaded", zap.Int("workspaces", len(f.Workspaces)))
	return nil
}

// Search starts a search on behalf of viewerID.
func (c *Client) Search(viewerID string) *SearchBuilder {
	return &SearchBuilder{client: c, viewerID: viewerID}
}

func (c *Client) ctx(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
