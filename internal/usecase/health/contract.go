package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SchemaInspector reports whether the store can serve fuzzy board retrieval
// from its normalized-text column.
type SchemaInspector interface {
	HasBoardSearchText(ctx context.Context) (bool, error)
}
