// Package boardsearch embeds the workspace search engine in a Go program.
//
// The client opens a SQLite database, optionally seeds it from a YAML
// fixture, and runs searches on behalf of a viewer:
//
//	c, err := boardsearch.New(boardsearch.WithSQLite("boards.db"))
//	if err != nil { ... }
//	defer c.Close()
//
//	page, err := c.Search("u1").
//		Query("sprint").
//		Due(boardsearch.DueOverdue).
//		Do(ctx)
package boardsearch
