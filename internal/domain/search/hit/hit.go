// Package hit holds per-entity candidate tables built by the fetchers before
// they are shaped into result items.
package hit

import (
	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
)

// Record is one candidate. Exact and fuzzy retrieval of the same id share a record.
type Record[P any] struct {
	MatchedExact   bool
	MatchedFuzzy   bool
	SearchableText string
	Payload        P
}

// Table is an insertion-ordered map of records keyed by "type:id".
type Table[P any] struct {
	typ     entity.Type
	records map[string]*Record[P]
	order   []string
}

// NewTable creates an empty table for entity type t.
func NewTable[P any](t entity.Type) *Table[P] {
	return &Table[P]{typ: t, records: make(map[string]*Record[P])}
}

// Type returns the entity type the table is keyed by.
func (t *Table[P]) Type() entity.Type { return t.typ }

// AddExact records an exact-index hit.
func (t *Table[P]) AddExact(id string, payload P, searchable string) {
	key := entity.Key(t.typ, id)
	if r, ok := t.records[key]; ok {
		r.MatchedExact = true
		return
	}
	t.insert(key, &Record[P]{MatchedExact: true, SearchableText: searchable, Payload: payload})
}

// AddFuzzy records a wildcard-pattern hit. An existing record keeps its exact
// flag, gains the fuzzy flag and takes searchable, which comes from the
// store-computed normalized column.
func (t *Table[P]) AddFuzzy(id string, payload P, searchable string) {
	key := entity.Key(t.typ, id)
	if r, ok := t.records[key]; ok {
		r.MatchedFuzzy = true
		if searchable != "" {
			r.SearchableText = searchable
		}
		return
	}
	t.insert(key, &Record[P]{MatchedFuzzy: true, SearchableText: searchable, Payload: payload})
}

func (t *Table[P]) insert(key string, r *Record[P]) {
	t.records[key] = r
	t.order = append(t.order, key)
}

// Get returns the record stored under id.
func (t *Table[P]) Get(id string) (*Record[P], bool) {
	r, ok := t.records[entity.Key(t.typ, id)]
	return r, ok
}

// Len returns the number of records.
func (t *Table[P]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Each calls fn for every record in insertion order.
func (t *Table[P]) Each(fn func(key string, r *Record[P])) {
	if t == nil {
		return
	}
	for _, key := range t.order {
		fn(key, t.records[key])
	}
}
