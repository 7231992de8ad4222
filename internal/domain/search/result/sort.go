package result

import (
	"sort"
	"time"
)

// Less is the total order of search results: score desc, updated-at desc
// (zero time sorts as the epoch), entity type asc, id asc.
func Less(a, b *Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	ua, ub := updatedUnix(a.UpdatedAt), updatedUnix(b.UpdatedAt)
	if ua != ub {
		return ua > ub
	}
	if a.EntityType != b.EntityType {
		return a.EntityType < b.EntityType
	}
	return a.ID < b.ID
}

func updatedUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

// Sort orders items in place by Less.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(&items[i], &items[j])
	})
}

// Page slices items to [offset, offset+limit) and reports the next offset,
// or 0 when no items remain past the page.
func Page(items []Item, offset, limit int) ([]Item, int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []Item{}, 0
	}
	end := offset + limit
	if end >= len(items) {
		return items[offset:], 0
	}
	return items[offset:end], end
}
