package result

import (
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/entity"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSort_TotalOrder(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	items := []Item{
		{ID: "card:z", EntityType: entity.Card, Score: 0.8, UpdatedAt: older},
		{ID: "comment:a", EntityType: entity.Comment, Score: 0.8, UpdatedAt: older},
		{ID: "card:a", EntityType: entity.Card, Score: 0.8, UpdatedAt: older},
		{ID: "board:b", EntityType: entity.Board, Score: 0.8},
		{ID: "card:new", EntityType: entity.Card, Score: 0.8, UpdatedAt: newer},
		{ID: "attachment:x", EntityType: entity.Attachment, Score: 0.95},
		{ID: "checklist:f", EntityType: entity.Checklist, Score: 0.1, UpdatedAt: newer},
	}
	Sort(items)

	want := []string{
		"attachment:x",
		"card:new",
		"card:a",
		"card:z",
		"comment:a",
		"board:b",
		"checklist:f",
	}
	if got := ids(items); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v\nwant    %v", got, want)
	}
}

func TestSort_ScoresNonIncreasing(t *testing.T) {
	items := []Item{
		{ID: "card:1", EntityType: entity.Card, Score: 0.2},
		{ID: "card:2", EntityType: entity.Card, Score: 0.9},
		{ID: "card:3", EntityType: entity.Card, Score: 0.75},
		{ID: "card:4", EntityType: entity.Card, Score: 0.25},
	}
	Sort(items)
	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Fatalf("scores not monotonic at %d: %v", i, ids(items))
		}
	}
}

func TestPage(t *testing.T) {
	items := make([]Item, 5)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i))}
	}

	tests := []struct {
		name          string
		offset, limit int
		wantIDs       []string
		wantNext      int
	}{
		{"first page", 0, 2, []string{"a", "b"}, 2},
		{"middle page", 2, 2, []string{"c", "d"}, 4},
		{"last partial", 4, 2, []string{"e"}, 0},
		{"exact end", 3, 2, []string{"d", "e"}, 0},
		{"past end", 9, 2, []string{}, 0},
		{"negative offset", -1, 1, []string{"a"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, next := Page(items, tt.offset, tt.limit)
			if got := ids(page); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("page = %v, want %v", got, tt.wantIDs)
			}
			if next != tt.wantNext {
				t.Errorf("next = %d, want %d", next, tt.wantNext)
			}
		})
	}
}

func TestPage_ConsecutivePagesCoverPrefix(t *testing.T) {
	items := make([]Item, 7)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i))}
	}
	first, next := Page(items, 0, 3)
	second, _ := Page(items, next, 3)
	union := append(append([]Item{}, first...), second...)
	if got := ids(union); !reflect.DeepEqual(got, ids(items[:6])) {
		t.Errorf("union = %v", got)
	}
}
