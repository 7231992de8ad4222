package filter

import "time"

const day = 24 * time.Hour

// Card is what the predicate needs to know about one card. Assignees and
// Labels are nil when the matching facet is inactive and were not loaded.
type Card struct {
	DueAt     *time.Time
	Completed bool
	Assignees map[string]struct{}
	Labels    map[string]struct{}
}

// Clock pins "now" and the reference zone used for day boundaries.
type Clock struct {
	Now      time.Time
	Location *time.Location
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// BucketOf returns the due bucket for due, or "" when a due date falls later
// today and matches no bucket.
//
//	overdue          due < now
//	due-tomorrow     [start of tomorrow, start of day after)
//	due-next-7-days  [start of day after, now+7d]
//	due-next-30-days (now+7d, now+30d]
func (c Clock) BucketOf(due *time.Time) DueBucket {
	if due == nil {
		return DueNone
	}
	now := c.Now.In(c.loc())
	d := due.In(c.loc())

	startToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc())
	startTomorrow := startToday.AddDate(0, 0, 1)
	startDayAfter := startToday.AddDate(0, 0, 2)
	in7 := now.Add(7 * day)
	in30 := now.Add(30 * day)

	switch {
	case d.Before(now):
		return DueOverdue
	case !d.Before(startTomorrow) && d.Before(startDayAfter):
		return DueTomorrow
	case !d.Before(startDayAfter) && !d.After(in7):
		return DueNext7Days
	case d.After(in7) && !d.After(in30):
		return DueNext30Days
	}
	return ""
}

// Matches evaluates the active facets against card for viewerID.
// With no active facet every card passes.
func (f Facets) Matches(card Card, viewerID string, clock Clock) bool {
	if !f.Active() {
		return true
	}

	var results []bool
	if len(f.members) > 0 {
		results = append(results, matchSet(f.members, card.Assignees, MemberNone, viewerID))
	}
	if len(f.labels) > 0 {
		results = append(results, matchSet(f.labels, card.Labels, LabelNone, ""))
	}
	if len(f.due) > 0 {
		results = append(results, f.matchDue(card.DueAt, clock))
	}
	if len(f.status) > 0 {
		results = append(results, f.matchStatus(card.Completed))
	}

	if f.Match() == MatchAll {
		for _, ok := range results {
			if !ok {
				return false
			}
		}
		return true
	}
	for _, ok := range results {
		if ok {
			return true
		}
	}
	return false
}

// matchSet handles members and labels. An empty viewerID disables the "me" sentinel.
func matchSet(requested []string, have map[string]struct{}, none, viewerID string) bool {
	for _, r := range requested {
		switch {
		case r == none:
			if len(have) == 0 {
				return true
			}
		case viewerID != "" && r == MemberMe:
			if _, ok := have[viewerID]; ok {
				return true
			}
		default:
			if _, ok := have[r]; ok {
				return true
			}
		}
	}
	return false
}

func (f Facets) matchDue(due *time.Time, clock Clock) bool {
	bucket := clock.BucketOf(due)
	if bucket == "" {
		return false
	}
	for _, b := range f.due {
		if b == bucket {
			return true
		}
	}
	return false
}

func (f Facets) matchStatus(completed bool) bool {
	for _, s := range f.status {
		if s == StatusCompleted && completed {
			return true
		}
		if s == StatusNotCompleted && !completed {
			return true
		}
	}
	return false
}
