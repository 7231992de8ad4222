// Package filter holds the card facets a search can be narrowed by and the
// predicate that evaluates them.
package filter

import (
	"fmt"
	"strings"
)

// Member and label sentinels.
const (
	MemberMe   = "me"
	MemberNone = "none"
	LabelNone  = "none"
)

// MaxFacetValues caps each facet list.
const MaxFacetValues = 64

// MatchMode combines active facets.
type MatchMode string

// Match mode constants.
const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

// IsValid reports whether m is a supported combination mode.
func (m MatchMode) IsValid() bool { return m == MatchAny || m == MatchAll }

// DueBucket is a due-date window relative to now.
type DueBucket string

// Due bucket constants.
const (
	DueOverdue    DueBucket = "overdue"
	DueTomorrow   DueBucket = "due-tomorrow"
	DueNext7Days  DueBucket = "due-next-7-days"
	DueNext30Days DueBucket = "due-next-30-days"
	DueNone       DueBucket = "no-due-date"
)

// IsValid reports whether b is a known bucket.
func (b DueBucket) IsValid() bool {
	switch b {
	case DueOverdue, DueTomorrow, DueNext7Days, DueNext30Days, DueNone:
		return true
	}
	return false
}

// Status is a completion facet value.
type Status string

// Status constants.
const (
	StatusCompleted    Status = "completed"
	StatusNotCompleted Status = "not-completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool { return s == StatusCompleted || s == StatusNotCompleted }

// Facets is a validated set of card facets. The zero value has no active facet
// and combines in any mode.
type Facets struct {
	members []string
	labels  []string
	due     []DueBucket
	status  []Status
	match   MatchMode
}

// NewFacets validates and deduplicates facet values. Empty match defaults to any.
func NewFacets(members, labels, due, status []string, match MatchMode) (Facets, error) {
	if match == "" {
		match = MatchAny
	}
	if !match.IsValid() {
		return Facets{}, fmt.Errorf("invalid match mode: %q", match)
	}

	f := Facets{
		members: Dedupe(members),
		labels:  Dedupe(labels),
		match:   match,
	}
	if len(f.members) > MaxFacetValues || len(f.labels) > MaxFacetValues {
		return Facets{}, fmt.Errorf("too many facet values (max %d)", MaxFacetValues)
	}
	for _, d := range Dedupe(due) {
		b := DueBucket(d)
		if !b.IsValid() {
			return Facets{}, fmt.Errorf("invalid due bucket: %q", d)
		}
		f.due = append(f.due, b)
	}
	for _, s := range Dedupe(status) {
		st := Status(s)
		if !st.IsValid() {
			return Facets{}, fmt.Errorf("invalid status: %q", s)
		}
		f.status = append(f.status, st)
	}
	return f, nil
}

// Members returns requested assignee ids and sentinels.
func (f Facets) Members() []string { return f.members }

// Labels returns requested label ids and sentinels.
func (f Facets) Labels() []string { return f.labels }

// Due returns requested due buckets.
func (f Facets) Due() []DueBucket { return f.due }

// Status returns requested completion states.
func (f Facets) Status() []Status { return f.status }

// Match returns the combination mode.
func (f Facets) Match() MatchMode {
	if f.match == "" {
		return MatchAny
	}
	return f.match
}

// HasMembers reports whether the member facet is active.
func (f Facets) HasMembers() bool { return len(f.members) > 0 }

// HasLabels reports whether the label facet is active.
func (f Facets) HasLabels() bool { return len(f.labels) > 0 }

// Active reports whether any card facet is set. Boards are hidden when true.
func (f Facets) Active() bool {
	return len(f.members) > 0 || len(f.labels) > 0 || len(f.due) > 0 || len(f.status) > 0
}

// Dedupe trims values, drops empties and keeps first occurrences in order.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SplitList splits a comma-separated parameter and dedupes it.
func SplitList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return Dedupe(strings.Split(csv, ","))
}
