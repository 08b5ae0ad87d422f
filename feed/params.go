/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"time"
)

// PageParams is the request descriptor for one feed page.
type PageParams struct {
	// Limit is the requested page size, 1..100.
	Limit int

	// Scope is the scoping id required by some kinds: the user id for
	// byUser/notifications/reactions, the channel id for byChannel, the note
	// id for renotesOf, the list id for the list-aggregate kind.
	Scope string

	SinceID   string
	UntilID   string
	SinceDate *time.Time
	UntilDate *time.Time

	IncludeMyRenotes      bool
	IncludeRenotedMyNotes bool
	IncludeLocalRenotes   bool
	WithFiles             bool
	WithReplies           bool
}

// bounds is the resolved scan window: an exclusive upper (timestamp, id)
// cursor and an optional inclusive lower floor.
type bounds struct {
	until   time.Time
	untilID string
	since   *time.Time
}

// resolveBounds computes the effective scan window. An id-encoded timestamp
// and an explicit timestamp may both be present: the earlier wins for the
// upper bound, the later for the lower bound. The id tie-break only applies
// when the id's own timestamp is the effective upper bound.
func resolveBounds(p PageParams, now time.Time) bounds {
	b := bounds{until: now}

	if p.UntilID != "" {
		if t, err := TimeOfID(p.UntilID); err == nil {
			b.until = t
			b.untilID = p.UntilID
		}
	}
	if p.UntilDate != nil && p.UntilDate.Before(b.until) {
		b.until = *p.UntilDate
		b.untilID = ""
	}

	var since *time.Time
	if p.SinceID != "" {
		if t, err := TimeOfID(p.SinceID); err == nil {
			since = &t
		}
	}
	if p.SinceDate != nil && (since == nil || p.SinceDate.After(*since)) {
		since = p.SinceDate
	}
	b.since = since

	return b
}

// dayOf renders the calendar-day partition component for a timestamp.
func dayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// endOfPreviousDay jumps a cursor to 23:59:59.99 of the calendar day before
// t, the entry point of the next older partition.
func endOfPreviousDay(t time.Time) time.Time {
	u := t.UTC()
	prev := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return prev.Add(24*time.Hour - 10*time.Millisecond)
}
