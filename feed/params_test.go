/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"testing"
	"time"
)

func TestResolveBoundsDefaultsToNow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	b := resolveBounds(PageParams{Limit: 10}, now)
	if !b.until.Equal(now) {
		t.Errorf("Expected until=now, got %v", b.until)
	}
	if b.untilID != "" {
		t.Errorf("Expected no id tie-break, got %q", b.untilID)
	}
	if b.since != nil {
		t.Errorf("Expected no since floor, got %v", *b.since)
	}
}

func TestResolveBoundsUntilID(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cursorTime := now.Add(-time.Hour)
	untilID := NewID(cursorTime, "abcd")

	b := resolveBounds(PageParams{Limit: 10, UntilID: untilID}, now)
	if !b.until.Equal(cursorTime) {
		t.Errorf("Expected until from id timestamp, got %v", b.until)
	}
	if b.untilID != untilID {
		t.Errorf("Expected id tie-break %q, got %q", untilID, b.untilID)
	}
}

func TestResolveBoundsEarlierUpperWins(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	idTime := now.Add(-time.Hour)
	untilID := NewID(idTime, "abcd")

	t.Run("date earlier than id drops the tie-break", func(t *testing.T) {
		date := now.Add(-2 * time.Hour)
		b := resolveBounds(PageParams{Limit: 10, UntilID: untilID, UntilDate: &date}, now)
		if !b.until.Equal(date) {
			t.Errorf("Expected until=%v, got %v", date, b.until)
		}
		if b.untilID != "" {
			t.Errorf("Id tie-break must be dropped when the date wins, got %q", b.untilID)
		}
	})

	t.Run("id earlier than date keeps the tie-break", func(t *testing.T) {
		date := now.Add(-30 * time.Minute)
		b := resolveBounds(PageParams{Limit: 10, UntilID: untilID, UntilDate: &date}, now)
		if !b.until.Equal(idTime) {
			t.Errorf("Expected until=%v, got %v", idTime, b.until)
		}
		if b.untilID != untilID {
			t.Errorf("Expected id tie-break kept, got %q", b.untilID)
		}
	})
}

func TestResolveBoundsLaterLowerWins(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	idTime := now.Add(-3 * time.Hour)
	sinceID := NewID(idTime, "abcd")

	t.Run("date later than id", func(t *testing.T) {
		date := now.Add(-time.Hour)
		b := resolveBounds(PageParams{Limit: 10, SinceID: sinceID, SinceDate: &date}, now)
		if b.since == nil || !b.since.Equal(date) {
			t.Errorf("Expected since=%v, got %v", date, b.since)
		}
	})

	t.Run("id later than date", func(t *testing.T) {
		date := now.Add(-5 * time.Hour)
		b := resolveBounds(PageParams{Limit: 10, SinceID: sinceID, SinceDate: &date}, now)
		if b.since == nil || !b.since.Equal(idTime) {
			t.Errorf("Expected since=%v, got %v", idTime, b.since)
		}
	})
}

func TestResolveBoundsMalformedIDIgnored(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	b := resolveBounds(PageParams{Limit: 10, UntilID: "bad"}, now)
	if !b.until.Equal(now) || b.untilID != "" {
		t.Errorf("Malformed cursor id must fall back to now, got until=%v id=%q", b.until, b.untilID)
	}
}

func TestEndOfPreviousDay(t *testing.T) {
	in := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)
	want := time.Date(2026, 8, 27, 23, 59, 59, 990*int(time.Millisecond), time.UTC)

	got := endOfPreviousDay(in)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	t.Run("crosses month boundary", func(t *testing.T) {
		got := endOfPreviousDay(time.Date(2026, 9, 1, 0, 0, 5, 0, time.UTC))
		want := time.Date(2026, 8, 31, 23, 59, 59, 990*int(time.Millisecond), time.UTC)
		if !got.Equal(want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

func TestDayOf(t *testing.T) {
	got := dayOf(time.Date(2026, 8, 28, 1, 30, 0, 0, time.FixedZone("JST", 9*3600)))
	if got != "2026-08-27" {
		t.Errorf("Day partitions are UTC, got %q", got)
	}
}
