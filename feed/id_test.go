/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"testing"
	"time"
)

func TestIDRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 28, 9, 30, 15, 250*int(time.Millisecond), time.UTC)

	id := NewID(created, "abc123")
	got, err := TimeOfID(id)
	if err != nil {
		t.Fatalf("TimeOfID failed: %v", err)
	}
	if !got.Equal(created) {
		t.Errorf("Expected %v, got %v", created, got)
	}
}

func TestIDOrderAgreesWithTime(t *testing.T) {
	earlier := NewID(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), "zzzz")
	later := NewID(time.Date(2026, 8, 28, 9, 0, 0, int(time.Millisecond), time.UTC), "aaaa")
	if !(earlier < later) {
		t.Errorf("Expected lexicographic order to follow time: %q vs %q", earlier, later)
	}
}

func TestIDEpochFloor(t *testing.T) {
	id := NewID(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), "x")
	got, err := TimeOfID(id)
	if err != nil {
		t.Fatalf("TimeOfID failed: %v", err)
	}
	if !got.Equal(idEpoch) {
		t.Errorf("Pre-epoch times clamp to the epoch, got %v", got)
	}
}

func TestTimeOfIDMalformed(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "abc"},
		{"non base36 prefix", "!!!!!!!!suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TimeOfID(tt.id); err == nil {
				t.Errorf("Expected error for id %q", tt.id)
			}
		})
	}
}
