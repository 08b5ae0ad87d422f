/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row ids embed their creation time: the first 8 characters are the
// millisecond offset from 2000-01-01T00:00:00Z in zero-padded base36,
// followed by a noise suffix. Lexicographic id order therefore agrees with
// creation order, which the (timestamp, id) cursor tie-break relies on.

const idTimeLength = 8

var idEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// TimeOfID decodes the creation timestamp embedded in a row id.
func TimeOfID(id string) (time.Time, error) {
	if len(id) < idTimeLength {
		return time.Time{}, fmt.Errorf("id %q too short to carry a timestamp", id)
	}
	ms, err := strconv.ParseInt(id[:idTimeLength], 36, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("id %q has a malformed time component: %w", id, err)
	}
	return idEpoch.Add(time.Duration(ms) * time.Millisecond), nil
}

// NewID builds a row id for the given creation time and noise suffix.
func NewID(t time.Time, noise string) string {
	ms := t.Sub(idEpoch).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	encoded := strconv.FormatInt(ms, 36)
	if len(encoded) < idTimeLength {
		encoded = strings.Repeat("0", idTimeLength-len(encoded)) + encoded
	}
	return encoded + noise
}
