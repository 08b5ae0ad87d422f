/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// ScanParams defines one bounded range scan against a single day partition.
// The scanner issues a sequence of these, moving PartitionKey backwards one
// calendar day at a time.
type ScanParams struct {
	// PartitionKey is the fully rendered partition key, e.g. "NOTE#2026-08-28".
	PartitionKey string
	// Until is the upper creation-time bound. Rows after Until are always
	// excluded; rows at exactly Until are included unless UntilID trims them.
	Until time.Time
	// UntilID, when set, excludes rows at exactly Until whose id sorts at or
	// after it. This is the sub-second tie-break that makes pagination
	// deterministic when many rows share one timestamp.
	UntilID string
	// Since is the optional inclusive lower creation-time bound.
	Since *time.Time
	// Limit caps the rows returned by this single scan, independent of the
	// caller's page size.
	Limit int32
}

// CacheEnvelope is the serialized form of every keyed-cache value. StoredAt
// lets administrative reads see entry age without a second lookup.
type CacheEnvelope struct {
	Value    []byte          `json:"value"`
	StoredAt strfmt.DateTime `json:"storedAt"`
}

// MutePattern is one configured word-mute rule. Exactly one of Keywords or
// Regex is set: a literal pattern matches only when every keyword is a
// case-insensitive substring; Regex is the "/body/flags" encoded form.
type MutePattern struct {
	Keywords []string `json:"keywords,omitempty"`
	Regex    string   `json:"regex,omitempty"`
}
