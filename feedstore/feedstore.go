/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feedstore

import (
	"context"
	"time"

	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// FeedStore is the wide-column backend behind the scanner. Implementations
// must return rows in descending (creation time, id) order, honor the bounds
// and limit in ScanParams, and never return rows outside the named partition.
type FeedStore interface {
	// Kind identifies the backend, e.g. "dynamodb" or "mock".
	Kind() string

	// ScanPartition issues one bounded range scan against a single day
	// partition.
	ScanPartition(ctx context.Context, params storagemodels.ScanParams) ([]storagemodels.FeedRow, error)
}

// KVStore is the shared keyed store backing the cache layer. Entries live
// under a (namespace, key) pair with an absolute expiry; a Set resets the TTL
// and is a single atomic store-level write.
type KVStore interface {
	// Get returns the entry value, or ok=false when absent or expired.
	// Store unavailability is an error, never a miss.
	Get(ctx context.Context, namespace, key string) (value []byte, ok bool, err error)

	// Set writes the entry with the given TTL, overwriting any existing one.
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error

	// GetAll returns every live entry under the namespace.
	GetAll(ctx context.Context, namespace string) (map[string][]byte, error)

	// Renew resets the TTL on the given keys in one pipeline; absent keys are
	// skipped.
	Renew(ctx context.Context, namespace string, keys []string, ttl time.Duration) error

	// Delete removes entries; no-op on absent keys.
	Delete(ctx context.Context, namespace string, keys ...string) error
}
