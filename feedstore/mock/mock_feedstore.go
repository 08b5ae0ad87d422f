/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the feedstore interfaces
// for testing
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// FeedStore is an in-memory implementation of feedstore.FeedStore. It keeps
// rows grouped by partition key and serves bounded scans with the same
// ordering and limit semantics as the DynamoDB backend.
type FeedStore struct {
	mu         sync.RWMutex
	partitions map[string][]storagemodels.FeedRow
	scanErr    error
	scanCount  int
}

// NewFeedStore creates a new mock FeedStore.
func NewFeedStore() *FeedStore {
	return &FeedStore{
		partitions: make(map[string][]storagemodels.FeedRow),
	}
}

// WithScanError makes every ScanPartition call return the given error.
func (m *FeedStore) WithScanError(err error) *FeedStore {
	m.scanErr = err
	return m
}

// AddRow inserts a row into the partition named by key.
func (m *FeedStore) AddRow(key string, row storagemodels.FeedRow) *FeedStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partitions[key] = append(m.partitions[key], row)
	return m
}

// ScanCount returns how many scans have been issued, across all partitions.
func (m *FeedStore) ScanCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scanCount
}

// Kind identifies the backend.
func (m *FeedStore) Kind() string {
	return "mock"
}

// sortKey renders the composite (timestamp, id) ordering key used by the
// DynamoDB backend, so both implementations page identically.
func sortKey(row storagemodels.FeedRow) string {
	return row.CreatedAt().UTC().Format("2006-01-02T15:04:05.000Z") + "#" + row.ID()
}

// ScanPartition returns rows from one partition in descending (timestamp, id)
// order, bounded by the params exactly as the DynamoDB backend bounds its
// sort key.
func (m *FeedStore) ScanPartition(ctx context.Context, params storagemodels.ScanParams) ([]storagemodels.FeedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.scanCount++
	rows := append([]storagemodels.FeedRow(nil), m.partitions[params.PartitionKey]...)
	m.mu.Unlock()

	if m.scanErr != nil {
		return nil, m.scanErr
	}

	upper := params.Until.UTC().Format("2006-01-02T15:04:05.000Z")
	if params.UntilID != "" {
		upper += "#" + params.UntilID
	} else {
		// No id cursor: include rows at exactly the upper timestamp.
		upper += "#~"
	}

	var lower string
	if params.Since != nil {
		lower = params.Since.UTC().Format("2006-01-02T15:04:05.000Z")
	}

	filtered := rows[:0]
	for _, row := range rows {
		key := sortKey(row)
		if key >= upper {
			continue
		}
		if lower != "" && strings.Compare(key, lower) < 0 {
			continue
		}
		filtered = append(filtered, row)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return sortKey(filtered[i]) > sortKey(filtered[j])
	})

	if params.Limit > 0 && int32(len(filtered)) > params.Limit {
		filtered = filtered[:params.Limit]
	}

	out := append([]storagemodels.FeedRow(nil), filtered...)
	return out, nil
}
