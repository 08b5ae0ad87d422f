/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"sync"
	"time"
)

type kvEntry struct {
	value    []byte
	expireAt time.Time
}

// KVStore is an in-memory implementation of feedstore.KVStore with an
// injectable clock so tests can simulate TTL expiry.
type KVStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]kvEntry
	now     func() time.Time
	getErr  error
	setErr  error
}

// NewKVStore creates a new mock KVStore.
func NewKVStore() *KVStore {
	return &KVStore{
		entries: make(map[string]map[string]kvEntry),
		now:     time.Now,
	}
}

// WithClock replaces the store clock.
func (m *KVStore) WithClock(now func() time.Time) *KVStore {
	m.now = now
	return m
}

// WithGetError makes Get and GetAll return the given error.
func (m *KVStore) WithGetError(err error) *KVStore {
	m.getErr = err
	return m
}

// WithSetError makes Set return the given error.
func (m *KVStore) WithSetError(err error) *KVStore {
	m.setErr = err
	return m
}

// Get returns the live entry value, or ok=false when absent or expired.
func (m *KVStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.entries[namespace][key]
	if !exists || !m.now().Before(entry.expireAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set writes the entry, resetting its TTL.
func (m *KVStore) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ns, exists := m.entries[namespace]
	if !exists {
		ns = make(map[string]kvEntry)
		m.entries[namespace] = ns
	}
	ns[key] = kvEntry{value: value, expireAt: m.now().Add(ttl)}
	return nil
}

// GetAll returns every live entry under the namespace.
func (m *KVStore) GetAll(ctx context.Context, namespace string) (map[string][]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte)
	for key, entry := range m.entries[namespace] {
		if m.now().Before(entry.expireAt) {
			out[key] = entry.value
		}
	}
	return out, nil
}

// Renew resets the TTL on the given keys; absent keys are skipped.
func (m *KVStore) Renew(ctx context.Context, namespace string, keys []string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns := m.entries[namespace]
	for _, key := range keys {
		if entry, exists := ns[key]; exists && m.now().Before(entry.expireAt) {
			entry.expireAt = m.now().Add(ttl)
			ns[key] = entry
		}
	}
	return nil
}

// Delete removes entries; no-op on absent keys.
func (m *KVStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns := m.entries[namespace]
	for _, key := range keys {
		delete(ns, key)
	}
	return nil
}
