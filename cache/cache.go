/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/SchwabischesBauernbrot/firefish/feedstore"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// Cache is a generic short-TTL key/value cache over a shared keyed store.
// Values are JSON-serialized inside a storagemodels.CacheEnvelope. Store
// unavailability propagates to the caller; it is never treated as a miss.
type Cache[T any] struct {
	store feedstore.KVStore
	name  string
	ttl   time.Duration
	now   func() time.Time
}

// New constructs a Cache under the given namespace with the given TTL.
func New[T any](store feedstore.KVStore, name string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		store: store,
		name:  name,
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock replaces the cache clock. Intended for tests.
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.now = now
	return c
}

// Name returns the cache namespace.
func (c *Cache[T]) Name() string {
	return c.name
}

// TTL returns the configured entry lifetime.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[T]) encode(value T) ([]byte, error) {
	inner, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal cache value: %w", err)
	}
	envelope := storagemodels.CacheEnvelope{
		Value:    inner,
		StoredAt: strfmt.DateTime(c.now().UTC()),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal cache envelope: %w", err)
	}
	return raw, nil
}

func (c *Cache[T]) decode(raw []byte) (T, error) {
	var value T
	var envelope storagemodels.CacheEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return value, fmt.Errorf("unmarshal cache envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Value, &value); err != nil {
		return value, fmt.Errorf("unmarshal cache value: %w", err)
	}
	return value, nil
}

// Set serializes value and writes it with the configured TTL, overwriting any
// existing entry.
func (c *Cache[T]) Set(ctx context.Context, key string, value T) error {
	raw, err := c.encode(value)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.name, key, raw, c.ttl)
}

// Get returns the cached value, or ok=false when absent. When renew is true a
// successful read resets the entry TTL as a side effect.
func (c *Cache[T]) Get(ctx context.Context, key string, renew bool) (T, bool, error) {
	var zero T
	raw, ok, err := c.store.Get(ctx, c.name, key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	value, err := c.decode(raw)
	if err != nil {
		return zero, false, err
	}
	if renew {
		if err := c.store.Renew(ctx, c.name, []string{key}, c.ttl); err != nil {
			return zero, false, err
		}
	}
	return value, true, nil
}

// GetAll returns every live entry under the namespace as a key-value mapping.
// Bounded by namespace cardinality; meant for administrative and bulk reads,
// not hot paths. When renew is true the TTLs are reset in one bulk pipeline.
func (c *Cache[T]) GetAll(ctx context.Context, renew bool) (map[string]T, error) {
	raw, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(raw))
	keys := make([]string, 0, len(raw))
	for key, rawValue := range raw {
		value, err := c.decode(rawValue)
		if err != nil {
			return nil, err
		}
		out[key] = value
		keys = append(keys, key)
	}
	if renew && len(keys) > 0 {
		if err := c.store.Renew(ctx, c.name, keys, c.ttl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FetchOrPopulate returns the cached value for key, invoking producer on a
// miss and storing its result when present. A hit with a failing isValid
// check is treated as a miss. Concurrent misses for the same key may each
// invoke the producer; producers are expected to be idempotent reads, so this
// race is accepted rather than guarded.
func (c *Cache[T]) FetchOrPopulate(
	ctx context.Context,
	key string,
	producer func(ctx context.Context) (T, bool, error),
	renew bool,
	isValid func(T) bool,
) (T, bool, error) {
	var zero T
	value, ok, err := c.Get(ctx, key, renew)
	if err != nil {
		return zero, false, err
	}
	if ok && (isValid == nil || isValid(value)) {
		return value, true, nil
	}

	value, present, err := producer(ctx)
	if err != nil {
		return zero, false, err
	}
	if !present {
		return zero, false, nil
	}
	if err := c.Set(ctx, key, value); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// Delete removes entries; no-op on absent keys.
func (c *Cache[T]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.store.Delete(ctx, c.name, keys...)
}
