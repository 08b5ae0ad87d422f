/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package firefish

import (
	"fmt"
	"sync"

	"github.com/SchwabischesBauernbrot/firefish/feedstore"
)

// Backends is a thread-safe registry of named feed-store backends. The
// process registers its available backends at start and selects exactly one;
// the engine never switches backends mid-flight.
type Backends struct {
	mu     sync.RWMutex
	stores map[string]feedstore.FeedStore
}

// NewBackends creates an empty backend registry.
func NewBackends() *Backends {
	return &Backends{
		stores: make(map[string]feedstore.FeedStore),
	}
}

// Register adds a backend under its kind name.
func (b *Backends) Register(store feedstore.FeedStore) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	kind := store.Kind()
	if _, exists := b.stores[kind]; exists {
		return fmt.Errorf("backend %q already registered", kind)
	}
	b.stores[kind] = store
	return nil
}

// Select returns the backend registered under kind.
func (b *Backends) Select(kind string) (feedstore.FeedStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	store, exists := b.stores[kind]
	if !exists {
		return nil, fmt.Errorf("backend %q not registered", kind)
	}
	return store, nil
}

// List returns the registered backend kinds.
func (b *Backends) List() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	kinds := make([]string, 0, len(b.stores))
	for kind := range b.stores {
		kinds = append(kinds, kind)
	}
	return kinds
}
