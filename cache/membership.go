/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"context"
	"time"

	"github.com/SchwabischesBauernbrot/firefish/feedstore"
)

// MembershipProducer loads the full member list for one owner from the source
// of truth.
type MembershipProducer func(ctx context.Context, ownerID string) ([]string, error)

// MembershipConfig describes one predicate-set cache: name, member TTL, the
// shorter freshness-marker TTL, and the producer that materializes the set.
// Concrete caches (following, mute, block) are built from configs rather than
// subclasses. TTL must exceed FreshTTL: members are rewritten on every
// re-derivation, so as long as the marker is alive no member can have
// expired, and the set is never partial.
type MembershipConfig struct {
	Name     string
	TTL      time.Duration
	FreshTTL time.Duration
	Producer MembershipProducer
}

// MembershipCache holds an owner-scoped set of related entity identifiers,
// lazily synced from the source of truth. Construction is two-phase: build
// the handle, then call Sync before any read. Reading an unsynced cache
// returns a false "empty" that downstream filters would misread as "no
// followings".
type MembershipCache struct {
	members *Cache[bool]
	fresh   *Cache[bool]
	owner   string
	produce MembershipProducer
}

// NewMembership builds the cache handle for one (config, owner) pair. State
// lives entirely in the shared keyed store; handles are cheap and
// request-scoped.
func NewMembership(store feedstore.KVStore, cfg MembershipConfig, ownerID string) *MembershipCache {
	return &MembershipCache{
		members: New[bool](store, cfg.Name+":"+ownerID, cfg.TTL),
		fresh:   New[bool](store, cfg.Name+":fresh", cfg.FreshTTL),
		owner:   ownerID,
		produce: cfg.Producer,
	}
}

// Sync re-derives the member set from the source of truth whenever the
// freshness marker has expired, clearing members the source no longer lists
// and rewriting the rest with fresh TTLs. Collapses to a no-op while the
// marker is alive. Member liveness alone is not trusted: members carry
// individual TTLs, so after the marker lapses a set can be non-empty yet
// partial (an incremental Add outliving the originally synced members), and
// only a full re-derivation restores it.
func (m *MembershipCache) Sync(ctx context.Context) error {
	_, fresh, err := m.fresh.Get(ctx, m.owner, false)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	current, err := m.members.GetAll(ctx, false)
	if err != nil {
		return err
	}

	ids, err := m.produce(ctx, m.owner)
	if err != nil {
		return err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	stale := make([]string, 0)
	for id := range current {
		if _, ok := wanted[id]; !ok {
			stale = append(stale, id)
		}
	}
	if err := m.Remove(ctx, stale...); err != nil {
		return err
	}
	if err := m.Add(ctx, ids...); err != nil {
		return err
	}
	return m.fresh.Set(ctx, m.owner, true)
}

// Add inserts members; idempotent, no-op for empty input.
func (m *MembershipCache) Add(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := m.members.Set(ctx, id, true); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes members; idempotent, no-op for empty input.
func (m *MembershipCache) Remove(ctx context.Context, ids ...string) error {
	return m.members.Delete(ctx, ids...)
}

// Contains reports membership of a single id.
func (m *MembershipCache) Contains(ctx context.Context, id string) (bool, error) {
	_, ok, err := m.members.Get(ctx, id, false)
	return ok, err
}

// IsEmpty reports whether the set has no live members.
func (m *MembershipCache) IsEmpty(ctx context.Context) (bool, error) {
	members, err := m.members.GetAll(ctx, false)
	if err != nil {
		return false, err
	}
	return len(members) == 0, nil
}

// AllMembers returns every member id.
func (m *MembershipCache) AllMembers(ctx context.Context) ([]string, error) {
	members, err := m.members.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids, nil
}
