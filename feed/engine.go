/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SchwabischesBauernbrot/firefish/cache"
	"github.com/SchwabischesBauernbrot/firefish/errors"
	"github.com/SchwabischesBauernbrot/firefish/feedstore"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// PredicateSource materializes predicate sets from the source of truth. The
// engine only ever reads through the cache layer; these producers run on
// cache misses.
type PredicateSource interface {
	FollowingsOf(ctx context.Context, userID string) ([]string, error)
	ChannelFollowingsOf(ctx context.Context, userID string) ([]string, error)
	MutedUsersOf(ctx context.Context, userID string) ([]string, error)
	MutedInstancesOf(ctx context.Context, userID string) ([]string, error)
	MutePatternsOf(ctx context.Context, userID string) ([]storagemodels.MutePattern, error)
	// BlockersOf returns the users who block userID.
	BlockersOf(ctx context.Context, userID string) ([]string, error)
	// BlockeesOf returns the users userID blocks.
	BlockeesOf(ctx context.Context, userID string) ([]string, error)
	RenoteMutedOf(ctx context.Context, userID string) ([]string, error)
	ListMembersOf(ctx context.Context, listID string) ([]string, error)
}

// Settings are the engine's tunables.
type Settings struct {
	// MaxPartitions is the scan budget: the ceiling on day partitions one
	// request may traverse. Bounds worst-case latency for sparse feeds at the
	// cost of short pages.
	MaxPartitions int
	// FetchLimit is the fixed per-scan row limit, independent of the
	// requested page size.
	FetchLimit int32
	// PredicateTTL is the lifetime of cached predicate-set members.
	PredicateTTL time.Duration
	// FreshTTL is the lifetime of the freshness marker; when it expires the
	// set is re-derived from the source of truth.
	FreshTTL time.Duration
	// MutePatternTTL is the lifetime of cached word-mute patterns.
	MutePatternTTL time.Duration
}

// DefaultSettings returns the production defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxPartitions:  14,
		FetchLimit:     50,
		PredicateTTL:   60 * time.Minute,
		FreshTTL:       30 * time.Minute,
		MutePatternTTL: 30 * time.Minute,
	}
}

// Engine is the partitioned feed-retrieval engine. It is constructed once at
// process start and handed to each request; per-request state lives in the
// scan cursor and filter context, never on the engine.
type Engine struct {
	store    feedstore.FeedStore
	settings Settings
	logger   *slog.Logger
	now      func() time.Time

	followings       cache.MembershipConfig
	channelFollowing cache.MembershipConfig
	mutedUsers       cache.MembershipConfig
	mutedInstances   cache.MembershipConfig
	blockers         cache.MembershipConfig
	blockees         cache.MembershipConfig
	renoteMuted      cache.MembershipConfig
	listMembers      cache.MembershipConfig

	kv           feedstore.KVStore
	mutePatterns *cache.Cache[[]storagemodels.MutePattern]
	src          PredicateSource
}

// NewEngine wires the engine to its store, cache store and predicate source.
func NewEngine(store feedstore.FeedStore, kv feedstore.KVStore, src PredicateSource, settings Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:    store,
		kv:       kv,
		src:      src,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}

	membership := func(name string, producer cache.MembershipProducer) cache.MembershipConfig {
		return cache.MembershipConfig{
			Name:     name,
			TTL:      settings.PredicateTTL,
			FreshTTL: settings.FreshTTL,
			Producer: producer,
		}
	}
	e.followings = membership("followings", src.FollowingsOf)
	e.channelFollowing = membership("channelFollowings", src.ChannelFollowingsOf)
	e.mutedUsers = membership("mutedUsers", src.MutedUsersOf)
	e.mutedInstances = membership("mutedInstances", src.MutedInstancesOf)
	e.blockers = membership("blockers", src.BlockersOf)
	e.blockees = membership("blockees", src.BlockeesOf)
	e.renoteMuted = membership("renoteMuted", src.RenoteMutedOf)
	e.listMembers = membership("listMembers", src.ListMembersOf)

	e.mutePatterns = cache.New[[]storagemodels.MutePattern](kv, "mutePatterns", settings.MutePatternTTL)

	return e
}

// WithClock replaces the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Membership returns the cache handle for one predicate config and owner.
func (e *Engine) membership(cfg cache.MembershipConfig, ownerID string) *cache.MembershipCache {
	return cache.NewMembership(e.kv, cfg, ownerID)
}

// Timeline returns one filtered, time-descending feed page of at most
// params.Limit rows. A short page means the scan budget ran out before the
// page filled; it is not an error and not necessarily the end of the feed.
func (e *Engine) Timeline(ctx context.Context, kind Kind, viewer string, params PageParams) ([]storagemodels.FeedRow, error) {
	if params.Limit < 1 || params.Limit > 100 {
		return nil, errors.NewValidationError("limit", "must be between 1 and 100")
	}

	tmpl, err := templateFor(kind, params.Scope)
	if err != nil {
		return nil, err
	}

	targets, err := e.resolveTargets(ctx, tmpl, params.Scope)
	if err != nil {
		return nil, err
	}

	fc, err := e.buildFilterContext(ctx, viewer, params)
	if err != nil {
		return nil, err
	}
	chain := buildChain(tmpl, fc)

	b := resolveBounds(params, e.now())

	// Enrichment downstream may discard rows, so pursue 1.5x the page size
	// and truncate after filtering.
	targetCount := (params.Limit*3 + 1) / 2

	found, err := e.scan(ctx, tmpl, targets, b, chain, targetCount)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		ti, tj := found[i].CreatedAt(), found[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return found[i].ID() > found[j].ID()
	})
	if len(found) > params.Limit {
		found = found[:params.Limit]
	}
	return found, nil
}

// resolveTargets expands the scoping id into the per-target scan list. Only
// the list-aggregate kind fans out; every other kind scans a single scope.
func (e *Engine) resolveTargets(ctx context.Context, tmpl scanTemplate, scope string) ([]string, error) {
	if !tmpl.perTarget {
		return []string{scope}, nil
	}
	members := e.membership(e.listMembers, scope)
	if err := members.Sync(ctx); err != nil {
		return nil, errors.NewQueryError("list members", err)
	}
	ids, err := members.AllMembers(ctx)
	if err != nil {
		return nil, errors.NewQueryError("list members", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// buildFilterContext populates the predicate sets the filter chain consumes.
// Independent cache lookups fan out concurrently and join before filtering
// begins; the chain needs the complete predicate union. Anonymous viewers
// get empty sets without touching the cache.
func (e *Engine) buildFilterContext(ctx context.Context, viewer string, params PageParams) (*FilterContext, error) {
	fc := &FilterContext{
		Viewer:                viewer,
		Following:             map[string]struct{}{},
		ChannelFollowing:      map[string]struct{}{},
		MutedUsers:            map[string]struct{}{},
		MutedInstances:        map[string]struct{}{},
		Blocked:               map[string]struct{}{},
		RenoteMuted:           map[string]struct{}{},
		WithReplies:           params.WithReplies,
		IncludeMyRenotes:      params.IncludeMyRenotes,
		IncludeRenotedMyNotes: params.IncludeRenotedMyNotes,
		IncludeLocalRenotes:   params.IncludeLocalRenotes,
		WithFiles:             params.WithFiles,
		Logger:                e.logger,
	}
	if viewer == "" {
		return fc, nil
	}

	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	loadSet := func(cfg cache.MembershipConfig, into map[string]struct{}) {
		defer wg.Done()
		mc := e.membership(cfg, viewer)
		if err := mc.Sync(ctx); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = errors.NewQueryError(cfg.Name, err)
			}
			mu.Unlock()
			return
		}
		ids, err := mc.AllMembers(ctx)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = errors.NewQueryError(cfg.Name, err)
			}
			mu.Unlock()
			return
		}
		mu.Lock()
		for _, id := range ids {
			into[id] = struct{}{}
		}
		mu.Unlock()
	}

	wg.Add(7)
	go loadSet(e.followings, fc.Following)
	go loadSet(e.channelFollowing, fc.ChannelFollowing)
	go loadSet(e.mutedUsers, fc.MutedUsers)
	go loadSet(e.mutedInstances, fc.MutedInstances)
	go loadSet(e.blockers, fc.Blocked)
	go loadSet(e.blockees, fc.Blocked)
	go loadSet(e.renoteMuted, fc.RenoteMuted)

	wg.Add(1)
	go func() {
		defer wg.Done()
		patterns, _, err := e.mutePatterns.FetchOrPopulate(ctx, viewer, func(ctx context.Context) ([]storagemodels.MutePattern, bool, error) {
			p, err := e.src.MutePatternsOf(ctx, viewer)
			if err != nil {
				return nil, false, err
			}
			return p, true, nil
		}, false, nil)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = errors.NewQueryError("mutePatterns", err)
			}
			mu.Unlock()
			return
		}
		compiled := compileMutePatterns(patterns, e.logger)
		mu.Lock()
		fc.MutePatterns = compiled
		mu.Unlock()
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return fc, nil
}

// Mutation hooks keep the membership caches coherent with source-of-truth
// writes. The engine never re-derives a whole set on a single edit.

func (e *Engine) OnFollow(ctx context.Context, follower, followee string) error {
	return e.membership(e.followings, follower).Add(ctx, followee)
}

func (e *Engine) OnUnfollow(ctx context.Context, follower, followee string) error {
	return e.membership(e.followings, follower).Remove(ctx, followee)
}

func (e *Engine) OnChannelFollow(ctx context.Context, userID, channelID string) error {
	return e.membership(e.channelFollowing, userID).Add(ctx, channelID)
}

func (e *Engine) OnChannelUnfollow(ctx context.Context, userID, channelID string) error {
	return e.membership(e.channelFollowing, userID).Remove(ctx, channelID)
}

func (e *Engine) OnMute(ctx context.Context, muter, muted string) error {
	return e.membership(e.mutedUsers, muter).Add(ctx, muted)
}

func (e *Engine) OnUnmute(ctx context.Context, muter, muted string) error {
	return e.membership(e.mutedUsers, muter).Remove(ctx, muted)
}

// OnBlock records a block in both directions: blockee for the blocker's
// "blocks" set and blocker for the blockee's "blocked by" set.
func (e *Engine) OnBlock(ctx context.Context, blocker, blockee string) error {
	if err := e.membership(e.blockees, blocker).Add(ctx, blockee); err != nil {
		return err
	}
	return e.membership(e.blockers, blockee).Add(ctx, blocker)
}

func (e *Engine) OnUnblock(ctx context.Context, blocker, blockee string) error {
	if err := e.membership(e.blockees, blocker).Remove(ctx, blockee); err != nil {
		return err
	}
	return e.membership(e.blockers, blockee).Remove(ctx, blocker)
}

func (e *Engine) OnRenoteMute(ctx context.Context, muter, muted string) error {
	return e.membership(e.renoteMuted, muter).Add(ctx, muted)
}

func (e *Engine) OnRenoteUnmute(ctx context.Context, muter, muted string) error {
	return e.membership(e.renoteMuted, muter).Remove(ctx, muted)
}

// InvalidateMutePatterns drops the cached word-mute patterns after an edit.
func (e *Engine) InvalidateMutePatterns(ctx context.Context, userID string) error {
	return e.mutePatterns.Delete(ctx, userID)
}
