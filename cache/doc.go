/*
Package cache provides the short-TTL cache layer in front of the source of
truth: a generic keyed Cache[T] with populate-on-miss, and a MembershipCache
specialization holding an owner-scoped set of entity identifiers (followings,
mutes, blocks) with lazy sync and incremental edits.

Cache[T] is parameterized over its value type and holds a KVStore handle
rather than subclassing one; concrete membership caches are built from
MembershipConfig values (name, TTL, producer) rather than per-predicate types.

Basic Usage:

	followings := cache.NewMembership(kv, cache.MembershipConfig{
	    Name:     "followings",
	    TTL:      30 * time.Minute,
	    FreshTTL: 5 * time.Minute,
	    Producer: src.FollowingsOf,
	}, viewerID)

	if err := followings.Sync(ctx); err != nil {
	    return err
	}
	ok, err := followings.Contains(ctx, authorID)

Concurrent misses for one key may each invoke the producer; producers are
idempotent reads of durable data, so the race is accepted rather than guarded
with a single-flight map.
*/
package cache
