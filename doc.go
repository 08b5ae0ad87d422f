/*
Package firefish provides the partitioned feed-retrieval engine and its
supporting layers: a day-partitioned wide-column feed store, a short-TTL
keyed cache for per-viewer predicate sets, and the cross-partition scanner
with its composable filter chain.

Key Features:
  - Type-safe generic cache layer with populate-on-miss and TTL renewal
  - Owner-scoped membership caches (followings, mutes, blocks) with lazy sync
  - Bounded cross-partition scanning with deterministic (timestamp, id) cursors
  - Composable, per-request filter chains for visibility, mute and block rules
  - DynamoDB backend plus in-memory mocks for testing

Basic Usage:

	client, _ := ddb.NewClient(accessKey, secretKey, region)
	store := ddb.NewFeedStore(client, cfg.FeedTable)
	kv := ddb.NewKVStore(client, cfg.CacheTable)

	engine := feed.NewEngine(store, kv, src, feed.DefaultSettings(), logger)
	rows, err := engine.Timeline(ctx, feed.KindHome, viewerID, feed.PageParams{Limit: 20})

The storage backend is selected once at process start; the engine and filter
chain depend only on the feedstore interfaces.
*/
package firefish
