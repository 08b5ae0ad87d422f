/*
Package feed implements the partitioned feed-retrieval engine: it answers
"give me the next N items of a feed matching these visibility, mute and block
constraints" against a day-partitioned wide-column store.

The engine reconciles three conflicting constraints: the store only supports
efficient range scans within a single day partition, post-fetch filtering can
discard an unbounded fraction of fetched rows, and the caller wants a stable
page with correct cursor semantics and no duplicates.

Control flow for one request:

	tmpl   := scan template for the feed kind (partition-key shape)
	bounds := effective (until, since) window, decoding id-embedded timestamps
	fc     := filter context; predicate sets fan out from the cache layer
	rows   := cross-partition scan loop, filter chain applied per batch
	page   := rows sorted descending, truncated to the requested limit

The scan loop issues bounded scans against the current partition, advances the
(timestamp, id) cursor past the last fetched row, drops to the previous day's
partition when a batch comes back short, and stops once the requested count is
reached or maxPartitions partitions have been exhausted. A short page is a
legitimate "no more data within budget" signal, not an error.

The engine holds no per-request state; construct one per process with
NewEngine and call Timeline from any number of concurrent requests.
*/
package feed
