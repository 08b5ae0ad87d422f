/*
Package ddb implements the feedstore interfaces on DynamoDB.

The feed table follows single-table design with day partitioning: PK is the
rendered scope plus calendar day ("NOTE#2026-08-28"), SK is the composite
"<timestamp>#<id>" with a fixed-width millisecond timestamp, so a partition
scan is a single Query with a sort-key bound, descending order and a limit.
Items carry an Origin attribute selecting the FeedRow variant through the
row registry.

The cache table holds (namespace, key) entries with a binary Value and an
ExpireAt attribute registered as the table TTL. DynamoDB expires lazily, so
reads re-check ExpireAt.
*/
package ddb
