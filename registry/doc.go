/*
Package registry maps row origin tags to unmarshal functions.

Every item persisted to the wide-column store carries an Origin attribute.
When a partition scan returns a page of raw items, the store implementation
looks up the unmarshal function for each item's origin and produces the
matching FeedRow variant. The three built-in variants are registered by the
feedstore/ddb package at init time.
*/
package registry
