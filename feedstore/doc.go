/*
Package feedstore defines the storage interfaces for the feed-retrieval engine.

Two interfaces cross this boundary:

	type FeedStore interface {
	    Kind() string
	    ScanPartition(ctx context.Context, params storagemodels.ScanParams) ([]storagemodels.FeedRow, error)
	}

	type KVStore interface {
	    Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	    Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	    GetAll(ctx context.Context, namespace string) (map[string][]byte, error)
	    Renew(ctx context.Context, namespace string, keys []string, ttl time.Duration) error
	    Delete(ctx context.Context, namespace string, keys ...string) error
	}

Implementations:
  - ddb: DynamoDB implementation with single-table day partitions
  - mock: In-memory implementation for testing

The scanner and filter chain depend only on these interfaces; the concrete
backend is selected once at process start.
*/
package feedstore
