// Package cache stores rendered pages so repeated requests for the same
// records and window skip the sort and render steps.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis database, for several processes reading
//     the same record store
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer.PageKey] hashes the record
// set together with every option that changes the output, so a changed
// record or window never hits a stale entry. [ScopedKeyer] prefixes keys
// with a namespace when several stores share one cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live values.
const (
	// TTLPage bounds how long a rendered page is reused. Keys already change
	// with the records, so this only limits disk growth.
	TTLPage = 24 * time.Hour
)
