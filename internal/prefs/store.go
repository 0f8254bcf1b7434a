// Package prefs provides the flat string-keyed preference store backing the
// local event-manager data. Values are opaque byte blobs; callers serialize
// their own JSON. The store guarantees atomic single-key writes and nothing
// more.
package prefs

import "context"

// Store is a flat key-value preference map with an explicit lifecycle:
// opened once at process start and closed at shutdown.
//
// Get returns (nil, nil) when the key has never been set. Set overwrites
// unconditionally. Delete and Clear are idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
