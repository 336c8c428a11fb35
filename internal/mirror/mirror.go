// Package mirror holds the local fallback snapshots of entity collections.
// Each entity type owns one key ("<entity>-store") whose value is a
// JSON-encoded array; a missing key reads as an empty collection, never an
// error.
package mirror

import "context"

// Store is the durable keyed snapshot storage backing the offline mirror.
type Store interface {
	// Get returns the raw snapshot for key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
