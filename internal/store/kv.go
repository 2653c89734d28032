package store

import "context"

// KV is the raw key/value backend behind the named collections. Values are
// opaque bytes; the collection layer owns the encoding.
type KV interface {
	// Get reports found=false for an absent key; err is reserved for
	// backend failures.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
