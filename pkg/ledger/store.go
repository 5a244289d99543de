package ledger

import "context"

// Write is one staged key/value pair inside an atomic batch.
type Write struct {
	Key   Key
	Value []byte
}

// Store is the persistence boundary of the marketplace. Values are opaque
// JSON blobs; the store knows nothing about the entities inside them.
//
// Apply commits a batch all-or-nothing: either every write in the batch is
// visible afterwards, or none is. ExtendLifetime renews the retention window
// of the whole keyspace; stores without expiry semantics treat it as a no-op.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte) error
	Apply(ctx context.Context, writes []Write) error
	ExtendLifetime(ctx context.Context, threshold, extendTo uint32) error
}
