package domain

import "context"

// Snapshot kinds. A snapshot key is always built through SnapshotKey so key
// construction lives in one place.
const (
	SnapshotCart     = "cart"
	SnapshotWishlist = "wishlist"
	SnapshotSession  = "session"
)

// SnapshotKey builds the durable-storage key for a kind scoped to an owner
// (a visitor id before login, a user id after).
func SnapshotKey(kind, owner string) string {
	return kind + ":" + owner
}

// SnapshotStore is the keyed durable storage behind the stores. A store's
// whole collection is serialized as one document per key, never partially.
type SnapshotStore interface {
	// Save serializes doc and writes it atomically under key.
	Save(ctx context.Context, key string, doc any) error

	// Load reads the document under key into out.
	// Returns ErrNotFound when the key has never been saved.
	Load(ctx context.Context, key string, out any) error

	// Delete removes the document under key. Missing keys are a no-op.
	Delete(ctx context.Context, key string) error
}
