package store

import (
	"context"
	"errors"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/rs/zerolog"
)

// WishlistStore holds the visitor's saved books, each a full snapshot, each
// present at most once. Same persistence policy as the cart: every mutation
// mirrors the whole collection durably in the same call.
type WishlistStore struct {
	emitter

	snapshots domain.SnapshotStore
	log       zerolog.Logger

	mu      sync.Mutex
	owner   string
	entries []domain.Book
}

func NewWishlistStore(snapshots domain.SnapshotStore, owner string, log zerolog.Logger) *WishlistStore {
	s := &WishlistStore{
		snapshots: snapshots,
		owner:     owner,
		log:       log.With().Str("store", "wishlist").Logger(),
	}
	s.hydrate()
	return s
}

func (s *WishlistStore) hydrate() {
	var saved []domain.Book
	err := s.snapshots.Load(context.Background(), s.key(), &saved)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("failed to hydrate wishlist")
		}
		return
	}
	s.entries = saved
}

func (s *WishlistStore) key() string {
	return domain.SnapshotKey(domain.SnapshotWishlist, s.owner)
}

// Add appends a book snapshot. Adding an already-present book is a no-op.
func (s *WishlistStore) Add(ctx context.Context, book domain.Book) {
	s.mu.Lock()
	for _, b := range s.entries {
		if b.ID == book.ID {
			s.mu.Unlock()
			return
		}
	}
	s.entries = append(s.entries, book)
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the matching entry. An absent id is a no-op.
func (s *WishlistStore) Remove(ctx context.Context, bookID string) {
	s.mu.Lock()
	kept := s.entries[:0]
	for _, b := range s.entries {
		if b.ID != bookID {
			kept = append(kept, b)
		}
	}
	s.entries = kept
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Get returns the saved snapshot for bookID, if present.
func (s *WishlistStore) Get(bookID string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.entries {
		if b.ID == bookID {
			return b, true
		}
	}
	return domain.Book{}, false
}

func (s *WishlistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// ReplaceAll bulk-sets the collection, used for session restore.
func (s *WishlistStore) ReplaceAll(ctx context.Context, entries []domain.Book) {
	s.mu.Lock()
	s.entries = make([]domain.Book, len(entries))
	copy(s.entries, entries)
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// SetOwner re-keys persistence, mirroring the SessionStore's login/logout
// hooks.
func (s *WishlistStore) SetOwner(ctx context.Context, owner string) {
	s.mu.Lock()
	s.owner = owner
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *WishlistStore) persistLocked(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.key(), s.entries); err != nil {
		s.log.Warn().Err(err).Str("key", s.key()).Msg("failed to persist wishlist")
	}
}

func (s *WishlistStore) Entries() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Book, len(s.entries))
	copy(out, s.entries)
	return out
}
