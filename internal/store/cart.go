package store

import (
	"context"
	"errors"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/rs/zerolog"
)

// CartStore holds the visitor's cart lines. Mutations are synchronous and
// cannot fail; every applied change is mirrored to durable storage in the
// same call, the whole collection as one document.
type CartStore struct {
	emitter

	snapshots   domain.SnapshotStore
	maxQuantity int
	log         zerolog.Logger

	mu    sync.Mutex
	owner string
	lines []domain.CartLine
}

func NewCartStore(snapshots domain.SnapshotStore, owner string, maxQuantity int, log zerolog.Logger) *CartStore {
	s := &CartStore{
		snapshots:   snapshots,
		maxQuantity: maxQuantity,
		owner:       owner,
		log:         log.With().Str("store", "cart").Logger(),
	}
	s.hydrate()
	return s
}

func (s *CartStore) hydrate() {
	var saved []domain.CartLine
	err := s.snapshots.Load(context.Background(), s.key(), &saved)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("failed to hydrate cart")
		}
		return
	}
	s.lines = saved
}

func (s *CartStore) key() string {
	return domain.SnapshotKey(domain.SnapshotCart, s.owner)
}

// Add inserts a quantity-1 line snapshotting the book's current effective
// price, or increments the existing line for the same book. A line already
// at maxQuantity stays there; the increment is silently dropped.
func (s *CartStore) Add(ctx context.Context, book domain.Book) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].BookID == book.ID {
			if s.lines[i].Quantity < s.maxQuantity {
				s.lines[i].Quantity++
			}
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.NewCartLine(book))
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the line for bookID. An absent id is a no-op.
func (s *CartStore) Remove(ctx context.Context, bookID string) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.BookID != bookID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// SetQuantity sets a line's quantity directly. Values below 1 are rejected;
// removal must be an explicit Remove. Values above maxQuantity are clamped
// to it without error.
func (s *CartStore) SetQuantity(ctx context.Context, bookID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrQuantityTooLow
	}
	if quantity > s.maxQuantity {
		quantity = s.maxQuantity
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].BookID == bookID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// ReplaceAll bulk-sets the collection, used to restore a persisted snapshot
// on login.
func (s *CartStore) ReplaceAll(ctx context.Context, lines []domain.CartLine) {
	s.mu.Lock()
	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// SetOwner re-keys persistence (visitor id before login, user id after) and
// mirrors the current collection under the new key.
func (s *CartStore) SetOwner(ctx context.Context, owner string) {
	s.mu.Lock()
	s.owner = owner
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *CartStore) persistLocked(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.key(), s.lines); err != nil {
		s.log.Warn().Err(err).Str("key", s.key()).Msg("failed to persist cart")
	}
}

func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total item count, the sum of quantities.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, _ := domain.CartTotals(s.lines)
	return count
}

// Total is the cart price, the sum of snapshotted price times quantity.
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, total := domain.CartTotals(s.lines)
	return total
}
