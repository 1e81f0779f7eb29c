package store

import (
	"context"
	"sync"
	"time"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/cache"

	"github.com/rs/zerolog"
)

const booksCacheKey = "catalog:books"

// CatalogStore holds the fetched book listing and the currently selected
// book. Mutations are confirm-then-apply: the collection changes only after
// the backend accepts the call; on rejection the prior state is retained and
// the error goes back to the caller.
type CatalogStore struct {
	emitter

	api      domain.CatalogAPI
	tokens   TokenSource
	cache    cache.CacheService
	cacheTTL time.Duration
	log      zerolog.Logger

	mu         sync.Mutex
	books      []domain.Book
	selected   *domain.Book
	selectedID string
	loading    bool
	errMsg     string
	fetchSeq   uint64
	selectSeq  uint64
}

func NewCatalogStore(api domain.CatalogAPI, tokens TokenSource, c cache.CacheService, cacheTTL time.Duration, log zerolog.Logger) *CatalogStore {
	return &CatalogStore{
		api:      api,
		tokens:   tokens,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log.With().Str("store", "catalog").Logger(),
	}
}

// FetchAll replaces the collection with the backend's current listing. A
// failure leaves the prior listing intact and records the error.
func (s *CatalogStore) FetchAll(ctx context.Context) ([]domain.Book, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(booksCacheKey); ok {
			if books, ok := cached.([]domain.Book); ok {
				// Copy out of the cache: each store owns its slice, and a
				// later in-place Update must never reach other stores.
				own := make([]domain.Book, len(books))
				copy(own, books)
				s.mu.Lock()
				s.books = own
				s.errMsg = ""
				s.mu.Unlock()
				s.notify()
				return own, nil
			}
		}
	}

	s.mu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	books, err := s.api.ListBooks(ctx)

	s.mu.Lock()
	if seq != s.fetchSeq {
		s.mu.Unlock()
		return books, err
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	s.books = books
	s.errMsg = ""
	s.mu.Unlock()

	if s.cache != nil {
		snapshot := make([]domain.Book, len(books))
		copy(snapshot, books)
		s.cache.Set(booksCacheKey, snapshot, s.cacheTTL)
	}
	s.notify()
	return books, nil
}

// FetchByID populates the selected-book slot. A response for a book that is
// no longer the current selection target is discarded, never applied.
func (s *CatalogStore) FetchByID(ctx context.Context, id string) (*domain.Book, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.selectedID = id
	s.selectSeq++
	seq := s.selectSeq
	s.mu.Unlock()

	book, err := s.api.GetBook(ctx, id)

	s.mu.Lock()
	if seq != s.selectSeq || s.selectedID != id {
		s.mu.Unlock()
		s.log.Debug().Str("book_id", id).Msg("discarding stale book fetch")
		return book, err
	}
	s.loading = false
	if err != nil {
		s.selected = nil
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	s.selected = book
	s.mu.Unlock()
	s.notify()
	return book, nil
}

func (s *CatalogStore) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.selectedID = ""
	s.mu.Unlock()
	s.notify()
}

// Add creates a book through the backend and, once confirmed, prepends it to
// the collection.
func (s *CatalogStore) Add(ctx context.Context, form domain.BookForm) (*domain.Book, error) {
	book, err := s.api.CreateBook(ctx, s.tokens.Token(), form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.books = append([]domain.Book{*book}, s.books...)
	s.mu.Unlock()

	s.invalidateListing()
	s.notify()
	return book, nil
}

// Update replaces the matching book in place by id once the backend
// confirms. Non-matching ids are untouched.
func (s *CatalogStore) Update(ctx context.Context, id string, form domain.BookForm) (*domain.Book, error) {
	book, err := s.api.UpdateBook(ctx, s.tokens.Token(), id, form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = *book
			break
		}
	}
	if s.selected != nil && s.selected.ID == book.ID {
		s.selected = book
	}
	s.mu.Unlock()

	s.invalidateListing()
	s.notify()
	return book, nil
}

// Delete removes the book with that id from the collection once confirmed.
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteBook(ctx, s.tokens.Token(), id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.books[:0]
	for _, b := range s.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.books = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()

	s.invalidateListing()
	s.notify()
	return nil
}

func (s *CatalogStore) invalidateListing() {
	if s.cache != nil {
		s.cache.Delete(booksCacheKey)
	}
}

func (s *CatalogStore) Books() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *CatalogStore) Selected() *domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	b := *s.selected
	return &b
}

func (s *CatalogStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CatalogStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
