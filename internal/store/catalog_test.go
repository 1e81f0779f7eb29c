package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/infrastructure/cache"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogAPI struct {
	mu      sync.Mutex
	books   []domain.Book
	book    *domain.Book
	err     error
	blocked map[string]chan struct{} // GetBook blocks on the channel for that id
	created *domain.Book
	updated *domain.Book
}

func (s *stubCatalogAPI) ListBooks(ctx context.Context) ([]domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books, s.err
}

func (s *stubCatalogAPI) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	s.mu.Lock()
	gate := s.blocked[id]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Book{ID: id, Title: "Book " + id}, nil
}

func (s *stubCatalogAPI) CreateBook(ctx context.Context, token string, form domain.BookForm) (*domain.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubCatalogAPI) UpdateBook(ctx context.Context, token, id string, form domain.BookForm) (*domain.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.updated, nil
}

func (s *stubCatalogAPI) DeleteBook(ctx context.Context, token, id string) error {
	return s.err
}

func (s *stubCatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCatalogAPI) CreateCategory(ctx context.Context, token, name string) (*domain.Category, error) {
	return nil, nil
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newCatalogStore(api *stubCatalogAPI) *CatalogStore {
	return NewCatalogStore(api, staticToken("tok"), nil, 0, zerolog.Nop())
}

func TestCatalogFetchAllReplacesCollection(t *testing.T) {
	api := &stubCatalogAPI{books: []domain.Book{{ID: "b1"}, {ID: "b2"}}}
	catalog := newCatalogStore(api)

	books, err := catalog.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Len(t, catalog.Books(), 2)
	assert.False(t, catalog.Loading())
}

func TestCatalogFetchAllFailureRetainsPriorListing(t *testing.T) {
	api := &stubCatalogAPI{books: []domain.Book{{ID: "b1"}}}
	catalog := newCatalogStore(api)
	ctx := context.Background()

	_, err := catalog.FetchAll(ctx)
	require.NoError(t, err)

	api.mu.Lock()
	api.err = errors.New("backend down")
	api.mu.Unlock()

	_, err = catalog.FetchAll(ctx)
	require.Error(t, err)
	assert.Len(t, catalog.Books(), 1)
	assert.Equal(t, "backend down", catalog.Err())
}

func TestCatalogFetchByIDFailureClearsSelection(t *testing.T) {
	api := &stubCatalogAPI{err: errors.New("not found")}
	catalog := newCatalogStore(api)

	_, err := catalog.FetchByID(context.Background(), "b1")
	require.Error(t, err)
	assert.Nil(t, catalog.Selected())
	assert.NotEmpty(t, catalog.Err())
}

// Rapid navigation: the response for a book that is no longer the selection
// target must not overwrite the newer selection.
func TestCatalogStaleSelectionDiscarded(t *testing.T) {
	gate := make(chan struct{})
	api := &stubCatalogAPI{blocked: map[string]chan struct{}{"b1": gate}}
	catalog := newCatalogStore(api)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		catalog.FetchByID(ctx, "b1")
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)

	_, err := catalog.FetchByID(ctx, "b2")
	require.NoError(t, err)

	close(gate)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not resolve")
	}

	selected := catalog.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "b2", selected.ID)
}

func TestCatalogAddPrependsOnConfirm(t *testing.T) {
	api := &stubCatalogAPI{books: []domain.Book{{ID: "old"}}, created: &domain.Book{ID: "new"}}
	catalog := newCatalogStore(api)
	ctx := context.Background()
	catalog.FetchAll(ctx)

	book, err := catalog.Add(ctx, domain.BookForm{Title: "t", AuthorName: "a", CategoryID: "c"})
	require.NoError(t, err)
	assert.Equal(t, "new", book.ID)

	books := catalog.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "new", books[0].ID)
}

func TestCatalogAddRejectionLeavesCollection(t *testing.T) {
	api := &stubCatalogAPI{books: []domain.Book{{ID: "old"}}}
	catalog := newCatalogStore(api)
	ctx := context.Background()
	catalog.FetchAll(ctx)

	api.mu.Lock()
	api.err = errors.New("forbidden")
	api.mu.Unlock()

	_, err := catalog.Add(ctx, domain.BookForm{})
	require.Error(t, err)
	assert.Len(t, catalog.Books(), 1)
}

func TestCatalogUpdateReplacesInPlace(t *testing.T) {
	api := &stubCatalogAPI{
		books:   []domain.Book{{ID: "b1", Title: "Old"}, {ID: "b2"}},
		updated: &domain.Book{ID: "b1", Title: "New"},
	}
	catalog := newCatalogStore(api)
	ctx := context.Background()
	catalog.FetchAll(ctx)

	_, err := catalog.Update(ctx, "b1", domain.BookForm{})
	require.NoError(t, err)

	books := catalog.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "New", books[0].Title)
	assert.Equal(t, "b2", books[1].ID)
}

// Two visitors share the listing cache, never the backing array: one
// store's in-place edit must not leak into another store's collection.
func TestCatalogCachedListingIsCopiedPerStore(t *testing.T) {
	api := &stubCatalogAPI{
		books:   []domain.Book{{ID: "b1", Title: "Original"}},
		updated: &domain.Book{ID: "b1", Title: "Changed"},
	}
	shared := cache.NewMemoryCache(time.Minute, time.Minute)
	storeA := NewCatalogStore(api, staticToken("tok"), shared, time.Minute, zerolog.Nop())
	storeB := NewCatalogStore(api, staticToken("tok"), shared, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := storeA.FetchAll(ctx)
	require.NoError(t, err)
	_, err = storeB.FetchAll(ctx) // served from the cache
	require.NoError(t, err)

	_, err = storeA.Update(ctx, "b1", domain.BookForm{})
	require.NoError(t, err)

	assert.Equal(t, "Changed", storeA.Books()[0].Title)
	assert.Equal(t, "Original", storeB.Books()[0].Title)
}

func TestCatalogDeleteRemovesById(t *testing.T) {
	api := &stubCatalogAPI{books: []domain.Book{{ID: "b1"}, {ID: "b2"}}}
	catalog := newCatalogStore(api)
	ctx := context.Background()
	catalog.FetchAll(ctx)

	require.NoError(t, catalog.Delete(ctx, "b1"))

	books := catalog.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "b2", books[0].ID)
}
