package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/persist"
	"boighor-storefront/internal/store"
	"boighor-storefront/internal/visitor"
)

// stubBackend fakes the remote bookstore API for handler tests.
type stubBackend struct {
	books       map[string]domain.Book
	reviews     []domain.Review
	authResult  *domain.AuthResult
	authErr     error
	loginGate   chan struct{} // when set, Login blocks until closed
	categories  []domain.Category
	sliders     []domain.Slider
	bookCalls   int
	reviewCalls int
}

func (s *stubBackend) Signup(ctx context.Context, form domain.SignupForm) (*domain.AuthResult, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.authResult, nil
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if s.loginGate != nil {
		<-s.loginGate
	}
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.authResult, nil
}

func (s *stubBackend) ListBooks(ctx context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubBackend) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	s.bookCalls++
	b, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *stubBackend) CreateBook(ctx context.Context, token string, form domain.BookForm) (*domain.Book, error) {
	b := domain.Book{ID: "new-book", Title: form.Title, AuthorName: form.AuthorName, Price: form.Price, Discount: form.Discount}
	s.books[b.ID] = b
	return &b, nil
}

func (s *stubBackend) UpdateBook(ctx context.Context, token, id string, form domain.BookForm) (*domain.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Title = form.Title
	s.books[id] = b
	return &b, nil
}

func (s *stubBackend) DeleteBook(ctx context.Context, token, id string) error {
	delete(s.books, id)
	return nil
}

func (s *stubBackend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubBackend) CreateCategory(ctx context.Context, token, name string) (*domain.Category, error) {
	c := domain.Category{ID: "new-category", Name: name}
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s *stubBackend) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	s.reviewCalls++
	return s.reviews, nil
}

func (s *stubBackend) AddReview(ctx context.Context, token, bookID string, rating int, comment string) (*domain.Review, error) {
	r := domain.Review{ID: "new-review", BookID: bookID, UserID: "u-1", Rating: rating, Comment: comment}
	return &r, nil
}

func (s *stubBackend) UpdateReview(ctx context.Context, token, reviewID string, rating int, comment string) (*domain.Review, error) {
	return &domain.Review{ID: reviewID, UserID: "u-1", Rating: rating, Comment: comment}, nil
}

func (s *stubBackend) DeleteReview(ctx context.Context, token, reviewID string) error {
	return nil
}

func (s *stubBackend) ListSliders(ctx context.Context) ([]domain.Slider, error) {
	return s.sliders, nil
}

func (s *stubBackend) CreateSlider(ctx context.Context, token string, form domain.SliderForm) (*domain.Slider, error) {
	return &domain.Slider{ID: "new-slider"}, nil
}

func (s *stubBackend) UpdateSlider(ctx context.Context, token, id string, form domain.SliderForm) (*domain.Slider, error) {
	return &domain.Slider{ID: id}, nil
}

func (s *stubBackend) DeleteSlider(ctx context.Context, token, id string) error {
	return nil
}

// newTestStores builds a full store set against the stub backend and a
// memory snapshot store, isolated per test.
func newTestStores(api *stubBackend, snapshots domain.SnapshotStore, visitorID string) *visitor.Stores {
	log := zerolog.Nop()
	session := store.NewSessionStore(api, snapshots, visitorID, log)
	return &visitor.Stores{
		VisitorID: visitorID,
		Session:   session,
		Catalog:   store.NewCatalogStore(api, session, nil, time.Minute, log),
		Cart:      store.NewCartStore(snapshots, visitorID, 1000, log),
		Wishlist:  store.NewWishlistStore(snapshots, visitorID, log),
		Reviews:   store.NewReviewStore(api, session, 3, log),
	}
}

func newStub() *stubBackend {
	return &stubBackend{books: map[string]domain.Book{}}
}

func newSnapshots() *persist.MemoryStore {
	return persist.NewMemoryStore()
}

// withStores attaches the visitor's store set to a request, the way the
// session middleware would.
func withStores(r *http.Request, stores *visitor.Stores) *http.Request {
	return r.WithContext(visitor.WithContext(r.Context(), stores))
}
