package store

import (
	"context"
	"strings"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/rs/zerolog"
)

// Identity supplies the current user and credential for review mutations.
type Identity interface {
	Token() string
	User() *domain.User
}

// ReviewStore holds the reviews of the currently viewed book, fetched fresh
// whenever the detail view mounts. Submission is validated locally before
// any network call; the backend stays the authority on acceptance.
type ReviewStore struct {
	emitter

	api      domain.ReviewAPI
	identity Identity
	pageSize int
	log      zerolog.Logger

	mu      sync.Mutex
	bookID  string
	items   []domain.Review
	loading bool
	errMsg  string
	seq     uint64
}

func NewReviewStore(api domain.ReviewAPI, identity Identity, pageSize int, log zerolog.Logger) *ReviewStore {
	if pageSize < 1 {
		pageSize = 3
	}
	return &ReviewStore{
		api:      api,
		identity: identity,
		pageSize: pageSize,
		log:      log.With().Str("store", "reviews").Logger(),
	}
}

// FetchForBook replaces the collection with the backend's reviews for that
// book. A response that arrives after the view moved to a different book is
// discarded.
func (s *ReviewStore) FetchForBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.bookID = bookID
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	reviews, err := s.api.ListReviews(ctx, bookID)

	s.mu.Lock()
	if seq != s.seq || s.bookID != bookID {
		s.mu.Unlock()
		s.log.Debug().Str("book_id", bookID).Msg("discarding stale review fetch")
		return reviews, err
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	s.items = reviews
	s.mu.Unlock()
	s.notify()
	return reviews, nil
}

// validate runs the pre-submit checks shared by Add and Update and returns
// the trimmed comment.
func (s *ReviewStore) validate(rating int, comment string) (string, *domain.User, error) {
	user := s.identity.User()
	if user == nil || s.identity.Token() == "" {
		return "", nil, domain.ErrNotAuthenticated
	}
	if rating < 1 || rating > 5 {
		return "", nil, domain.ErrRatingRequired
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", nil, domain.ErrCommentRequired
	}
	return comment, user, nil
}

// Add submits a new review and prepends the server-assigned result. The
// duplicate guard is client-side UX only; a backend rejection is surfaced
// unchanged.
func (s *ReviewStore) Add(ctx context.Context, bookID string, rating int, comment string) (*domain.Review, error) {
	comment, user, err := s.validate(rating, comment)
	if err != nil {
		return nil, err
	}

	// The collection belongs to the last-fetched book; for any other book
	// there is nothing local to guard against or to prepend into.
	s.mu.Lock()
	if bookID == s.bookID {
		for _, r := range s.items {
			if r.UserID == user.ID {
				s.mu.Unlock()
				return nil, domain.ErrDuplicateReview
			}
		}
	}
	s.mu.Unlock()

	review, err := s.api.AddReview(ctx, s.identity.Token(), bookID, rating, comment)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if bookID == s.bookID {
		s.items = append([]domain.Review{*review}, s.items...)
	}
	s.mu.Unlock()
	s.notify()
	return review, nil
}

// Update edits the caller's own review in place.
func (s *ReviewStore) Update(ctx context.Context, reviewID string, rating int, comment string) (*domain.Review, error) {
	comment, user, err := s.validate(rating, comment)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(reviewID, user); err != nil {
		return nil, err
	}

	review, err := s.api.UpdateReview(ctx, s.identity.Token(), reviewID, rating, comment)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == review.ID {
			s.items[i] = *review
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return review, nil
}

// Delete removes the caller's own review.
func (s *ReviewStore) Delete(ctx context.Context, reviewID string) error {
	user := s.identity.User()
	if user == nil || s.identity.Token() == "" {
		return domain.ErrNotAuthenticated
	}
	if err := s.requireOwner(reviewID, user); err != nil {
		return err
	}

	if err := s.api.DeleteReview(ctx, s.identity.Token(), reviewID); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, r := range s.items {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ReviewStore) requireOwner(reviewID string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == reviewID {
			if r.UserID != user.ID {
				return domain.ErrNotReviewOwner
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *ReviewStore) Items() []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Review, len(s.items))
	copy(out, s.items)
	return out
}

// Page returns the first n pages of the already-fetched collection. The view
// reveals reviews in fixed-size increments; no server-side paging exists.
func (s *ReviewStore) Page(n int) []domain.Review {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	limit := n * s.pageSize
	if limit > len(s.items) {
		limit = len(s.items)
	}
	out := make([]domain.Review, limit)
	copy(out, s.items[:limit])
	return out
}

// Average is the arithmetic mean of the current ratings, 0 when empty.
func (s *ReviewStore) Average() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.AverageRating(s.items)
}

func (s *ReviewStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ReviewStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
