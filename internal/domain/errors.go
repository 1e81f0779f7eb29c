package domain

import "errors"

var (
	// ErrNotFound is returned by snapshot loads and backend lookups for
	// missing keys/resources.
	ErrNotFound = errors.New("not found")

	// ErrQuantityTooLow rejects SetQuantity below 1. Removal must be an
	// explicit Remove, never a decrement to zero.
	ErrQuantityTooLow = errors.New("quantity must be at least 1")

	// ErrNotAuthenticated rejects actions that need a session before any
	// network call is made.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDuplicateReview is the client-side one-review-per-user guard. The
	// backend remains the authority.
	ErrDuplicateReview = errors.New("you have already reviewed this book")

	// ErrRatingRequired and ErrCommentRequired are pre-submit review
	// validation failures.
	ErrRatingRequired  = errors.New("rating must be between 1 and 5")
	ErrCommentRequired = errors.New("comment must not be empty")

	// ErrNotReviewOwner rejects edits/deletes of another user's review.
	ErrNotReviewOwner = errors.New("review belongs to another user")

	// ErrAuthSuperseded discards an auth resolution that lost the race
	// against a newer attempt or a logout. The result must not be applied
	// and callers must not treat it as a signed-in session.
	ErrAuthSuperseded = errors.New("authentication superseded")

	// ErrForbidden marks a role mismatch on a privileged action.
	ErrForbidden = errors.New("forbidden")
)
