package domain

import (
	"context"
	"math"
	"time"
)

type Review struct {
	ID        string    `json:"_id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AverageRating is the arithmetic mean of all ratings, 0 for an empty set.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// StarCount renders an average as a filled-star count out of 5.
func StarCount(average float64) int {
	return int(math.Round(average))
}

// ReviewAPI is the remote backend surface for product reviews. Mutations
// require a bearer token.
type ReviewAPI interface {
	ListReviews(ctx context.Context, bookID string) ([]Review, error)
	AddReview(ctx context.Context, token, bookID string, rating int, comment string) (*Review, error)
	UpdateReview(ctx context.Context, token, reviewID string, rating int, comment string) (*Review, error)
	DeleteReview(ctx context.Context, token, reviewID string) error
}
