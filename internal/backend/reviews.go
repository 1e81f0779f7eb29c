package backend

import (
	"bytes"
	"context"
	"net/http"

	"boighor-storefront/internal/domain"

	"github.com/goccy/go-json"
)

// ListReviews fetches the reviews of one book. The backend answers either
// with a bare list or with an {items, total, averageRating} envelope; both
// are normalized to a flat list here so nothing ambiguous crosses into the
// stores. Any unexpected shape decodes to an empty list.
func (c *Client) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/api/books/"+bookID+"/reviews", &raw); err != nil {
		return nil, err
	}
	return normalizeReviews(raw), nil
}

func normalizeReviews(raw json.RawMessage) []domain.Review {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []domain.Review{}
	}

	if trimmed[0] == '[' {
		var list []domain.Review
		if err := json.Unmarshal(trimmed, &list); err != nil || list == nil {
			return []domain.Review{}
		}
		return list
	}

	var envelope struct {
		Items []domain.Review `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Items == nil {
		return []domain.Review{}
	}
	return envelope.Items
}

type reviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (c *Client) AddReview(ctx context.Context, token, bookID string, rating int, comment string) (*domain.Review, error) {
	var review domain.Review
	payload := reviewPayload{Rating: rating, Comment: comment}
	if err := c.postJSON(ctx, "/api/books/"+bookID+"/reviews", token, payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) UpdateReview(ctx context.Context, token, reviewID string, rating int, comment string) (*domain.Review, error) {
	body, err := json.Marshal(reviewPayload{Rating: rating, Comment: comment})
	if err != nil {
		return nil, err
	}

	var review domain.Review
	if err := c.do(ctx, http.MethodPut, "/api/books/reviews/"+reviewID, token, body, "application/json", &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) DeleteReview(ctx context.Context, token, reviewID string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/reviews/"+reviewID, token, nil, "", nil)
}
