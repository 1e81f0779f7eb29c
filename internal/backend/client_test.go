package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boighor-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestListReviewsBareList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/b1/reviews", r.URL.Path)
		w.Write([]byte(`[{"_id":"r1","rating":5,"comment":"great"}]`))
	})

	reviews, err := c.ListReviews(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "r1", reviews[0].ID)
}

func TestListReviewsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"_id":"r1","rating":4},{"_id":"r2","rating":2}],"total":2,"averageRating":3}`))
	})

	reviews, err := c.ListReviews(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[1].ID)
}

func TestListReviewsUnexpectedShape(t *testing.T) {
	for _, body := range []string{`{"weird":true}`, `"nope"`, `42`, `null`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		reviews, err := c.ListReviews(context.Background(), "b1")
		require.NoError(t, err, "body %s", body)
		assert.Empty(t, reviews, "body %s", body)
		assert.NotNil(t, reviews, "body %s", body)
	}
}

func TestAddReviewSendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id":"r9","rating":5,"comment":"nice"}`))
	})

	review, err := c.AddReview(context.Background(), "tok-123", "b1", 5, "nice")
	require.NoError(t, err)
	assert.Equal(t, "r9", review.ID)
}

func TestCreateBookMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Pather Panchali", r.FormValue("title"))
		assert.Equal(t, "350", r.FormValue("price"))
		assert.Equal(t, "10", r.FormValue("discount"))

		file, header, err := r.FormFile("coverImage")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)

		w.Write([]byte(`{"_id":"b7","title":"Pather Panchali","price":350,"discount":10}`))
	})

	book, err := c.CreateBook(context.Background(), "tok", domain.BookForm{
		Title:      "Pather Panchali",
		AuthorName: "Bibhutibhushan",
		CategoryID: "c1",
		Price:      350,
		Discount:   10,
		Cover:      &domain.FileUpload{Name: "cover.jpg", Reader: strings.NewReader("jpegbytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "b7", book.ID)
}

func TestUpdateBookWithoutCoverSkipsFilePart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("coverImage")
		assert.Error(t, err)
		w.Write([]byte(`{"_id":"b7"}`))
	})

	_, err := c.UpdateBook(context.Background(), "tok", "b7", domain.BookForm{Title: "x", AuthorName: "y", CategoryID: "c1"})
	require.NoError(t, err)
}

func TestErrorCarriesUpstreamMessageAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	// StatusOf must see through wrapping added by callers.
	wrapped := fmt.Errorf("refreshing session: %w", err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))
}

func TestStatusOfTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.ListBooks(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}
