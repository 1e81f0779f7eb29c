package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boighor-storefront/internal/domain"
)

func TestCartAddFetchesBookAndSnapshotsPrice(t *testing.T) {
	api := newStub()
	api.books["b-1"] = domain.Book{ID: "b-1", Title: "Gora", Price: 500, Discount: 20}
	stores := newTestStores(api, newSnapshots(), "v-1")
	h := NewCartHandler(api)

	r := withStores(httptest.NewRequest(http.MethodPost, "/api/v1/cart",
		strings.NewReader(`{"bookId":"b-1"}`)), stores)
	w := httptest.NewRecorder()
	h.Add(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, api.bookCalls)

	lines := stores.Cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(400), lines[0].Price)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCartAddUnknownBook(t *testing.T) {
	api := newStub()
	stores := newTestStores(api, newSnapshots(), "v-1")
	h := NewCartHandler(api)

	r := withStores(httptest.NewRequest(http.MethodPost, "/api/v1/cart",
		strings.NewReader(`{"bookId":"missing"}`)), stores)
	w := httptest.NewRecorder()
	h.Add(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, stores.Cart.Lines())
}

func TestCartSetQuantityBelowOneRejected(t *testing.T) {
	api := newStub()
	api.books["b-1"] = domain.Book{ID: "b-1", Title: "Gora", Price: 500}
	stores := newTestStores(api, newSnapshots(), "v-1")
	h := NewCartHandler(api)

	add := withStores(httptest.NewRequest(http.MethodPost, "/api/v1/cart",
		strings.NewReader(`{"bookId":"b-1"}`)), stores)
	h.Add(httptest.NewRecorder(), add)

	r := withStores(httptest.NewRequest(http.MethodPut, "/api/v1/cart/b-1",
		strings.NewReader(`{"quantity":0}`)), stores)
	r.SetPathValue("bookId", "b-1")
	w := httptest.NewRecorder()
	h.SetQuantity(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, stores.Cart.Lines(), 1)
	assert.Equal(t, 1, stores.Cart.Lines()[0].Quantity)
}

func TestCartSetQuantityRecomputesTotals(t *testing.T) {
	api := newStub()
	api.books["b-1"] = domain.Book{ID: "b-1", Title: "Gora", Price: 500, Discount: 20}
	stores := newTestStores(api, newSnapshots(), "v-1")
	h := NewCartHandler(api)

	add := withStores(httptest.NewRequest(http.MethodPost, "/api/v1/cart",
		strings.NewReader(`{"bookId":"b-1"}`)), stores)
	h.Add(httptest.NewRecorder(), add)

	r := withStores(httptest.NewRequest(http.MethodPut, "/api/v1/cart/b-1",
		strings.NewReader(`{"quantity":3}`)), stores)
	r.SetPathValue("bookId", "b-1")
	w := httptest.NewRecorder()
	h.SetQuantity(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, stores.Cart.Count())
	assert.Equal(t, int64(1200), stores.Cart.Total())
}

func TestCartClear(t *testing.T) {
	api := newStub()
	api.books["b-1"] = domain.Book{ID: "b-1", Title: "Gora", Price: 500}
	stores := newTestStores(api, newSnapshots(), "v-1")
	h := NewCartHandler(api)

	add := withStores(httptest.NewRequest(http.MethodPost, "/api/v1/cart",
		strings.NewReader(`{"bookId":"b-1"}`)), stores)
	h.Add(httptest.NewRecorder(), add)

	r := withStores(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), stores)
	w := httptest.NewRecorder()
	h.Clear(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, stores.Cart.Lines())
}
