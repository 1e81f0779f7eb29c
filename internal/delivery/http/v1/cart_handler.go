package v1

import (
	"net/http"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"
)

// CartHandler renders and mutates the visitor's cart. Adding a line fetches
// the book fresh so the snapshotted price reflects the current listing, not
// whatever the browser last saw.
type CartHandler struct {
	api domain.CatalogAPI
}

func NewCartHandler(api domain.CatalogAPI) *CartHandler {
	return &CartHandler{api: api}
}

type cartView struct {
	Lines []domain.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: cartView{
		Lines: stores.Cart.Lines(),
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	}})
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	var req struct {
		BookID string `json:"bookId" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteValidationErrors(w, validationFields(err))
		return
	}

	book, err := h.api.GetBook(r.Context(), req.BookID)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}

	stores.Cart.Add(r.Context(), *book)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: cartView{
		Lines: stores.Cart.Lines(),
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	}})
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("bookId")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := stores.Cart.SetQuantity(r.Context(), bookID, req.Quantity); err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: cartView{
		Lines: stores.Cart.Lines(),
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	}})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("bookId")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	stores.Cart.Remove(r.Context(), bookID)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: cartView{
		Lines: stores.Cart.Lines(),
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	}})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	stores.Cart.Clear(r.Context())
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Cart cleared"})
}
