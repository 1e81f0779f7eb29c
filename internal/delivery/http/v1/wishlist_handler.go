package v1

import (
	"net/http"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"
)

// WishlistHandler renders and mutates the visitor's wishlist. Entries are
// full book snapshots, so move-to-cart needs no backend round trip.
type WishlistHandler struct {
	api domain.CatalogAPI
}

func NewWishlistHandler(api domain.CatalogAPI) *WishlistHandler {
	return &WishlistHandler{api: api}
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stores.Wishlist.Entries()})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	stores.Wishlist.Add(r.Context(), *book)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stores.Wishlist.Entries()})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("bookId")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	stores.Wishlist.Remove(r.Context(), bookID)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stores.Wishlist.Entries()})
}

func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	stores.Wishlist.Clear(r.Context())
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Wishlist cleared"})
}

// MoveToCart removes the entry and adds its snapshot to the cart as one
// composed operation.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("bookId")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	book, found := stores.Wishlist.Get(bookID)
	if !found {
		utils.WriteError(w, http.StatusNotFound, domain.ErrNotFound.Error())
		return
	}

	stores.Wishlist.Remove(r.Context(), bookID)
	stores.Cart.Add(r.Context(), book)

	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: cartView{
		Lines: stores.Cart.Lines(),
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	}})
}
