package v1

import (
	"net/http"
	"strconv"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"
)

// CatalogHandler renders the catalog store and relays privileged book and
// category mutations. Cover uploads pass through untouched; image storage is
// the backend's concern.
type CatalogHandler struct {
	api domain.CatalogAPI
}

func NewCatalogHandler(api domain.CatalogAPI) *CatalogHandler {
	return &CatalogHandler{api: api}
}

func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	books, err := stores.Catalog.FetchAll(r.Context())
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: books})
}

func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	book, err := stores.Catalog.FetchByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: book})
}

func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}

	form, ok := parseBookForm(w, r)
	if !ok {
		return
	}

	book, err := stores.Catalog.Add(r.Context(), form)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: book})
}

func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	form, ok := parseBookForm(w, r)
	if !ok {
		return
	}

	book, err := stores.Catalog.Update(r.Context(), id, form)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: book})
}

func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	if err := stores.Catalog.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Book deleted"})
}

// parseBookForm reads the multipart book fields and the optional cover.
func parseBookForm(w http.ResponseWriter, r *http.Request) (domain.BookForm, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return domain.BookForm{}, false
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid price")
		return domain.BookForm{}, false
	}

	form := domain.BookForm{
		Title:       r.FormValue("title"),
		AuthorName:  r.FormValue("authorName"),
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("categoryId"),
		Price:       price,
		Discount:    utils.ParseInt(r.FormValue("discount"), 0),
	}

	if file, header, err := r.FormFile("coverImage"); err == nil {
		form.Cover = &domain.FileUpload{Name: header.Filename, Reader: file}
	}

	if err := validate.Struct(form); err != nil {
		utils.WriteValidationErrors(w, validationFields(err))
		return domain.BookForm{}, false
	}
	return form, true
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.ListCategories(r.Context())
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: categories})
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteValidationErrors(w, validationFields(err))
		return
	}

	category, err := h.api.CreateCategory(r.Context(), stores.Session.Token(), req.Name)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: category})
}
