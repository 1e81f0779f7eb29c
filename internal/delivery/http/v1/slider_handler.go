package v1

import (
	"net/http"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"
)

// SliderHandler is a thin relay for the homepage slider catalog. No local
// state; the listing is small and the admin UI mutates it rarely.
type SliderHandler struct {
	api domain.SliderAPI
}

func NewSliderHandler(api domain.SliderAPI) *SliderHandler {
	return &SliderHandler{api: api}
}

func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.api.ListSliders(r.Context())
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: sliders})
}

func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}

	form, ok := parseSliderForm(w, r, true)
	if !ok {
		return
	}

	slider, err := h.api.CreateSlider(r.Context(), stores.Session.Token(), form)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: slider})
}

func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slider ID required")
		return
	}

	form, ok := parseSliderForm(w, r, false)
	if !ok {
		return
	}

	slider, err := h.api.UpdateSlider(r.Context(), stores.Session.Token(), id, form)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: slider})
}

func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok || !requirePrivileged(w, stores) {
		return
	}
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slider ID required")
		return
	}

	if err := h.api.DeleteSlider(r.Context(), stores.Session.Token(), id); err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Slider deleted"})
}

func parseSliderForm(w http.ResponseWriter, r *http.Request, imageRequired bool) (domain.SliderForm, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return domain.SliderForm{}, false
	}

	var form domain.SliderForm
	if file, header, err := r.FormFile("image"); err == nil {
		form.Image = &domain.FileUpload{Name: header.Filename, Reader: file}
	} else if imageRequired {
		utils.WriteError(w, http.StatusBadRequest, "Slider image required")
		return domain.SliderForm{}, false
	}
	return form, true
}
