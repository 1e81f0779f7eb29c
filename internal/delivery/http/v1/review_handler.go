package v1

import (
	"net/http"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"
)

// ReviewHandler drives the review store for the currently viewed book. The
// listing reveals reviews in fixed-size pages sliced client-side; the full
// collection is fetched in one call.
type ReviewHandler struct{}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{}
}

type reviewListView struct {
	Items         []domain.Review `json:"items"`
	Total         int             `json:"total"`
	AverageRating float64         `json:"averageRating"`
	Stars         int             `json:"stars"`
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("id")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	all, err := stores.Reviews.FetchForBook(r.Context(), bookID)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	average := stores.Reviews.Average()
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: reviewListView{
		Items:         stores.Reviews.Page(page),
		Total:         len(all),
		AverageRating: average,
		Stars:         domain.StarCount(average),
	}})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	bookID := r.PathValue("id")
	if bookID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Book ID required")
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := stores.Reviews.Add(r.Context(), bookID, req.Rating, req.Comment)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: review})
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	reviewID := r.PathValue("reviewId")
	if reviewID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Review ID required")
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := stores.Reviews.Update(r.Context(), reviewID, req.Rating, req.Comment)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: review})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	reviewID := r.PathValue("reviewId")
	if reviewID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Review ID required")
		return
	}

	if err := stores.Reviews.Delete(r.Context(), reviewID); err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Review deleted"})
}
