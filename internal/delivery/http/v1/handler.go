// Package v1 is the storefront's HTTP surface. Handlers translate browser
// requests into store intents and render store state as JSON; business rules
// live in the stores and the remote backend, not here.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"boighor-storefront/internal/backend"
	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/visitor"
	"boighor-storefront/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// storesFrom pulls the visitor's store set attached by the session
// middleware. A missing set means the middleware chain is miswired.
func storesFrom(w http.ResponseWriter, r *http.Request) (*visitor.Stores, bool) {
	stores, ok := visitor.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "no visitor session")
		return nil, false
	}
	return stores, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// validationFields flattens validator errors into a field→message map for
// the 422 response body.
func validationFields(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return fields
}

// statusFor maps store and backend errors to HTTP statuses. Backend errors
// relay the upstream status; transport failures surface as 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotReviewOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateReview), errors.Is(err, domain.ErrAuthSuperseded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrQuantityTooLow),
		errors.Is(err, domain.ErrRatingRequired),
		errors.Is(err, domain.ErrCommentRequired):
		return http.StatusUnprocessableEntity
	}
	return backend.StatusOf(err)
}

// requirePrivileged checks the session role for catalog and slider
// mutations. The backend re-checks on its side; this is the early exit.
func requirePrivileged(w http.ResponseWriter, stores *visitor.Stores) bool {
	user := stores.Session.User()
	if user == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if !domain.IsPrivileged(user.Role) {
		utils.WriteError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		return false
	}
	return true
}
