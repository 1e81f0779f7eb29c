package v1

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/visitor"
	"boighor-storefront/pkg/logger"
	"boighor-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

// AuthHandler drives the session store and owns the cookie mirror: on
// login/signup the token and serialized user are mirrored into cookies for
// the route guard, and the visitor's cart and wishlist are re-keyed to the
// user and restored from the user's persisted snapshots.
type AuthHandler struct {
	snapshots    domain.SnapshotStore
	cookieDomain string
	cookieSecure bool
	cookieMaxAge time.Duration
}

func NewAuthHandler(snapshots domain.SnapshotStore, cookieDomain string, cookieSecure bool, cookieMaxAge time.Duration) *AuthHandler {
	return &AuthHandler{
		snapshots:    snapshots,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
		cookieMaxAge: cookieMaxAge,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	var form domain.SignupForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := validate.Struct(form); err != nil {
		utils.WriteValidationErrors(w, validationFields(err))
		return
	}

	user, err := stores.Session.Signup(r.Context(), form)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}

	h.establishSession(r.Context(), w, stores, user)
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: stores.Session.Current()})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteValidationErrors(w, validationFields(err))
		return
	}

	user, err := stores.Session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, statusFor(err), err.Error())
		return
	}

	h.establishSession(r.Context(), w, stores, user)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stores.Session.Current()})
}

// establishSession mirrors the credential into cookies and swaps the cart
// and wishlist onto the user's persisted state. Snapshots saved under the
// user's keys win over whatever the anonymous visitor accumulated; absent
// snapshots mean the anonymous collections carry over and are re-keyed.
func (h *AuthHandler) establishSession(ctx context.Context, w http.ResponseWriter, stores *visitor.Stores, user *domain.User) {
	log := logger.WithContext(ctx)

	var savedCart []domain.CartLine
	cartErr := h.snapshots.Load(ctx, domain.SnapshotKey(domain.SnapshotCart, user.ID), &savedCart)
	var savedWishlist []domain.Book
	wishErr := h.snapshots.Load(ctx, domain.SnapshotKey(domain.SnapshotWishlist, user.ID), &savedWishlist)

	stores.Cart.SetOwner(ctx, user.ID)
	stores.Wishlist.SetOwner(ctx, user.ID)

	if cartErr == nil {
		stores.Cart.ReplaceAll(ctx, savedCart)
	} else if !errors.Is(cartErr, domain.ErrNotFound) {
		log.Warn().Err(cartErr).Msg("failed to restore cart snapshot")
	}
	if wishErr == nil {
		stores.Wishlist.ReplaceAll(ctx, savedWishlist)
	} else if !errors.Is(wishErr, domain.ErrNotFound) {
		log.Warn().Err(wishErr).Msg("failed to restore wishlist snapshot")
	}

	h.setSessionCookies(w, stores.Session.Token(), user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	// Saving under the user's keys happens before the credential goes away;
	// SetOwner persists the current collections under the user id.
	if user := stores.Session.User(); user != nil {
		stores.Cart.SetOwner(ctx, user.ID)
		stores.Wishlist.SetOwner(ctx, user.ID)
	}

	stores.Session.Logout(ctx)

	// Back to an anonymous session: empty collections under the visitor key.
	stores.Cart.SetOwner(ctx, stores.VisitorID)
	stores.Wishlist.SetOwner(ctx, stores.VisitorID)
	stores.Cart.Clear(ctx)
	stores.Wishlist.Clear(ctx)

	h.clearSessionCookies(w)
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Logged out"})
}

// Session reports the current session state for page hydration.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	stores, ok := storesFrom(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stores.Session.Current()})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, token string, user *domain.User) {
	maxAge := int(h.cookieMaxAge.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	serialized, err := json.Marshal(user)
	if err != nil {
		return
	}
	// Readable by the browser app, hence not HttpOnly. The route guard never
	// trusts it without the signed token.
	http.SetCookie(w, &http.Cookie{
		Name:     "user",
		Value:    url.QueryEscape(string(serialized)),
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{"token", "user"} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			Domain: h.cookieDomain,
			MaxAge: -1,
		})
	}
}
