package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"boighor-storefront/internal/domain"
	"boighor-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

// Role-protected route prefixes.
var guardedPrefixes = map[string]string{
	"/admin":  domain.RoleAdmin,
	"/seller": domain.RoleSeller,
}

// RouteGuard protects the admin and seller areas. It requires both the
// `token` and `user` cookies, verifies the token signature and expiry, and
// checks that the token's role matches the prefix. The user cookie alone is
// never trusted; the signed claims are the authority. Anyone failing the
// check is sent back to the storefront home.
func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		required := requiredRole(r.URL.Path)
		if required == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenCookie, err := r.Cookie("token")
		if err != nil || tokenCookie.Value == "" {
			redirectHome(w, r)
			return
		}
		userCookie, err := r.Cookie("user")
		if err != nil || userCookie.Value == "" {
			redirectHome(w, r)
			return
		}

		claims, err := utils.ValidateJWT(tokenCookie.Value)
		if err != nil {
			redirectHome(w, r)
			return
		}
		role, _ := claims["role"].(string)
		if role != required {
			redirectHome(w, r)
			return
		}

		// The user cookie carries URL-encoded JSON, the way browser clients
		// store serialized objects in cookies.
		decoded, err := url.QueryUnescape(userCookie.Value)
		if err != nil {
			redirectHome(w, r)
			return
		}
		var user domain.User
		if err := json.Unmarshal([]byte(decoded), &user); err != nil {
			redirectHome(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requiredRole(path string) string {
	for prefix, role := range guardedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return role
		}
	}
	return ""
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
