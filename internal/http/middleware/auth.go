package middleware

import (
	"net/http"

	"review-rotation-service/internal/http/api"

	"github.com/go-chi/render"
)

const apiKeyHeader = "X-Api-Key"

// Auth guards routes with static API keys: the admin key unlocks everything,
// the user key only the read endpoints.
type Auth struct {
	adminKey string
	userKey  string
}

func NewAuth(adminKey, userKey string) *Auth {
	return &Auth{
		adminKey: adminKey,
		userKey:  userKey,
	}
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(apiKeyHeader) != a.adminKey {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, api.Error(api.ErrCodeAdminAuth, "incorrect admin key"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key != a.userKey && key != a.adminKey {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, api.Error(api.ErrCodeUserAuth, "incorrect user key"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
