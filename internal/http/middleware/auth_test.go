package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func authProbe(t *testing.T, mw func(http.Handler) http.Handler, key string) int {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if key != "" {
		req.Header.Set("X-Api-Key", key)
	}
	rec := httptest.NewRecorder()

	mw(next).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireAdmin(t *testing.T) {
	auth := NewAuth("admin-key", "user-key")

	require.Equal(t, http.StatusNoContent, authProbe(t, auth.RequireAdmin, "admin-key"))
	require.Equal(t, http.StatusUnauthorized, authProbe(t, auth.RequireAdmin, "user-key"))
	require.Equal(t, http.StatusUnauthorized, authProbe(t, auth.RequireAdmin, "wrong"))
	require.Equal(t, http.StatusUnauthorized, authProbe(t, auth.RequireAdmin, ""))
}

func TestRequireUser(t *testing.T) {
	auth := NewAuth("admin-key", "user-key")

	require.Equal(t, http.StatusNoContent, authProbe(t, auth.RequireUser, "user-key"))
	require.Equal(t, http.StatusNoContent, authProbe(t, auth.RequireUser, "admin-key"))
	require.Equal(t, http.StatusUnauthorized, authProbe(t, auth.RequireUser, "wrong"))
	require.Equal(t, http.StatusUnauthorized, authProbe(t, auth.RequireUser, ""))
}
