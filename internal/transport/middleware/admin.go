package middleware

import (
	"net/http"

	"github.com/topgearmoscow/miniapp-backend/pkg/ctxutil"
)

// RequireAdmin answers 401 for anonymous callers and 403 for non-admins.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsAdminCtx(r.Context()) {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
