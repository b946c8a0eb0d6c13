package rbac

import (
	"net/http"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Middleware builds route guards from the permission table.
type Middleware struct{}

// RequireAny allows the request when the session's roles permit at least
// one of the given actions.
func (Middleware) RequireAny(actions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			for _, action := range actions {
				if Allowed(sess.Roles, action) {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.RespondError(w, shared.ErrForbidden)
		})
	}
}
