package middleware

import (
	"net/http"

	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// RequireMinLevel gates a route to roles at or above the given level. The
// role is read from the verified token, so a stale claim only lasts until
// the access token expires.
func RequireMinLevel(policies *policy.Store, minLevel int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			p := policies.Snapshot()
			level, ok := p.Hierarchy.LevelOf(Role(r.Context()))
			if !ok || level < minLevel {
				response.Forbidden(w, "Insufficient role level")
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ExecutiveOnly restricts a route to organization-wide roles.
func ExecutiveOnly(policies *policy.Store) func(http.Handler) http.Handler {
	return RequireMinLevel(policies, policy.OperationalCeiling+1)
}
