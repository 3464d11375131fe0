package middleware

import (
	"log/slog"
	"net/http"

	"event-judging/internal/models"
	"event-judging/internal/policy"
)

// RBACMiddleware handles role-based access control against the policy table
type RBACMiddleware struct {
	policy *policy.Table
}

// NewRBACMiddleware creates a new RBAC middleware
func NewRBACMiddleware(p *policy.Table) *RBACMiddleware {
	return &RBACMiddleware{policy: p}
}

// RequireOperation lets the request through when the actor's role may
// perform op on scopes of the given kind. ADMIN always passes.
func (m *RBACMiddleware) RequireOperation(op policy.Operation, kind models.ScopeKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			if !m.policy.Allows(op, kind, actor.Role) {
				slog.Warn("Operation denied", "operation", op, "scope", kind, "role", actor.Role, "user_id", actor.UserID)
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole checks if the user has any of the required roles.
// ADMIN always passes.
func (m *RBACMiddleware) RequireAnyRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := models.NewRoleSet(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			if role != models.RoleAdmin && !allowed.Contains(role) {
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
