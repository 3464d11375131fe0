package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"event-judging/internal/auth"
	"event-judging/internal/models"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// AuthMiddleware validates JWT tokens
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the bearer token and adds the actor to the context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
			}
			respondWithError(w, http.StatusUnauthorized, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), models.Actor{
			UserID: claims.UserID,
			Role:   claims.Role,
		})))
	})
}

// WithActor stores the authenticated actor in ctx
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID)
	return context.WithValue(ctx, RoleKey, actor.Role)
}

// GetUserID retrieves the user ID from the request context
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetRole retrieves the role from the request context
func GetRole(r *http.Request) (models.Role, bool) {
	role, ok := r.Context().Value(RoleKey).(models.Role)
	return role, ok
}

// GetActor returns the authenticated principal of the request
func GetActor(r *http.Request) (models.Actor, bool) {
	userID, ok := GetUserID(r)
	if !ok {
		return models.Actor{}, false
	}
	role, ok := GetRole(r)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, Role: role}, true
}
