package middleware

import (
	"context"
	"net/http"
	"strings"

	"kds-backend/internal/auth"
	"kds-backend/internal/services"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const NameKey contextKey = "name"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      services.UserStore
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users services.UserStore) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, users: users}
}

// Authenticate validates the bearer token and loads the user's current
// state. Active status comes from the database, not the token, so a
// suspended account loses access before its token expires.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.verify(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(m.withUser(r.Context(), claims)))
	})
}

// RequireRole ensures the user holds one of the allowed roles.
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := m.verify(w, r)
			if !ok {
				return
			}
			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r.WithContext(m.withUser(r.Context(), claims)))
					return
				}
			}
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireManager restricts a route to managers.
func (m *AuthMiddleware) RequireManager(next http.Handler) http.Handler {
	return m.RequireRole("manager")(next)
}

func (m *AuthMiddleware) verify(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return nil, false
	}

	user, err := m.users.Get(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return nil, false
	}
	if !user.IsActive {
		http.Error(w, "Account suspended", http.StatusForbidden)
		return nil, false
	}

	// Refresh claims from the database row so role changes apply now.
	claims.Name = user.Name
	claims.Role = user.Role
	return claims, true
}

func (m *AuthMiddleware) withUser(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, NameKey, claims.Name)
	return context.WithValue(ctx, RoleKey, claims.Role)
}

// GetUserIDFromContext extracts the acting user's id from request context.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetRoleFromContext extracts the acting user's role from request context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
