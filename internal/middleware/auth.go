package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hector17rock/SeatServe/internal/staff"
)

type contextKey string

const (
	StaffIDKey   contextKey = "staffID"
	StaffRoleKey contextKey = "staffRole"
)

// AuthMiddleware attaches staff identity from a bearer token when present.
// Requests without a valid token still pass through; handlers decide what
// anonymous callers may do.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := staff.ParseToken(jwtSecret, tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), StaffIDKey, claims.StaffID)
			ctx = context.WithValue(ctx, StaffRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func StaffIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(StaffIDKey).(uint)
	return id, ok
}

func StaffRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(StaffRoleKey).(string)
	return role
}
