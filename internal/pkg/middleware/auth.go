package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/router"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// Auth validates an HS256 bearer token signed with key and stores the
// subject and the "rol" claim in the request context.
func Auth(key any) router.Middleware {
	return func(next http.Handler) http.Handler {
		return authMiddleware(next, key)
	}
}

func authMiddleware(next http.Handler, key any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if rawToken == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			authError("failed to parse jwt", w, r, err)
			return
		}
		if !token.Valid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		uid, err := claims.GetSubject()
		if err != nil || uid == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		role, _ := claims["rol"].(string)

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose authenticated role is not one of roles.
// It must run after Auth.
func RequireRole(roles ...string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func authError(msg string, w http.ResponseWriter, r *http.Request, err error) {
	slog.Error(msg,
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
	)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
