package middleware

import (
	"context"
	"net/http"
	"strings"

	"repo-stats-admin/internal/http/api"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
)

type key int

const RoleKey key = 1

const RoleAdmin = "admin"

// AdminAuth lets through requests carrying a Bearer token signed with secret whose role claim is admin.
func AdminAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			tokenString, _ = strings.CutPrefix(tokenString, "Bearer ")

			role, ok := validateToken(tokenString, secret)
			if !ok || role != RoleAdmin {
				unauthorized(w, r, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, api.Error(api.ErrCodeUnauthorized, msg))
}

func validateToken(tokenString, secret string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", false
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		roleVal, ok := claims["role"].(string)
		if !ok {
			return "", false
		}
		return roleVal, true
	}

	return "", false
}
