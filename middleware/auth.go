// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/models"
)

type claimsKey struct{}

// BearerToken reads the access token from the Authorization header, or from
// the token query parameter for requests such as <img src> that cannot set
// headers.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// RequireAuth rejects requests without a valid access token and stores the
// claims on the request context
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r)
			if raw == "" {
				ErrorCode(w, http.StatusUnauthorized, models.CodeUnauthorized, "Login required")
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "Token expired"
				}
				ErrorCode(w, http.StatusUnauthorized, models.CodeUnauthorized, msg)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireAuth
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				ErrorCode(w, http.StatusUnauthorized, models.CodeUnauthorized, "Login required")
				return
			}
			for _, role := range roles {
				if auth.Role(claims.Role) == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			ErrorCode(w, http.StatusForbidden, models.CodeForbidden, "Insufficient permissions")
		})
	}
}

// ClaimsFrom returns the claims stored by RequireAuth
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserID returns the authenticated user's ID, or 0 if there is none
func UserID(ctx context.Context) int64 {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return 0
	}
	id, err := claims.UserID()
	if err != nil {
		return 0
	}
	return id
}
