// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/store"
)

// BearerAuth creates middleware that requires a valid bearer token. The
// token's subject is re-resolved against the users table on every request,
// so deleting an account revokes every token issued to it.
func BearerAuth(issuer *auth.TokenIssuer, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, errorWritten := validateBearer(w, r, issuer, queries)
			if errorWritten {
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateBearer parses the Authorization header, verifies the token and
// resolves the account it was issued to. The second return value indicates
// whether an error response was written.
func validateBearer(w http.ResponseWriter, r *http.Request, issuer *auth.TokenIssuer, queries *store.Queries) (store.User, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header", nil)
		return store.User{}, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>", nil)
		return store.User{}, true
	}

	userID, _, err := issuer.Verify(parts[1])
	if err != nil {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token", nil)
		return store.User{}, true
	}

	user, err := queries.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account deleted after the token was issued.
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token", nil)
		} else {
			slog.Error("failed to resolve token subject", "error", err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token", nil)
		}
		return store.User{}, true
	}

	return user, false
}

// GetUser retrieves the authenticated account from the request context.
// Returns nil outside of BearerAuth-protected routes.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}
