// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/middleware"
	"github.com/olegiv/showcase-go/internal/store"
)

// UserResponse is the public shape of an administrator account. The
// password hash never leaves the store layer.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func toUserResponse(u store.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLoginAt = &t
	}
	return resp
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords get the same answer so the endpoint does not leak
// which accounts exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		fieldErrors["username"] = "Username is required"
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("failed login attempt", "username", req.Username)
			WriteUnauthorized(w, "Invalid username or password")
			return
		}
		WriteInternalError(w, "Login failed")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		slog.Warn("failed login attempt", "username", req.Username)
		WriteUnauthorized(w, "Invalid username or password")
		return
	}

	// Hashes created under older parameters are upgraded in place while
	// the plaintext is available. Login proceeds either way.
	if auth.NeedsRehash(user.PasswordHash) {
		hash, err := auth.HashPassword(req.Password)
		if err == nil {
			err = h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: hash,
				UpdatedAt:    time.Now().UTC(),
			})
		}
		if err != nil {
			slog.Error("failed to upgrade password hash", "error", err, "user_id", user.ID)
		}
	}

	token, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		WriteInternalError(w, "Login failed")
		return
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		slog.Error("failed to update last login", "error", err, "user_id", user.ID)
	}

	WriteSuccess(w, LoginResponse{
		Token:     token,
		ExpiresIn: int64(auth.TokenTTL.Seconds()),
		User:      toUserResponse(user),
	}, nil)
}

// Me returns the account behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, toUserResponse(*user), nil)
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword lets the authenticated account set a new password after
// proving it knows the current one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.CurrentPassword == "" {
		fieldErrors["current_password"] = "Current password is required"
	}
	if len(req.NewPassword) < 8 {
		fieldErrors["new_password"] = "New password must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ok, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !ok {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}

	err = h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		ID:           user.ID,
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}

	slog.Info("password changed", "category", "auth", "user_id", user.ID)
	WriteSuccess(w, map[string]string{"status": "password updated"}, nil)
}
