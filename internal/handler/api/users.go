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

// ListUsers returns every administrator account.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		WriteInternalError(w, "Failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetUser returns one account by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", func(id int64) (store.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, toUserResponse(user), nil)
}

// CreateUserRequest is the account creation payload.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser adds an administrator account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		fieldErrors["username"] = "Username is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fieldErrors["email"] = "Email is required"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Failed to create user")
		return
	}

	now := time.Now().UTC()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// UNIQUE violations on username or email are client errors.
		if strings.Contains(err.Error(), "UNIQUE") {
			WriteValidationError(w, map[string]string{"username": "Username or email already taken"})
			return
		}
		slog.Error("failed to create user", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	slog.Info("user account created", "category", "user", "username", user.Username)
	WriteCreated(w, toUserResponse(user))
}

// UpdateUserRequest is the account update payload.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateUser rewrites an account's username and email.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		fieldErrors["username"] = "Username is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fieldErrors["email"] = "Email is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:        id,
		Username:  req.Username,
		Email:     req.Email,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
		} else if strings.Contains(err.Error(), "UNIQUE") {
			WriteValidationError(w, map[string]string{"username": "Username or email already taken"})
		} else {
			slog.Error("failed to update user", "error", err, "id", id)
			WriteInternalError(w, "Failed to update user")
		}
		return
	}

	WriteSuccess(w, toUserResponse(user), nil)
}

// DeleteUser removes an account. The account's outstanding tokens stop
// working immediately. An account cannot delete itself, and the last
// account cannot be deleted.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	current := middleware.GetUser(r)
	if current != nil && current.ID == id {
		WriteBadRequest(w, "You cannot delete your own account", nil)
		return
	}

	count, err := h.queries.CountUsers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to delete user")
		return
	}
	if count <= 1 {
		WriteBadRequest(w, "The last account cannot be deleted", nil)
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		slog.Error("failed to delete user", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete user")
		return
	}

	slog.Warn("user account deleted", "category", "user", "id", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
