// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/showcase-go/internal/middleware"
	"github.com/olegiv/showcase-go/internal/model"
	"github.com/olegiv/showcase-go/internal/service"
	"github.com/olegiv/showcase-go/internal/store"
)

// GetContactInfo returns the contact details as one flat object. Keys that
// were never set come back as empty strings so the frontend always sees the
// full shape.
func (h *Handler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListContactInfo(r.Context())
	if err != nil {
		slog.Error("failed to list contact info", "error", err)
		WriteInternalError(w, "Failed to retrieve contact info")
		return
	}

	info := make(map[string]string, len(model.ContactInfoKeys))
	for _, key := range model.ContactInfoKeys {
		info[key] = ""
	}
	for _, e := range entries {
		info[e.Key] = e.Value
	}

	WriteSuccess(w, info, nil)
}

// UpdateContactInfo upserts the submitted contact-info fields. Only
// recognized keys are accepted; omitted keys keep their stored values.
func (h *Handler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req) == 0 {
		WriteValidationError(w, map[string]string{"body": "At least one contact field is required"})
		return
	}

	for key := range req {
		if !model.IsContactInfoKey(key) {
			WriteValidationError(w, map[string]string{key: "Unknown contact field"})
			return
		}
	}

	now := time.Now().UTC()
	for key, value := range req {
		if _, err := h.queries.UpsertContactInfo(r.Context(), key, value, now); err != nil {
			slog.Error("failed to upsert contact info", "error", err, "key", key)
			WriteInternalError(w, "Failed to save contact info")
			return
		}
	}

	h.GetContactInfo(w, r)
}

// ContactMessageRequest is the public contact-form payload.
type ContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContactMessage stores a contact-form submission. All text fields
// are stripped of HTML before they are persisted.
func (h *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	submission := model.ContactSubmission{
		Name:    service.SanitizeText(req.Name),
		Email:   service.SanitizeText(req.Email),
		Phone:   service.SanitizeText(req.Phone),
		Company: service.SanitizeText(req.Company),
		Subject: service.SanitizeText(req.Subject),
		Message: service.SanitizeText(req.Message),
	}
	if fieldErrors := submission.Validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	msg, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Company:   submission.Company,
		Subject:   submission.Subject,
		Message:   submission.Message,
		UserAgent: r.UserAgent(),
		IPAddress: middleware.ClientIP(r),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to store contact message", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	slog.Info("contact message received", "category", "content", "message_id", msg.ID)
	WriteCreated(w, map[string]any{"id": msg.ID, "status": "received"})
}

// ContactMessageResponse is the admin view of a submission. Client is a
// human-readable summary of the captured user agent.
type ContactMessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Client    string    `json:"client,omitempty"`
	IPAddress string    `json:"ip_address"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageResponse(m store.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Subject:   m.Subject,
		Message:   m.Message,
		Client:    summarizeUserAgent(m.UserAgent),
		IPAddress: m.IPAddress,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// summarizeUserAgent reduces a raw User-Agent header to "Browser x.y on OS".
func summarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.Parse(raw)
	if ua.Name == "" {
		return raw
	}
	summary := ua.Name
	if ua.Version != "" {
		summary += " " + ua.Version
	}
	if ua.OS != "" {
		summary += " on " + ua.OS
	}
	return summary
}

// ListContactMessages returns every submission, newest first.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContactMessages(r.Context())
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}

	unread, err := h.queries.CountUnreadMessages(r.Context())
	if err != nil {
		slog.Error("failed to count unread messages", "error", err)
		unread = 0
	}

	resp := make([]ContactMessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, toMessageResponse(m))
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"data": resp,
		"meta": map[string]int64{"total": int64(len(resp)), "unread": unread},
	})
}

// GetContactMessage returns one submission by id.
func (h *Handler) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := requireEntityByID(w, r, "message", func(id int64) (store.ContactMessage, error) {
		return h.queries.GetContactMessage(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, toMessageResponse(msg), nil)
}

// MarkMessageRead flags a submission as read.
func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	h.setMessageRead(w, r, true)
}

// MarkMessageUnread flags a submission as unread.
func (h *Handler) MarkMessageUnread(w http.ResponseWriter, r *http.Request) {
	h.setMessageRead(w, r, false)
}

func (h *Handler) setMessageRead(w http.ResponseWriter, r *http.Request, read bool) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID", nil)
		return
	}

	n, err := h.queries.SetContactMessageRead(r.Context(), id, read)
	if err != nil {
		slog.Error("failed to update message read flag", "error", err, "id", id)
		WriteInternalError(w, "Failed to update message")
		return
	}
	if n == 0 {
		WriteNotFound(w, "Message not found")
		return
	}

	WriteSuccess(w, map[string]any{"id": id, "is_read": read}, nil)
}

// DeleteContactMessage removes a submission. Deleting a missing id
// succeeds.
func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID", nil)
		return
	}

	if err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		slog.Error("failed to delete contact message", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete message")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
