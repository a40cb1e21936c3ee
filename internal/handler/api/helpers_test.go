package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/imagehost"
	"github.com/olegiv/showcase-go/internal/middleware"
	"github.com/olegiv/showcase-go/internal/model"
	"github.com/olegiv/showcase-go/internal/service"
	"github.com/olegiv/showcase-go/internal/store"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "correct-horse-battery"
)

// testEnv bundles everything the handler tests need.
type testEnv struct {
	db     *sql.DB
	router chi.Router
	token  string
	user   store.User
}

// newTestEnv creates a migrated temp database, an admin account, a bearer
// token for it, and a router with the full route table.
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithMedia(t, nil)
}

func newTestEnvWithMedia(t *testing.T, media *service.MediaService) *testEnv {
	t.Helper()

	f, err := os.CreateTemp("", "showcase-api-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	queries := store.New(db)
	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Username:     testAdminUsername,
		Email:        "admin@example.com",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	issuer := auth.NewTokenIssuer("test-secret-that-is-long-enough-000")
	token, err := issuer.Issue(user.ID, user.Username)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h := NewHandler(db, issuer, media)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/content", h.ListPublicSections)
		r.Get("/content/{key}", h.GetPublicSection)
		r.Get("/hero-slides", h.ListPublicHeroSlides)
		r.Get("/map-points", h.ListPublicMapPoints)
		r.Get("/contact-info", h.GetContactInfo)
		for _, kind := range model.Kinds {
			r.Get("/"+kind.Route, h.ListPublicItems(kind))
		}
		r.Post("/auth/login", h.Login)
		r.Post("/contact", h.SubmitContactMessage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(issuer, queries))

			r.Get("/auth/me", h.Me)
			r.Put("/auth/password", h.ChangePassword)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/content", h.ListAdminSections)
				r.Get("/content/{key}", h.GetAdminSection)
				r.Put("/content/{key}", h.UpsertSection)
				r.Delete("/content/{key}", h.DeleteSection)

				r.Get("/hero-slides", h.ListAdminHeroSlides)
				r.Post("/hero-slides", h.CreateHeroSlide)
				r.Post("/hero-slides/reorder", h.ReorderHeroSlides)
				r.Get("/hero-slides/{id}", h.GetHeroSlide)
				r.Put("/hero-slides/{id}", h.UpdateHeroSlide)
				r.Delete("/hero-slides/{id}", h.DeleteHeroSlide)

				for _, kind := range model.Kinds {
					r.Get("/"+kind.Route, h.ListAdminItems(kind))
					r.Post("/"+kind.Route, h.CreateItem(kind))
					r.Get("/"+kind.Route+"/{id}", h.GetItem(kind))
					r.Put("/"+kind.Route+"/{id}", h.UpdateItem(kind))
					r.Delete("/"+kind.Route+"/{id}", h.DeleteItem(kind))
				}

				r.Get("/map-points", h.ListAdminMapPoints)
				r.Post("/map-points", h.CreateMapPoint)
				r.Post("/map-points/fill-coordinates", h.FillMapPointCoordinates)
				r.Get("/map-points/{id}", h.GetMapPoint)
				r.Put("/map-points/{id}", h.UpdateMapPoint)
				r.Patch("/map-points/{id}/coordinates", h.UpdateMapPointCoordinates)
				r.Delete("/map-points/{id}", h.DeleteMapPoint)

				r.Put("/contact-info", h.UpdateContactInfo)

				r.Get("/messages", h.ListContactMessages)
				r.Get("/messages/{id}", h.GetContactMessage)
				r.Post("/messages/{id}/read", h.MarkMessageRead)
				r.Post("/messages/{id}/unread", h.MarkMessageUnread)
				r.Delete("/messages/{id}", h.DeleteContactMessage)

				r.Get("/users", h.ListUsers)
				r.Post("/users", h.CreateUser)
				r.Get("/users/{id}", h.GetUser)
				r.Put("/users/{id}", h.UpdateUser)
				r.Delete("/users/{id}", h.DeleteUser)

				r.Get("/events", h.ListAuditEvents)

				r.Post("/media", h.UploadMedia)
				r.Get("/media", h.ListMedia)
				r.Delete("/media", h.DeleteMedia)
			})
		})
	})

	return &testEnv{db: db, router: r, token: token, user: user}
}

// request performs an HTTP request against the test router. A non-nil body
// is JSON-encoded. authed adds the admin bearer token.
func (e *testEnv) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" member of a response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decoding response data: %v (body %s)", err, rec.Body.String())
	}
}

// decodeListEnvelope unmarshals a whole response body into dst, for
// endpoints whose envelope carries extra meta members.
func decodeListEnvelope(t *testing.T, body []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decoding response: %v (body %s)", err, body)
	}
}

// decodeError returns the error detail of an error response.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v (body %s)", err, rec.Body.String())
	}
	return resp.Error
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeMediaService backs the media endpoints with an httptest image host.
func fakeMediaService(t *testing.T, handler http.Handler) *service.MediaService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host := imagehost.New(imagehost.Config{
		BaseURL:   srv.URL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "site",
	})
	return service.NewMediaService(host, 1<<20, discardLogger())
}
