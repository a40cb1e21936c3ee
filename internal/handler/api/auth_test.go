package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/store"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: testAdminPassword,
	}, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.ExpiresIn != 24*60*60 {
		t.Errorf("expires_in = %d, want 86400", resp.ExpiresIn)
	}
	if resp.User.Username != testAdminUsername {
		t.Errorf("username = %q", resp.User.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername,
		Password: "wrong",
	}, false)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginUnknownUserSameAnswer(t *testing.T) {
	env := newTestEnv(t)

	wrongPass := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername, Password: "wrong",
	}, false)
	unknownUser := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: "nobody", Password: "wrong",
	}, false)

	if wrongPass.Code != unknownUser.Code {
		t.Errorf("status differs: %d vs %d", wrongPass.Code, unknownUser.Code)
	}
	if decodeError(t, wrongPass).Message != decodeError(t, unknownUser).Message {
		t.Error("error messages differ between wrong password and unknown user")
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{}, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	detail := decodeError(t, rec)
	if detail.Details["username"] == "" || detail.Details["password"] == "" {
		t.Errorf("expected field errors, got %+v", detail.Details)
	}
}

// legacyArgon2Hash encodes a password with outdated cost parameters, the
// way rows hashed before a parameter bump look.
func legacyArgon2Hash(password string) string {
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte(password), salt, 3, 4096, 1, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=4096,t=3,p=1$%s$%s",
		argon2.Version,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	queries := store.New(env.db)

	old := legacyArgon2Hash(testAdminPassword)
	if !auth.NeedsRehash(old) {
		t.Fatal("fixture hash already uses current parameters")
	}
	err := queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		ID:           env.user.ID,
		PasswordHash: old,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	rec := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername, Password: testAdminPassword,
	}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	user, err := queries.GetUserByUsername(ctx, testAdminUsername)
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if auth.NeedsRehash(user.PasswordHash) {
		t.Error("stored hash still uses the outdated parameters after login")
	}
	if ok, err := auth.CheckPassword(testAdminPassword, user.PasswordHash); err != nil || !ok {
		t.Errorf("upgraded hash rejects the password: ok=%v err=%v", ok, err)
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/auth/me", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp UserResponse
	decodeData(t, rec, &resp)
	if resp.ID != env.user.ID {
		t.Errorf("user id = %d, want %d", resp.ID, env.user.ID)
	}
}

func TestMeWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/auth/me", nil, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		CurrentPassword: testAdminPassword,
		NewPassword:     "a-brand-new-password",
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Old password must stop working, the new one must work.
	old := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername, Password: testAdminPassword,
	}, false)
	if old.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted, status %d", old.Code)
	}

	fresh := env.request(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Username: testAdminUsername, Password: "a-brand-new-password",
	}, false)
	if fresh.Code != http.StatusOK {
		t.Errorf("new password rejected, status %d", fresh.Code)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "a-brand-new-password",
	}, true)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPut, "/api/v1/auth/password", ChangePasswordRequest{
		CurrentPassword: testAdminPassword,
		NewPassword:     "short",
	}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
