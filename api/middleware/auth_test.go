package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/jerseyforge/jerseyforge-backend/pkg/auth"
	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
)

type stubResolver struct {
	users map[uuid.UUID]*models.User
}

func (s *stubResolver) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func middlewareJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "jerseyforge", ExpirationHours: 168}
}

func mintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(middlewareJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{UserID: userID})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func seenUserHandler(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(middlewareJWTConfig(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(middlewareJWTConfig(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSeedsUserContext(t *testing.T) {
	user := &models.User{ID: uuid.New(), IsActive: true}
	resolver := &stubResolver{users: map[uuid.UUID]*models.User{user.ID: user}}

	var seen string
	handler := Auth(middlewareJWTConfig(), resolver, nil)(seenUserHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user.ID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != user.ID.String() {
		t.Fatalf("expected user id in context, got %q", seen)
	}
}

func TestAuthRejectsDeactivatedAccount(t *testing.T) {
	user := &models.User{ID: uuid.New(), IsActive: false}
	resolver := &stubResolver{users: map[uuid.UUID]*models.User{user.ID: user}}

	handler := Auth(middlewareJWTConfig(), resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user.ID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated account, got %d", rec.Code)
	}
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	resolver := &stubResolver{users: map[uuid.UUID]*models.User{}}
	handler := Auth(middlewareJWTConfig(), resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthPassesAnonymously(t *testing.T) {
	var seen string
	handler := OptionalAuth(middlewareJWTConfig(), nil)(seenUserHandler(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/create", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous pass-through, got %d", rec.Code)
	}
	if seen != "" {
		t.Fatalf("expected no user id, got %q", seen)
	}
}

func TestOptionalAuthHonorsValidToken(t *testing.T) {
	userID := uuid.New()
	var seen string
	handler := OptionalAuth(middlewareJWTConfig(), nil)(seenUserHandler(&seen))

	req := httptest.NewRequest(http.MethodPost, "/admin/create", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != userID.String() {
		t.Fatalf("expected user id from token, got %q", seen)
	}
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	var seen string
	handler := OptionalAuth(middlewareJWTConfig(), nil)(seenUserHandler(&seen))

	req := httptest.NewRequest(http.MethodPost, "/admin/create", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || seen != "" {
		t.Fatalf("invalid token must fall back to anonymous, got %d %q", rec.Code, seen)
	}
}
