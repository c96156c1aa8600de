package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/HUNTSTAR747/referred-space-server/pkg/auth"
	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	"github.com/google/uuid"
)

var authTestJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "referred.space",
	ExpirationMinutes: 60,
}

type stubChecker struct {
	active bool
	err    error
}

func (s stubChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.active, s.err
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(authTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func authProtected(checker stubChecker) (http.Handler, *string) {
	var sessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Auth(authTestJWT, checker, nil)(next), &sessionID
}

func TestAuthMissingHeader(t *testing.T) {
	handler, _ := authProtected(stubChecker{active: true})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthBadToken(t *testing.T) {
	handler, _ := authProtected(stubChecker{active: true})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRevokedSession(t *testing.T) {
	handler, _ := authProtected(stubChecker{active: false})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthSeedsSessionID(t *testing.T) {
	handler, sessionID := authProtected(stubChecker{active: true})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-2"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if *sessionID != "jti-2" {
		t.Fatalf("expected session id jti-2, got %q", *sessionID)
	}
}
