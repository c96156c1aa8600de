package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
)

func adminProtected(cfg config.AdminConfig) (http.Handler, *bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return AdminKey(cfg, nil)(next), &reached
}

func TestAdminKeyUnsetFailsClosed(t *testing.T) {
	handler, reached := adminProtected(config.AdminConfig{})

	req := httptest.NewRequest(http.MethodGet, "/admin/store-codes", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	if *reached {
		t.Fatalf("handler must not run without a configured key")
	}
}

func TestAdminKeyMismatchUnauthorized(t *testing.T) {
	handler, reached := adminProtected(config.AdminConfig{Key: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, "/admin/store-codes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if *reached {
		t.Fatalf("handler must not run on mismatch")
	}
}

func TestAdminKeyMissingUnauthorized(t *testing.T) {
	handler, reached := adminProtected(config.AdminConfig{Key: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, "/admin/store-codes", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if *reached {
		t.Fatalf("handler must not run without credentials")
	}
}

func TestAdminKeyBearerAccepted(t *testing.T) {
	handler, reached := adminProtected(config.AdminConfig{Key: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, "/admin/store-codes", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !*reached {
		t.Fatalf("expected pass-through, got %d reached=%v", rec.Code, *reached)
	}
}

func TestAdminKeyHeaderAccepted(t *testing.T) {
	handler, reached := adminProtected(config.AdminConfig{Key: "s3cret"})

	req := httptest.NewRequest(http.MethodGet, "/admin/store-codes", nil)
	req.Header.Set("X-Admin-Key", "s3cret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !*reached {
		t.Fatalf("expected pass-through, got %d reached=%v", rec.Code, *reached)
	}
}
