package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/progressrelay/internal/app/features/home"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	home.Routes(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != home.Banner {
		t.Errorf("body: got %q, want %q", got, home.Banner)
	}
}

func TestServeRoot_PostNotAllowed(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	home.Routes(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
