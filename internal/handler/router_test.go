package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/noteman/internal/token"
)

type mockVerifierAlwaysFail struct{}

func (m *mockVerifierAlwaysFail) Verify(tokenStr string) (*token.Claims, error) {
	return nil, errors.New("invalid token")
}

func TestRouter_UnknownRouteReturns404(t *testing.T) {
	router := NewRouter(&RouterDeps{
		TokenVerifier:     &mockVerifierAlwaysFail{},
		CORSAllowedOrigin: "http://localhost:3000",
		AuthService:       &mockAuthService{},
		AuthConfig:        testAuthConfig(),
		NoteService:       &mockNoteService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestRouter_AppliesSecurityHeaders(t *testing.T) {
	router := NewRouter(&RouterDeps{
		TokenVerifier:     &mockVerifierAlwaysFail{},
		CORSAllowedOrigin: "http://localhost:3000",
		AuthService:       &mockAuthService{},
		AuthConfig:        testAuthConfig(),
		NoteService:       &mockNoteService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want configured origin", got)
	}
}

func TestRouter_HealthWithoutCheckerReturnsOK(t *testing.T) {
	router := NewRouter(&RouterDeps{
		TokenVerifier:     &mockVerifierAlwaysFail{},
		CORSAllowedOrigin: "http://localhost:3000",
		AuthService:       &mockAuthService{},
		AuthConfig:        testAuthConfig(),
		NoteService:       &mockNoteService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}
