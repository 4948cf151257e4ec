package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adilbekov/notekeeper/internal/auth/token"
	"github.com/adilbekov/notekeeper/internal/common/logger"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func newTestGuard(t *testing.T) (*Guard, *token.Service) {
	t.Helper()
	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	tokens := token.NewService(testSecret, 24*time.Hour)
	return New(tokens, log), tokens
}

func TestGuard_Check_MissingHeader(t *testing.T) {
	g, _ := newTestGuard(t)

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	decision := g.Check(r)

	if decision.Allowed {
		t.Fatal("expected rejection for missing header")
	}
	if decision.Reason == "" {
		t.Error("expected a rejection reason")
	}
}

func TestGuard_Check_MalformedScheme(t *testing.T) {
	g, tokens := newTestGuard(t)

	signed, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	r.Header.Set("Authorization", "Token "+signed)

	if decision := g.Check(r); decision.Allowed {
		t.Fatal("expected rejection for non-bearer scheme")
	}
}

func TestGuard_Check_InvalidToken(t *testing.T) {
	g, _ := newTestGuard(t)

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	r.Header.Set("Authorization", "Bearer garbage")

	if decision := g.Check(r); decision.Allowed {
		t.Fatal("expected rejection for invalid token")
	}
}

func TestGuard_Check_ValidToken(t *testing.T) {
	g, tokens := newTestGuard(t)

	signed, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	decision := g.Check(r)
	if !decision.Allowed {
		t.Fatalf("expected allow, got rejection: %s", decision.Reason)
	}
	if decision.Identity.UserID != "user-123" {
		t.Errorf("expected subject user-123, got %s", decision.Identity.UserID)
	}
}

func TestGuard_Middleware_RejectsWithBareUnauthorized(t *testing.T) {
	g, _ := newTestGuard(t)

	called := false
	handler := g.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-all-notes", nil))

	if called {
		t.Error("expected downstream handler not to run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestGuard_Middleware_ExpiredToken(t *testing.T) {
	g, _ := newTestGuard(t)

	expiredIssuer := token.NewService(testSecret, -time.Hour)
	signed, err := expiredIssuer.Issue("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	handler := g.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected downstream handler not to run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGuard_Middleware_AttachesIdentity(t *testing.T) {
	g, tokens := newTestGuard(t)

	signed, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var gotIdentity Identity
	var found bool
	handler := g.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, found = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/get-all-notes", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !found {
		t.Fatal("expected identity in context")
	}
	if gotIdentity.UserID != "user-123" {
		t.Errorf("expected subject user-123, got %s", gotIdentity.UserID)
	}
}
