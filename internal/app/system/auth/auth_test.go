package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-signing-key-must-be-long-enough", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return tm
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewTokenManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestNewTokenManager_ZeroExpiry(t *testing.T) {
	if _, err := auth.NewTokenManager("secret", 0); err == nil {
		t.Error("expected error for zero expiry")
	}
}

func TestIssueAndParse(t *testing.T) {
	tm := newTestTokenManager(t)
	userID := primitive.NewObjectID().Hex()

	token, err := tm.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	got, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != userID {
		t.Errorf("subject: got %q, want %q", got, userID)
	}
}

func TestParse_Garbage(t *testing.T) {
	tm := newTestTokenManager(t)
	if _, err := tm.Parse("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := auth.NewTokenManager("a-completely-different-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := other.Issue(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestParse_Expired(t *testing.T) {
	tm, err := auth.NewTokenManager("test-signing-key-must-be-long-enough", time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.Issue(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password123" {
		t.Error("hash must not equal the plaintext")
	}
	if !auth.CheckPassword(hash, "password123") {
		t.Error("expected matching password to verify")
	}
	if auth.CheckPassword(hash, "wrong-password") {
		t.Error("expected non-matching password to fail")
	}
}

func TestRequireAuth_NoHeader(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run")
	}))

	req := httptest.NewRequest("GET", "/api/students", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "message") {
		t.Errorf("body: got %q, want message envelope", rec.Body.String())
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	tm := newTestTokenManager(t)

	handler := tm.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run")
	}))

	req := httptest.NewRequest("GET", "/api/students", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tm := newTestTokenManager(t)
	userID := primitive.NewObjectID().Hex()

	token, err := tm.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotID string
	handler := tm.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = auth.CurrentUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if gotID != userID {
		t.Errorf("context user ID: got %q, want %q", gotID, userID)
	}
}
