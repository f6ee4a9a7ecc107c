package authapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/features/authapi"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *authapi.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return authapi.NewHandler(db, tokens, zap.NewNop())
}

func TestRegister(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]any{
		"username":  "Frontdesk",
		"email":     "Desk@Example.com",
		"password":  "correct horse",
		"firstName": "Front",
		"lastName":  "Desk",
	})
	rec := testutil.NewRecorder()

	h.Register(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	rec.DecodeJSON(t, &resp)

	if resp.Token == "" {
		t.Error("expected a bearer token in the response")
	}
	if resp.User.Username != "frontdesk" {
		t.Errorf("username: got %q, want normalized %q", resp.User.Username, "frontdesk")
	}
	if resp.User.Email != "desk@example.com" {
		t.Errorf("email: got %q, want normalized %q", resp.User.Email, "desk@example.com")
	}
	if resp.User.Role != "employee" {
		t.Errorf("role: got %q, want default %q", resp.User.Role, "employee")
	}
}

func TestRegister_PasswordNeverSerialized(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]any{
		"username": "frontdesk",
		"email":    "desk@example.com",
		"password": "correct horse",
	})
	rec := testutil.NewRecorder()

	h.Register(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var raw map[string]map[string]any
	rec.DecodeJSON(t, &raw)
	for _, key := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := raw["user"][key]; ok {
			t.Errorf("response user leaked %q", key)
		}
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	h := newHandler(t)

	body := map[string]any{
		"username": "frontdesk",
		"email":    "desk@example.com",
		"password": "correct horse",
	}
	rec := testutil.NewRecorder()
	h.Register(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", body))
	rec.AssertStatus(t, http.StatusCreated)

	body["email"] = "other@example.com"
	rec = testutil.NewRecorder()
	h.Register(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "an account with this username or email already exists")
}

func TestRegister_WeakInput(t *testing.T) {
	h := newHandler(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing username", map[string]any{"email": "a@b.com", "password": "correct horse"}},
		{"bad email", map[string]any{"username": "frontdesk", "email": "nope", "password": "correct horse"}},
		{"short password", map[string]any{"username": "frontdesk", "email": "a@b.com", "password": "short"}},
		{"bad role", map[string]any{"username": "frontdesk", "email": "a@b.com", "password": "correct horse", "role": "owner"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.Register(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", tc.body))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestLogin(t *testing.T) {
	h := newHandler(t)

	rec := testutil.NewRecorder()
	h.Register(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]any{
		"username": "frontdesk",
		"email":    "desk@example.com",
		"password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.Login(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]any{
		"username": "frontdesk",
		"password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Token == "" {
		t.Error("expected a bearer token in the response")
	}
	if resp.User.Username != "frontdesk" {
		t.Errorf("username: got %q", resp.User.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHandler(t)

	rec := testutil.NewRecorder()
	h.Register(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]any{
		"username": "frontdesk",
		"email":    "desk@example.com",
		"password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.Login(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]any{
		"username": "frontdesk",
		"password": "wrong horse",
	}))
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertMessage(t, "incorrect username or password")
}

func TestLogin_UnknownUser(t *testing.T) {
	h := newHandler(t)

	rec := testutil.NewRecorder()
	h.Login(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]any{
		"username": "ghost",
		"password": "whatever works",
	}))
	// Same message as a wrong password, so account existence is not leaked.
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertMessage(t, "incorrect username or password")
}

func TestLogin_MissingFields(t *testing.T) {
	h := newHandler(t)

	rec := testutil.NewRecorder()
	h.Login(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]any{
		"username": "frontdesk",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
}
