package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/indexes"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStoreWithIndexes(t *testing.T) *userstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return userstore.New(db)
}

func TestCreateAndGetByUsername(t *testing.T) {
	store := newStoreWithIndexes(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Username:     "  Admin ",
		Email:        "Admin@Example.COM",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Username != "admin" {
		t.Errorf("username: got %q, want normalized", created.Username)
	}
	if created.Email != "admin@example.com" {
		t.Errorf("email: got %q, want normalized", created.Email)
	}
	if created.Role != "employee" {
		t.Errorf("role: got %q, want default employee", created.Role)
	}

	got, err := store.GetByUsername(ctx, "ADMIN")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != created.ID {
		t.Error("lookup returned a different account")
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	store := newStoreWithIndexes(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		Username: "admin", Email: "one@example.com", PasswordHash: "h",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		Username: "admin", Email: "two@example.com", PasswordHash: "h",
	})
	if !errors.Is(err, userstore.ErrDuplicateAccount) {
		t.Errorf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestCreate_BadRole(t *testing.T) {
	store := newStoreWithIndexes(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		Username: "x", Email: "x@example.com", PasswordHash: "h", Role: "superuser",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	store := newStoreWithIndexes(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByUsername(ctx, "ghost")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
