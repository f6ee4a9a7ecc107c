package courses_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/courses"
	"github.com/dalemusser/enrollhub/internal/app/system/indexes"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// setup builds a handler against a test database with the unique course
// code index in place, since duplicate detection depends on it.
func setup(t *testing.T) (*courses.Handler, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return courses.NewHandler(db, zap.NewNop()), db
}

func TestCreate(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/courses", map[string]any{
		"courseCode": "go101",
		"name":       "Go Basics",
		"category":   "technology",
		"totalFee":   25000,
	})
	rec := testutil.NewRecorder()

	h.Create(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var created models.Course
	rec.DecodeJSON(t, &created)
	if created.Code != "GO101" {
		t.Errorf("code: got %q, want uppercased %q", created.Code, "GO101")
	}
	if created.Status != models.CourseActive {
		t.Errorf("status: got %q, want default %q", created.Status, models.CourseActive)
	}
	if created.Fees.Total != 25000 {
		t.Errorf("fees.total: got %v, want 25000 (from totalFee shortcut)", created.Fees.Total)
	}
	if created.Fees.Currency != "INR" {
		t.Errorf("fees.currency: got %q, want default %q", created.Fees.Currency, "INR")
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	h, db := setup(t)

	body := map[string]any{
		"courseCode": "GO101",
		"name":       "Go Basics",
	}
	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", body))
	rec.AssertStatus(t, http.StatusCreated)

	body["name"] = "Go Basics Again"
	rec = testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "a course with this code already exists")

	// Nothing was persisted by the rejected create.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := db.Collection("courses").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("catalog size after duplicate: got %d, want 1", n)
	}
}

func TestCreate_BothFeeShapes(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/courses", map[string]any{
		"courseCode": "GO101",
		"name":       "Go Basics",
		"totalFee":   25000,
		"fees":       map[string]any{"total": 30000},
	})
	rec := testutil.NewRecorder()

	h.Create(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "provide either fees or totalFee, not both")
}

func TestList_DefaultsToActive(t *testing.T) {
	h, _ := setup(t)

	for _, c := range []map[string]any{
		{"courseCode": "GO101", "name": "Go Basics"},
		{"courseCode": "PY201", "name": "Python Advanced", "status": "inactive"},
	} {
		rec := testutil.NewRecorder()
		h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", c))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest("GET", "/api/courses"))
	rec.AssertStatus(t, http.StatusOK)
	var active []models.Course
	rec.DecodeJSON(t, &active)
	if len(active) != 1 || active[0].Code != "GO101" {
		t.Errorf("default list: got %+v, want just GO101", active)
	}

	rec = testutil.NewRecorder()
	h.List(rec, testutil.NewRequest("GET", "/api/courses?status=all"))
	rec.AssertStatus(t, http.StatusOK)
	var all []models.Course
	rec.DecodeJSON(t, &all)
	if len(all) != 2 {
		t.Errorf("status=all: got %d entries, want 2", len(all))
	}
}

func TestGetByCode(t *testing.T) {
	h, _ := setup(t)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", map[string]any{
		"courseCode": "GO101",
		"name":       "Go Basics",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	// Lookup is case-insensitive on the code.
	req := testutil.NewRequest("GET", "/api/courses/go101")
	req = testutil.WithChiURLParam(req, "code", "go101")
	rec = testutil.NewRecorder()
	h.GetByCode(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var course models.Course
	rec.DecodeJSON(t, &course)
	if course.Code != "GO101" {
		t.Errorf("code: got %q", course.Code)
	}
}

func TestGetByCode_NotFound(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewRequest("GET", "/api/courses/NOPE")
	req = testutil.WithChiURLParam(req, "code", "NOPE")
	rec := testutil.NewRecorder()

	h.GetByCode(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "course not found")
}

func TestUpdate_TotalFeeShortcut(t *testing.T) {
	h, _ := setup(t)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", map[string]any{
		"courseCode": "GO101",
		"name":       "Go Basics",
	}))
	rec.AssertStatus(t, http.StatusCreated)
	var created models.Course
	rec.DecodeJSON(t, &created)

	req := testutil.NewJSONRequest(t, "PUT", "/api/courses/"+created.ID.Hex(), map[string]any{
		"totalFee": 40000,
	})
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec = testutil.NewRecorder()
	h.Update(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var updated models.Course
	rec.DecodeJSON(t, &updated)
	if updated.Fees.Total != 40000 {
		t.Errorf("fees.total: got %v, want 40000", updated.Fees.Total)
	}
	if updated.Name != "Go Basics" {
		t.Errorf("merge clobbered name: got %q", updated.Name)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	h, _ := setup(t)

	missing := primitive.NewObjectID().Hex()
	req := testutil.NewJSONRequest(t, "PUT", "/api/courses/"+missing, map[string]any{
		"name": "Renamed",
	})
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := testutil.NewRecorder()

	h.Update(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	h, _ := setup(t)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest(t, "POST", "/api/courses", map[string]any{
		"courseCode": "GO101",
		"name":       "Go Basics",
	}))
	rec.AssertStatus(t, http.StatusCreated)
	var created models.Course
	rec.DecodeJSON(t, &created)

	req := testutil.NewRequest("DELETE", "/api/courses/"+created.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec = testutil.NewRecorder()
	h.Delete(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.Delete(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
