package dashboard_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/dashboard"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func TestStats_EnvelopeShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := dashboard.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCourse(ctx, "GO101", "Go Basics")
	fx.CreateLeadWithFee(ctx, "Lead One", "Go Basics", 1000)
	fx.CreateAdmitted(ctx, "Student One", "Go Basics", 2000, 150)

	rec := testutil.NewRecorder()
	h.Stats(rec, testutil.NewAuthenticatedRequest("GET", "/api/dashboard/stats"))

	rec.AssertStatus(t, http.StatusOK)

	// The report is one flat object with every field present, lists
	// included, so the SPA never needs missing-key defaults.
	var body map[string]any
	rec.DecodeJSON(t, &body)
	for _, field := range []string{
		"totalStudents", "leadCount", "admittedCount", "interestedCount",
		"pendingReminders", "successRate", "revenue", "potentialRevenue",
		"referrals", "statusBreakdown", "recentActivity",
		"upcomingReminders", "studentData", "engagementData", "allCourses",
	} {
		if _, ok := body[field]; !ok {
			t.Errorf("report missing field %q", field)
		}
	}

	if got := body["totalStudents"].(float64); got != 2 {
		t.Errorf("totalStudents: got %v, want 2", got)
	}
	if got := body["revenue"].(float64); got != 2000 {
		t.Errorf("revenue: got %v, want 2000", got)
	}
	if got := body["potentialRevenue"].(float64); got != 3000 {
		t.Errorf("potentialRevenue: got %v, want 3000", got)
	}
	if _, ok := body["statusBreakdown"].([]any); !ok {
		t.Errorf("statusBreakdown should encode as a JSON array, got %T", body["statusBreakdown"])
	}
}

func TestStats_EmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Stats(rec, testutil.NewAuthenticatedRequest("GET", "/api/dashboard/stats"))

	rec.AssertStatus(t, http.StatusOK)

	var body map[string]any
	rec.DecodeJSON(t, &body)
	if got := body["successRate"].(float64); got != 0 {
		t.Errorf("successRate on empty database: got %v, want 0", got)
	}
	trend, ok := body["engagementData"].([]any)
	if !ok || len(trend) != 5 {
		t.Errorf("engagementData placeholder: got %v", body["engagementData"])
	}
}
