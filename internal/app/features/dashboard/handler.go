// Package dashboard serves the consolidated stats report for the admin
// dashboard.
package dashboard

import (
	"context"
	"net/http"

	metricsstore "github.com/dalemusser/enrollhub/internal/app/store/metrics"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the dashboard endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// Stats handles GET /api/dashboard/stats. Any sub-query failure fails the
// whole report with a 500; there are no partial responses.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stats, err := metricsstore.FetchDashboardStats(ctx, h.DB)
	if err != nil {
		h.Log.Error("dashboard: fetch stats", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, stats)
}
