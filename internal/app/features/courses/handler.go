// Package courses serves the course catalog.
package courses

import (
	"context"
	"errors"
	"net/http"

	coursestore "github.com/dalemusser/enrollhub/internal/app/store/courses"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the catalog endpoints.
type Handler struct {
	Courses *coursestore.Store
	Log     *zap.Logger
}

// NewHandler constructs a courses Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Courses: coursestore.New(db),
		Log:     logger,
	}
}

type createRequest struct {
	Code             string          `json:"courseCode" validate:"required,max=16"`
	Name             string          `json:"name" validate:"required,max=120"`
	Category         string          `json:"category" validate:"omitempty,max=64"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription" validate:"omitempty,max=300"`
	Duration         models.Duration `json:"duration"`
	Fees             *models.Fees    `json:"fees"`
	TotalFee         *float64        `json:"totalFee" validate:"omitempty,gte=0"`
	Curriculum       []string        `json:"curriculum"`
	Prerequisites    []string        `json:"prerequisites"`
	LearningOutcomes []string        `json:"learningOutcomes"`
	Status           string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// updateRequest is a partial merge. The fee either arrives as the nested
// fees object or as the flat totalFee shortcut; never both.
type updateRequest struct {
	Name             *string          `json:"name"`
	Category         *string          `json:"category"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	Duration         *models.Duration `json:"duration"`
	Fees             *models.Fees     `json:"fees"`
	TotalFee         *float64         `json:"totalFee"`
	Curriculum       *[]string        `json:"curriculum"`
	Prerequisites    *[]string        `json:"prerequisites"`
	LearningOutcomes *[]string        `json:"learningOutcomes"`
	Status           *string          `json:"status"`
}

// normalizeFees collapses the two accepted fee shapes into the canonical
// one. A flat totalFee becomes a Fees value with the default currency.
func normalizeFees(fees *models.Fees, totalFee *float64) (*models.Fees, error) {
	switch {
	case fees != nil && totalFee != nil:
		return nil, errors.New("provide either fees or totalFee, not both")
	case totalFee != nil:
		if *totalFee < 0 {
			return nil, errors.New("totalFee must be 0 or greater")
		}
		return &models.Fees{Total: *totalFee, Currency: "INR"}, nil
	default:
		return fees, nil
	}
}

// List handles GET /api/courses. Without a ?status= filter only active
// catalog entries are returned; ?status=all lists everything.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "":
		status = models.CourseActive
	case "all":
		status = ""
	case models.CourseActive, models.CourseInactive:
	default:
		httpjson.Error(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.List(ctx, status)
	if err != nil {
		h.Log.Error("courses: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, courses)
}

// GetByCode handles GET /api/courses/{code}.
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := h.Courses.GetByCode(ctx, chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "course not found")
			return
		}
		h.Log.Error("courses: get by code", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, course)
}

// Create handles POST /api/courses. Duplicate codes are a 400 and leave
// the catalog unchanged.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	fees, err := normalizeFees(req.Fees, req.TotalFee)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	course := models.Course{
		Code:             req.Code,
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Duration:         req.Duration,
		Curriculum:       req.Curriculum,
		Prerequisites:    req.Prerequisites,
		LearningOutcomes: req.LearningOutcomes,
		Status:           req.Status,
	}
	if fees != nil {
		course.Fees = *fees
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Courses.Create(ctx, course)
	if err != nil {
		if errors.Is(err, coursestore.ErrDuplicateCode) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("courses: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("course created",
		zap.String("code", created.Code),
		zap.String("name", created.Name))
	httpjson.Respond(w, http.StatusCreated, created)
}

// Update handles PUT /api/courses/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fees, err := normalizeFees(req.Fees, req.TotalFee)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != nil && *req.Status != models.CourseActive && *req.Status != models.CourseInactive {
		httpjson.Error(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Courses.Apply(ctx, id, coursestore.Update{
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Duration:         req.Duration,
		Fees:             fees,
		Curriculum:       req.Curriculum,
		Prerequisites:    req.Prerequisites,
		LearningOutcomes: req.LearningOutcomes,
		Status:           req.Status,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "course not found")
			return
		}
		h.Log.Error("courses: update", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/courses/{id}. Lead records that reference
// the course by name are untouched.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Courses.Delete(ctx, id)
	if err != nil {
		h.Log.Error("courses: delete", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "course not found")
		return
	}

	h.Log.Info("course deleted", zap.String("id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "course deleted"})
}
