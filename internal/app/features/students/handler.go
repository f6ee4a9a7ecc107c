// Package students serves the lead/student collection: list with filters,
// create, partial update, the admit transition, and delete.
package students

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	studentstore "github.com/dalemusser/enrollhub/internal/app/store/students"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the student endpoints.
type Handler struct {
	Students *studentstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a students Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Students: studentstore.New(db),
		Log:      logger,
	}
}

type createRequest struct {
	Name         string     `json:"name" validate:"required,max=120"`
	Phone        string     `json:"phone" validate:"required,max=20"`
	Email        string     `json:"email" validate:"required,email"`
	Course       string     `json:"course" validate:"required,max=120"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes" validate:"omitempty,max=2000"`
	ReminderDate *time.Time `json:"reminderDate"`
	Remind       bool       `json:"remind"`
	Fee          float64    `json:"fee" validate:"omitempty,gte=0"`
}

// updateRequest is a partial merge: absent fields leave the record alone.
type updateRequest struct {
	Name         *string    `json:"name"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email"`
	Course       *string    `json:"course"`
	Status       *string    `json:"status"`
	Notes        *string    `json:"notes"`
	ReminderDate *time.Time `json:"reminderDate"`
	Remind       *bool      `json:"remind"`
}

type admitRequest struct {
	JoiningDate   *time.Time `json:"joiningDate"`
	Fee           *float64   `json:"fee"`
	ReferralBonus *float64   `json:"referralBonus"`
	ReferredBy    *string    `json:"referredBy"`
}

// List handles GET /api/students. Optional query filters: ?status= narrows
// to one engagement status, ?admitted=true|false narrows to students or
// leads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter studentstore.ListFilter

	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidStatus(status) {
			httpjson.Error(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("admitted"); raw != "" {
		admitted, err := strconv.ParseBool(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "admitted filter must be true or false")
			return
		}
		filter.Admitted = &admitted
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	students, err := h.Students.List(ctx, filter)
	if err != nil {
		h.Log.Error("students: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, students)
}

// Create handles POST /api/students.
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
	if req.Status != "" && !models.ValidStatus(req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Students.Create(ctx, models.Student{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Course:       req.Course,
		Status:       req.Status,
		Notes:        req.Notes,
		ReminderDate: req.ReminderDate,
		Remind:       req.Remind,
		Fee:          req.Fee,
	})
	if err != nil {
		h.Log.Error("students: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("lead created",
		zap.String("id", created.ID.Hex()),
		zap.String("course", created.Course))
	httpjson.Respond(w, http.StatusCreated, created)
}

// Update handles PUT /api/students/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		httpjson.Error(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Students.Apply(ctx, id, studentstore.Update{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Course:       req.Course,
		Status:       req.Status,
		Notes:        req.Notes,
		ReminderDate: req.ReminderDate,
		Remind:       req.Remind,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "student not found")
			return
		}
		h.Log.Error("students: update", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// Admit handles PATCH /api/students/admit/{id}: flips the record to
// admitted and merges the enrollment fields in one step.
func (h *Handler) Admit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req admitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Fee != nil && *req.Fee < 0 {
		httpjson.Error(w, http.StatusBadRequest, "fee must be 0 or greater")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admitted, err := h.Students.Admit(ctx, id, studentstore.Admission{
		JoiningDate:   req.JoiningDate,
		Fee:           req.Fee,
		ReferralBonus: req.ReferralBonus,
		ReferredBy:    req.ReferredBy,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "student not found")
			return
		}
		h.Log.Error("students: admit", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("lead admitted", zap.String("id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, admitted)
}

// Delete handles DELETE /api/students/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Students.Delete(ctx, id)
	if err != nil {
		h.Log.Error("students: delete", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}

	h.Log.Info("student deleted", zap.String("id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "student deleted"})
}

// pathID parses the {id} route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
