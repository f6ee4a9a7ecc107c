// Package posts serves the share feed: list, create, delete.
package posts

import (
	"context"
	"net/http"

	poststore "github.com/dalemusser/enrollhub/internal/app/store/posts"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the feed endpoints.
type Handler struct {
	Posts *poststore.Store
	Log   *zap.Logger
}

// NewHandler constructs a posts Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Posts: poststore.New(db),
		Log:   logger,
	}
}

type createRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Details string `json:"details" validate:"required"`
	Media   string `json:"media" validate:"omitempty,url"`
	Type    string `json:"type" validate:"omitempty,oneof=image video text"`
}

// List handles GET /api/posts, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		h.Log.Error("posts: list", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Respond(w, http.StatusOK, posts)
}

// Create handles POST /api/posts.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Posts.Create(ctx, models.Post{
		Title:   req.Title,
		Details: req.Details,
		Media:   req.Media,
		Type:    req.Type,
	})
	if err != nil {
		h.Log.Error("posts: create", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("post created",
		zap.String("id", created.ID.Hex()),
		zap.String("type", created.Type))
	httpjson.Respond(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/posts/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Posts.Delete(ctx, id)
	if err != nil {
		h.Log.Error("posts: delete", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "post not found")
		return
	}

	h.Log.Info("post deleted", zap.String("id", id.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
