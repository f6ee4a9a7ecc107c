// internal/app/features/courses/routes.go
package courses

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for /api/courses.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{code}", h.GetByCode)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
