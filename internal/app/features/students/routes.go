// internal/app/features/students/routes.go
package students

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for /api/students.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/admit/{id}", h.Admit)
	return r
}
