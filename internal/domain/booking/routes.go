package booking

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the booking router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Cancel)
	r.Put("/{id}/approve", h.Approve)
	r.Put("/{id}/reschedule", h.Reschedule)

	return r
}
