package staff

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/staff", h.List)
	r.Post("/staff", h.Create)
	r.Get("/staff/{id}", h.Show)
	r.Put("/staff/{id}", h.Update)
	r.Delete("/staff/{id}", h.Delete)
}
