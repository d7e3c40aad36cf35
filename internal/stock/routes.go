package stock

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stocks", h.List)
	r.Post("/stocks", h.Create)
	r.Get("/stocks/{id}", h.Show)
	r.Put("/stocks/{id}", h.Update)
	r.Delete("/stocks/{id}", h.Delete)
	r.Patch("/stocks/{id}/status", h.UpdateStatus)
	r.Post("/stocks/{id}/payment", h.AddPayment)
}
