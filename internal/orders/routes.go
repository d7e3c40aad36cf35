package orders

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Show)
	r.Put("/orders/{id}", h.Update)
	r.Delete("/orders/{id}", h.Delete)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/payment", h.AddPayment)
}
