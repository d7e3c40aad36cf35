package reports

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/product-sales", h.ProductSales)
	r.Get("/reports/customer-sales", h.CustomerSales)
	r.Get("/reports/order-analytics", h.OrderAnalytics)
	r.Get("/reports/summary", h.Summary)
}
