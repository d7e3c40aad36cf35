package partners

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/customers", h.ListCustomers)
	r.Post("/customers", h.CreateCustomer)
	r.Get("/customers/{id}", h.ShowCustomer)
	r.Put("/customers/{id}", h.UpdateCustomer)
	r.Delete("/customers/{id}", h.DeleteCustomer)
	r.Post("/customers/{id}/addresses", h.AddCustomerAddress)
	r.Put("/customers/{id}/addresses/{addressId}", h.UpdateCustomerAddress)
	r.Delete("/customers/{id}/addresses/{addressId}", h.DeleteCustomerAddress)

	r.Get("/suppliers", h.ListSuppliers)
	r.Post("/suppliers", h.CreateSupplier)
	r.Get("/suppliers/{id}", h.ShowSupplier)
	r.Put("/suppliers/{id}", h.UpdateSupplier)
	r.Delete("/suppliers/{id}", h.DeleteSupplier)
	r.Post("/suppliers/{id}/addresses", h.AddSupplierAddress)
	r.Put("/suppliers/{id}/addresses/{addressId}", h.UpdateSupplierAddress)
	r.Delete("/suppliers/{id}/addresses/{addressId}", h.DeleteSupplierAddress)
}
