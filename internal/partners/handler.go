package partners

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tradewind-erp/tradewind/internal/platform/httpx"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	customers *CustomerService
	suppliers *SupplierService
	validate  *validator.Validate
}

func NewHandler(logger *slog.Logger, customers *CustomerService, suppliers *SupplierService) *Handler {
	return &Handler{
		logger:    logger,
		customers: customers,
		suppliers: suppliers,
		validate:  validator.New(),
	}
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) *shared.Identity {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
	}
	return actor
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeParty(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func listRequest(r *http.Request) ListPartiesRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return ListPartiesRequest{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	var req CreatePartyRequest
	if !h.decodeParty(w, r, &req) {
		return
	}
	customer, err := h.customers.Create(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("create customer", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "customer created", customer)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	customers, pagination, err := h.customers.List(r.Context(), actor.TenantID, listRequest(r))
	if err != nil {
		h.logger.Error("list customers", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "customers fetched", map[string]any{
		"items":      customers,
		"pagination": pagination,
	})
}

func (h *Handler) ShowCustomer(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(r.Context(), actor.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "customer fetched", customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdatePartyRequest
	if !h.decodeParty(w, r, &req) {
		return
	}
	customer, err := h.customers.Update(r.Context(), actor.TenantID, id, req)
	if err != nil {
		h.logger.Error("update customer", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "customer updated", customer)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(r.Context(), actor.TenantID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "customer deleted", nil)
}

func (h *Handler) AddCustomerAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AddressPayload
	if !h.decodeParty(w, r, &req) {
		return
	}
	customer, err := h.customers.AddAddress(r.Context(), actor.TenantID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "address added", customer)
}

func (h *Handler) UpdateCustomerAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AddressPayload
	if !h.decodeParty(w, r, &req) {
		return
	}
	customer, err := h.customers.UpdateAddress(r.Context(), actor.TenantID, id, chi.URLParam(r, "addressId"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "address updated", customer)
}

func (h *Handler) DeleteCustomerAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	customer, err := h.customers.DeleteAddress(r.Context(), actor.TenantID, id, chi.URLParam(r, "addressId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "address deleted", customer)
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	var req CreatePartyRequest
	if !h.decodeParty(w, r, &req) {
		return
	}
	supplier, err := h.suppliers.Create(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("create supplier", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "supplier created", supplier)
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	suppliers, pagination, err := h.suppliers.List(r.Context(), actor.TenantID, listRequest(r))
	if err != nil {
		h.logger.Error("list suppliers", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "suppliers fetched", map[string]any{
		"items":      suppliers,
		"pagination": pagination,
	})
}

func (h *Handler) ShowSupplier(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(r.Context(), actor.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "supplier fetched", supplier)
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdatePartyRequest
	if !h.decodeParty(w, r, &req) {
		return
	}
	supplier, err := h.suppliers.Update(r.Context(), actor.TenantID, id, req)
	if err != nil {
		h.logger.Error("update supplier", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "supplier updated", supplier)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(r.Context(), actor.TenantID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "supplier deleted", nil)
}

func (h *Handler) AddSupplierAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AddressPayload
	if !h.decodeParty(w, r, &req) {
		return
	}
	supplier, err := h.suppliers.AddAddress(r.Context(), actor.TenantID, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "address added", supplier)
}

func (h *Handler) UpdateSupplierAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AddressPayload
	if !h.decodeParty(w, r, &req) {
		return
	}
	supplier, err := h.suppliers.UpdateAddress(r.Context(), actor.TenantID, id, chi.URLParam(r, "addressId"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "address updated", supplier)
}

func (h *Handler) DeleteSupplierAddress(w http.ResponseWriter, r *http.Request) {
	actor := h.identity(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	supplier, err := h.suppliers.DeleteAddress(r.Context(), actor.TenantID, id, chi.URLParam(r, "addressId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "address deleted", supplier)
}
