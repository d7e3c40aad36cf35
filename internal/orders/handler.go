package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tradewind-erp/tradewind/internal/ledger"
	"github.com/tradewind-erp/tradewind/internal/platform/httpx"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.Create(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("create order", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "order created", order)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	req := ListOrdersRequest{Page: page, Limit: limit}
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			req.CustomerID = &id
		}
	}
	if status := Status(r.URL.Query().Get("orderStatus")); ValidStatus(status) {
		req.OrderStatus = &status
	}
	if status := ledger.Status(r.URL.Query().Get("paymentStatus")); ledger.ValidStatus(status) {
		req.PaymentStatus = &status
	}

	items, pagination, err := h.service.List(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("list orders", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "orders fetched", map[string]any{
		"items":      items,
		"pagination": pagination,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.service.Get(r.Context(), actor.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "order fetched", order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.Update(r.Context(), actor.TenantID, id, req)
	if err != nil {
		h.logger.Error("update order", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "order updated", order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.service.Delete(r.Context(), actor.TenantID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "order deleted", nil)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), actor.TenantID, id, req.OrderStatus)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "order status updated", order)
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req PaymentPayload
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.AddPayment(r.Context(), actor.TenantID, id, req)
	if err != nil {
		h.logger.Error("add order payment", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "payment recorded", order)
}
