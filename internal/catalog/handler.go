package catalog

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

	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.Create(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("create product", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "product created", product)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	req := ListProductsRequest{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Brand:    r.URL.Query().Get("brand"),
		Page:     page,
		Limit:    limit,
	}

	products, pagination, err := h.service.List(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("list products", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "products fetched", map[string]any{
		"items":      products,
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
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.service.Get(r.Context(), actor.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "product fetched", product)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.Update(r.Context(), actor.TenantID, id, req)
	if err != nil {
		h.logger.Error("update product", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "product updated", product)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.service.Delete(r.Context(), actor.TenantID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "product deleted", nil)
}
