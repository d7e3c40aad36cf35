package staff

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

	var req CreateAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("create staff", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "staff account created", admin)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	req := ListAdminsRequest{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if role := Role(r.URL.Query().Get("role")); ValidRole(role) {
		req.Role = &role
	}

	admins, pagination, err := h.service.List(r.Context(), actor.TenantID, req)
	if err != nil {
		h.logger.Error("list staff", "error", err, "tenant", actor.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "staff accounts fetched", map[string]any{
		"items":      admins,
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
		httpx.Fail(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	admin, err := h.service.Get(r.Context(), actor.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "staff account fetched", admin)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	var req UpdateAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.logger.Error("update staff", "error", err, "tenant", actor.TenantID, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "staff account updated", admin)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := shared.IdentityFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "staff account deleted", nil)
}
