package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tradewind-erp/tradewind/internal/platform/httpx"
	"github.com/tradewind-erp/tradewind/internal/shared"
	"github.com/tradewind-erp/tradewind/internal/staff"
	"github.com/tradewind-erp/tradewind/internal/tenants"
)

// Handler wires HTTP endpoints for registration and login flows.
type Handler struct {
	logger   *slog.Logger
	tenants  *tenants.Service
	staff    *staff.Service
	tokens   *TokenManager
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tenantService *tenants.Service, staffService *staff.Service, tokens *TokenManager) *Handler {
	return &Handler{
		logger:   logger,
		tenants:  tenantService,
		staff:    staffService,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// MountPublicRoutes registers the unauthenticated auth routes.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/staff/login", h.StaffLogin)
}

// MountProtectedRoutes registers routes behind the auth middleware.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	Tenant int64  `json:"tenantId"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.tenants.Register(r.Context(), tenants.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("register tenant", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "tenant registered", tenant)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.tenants.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	token, err := h.tokens.Issue(shared.Identity{
		TenantID: tenant.ID,
		ActorID:  tenant.ID,
		Kind:     shared.ActorTenant,
		Role:     tenant.Role,
	})
	if err != nil {
		h.logger.Error("issue token", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "login successful", tokenResponse{Token: token, Role: tenant.Role, Tenant: tenant.ID})
}

func (h *Handler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.staff.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	token, err := h.tokens.Issue(shared.Identity{
		TenantID: admin.TenantID,
		ActorID:  admin.ID,
		Kind:     shared.ActorStaff,
		Role:     string(admin.Role),
	})
	if err != nil {
		h.logger.Error("issue token", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "login successful", tokenResponse{Token: token, Role: string(admin.Role), Tenant: admin.TenantID})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	if id.Kind == shared.ActorStaff {
		admin, err := h.staff.Get(r.Context(), id.TenantID, id.ActorID)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.OK(w, "profile fetched", admin)
		return
	}

	tenant, err := h.tenants.Profile(r.Context(), id.TenantID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "profile fetched", tenant)
}
