package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tradewind-erp/tradewind/internal/platform/httpx"
	"github.com/tradewind-erp/tradewind/internal/shared"
)

// Handler exposes the report endpoints. Every request requires an
// authenticated tenant identity resolved upstream by the auth
// middleware; the handler never resolves identity itself.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) ProductSales(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	rng, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	filter := ProductSalesFilter{
		Range:     rng,
		Frequency: ParseFrequency(r.URL.Query().Get("frequency")),
		Category:  optionalString(r, "category"),
		Brand:     optionalString(r, "brand"),
	}
	filter.ProductID, err = optionalInt64(r, "productId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	rows, err := h.service.ProductSales(r.Context(), id.TenantID, filter)
	if err != nil {
		h.logger.Error("product sales report", "error", err, "tenant", id.TenantID)
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []ProductSales{}
	}
	httpx.OK(w, "product sales report generated", rows)
}

func (h *Handler) CustomerSales(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	rng, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	filter := CustomerSalesFilter{
		Range:     rng,
		Frequency: ParseFrequency(r.URL.Query().Get("frequency")),
	}
	filter.CustomerID, err = optionalInt64(r, "customerId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	rows, err := h.service.CustomerSales(r.Context(), id.TenantID, filter)
	if err != nil {
		h.logger.Error("customer sales report", "error", err, "tenant", id.TenantID)
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []CustomerSales{}
	}
	httpx.OK(w, "customer sales report generated", rows)
}

func (h *Handler) OrderAnalytics(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	rng, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	filter := OrderAnalyticsFilter{
		Range:     rng,
		Frequency: ParseFrequency(r.URL.Query().Get("frequency")),
	}

	rows, err := h.service.OrderAnalytics(r.Context(), id.TenantID, filter)
	if err != nil {
		h.logger.Error("order analytics report", "error", err, "tenant", id.TenantID)
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []OrderAnalytics{}
	}
	httpx.OK(w, "order analytics report generated", rows)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	rng, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), id.TenantID, rng, ParseFrequency(r.URL.Query().Get("frequency")))
	if err != nil {
		h.logger.Error("report summary", "error", err, "tenant", id.TenantID)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "report summary generated", summary)
}

func optionalString(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}

// optionalInt64 parses an absent filter as nil and a malformed one as
// a validation error so it never degrades into an unfiltered report.
func optionalInt64(r *http.Request, name string) (*int64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, value, shared.ErrValidation)
	}
	return &parsed, nil
}
