package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradewind-erp/tradewind/internal/auth"
	"github.com/tradewind-erp/tradewind/internal/catalog"
	"github.com/tradewind-erp/tradewind/internal/observability"
	"github.com/tradewind-erp/tradewind/internal/orders"
	"github.com/tradewind-erp/tradewind/internal/partners"
	"github.com/tradewind-erp/tradewind/internal/reports"
	"github.com/tradewind-erp/tradewind/internal/staff"
	"github.com/tradewind-erp/tradewind/internal/stock"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	TokenManager    *auth.TokenManager
	AuthHandler     *auth.Handler
	CatalogHandler  *catalog.Handler
	PartnersHandler *partners.Handler
	StaffHandler    *staff.Handler
	OrdersHandler   *orders.Handler
	StockHandler    *stock.Handler
	ReportsHandler  *reports.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with defaults: public auth
// routes, then everything else behind token auth under /api/v1.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			params.AuthHandler.MountPublicRoutes(public)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(auth.Middleware(params.TokenManager))

			params.AuthHandler.MountProtectedRoutes(protected)
			params.CatalogHandler.MountRoutes(protected)
			params.PartnersHandler.MountRoutes(protected)
			params.StaffHandler.MountRoutes(protected)
			params.OrdersHandler.MountRoutes(protected)
			params.StockHandler.MountRoutes(protected)
			params.ReportsHandler.MountRoutes(protected)
		})
	})

	return r
}
