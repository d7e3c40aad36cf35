package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradewind-erp/tradewind/internal/app"
	"github.com/tradewind-erp/tradewind/internal/auth"
	"github.com/tradewind-erp/tradewind/internal/catalog"
	"github.com/tradewind-erp/tradewind/internal/observability"
	"github.com/tradewind-erp/tradewind/internal/orders"
	"github.com/tradewind-erp/tradewind/internal/partners"
	"github.com/tradewind-erp/tradewind/internal/platform/cache"
	"github.com/tradewind-erp/tradewind/internal/platform/db"
	"github.com/tradewind-erp/tradewind/internal/reports"
	"github.com/tradewind-erp/tradewind/internal/staff"
	"github.com/tradewind-erp/tradewind/internal/stock"
	"github.com/tradewind-erp/tradewind/internal/tenants"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// Redis is a soft dependency here: without it the report cache
	// degrades to pass-through instead of blocking startup.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	tenantRepo := tenants.NewRepository(dbpool)
	tenantService := tenants.NewService(tenantRepo)

	staffRepo := staff.NewRepository(dbpool)
	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(logger, staffService)

	authHandler := auth.NewHandler(logger, tenantService, staffService, tokenManager)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	customerRepo := partners.NewCustomerRepository(dbpool)
	customerService := partners.NewCustomerService(customerRepo)
	supplierRepo := partners.NewSupplierRepository(dbpool)
	supplierService := partners.NewSupplierService(supplierRepo)
	partnersHandler := partners.NewHandler(logger, customerService, supplierService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(logger, ordersRepo, reportCache)
	ordersHandler := orders.NewHandler(logger, ordersService)

	stockRepo := stock.NewRepository(dbpool)
	stockService := stock.NewService(logger, stockRepo, reportCache)
	stockHandler := stock.NewHandler(logger, stockService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		TokenManager:    tokenManager,
		AuthHandler:     authHandler,
		CatalogHandler:  catalogHandler,
		PartnersHandler: partnersHandler,
		StaffHandler:    staffHandler,
		OrdersHandler:   ordersHandler,
		StockHandler:    stockHandler,
		ReportsHandler:  reportsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
