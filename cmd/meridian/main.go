package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/app"
	"github.com/meridian-crm/meridian-crm/internal/attendance"
	"github.com/meridian-crm/meridian-crm/internal/auth"
	"github.com/meridian-crm/meridian-crm/internal/businessareas"
	"github.com/meridian-crm/meridian-crm/internal/crm/customers"
	"github.com/meridian-crm/meridian-crm/internal/crm/enquiries"
	"github.com/meridian-crm/meridian-crm/internal/dashboard"
	"github.com/meridian-crm/meridian-crm/internal/finance/pettycash"
	"github.com/meridian-crm/meridian-crm/internal/inventory"
	"github.com/meridian-crm/meridian-crm/internal/observability"
	"github.com/meridian-crm/meridian-crm/internal/platform/cache"
	"github.com/meridian-crm/meridian-crm/internal/platform/db"
	"github.com/meridian-crm/meridian-crm/internal/rbac"
	"github.com/meridian-crm/meridian-crm/internal/reports"
	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/meridian-crm/meridian-crm/internal/uploads"
	"github.com/meridian-crm/meridian-crm/jobs"
	"github.com/meridian-crm/meridian-crm/migrations"
)

// customerGate adapts the customer service's existence check to the
// error-only port the quotation flow expects.
type customerGate struct {
	customers *customers.Service
}

func (g customerGate) Exists(ctx context.Context, id int64) error {
	ok, err := g.customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: customer %d", shared.ErrNotFound, id)
	}
	return nil
}

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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(pool, migrations.Files); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.TokenTTL)

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, sessionManager)
	authHandler := auth.NewHandler(logger, authService)

	areasRepo := businessareas.NewRepository(pool)
	areasService := businessareas.NewService(areasRepo)
	areasHandler := businessareas.NewHandler(logger, areasService)

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(customersRepo)
	customersHandler := customers.NewHandler(logger, customersService)

	enquiriesRepo := enquiries.NewRepository(pool)
	enquiriesService := enquiries.NewService(enquiriesRepo, customersService)
	enquiriesHandler := enquiries.NewHandler(logger, enquiriesService)

	quotationsRepo := quotations.NewRepository(pool)
	quotationsService := quotations.NewService(quotationsRepo,
		customerGate{customers: customersService}, enquiriesService, cfg.QuotationValidDays)
	quotationsHandler := quotations.NewHandler(logger, quotationsService)

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, quotationsService, customersService,
		&jobs.OrderNotifier{Client: jobClient})
	ordersHandler := orders.NewHandler(logger, ordersService)

	pettyCashRepo := pettycash.NewRepository(pool)
	pettyCashService := pettycash.NewService(pettyCashRepo, areasService)
	pettyCashHandler := pettycash.NewHandler(logger, pettyCashService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	attendanceRepo := attendance.NewRepository(pool)
	attendanceService := attendance.NewService(attendanceRepo)
	attendanceHandler := attendance.NewHandler(logger, attendanceService)

	dashboardRepo := dashboard.NewRepository(pool)
	dashboardService := dashboard.NewService(dashboardRepo, redisClient, cfg.DashboardCacheTTL)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	reportsRepo := reports.NewRepository(pool)
	reportsService := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(logger, reportsService)

	uploadsRepo := uploads.NewRepository(pool)
	uploadsService := uploads.NewService(uploadsRepo, cfg.UploadDir, cfg.UploadMaxSize)
	uploadsHandler := uploads.NewHandler(logger, uploadsService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		SessionManager:       sessionManager,
		AuthHandler:          authHandler,
		BusinessAreasHandler: areasHandler,
		CustomersHandler:     customersHandler,
		EnquiriesHandler:     enquiriesHandler,
		QuotationsHandler:    quotationsHandler,
		OrdersHandler:        ordersHandler,
		PettyCashHandler:     pettyCashHandler,
		InventoryHandler:     inventoryHandler,
		AttendanceHandler:    attendanceHandler,
		DashboardHandler:     dashboardHandler,
		ReportsHandler:       reportsHandler,
		UploadsHandler:       uploadsHandler,
		RBACMiddleware:       rbac.Middleware{},
		Metrics:              metrics,
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
