package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/app"
	"github.com/meridian-crm/meridian-crm/internal/crm/customers"
	"github.com/meridian-crm/meridian-crm/internal/crm/enquiries"
	"github.com/meridian-crm/meridian-crm/internal/inventory"
	jobmetrics "github.com/meridian-crm/meridian-crm/internal/jobs"
	"github.com/meridian-crm/meridian-crm/internal/platform/cache"
	"github.com/meridian-crm/meridian-crm/internal/platform/db"
	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/meridian-crm/meridian-crm/jobs"
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
		return shared.ErrNotFound
	}
	return nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(customersRepo)

	enquiriesRepo := enquiries.NewRepository(pool)
	enquiriesService := enquiries.NewService(enquiriesRepo, customersService)

	quotationsRepo := quotations.NewRepository(pool)
	quotationsService := quotations.NewService(quotationsRepo,
		customerGate{customers: customersService}, enquiriesService, cfg.QuotationValidDays)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo)

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, quotationsService, customersService, nil)

	expiryJob := jobs.NewQuotationExpiryJob(quotationsService, logger)
	scanJob := jobs.NewInventoryScanJob(inventoryService, logger)
	lowStockJob := jobs.NewLowStockAlertJob(ordersService, inventoryRepo, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Metrics:   jobmetrics.NewMetrics(nil),
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskQuotationExpirySweep, Handler: expiryJob.Handle},
			{Type: jobs.TaskInventoryInsightsScan, Handler: scanJob.Handle},
			{Type: jobs.TaskLowStockAlert, Handler: lowStockJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "30 0 * * *", Task: jobs.NewQuotationExpirySweepTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 * * * *", Task: jobs.NewInventoryInsightsScanTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
