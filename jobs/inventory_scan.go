package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/inventory"
)

// InventoryScanJob recomputes stock advisories from trailing-month sales.
type InventoryScanJob struct {
	Service *inventory.Service
	Logger  *slog.Logger
}

func NewInventoryScanJob(service *inventory.Service, logger *slog.Logger) *InventoryScanJob {
	return &InventoryScanJob{Service: service, Logger: logger}
}

// Handle executes the advisory scan.
func (j *InventoryScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("inventory scan: handler not configured")
	}
	start := time.Now()
	logger := j.logger()

	generated, err := j.Service.ScanInsights(ctx)
	if err != nil {
		logger.Error("insights scan failed", slog.Any("error", err))
		return err
	}

	logger.Info("completed insights scan",
		slog.Int("insights", generated),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *InventoryScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInventoryInsightsScan))
	}
	return slog.Default().With(slog.String("job", TaskInventoryInsightsScan))
}
