package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
)

// QuotationExpiryJob persists Expired status on quotations whose validity
// window has passed. Reads already treat overdue quotations as expired;
// the sweep makes the stored rows agree.
type QuotationExpiryJob struct {
	Service *quotations.Service
	Logger  *slog.Logger
}

func NewQuotationExpiryJob(service *quotations.Service, logger *slog.Logger) *QuotationExpiryJob {
	return &QuotationExpiryJob{Service: service, Logger: logger}
}

// Handle executes the expiry sweep.
func (j *QuotationExpiryJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("quotation expiry: handler not configured")
	}
	start := time.Now()
	logger := j.logger()

	expired, err := j.Service.ExpireOverdue(ctx)
	if err != nil {
		logger.Error("expiry sweep failed", slog.Any("error", err))
		return err
	}

	logger.Info("completed expiry sweep",
		slog.Int64("expired", expired),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *QuotationExpiryJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskQuotationExpirySweep))
	}
	return slog.Default().With(slog.String("job", TaskQuotationExpirySweep))
}
