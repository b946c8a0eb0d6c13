package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-crm/meridian-crm/internal/inventory"
	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
)

// LowStockAlertJob compares a confirmed order's line items against current
// stock and logs a warning for every item left at or below its reorder
// level. Alerts are advisory; the order itself is never blocked.
type LowStockAlertJob struct {
	Orders    *orders.Service
	Inventory inventory.Repository
	Logger    *slog.Logger
}

func NewLowStockAlertJob(ordersService *orders.Service, inventoryRepo inventory.Repository, logger *slog.Logger) *LowStockAlertJob {
	return &LowStockAlertJob{Orders: ordersService, Inventory: inventoryRepo, Logger: logger}
}

// Handle executes the stock check for one order.
func (j *LowStockAlertJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Orders == nil || j.Inventory == nil {
		return errors.New("low stock alert: handler not configured")
	}
	start := time.Now()
	logger := j.logger()

	var payload LowStockAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("low stock alert: decode payload: %w", err)
	}

	order, err := j.Orders.Get(ctx, payload.OrderID)
	if err != nil {
		logger.Error("load order failed",
			slog.Int64("order_id", payload.OrderID),
			slog.Any("error", err),
		)
		return err
	}

	items, err := j.Inventory.ListAll(ctx)
	if err != nil {
		logger.Error("load inventory failed", slog.Any("error", err))
		return err
	}
	byCode := make(map[string]inventory.Item, len(items))
	for _, item := range items {
		byCode[item.ItemCode] = item
	}

	alerts := 0
	for _, line := range order.OrderItems {
		if line.ProductCode == nil {
			continue
		}
		item, ok := byCode[*line.ProductCode]
		if !ok {
			continue
		}
		if item.IsLowStock() {
			alerts++
			logger.Warn("low stock after order confirmation",
				slog.String("order_number", order.OrderNumber),
				slog.String("item_code", item.ItemCode),
				slog.String("item_name", item.ItemName),
				slog.Int("available", item.Available()),
				slog.Int("reorder_level", item.ReorderLevel),
			)
		}
	}

	logger.Info("completed stock check",
		slog.String("order_number", order.OrderNumber),
		slog.Int("alerts", alerts),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *LowStockAlertJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockAlert))
	}
	return slog.Default().With(slog.String("job", TaskLowStockAlert))
}
