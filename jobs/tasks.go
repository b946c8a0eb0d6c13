package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskQuotationExpirySweep persists Expired status on overdue
	// quotations. Scheduled daily.
	TaskQuotationExpirySweep = "quotation:expiry_sweep"
	// TaskInventoryInsightsScan recomputes stock advisories. Scheduled
	// hourly.
	TaskInventoryInsightsScan = "inventory:insights_scan"
	// TaskLowStockAlert checks reservations for a confirmed order against
	// stock levels.
	TaskLowStockAlert = "inventory:low_stock_alert"
)

// LowStockAlertPayload identifies the order whose items should be checked.
type LowStockAlertPayload struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// NewQuotationExpirySweepTask constructs the daily sweep task.
func NewQuotationExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TaskQuotationExpirySweep, nil)
}

// NewInventoryInsightsScanTask constructs the advisory scan task.
func NewInventoryInsightsScanTask() *asynq.Task {
	return asynq.NewTask(TaskInventoryInsightsScan, nil)
}

// NewLowStockAlertTask constructs a low stock check for one order.
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, data), nil
}
