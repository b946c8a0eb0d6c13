package jobs

import (
	"context"

	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
)

// OrderNotifier enqueues follow-up work when an order is confirmed.
type OrderNotifier struct {
	Client *Client
}

// OrderConfirmed queues the low stock check for the new order.
func (n *OrderNotifier) OrderConfirmed(ctx context.Context, order *orders.Order) error {
	if n == nil || n.Client == nil || order == nil {
		return nil
	}
	_, err := n.Client.EnqueueLowStockAlert(ctx, LowStockAlertPayload{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	})
	return err
}
