// Package orders derives confirmed orders from approved quotations and
// tracks payments against them.
package orders

import (
	"time"

	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
)

// Status is the production/delivery stage of an order. Stages advance
// strictly forward, one step at a time; there is no skipping and no
// moving back.
type Status string

const (
	StatusConfirmed        Status = "Order Confirmed"
	StatusDesignApproved   Status = "Design Approved"
	StatusInProduction     Status = "In Production"
	StatusReadyForDelivery Status = "Ready for Delivery"
	StatusDelivered        Status = "Delivered/Installed"
	StatusCompleted        Status = "Completed"
)

// StatusLadder fixes the only legal ordering of stages.
var StatusLadder = []Status{
	StatusConfirmed,
	StatusDesignApproved,
	StatusInProduction,
	StatusReadyForDelivery,
	StatusDelivered,
	StatusCompleted,
}

// IsValid checks if the status is a known value.
func (s Status) IsValid() bool {
	for _, st := range StatusLadder {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the immediate successor stage, or false from Completed.
func (s Status) Next() (Status, bool) {
	for i, st := range StatusLadder {
		if st == s && i+1 < len(StatusLadder) {
			return StatusLadder[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether from→to is a legal advancement.
func CanTransition(from, to Status) bool {
	next, ok := from.Next()
	return ok && next == to
}

// Order is a frozen snapshot of an approved quotation plus payment and
// delivery state. Items never change after creation; only status,
// balance and delivery fields do.
type Order struct {
	ID                   int64              `json:"id" db:"id"`
	OrderNumber          string             `json:"order_number" db:"order_number"`
	QuotationID          int64              `json:"quotation_id" db:"quotation_id"`
	CustomerID           int64              `json:"customer_id" db:"customer_id"`
	Division             string             `json:"division" db:"division"`
	OrderItems           []pricing.LineItem `json:"order_items" db:"-"`
	NetTotal             float64            `json:"net_total" db:"net_total"`
	AdvancePaid          float64            `json:"advance_paid" db:"advance_paid"`
	BalancePending       float64            `json:"balance_pending" db:"balance_pending"`
	Status               Status             `json:"status" db:"status"`
	OrderDate            time.Time          `json:"order_date" db:"order_date"`
	ExpectedDeliveryDays int                `json:"expected_delivery_days" db:"expected_delivery_days"`
	ExpectedDeliveryDate time.Time          `json:"expected_delivery_date" db:"expected_delivery_date"`
	Notes                *string            `json:"notes,omitempty" db:"notes"`
	CreatedBy            int64              `json:"created_by" db:"created_by"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" db:"updated_at"`
	Payments             []Payment          `json:"payments,omitempty" db:"-"`
}

// Payment is one payment received against an order after the advance.
type Payment struct {
	ID         int64     `json:"id" db:"id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	Amount     float64   `json:"amount" db:"amount"`
	Reference  *string   `json:"reference,omitempty" db:"reference"`
	ReceivedBy int64     `json:"received_by" db:"received_by"`
	ReceivedAt time.Time `json:"received_at" db:"received_at"`
}
