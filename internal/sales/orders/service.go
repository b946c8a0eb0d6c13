package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// QuotationPort is the slice of the quotations module the order flow
// needs: resolving the source quotation with its derived status.
type QuotationPort interface {
	Get(ctx context.Context, id int64) (*quotations.Quotation, error)
}

// CustomerPort receives the completion hook that advances a customer's
// lifetime value.
type CustomerPort interface {
	RecordOrderCompletion(ctx context.Context, customerID int64, amount float64) error
}

// Notifier is invoked after an order is confirmed, e.g. to queue a
// stock-reservation alert. Optional.
type Notifier interface {
	OrderConfirmed(ctx context.Context, order *Order) error
}

// Service owns order derivation, payment tracking and stage advancement.
type Service struct {
	repo       Repository
	quotations QuotationPort
	customers  CustomerPort
	notifier   Notifier
}

// NewService constructs a Service. notifier may be nil.
func NewService(repo Repository, quotationPort QuotationPort, customers CustomerPort, notifier Notifier) *Service {
	return &Service{repo: repo, quotations: quotationPort, customers: customers, notifier: notifier}
}

// Create derives an order from an Approved quotation. Order items are an
// independent snapshot: edits to the quotation after this point, even
// though the lifecycle forbids them, can never reach the order.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest, createdBy int64) (*Order, error) {
	quotation, err := s.quotations.Get(ctx, req.QuotationID)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if quotation.Status != quotations.StatusApproved {
		return nil, fmt.Errorf("%w: quotation %d is %s, order requires Approved",
			shared.ErrPrecondition, req.QuotationID, quotation.Status)
	}
	if req.AdvancePaid < 0 {
		return nil, fmt.Errorf("%w: advance cannot be negative", shared.ErrValidation)
	}
	if req.AdvancePaid > quotation.NetTotal {
		return nil, fmt.Errorf("%w: advance %.2f exceeds order value %.2f",
			shared.ErrValidation, req.AdvancePaid, quotation.NetTotal)
	}

	now := time.Now().UTC()
	orderNumber, err := s.repo.GenerateNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	items := make([]pricing.LineItem, len(quotation.LineItems))
	copy(items, quotation.LineItems)

	order := Order{
		OrderNumber:          orderNumber,
		QuotationID:          quotation.ID,
		CustomerID:           quotation.CustomerID,
		Division:             quotation.Division,
		OrderItems:           items,
		NetTotal:             quotation.NetTotal,
		AdvancePaid:          req.AdvancePaid,
		BalancePending:       quotation.NetTotal - req.AdvancePaid,
		Status:               StatusConfirmed,
		OrderDate:            now,
		ExpectedDeliveryDays: req.ExpectedDeliveryDays,
		ExpectedDeliveryDate: now.AddDate(0, 0, req.ExpectedDeliveryDays),
		Notes:                req.Notes,
		CreatedBy:            createdBy,
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	created, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.OrderConfirmed(ctx, created); err != nil {
			return nil, fmt.Errorf("notify order confirmed: %w", err)
		}
	}
	return created, nil
}

// RecordPayment applies a payment against the pending balance. The
// balance never goes negative: overpayment is rejected outright.
func (s *Service) RecordPayment(ctx context.Context, orderID int64, req RecordPaymentRequest, receivedBy int64) (*Order, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", shared.ErrValidation)
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		order, err := repo.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if req.Amount > order.BalancePending {
			return fmt.Errorf("%w: payment %.2f exceeds pending balance %.2f",
				shared.ErrValidation, req.Amount, order.BalancePending)
		}
		if err := repo.InsertPayment(ctx, Payment{
			OrderID:    orderID,
			Amount:     req.Amount,
			Reference:  req.Reference,
			ReceivedBy: receivedBy,
			ReceivedAt: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return repo.UpdateBalance(ctx, orderID, order.BalancePending-req.Amount)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, orderID)
}

// AdvanceStatus moves the order exactly one stage forward. Completing an
// order rolls its value into the customer's lifetime total.
func (s *Service) AdvanceStatus(ctx context.Context, orderID int64, next Status) (*Order, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, next)
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %s cannot move to %s", shared.ErrInvalidTransition, order.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if next == StatusCompleted && s.customers != nil {
		if err := s.customers.RecordOrderCompletion(ctx, order.CustomerID, order.NetTotal); err != nil {
			return nil, fmt.Errorf("record completion: %w", err)
		}
	}
	return s.repo.Get(ctx, orderID)
}

// Get fetches an order with its payments.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns orders matching the filter.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}
