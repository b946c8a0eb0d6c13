package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
	"github.com/meridian-crm/meridian-crm/internal/sales/quotations"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	orders   map[int64]Order
	payments map[int64][]Payment
	nextID   int64
	seq      int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders:   make(map[int64]Order),
		payments: make(map[int64][]Payment),
		nextID:   1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := o
	out.OrderItems = append([]pricing.LineItem(nil), o.OrderItems...)
	out.Payments = append([]Payment(nil), m.payments[id]...)
	return &out, nil
}

func (m *mockRepository) List(_ context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		if req.Status != nil && o.Status != *req.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, o Order) (int64, error) {
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status Status) error {
	o, ok := m.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *mockRepository) UpdateBalance(_ context.Context, id int64, balance float64) error {
	o, ok := m.orders[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.BalancePending = balance
	m.orders[id] = o
	return nil
}

func (m *mockRepository) InsertPayment(_ context.Context, p Payment) error {
	m.payments[p.OrderID] = append(m.payments[p.OrderID], p)
	return nil
}

func (m *mockRepository) GenerateNumber(_ context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("ORD-%s-%04d", date.Format("0601"), m.seq), nil
}

type mockQuotations struct {
	quotes map[int64]*quotations.Quotation
}

func (m *mockQuotations) Get(_ context.Context, id int64) (*quotations.Quotation, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := *q
	out.LineItems = append([]pricing.LineItem(nil), q.LineItems...)
	return &out, nil
}

type mockCustomers struct {
	completions map[int64]float64
}

func (m *mockCustomers) RecordOrderCompletion(_ context.Context, customerID int64, amount float64) error {
	if m.completions == nil {
		m.completions = make(map[int64]float64)
	}
	m.completions[customerID] += amount
	return nil
}

func approvedQuotation() *quotations.Quotation {
	items, totals := pricing.Compute([]pricing.LineItem{
		{ItemNo: 1, Description: "Modular wardrobe", Quantity: 2, Unit: "nos", UnitPrice: 1000, DiscountPercent: 10, TaxPercent: 18},
	})
	return &quotations.Quotation{
		ID:             7,
		QuoteNumber:    "QT-2608-0001",
		CustomerID:     42,
		Division:       "Interiors",
		Version:        1,
		Status:         quotations.StatusApproved,
		LineItems:      items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		NetTotal:       totals.NetTotal,
		ValidTill:      time.Now().UTC().AddDate(0, 0, 30),
	}
}

func newTestService(repo *mockRepository, quotes *mockQuotations, customers *mockCustomers) *Service {
	return NewService(repo, quotes, customers, nil)
}

func TestCreateFromApprovedQuotation(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		AdvancePaid:          1000,
		ExpectedDeliveryDays: 45,
	}, 3)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, order.Status)
	assert.Equal(t, int64(7), order.QuotationID)
	assert.Equal(t, int64(42), order.CustomerID)
	assert.InDelta(t, 2714.0, order.NetTotal, 0.001)
	assert.InDelta(t, 1000.0, order.AdvancePaid, 0.001)
	assert.InDelta(t, 1714.0, order.BalancePending, 0.001)
	assert.Len(t, order.OrderItems, 1)
	assert.Contains(t, order.OrderNumber, "ORD-")
	assert.Equal(t, 45, order.ExpectedDeliveryDays)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 45), order.ExpectedDeliveryDate, time.Minute)
}

func TestCreateRequiresApprovedQuotation(t *testing.T) {
	for _, status := range []quotations.Status{
		quotations.StatusDraft,
		quotations.StatusSent,
		quotations.StatusRevised,
		quotations.StatusRejected,
		quotations.StatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newMockRepository()
			quote := approvedQuotation()
			quote.Status = status
			svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

			_, err := svc.Create(context.Background(), CreateOrderRequest{
				QuotationID:          7,
				ExpectedDeliveryDays: 30,
			}, 3)
			assert.ErrorIs(t, err, shared.ErrPrecondition)
		})
	}
}

func TestCreateRejectsAdvanceAboveOrderValue(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		AdvancePaid:          quote.NetTotal + 0.01,
		ExpectedDeliveryDays: 30,
	}, 3)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateUnknownQuotation(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{}}, &mockCustomers{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          99,
		ExpectedDeliveryDays: 30,
	}, 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderItemsSnapshotIndependentOfQuotation(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)

	quote.LineItems[0].Description = "mutated after the fact"
	quote.LineItems[0].UnitPrice = 999999

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Modular wardrobe", got.OrderItems[0].Description)
	assert.InDelta(t, 1000.0, got.OrderItems[0].UnitPrice, 0.001)
}

func TestRecordPaymentReducesBalanceToZero(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		AdvancePaid:          1000,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)
	require.InDelta(t, 1714.0, order.BalancePending, 0.001)

	ref := "NEFT-88121"
	updated, err := svc.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{Amount: 1714, Reference: &ref}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, updated.BalancePending, 0.001)
	require.Len(t, updated.Payments, 1)
	assert.InDelta(t, 1714.0, updated.Payments[0].Amount, 0.001)
	assert.Equal(t, int64(5), updated.Payments[0].ReceivedBy)

	// Nothing left to pay: even one more rupee is an overpayment.
	_, err = svc.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{Amount: 1}, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordPaymentRejectsOverpaymentAndNonPositive(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		AdvancePaid:          1000,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{Amount: 1715}, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{Amount: 0}, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{Amount: -5}, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1714.0, got.BalancePending, 0.001)
	assert.Empty(t, got.Payments)
}

func TestAdvanceStatusOneStepAtATime(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	customers := &mockCustomers{}
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, customers)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)

	// Skipping stages is rejected.
	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusDelivered)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	// Walking the ladder in sequence succeeds.
	for _, next := range []Status{
		StatusDesignApproved,
		StatusInProduction,
		StatusReadyForDelivery,
		StatusDelivered,
		StatusCompleted,
	} {
		got, err := svc.AdvanceStatus(context.Background(), order.ID, next)
		require.NoError(t, err, "advancing to %s", next)
		assert.Equal(t, next, got.Status)
	}

	// Terminal: no further movement, and no going back.
	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusCompleted)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusConfirmed)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestAdvanceStatusRejectsBackward(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, &mockCustomers{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusDesignApproved)
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusConfirmed)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = svc.AdvanceStatus(context.Background(), order.ID, Status("Cancelled"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCompletionRollsIntoCustomerLifetimeValue(t *testing.T) {
	repo := newMockRepository()
	quote := approvedQuotation()
	customers := &mockCustomers{}
	svc := newTestService(repo, &mockQuotations{quotes: map[int64]*quotations.Quotation{7: quote}}, customers)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		QuotationID:          7,
		ExpectedDeliveryDays: 30,
	}, 3)
	require.NoError(t, err)

	for _, next := range []Status{
		StatusDesignApproved, StatusInProduction, StatusReadyForDelivery, StatusDelivered,
	} {
		_, err = svc.AdvanceStatus(context.Background(), order.ID, next)
		require.NoError(t, err)
	}
	assert.Empty(t, customers.completions)

	_, err = svc.AdvanceStatus(context.Background(), order.ID, StatusCompleted)
	require.NoError(t, err)
	assert.InDelta(t, quote.NetTotal, customers.completions[42], 0.001)
}
