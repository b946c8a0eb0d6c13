package quotations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	quotations map[int64]*Quotation
	nextID     int64
	seq        int
}

func newMockRepository() *mockRepository {
	return &mockRepository{quotations: make(map[int64]*Quotation), nextID: 1}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	var out []Quotation
	for _, q := range m.quotations {
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(ctx context.Context, q Quotation) (int64, error) {
	q.ID = m.nextID
	q.CreatedAt = time.Now().UTC()
	q.UpdatedAt = q.CreatedAt
	m.quotations[q.ID] = &q
	m.nextID++
	return q.ID, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status Status, userID int64, reason *string) error {
	q, ok := m.quotations[id]
	if !ok {
		return shared.ErrNotFound
	}
	q.Status = status
	if status == StatusApproved || status == StatusRejected {
		q.ReviewedBy = &userID
		q.RejectionReason = reason
	}
	return nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("QT-%s-%04d", date.Format("0601"), m.seq), nil
}

func (m *mockRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, q := range m.quotations {
		if (q.Status == StatusDraft || q.Status == StatusSent) && q.ValidTill.Before(now) {
			q.Status = StatusExpired
			count++
		}
	}
	return count, nil
}

type mockCustomers struct {
	missing map[int64]bool
}

func (m *mockCustomers) Exists(ctx context.Context, id int64) error {
	if m.missing[id] {
		return shared.ErrNotFound
	}
	return nil
}

type mockEnquiries struct {
	shared []int64
}

func (m *mockEnquiries) MarkQuotationShared(ctx context.Context, enquiryID int64) error {
	m.shared = append(m.shared, enquiryID)
	return nil
}

func newTestService() (*Service, *mockRepository, *mockEnquiries) {
	repo := newMockRepository()
	enquiries := &mockEnquiries{}
	svc := NewService(repo, &mockCustomers{missing: map[int64]bool{}}, enquiries, 30)
	return svc, repo, enquiries
}

func validCreateRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		CustomerID: 1,
		Division:   "Furniture",
		ValidDays:  30,
		LineItems: []LineItemRequest{
			{Description: "Teak dining table", Quantity: 2, Unit: "pcs", UnitPrice: 1000, DiscountPercent: 10, TaxPercent: 18},
			{Description: "Delivery", Quantity: 1, Unit: "job", UnitPrice: 500, TaxPercent: 18},
		},
	}
}

func TestCreateComputesTotals(t *testing.T) {
	svc, _, _ := newTestService()

	q, err := svc.Create(context.Background(), validCreateRequest(), 9)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, q.Status)
	assert.Equal(t, 1, q.Version)
	assert.InDelta(t, 2714.0, q.NetTotal, 1e-9)
	assert.InDelta(t, 2714.0, q.Subtotal, 1e-9)
	assert.InDelta(t, 200.0, q.DiscountAmount, 1e-9)
	assert.InDelta(t, 414.0, q.TaxAmount, 1e-9)
	require.Len(t, q.LineItems, 2)
	assert.InDelta(t, 2124.0, q.LineItems[0].LineTotal, 1e-9)
	assert.InDelta(t, 590.0, q.LineItems[1].LineTotal, 1e-9)
	assert.True(t, q.ValidTill.After(time.Now().UTC().AddDate(0, 0, 29)))
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.LineItems = nil
	_, err := svc.Create(context.Background(), req, 9)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.LineItems[0].Quantity = 0
	_, err := svc.Create(context.Background(), req, 9)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, &mockCustomers{missing: map[int64]bool{1: true}}, nil, 30)

	_, err := svc.Create(context.Background(), validCreateRequest(), 9)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSendAdvancesEnquiry(t *testing.T) {
	svc, _, enquiries := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	enquiryID := int64(77)
	req.EnquiryID = &enquiryID
	q, err := svc.Create(ctx, req, 9)
	require.NoError(t, err)

	sent, err := svc.Send(ctx, q.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, sent.Status)
	assert.Equal(t, []int64{77}, enquiries.shared)
}

func TestApproveOnlyFromSentOrRevised(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)

	// Draft cannot be approved
	_, err = svc.Approve(ctx, q.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = svc.Send(ctx, q.ID, 9)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, q.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	// terminal: cannot approve twice
	_, err = svc.Approve(ctx, q.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)
	_, err = svc.Send(ctx, q.ID, 9)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, q.ID, 2, "   ")
	assert.ErrorIs(t, err, shared.ErrValidation)

	rejected, err := svc.Reject(ctx, q.ID, 2, "over budget")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "over budget", *rejected.RejectionReason)
}

func TestReviseCreatesNewVersion(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)
	_, err = svc.Send(ctx, q.ID, 9)
	require.NoError(t, err)

	revision, err := svc.Revise(ctx, q.ID, ReviseQuotationRequest{
		LineItems: []LineItemRequest{
			{Description: "Teak dining table", Quantity: 1, Unit: "pcs", UnitPrice: 1000, TaxPercent: 18},
		},
	}, 9)
	require.NoError(t, err)

	assert.Equal(t, 2, revision.Version)
	assert.Equal(t, StatusRevised, revision.Status)
	require.NotNil(t, revision.RevisionOf)
	assert.Equal(t, q.ID, *revision.RevisionOf)
	assert.InDelta(t, 1180.0, revision.NetTotal, 1e-9)

	// history preserved: the original record keeps its own status
	original, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, original.Status)
	assert.InDelta(t, 2714.0, original.NetTotal, 1e-9)

	// a revision can itself be approved without resending
	approved, err := svc.Approve(ctx, revision.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
}

func TestReviseIllegalFromDraft(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)

	_, err = svc.Revise(ctx, q.ID, ReviseQuotationRequest{
		LineItems: []LineItemRequest{{Description: "x", Quantity: 1, Unit: "pcs", UnitPrice: 10}},
	}, 9)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestExpiryDerivedAtRead(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)
	_, err = svc.Send(ctx, q.ID, 9)
	require.NoError(t, err)

	// force the validity window into the past; stored status stays Sent
	repo.quotations[q.ID].ValidTill = time.Now().UTC().Add(-time.Hour)

	got, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, got.Status)

	// an expired quotation cannot be approved or revised
	_, err = svc.Approve(ctx, q.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	_, err = svc.Revise(ctx, q.ID, ReviseQuotationRequest{
		LineItems: []LineItemRequest{{Description: "x", Quantity: 1, Unit: "pcs", UnitPrice: 10}},
	}, 9)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestExpireOverdueSweep(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Create(ctx, validCreateRequest(), 9)
	require.NoError(t, err)
	repo.quotations[q.ID].ValidTill = time.Now().UTC().Add(-time.Hour)

	count, err := svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, StatusExpired, repo.quotations[q.ID].Status)
}
