package enquiries

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
	enquiries map[int64]Enquiry
	nextID    int64
	seq       int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{enquiries: make(map[int64]Enquiry), nextID: 1}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Enquiry, error) {
	e, ok := m.enquiries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := e
	return &out, nil
}

func (m *mockRepository) List(_ context.Context, req ListEnquiriesRequest) ([]Enquiry, int, error) {
	var out []Enquiry
	for _, e := range m.enquiries {
		if req.Status != nil && e.Status != *req.Status {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *mockRepository) ListOpen(_ context.Context) ([]Enquiry, error) {
	var out []Enquiry
	for _, e := range m.enquiries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, e Enquiry) (int64, error) {
	e.ID = m.nextID
	m.nextID++
	m.enquiries[e.ID] = e
	return e.ID, nil
}

func (m *mockRepository) Update(_ context.Context, e Enquiry) error {
	if _, ok := m.enquiries[e.ID]; !ok {
		return shared.ErrNotFound
	}
	m.enquiries[e.ID] = e
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status Stage, lostReason *string) error {
	e, ok := m.enquiries[id]
	if !ok {
		return shared.ErrNotFound
	}
	e.Status = status
	e.LostReason = lostReason
	m.enquiries[id] = e
	return nil
}

func (m *mockRepository) GenerateNumber(_ context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("ENQ-%s-%04d", date.Format("0601"), m.seq), nil
}

type mockCustomers struct {
	known map[int64]bool
}

func (m *mockCustomers) Exists(_ context.Context, id int64) (bool, error) {
	return m.known[id], nil
}

func newTestService(repo *mockRepository) *Service {
	return NewService(repo, &mockCustomers{known: map[int64]bool{42: true}})
}

func createEnquiry(t *testing.T, svc *Service) *Enquiry {
	t.Helper()
	e, err := svc.Create(context.Background(), CreateEnquiryRequest{
		CustomerID:  42,
		Division:    "Furniture",
		Requirement: "3BHK modular interiors",
		Source:      "Walk-in",
	}, 1)
	require.NoError(t, err)
	return e
}

func TestCreateStartsAtNewEnquiry(t *testing.T) {
	svc := newTestService(newMockRepository())
	e := createEnquiry(t, svc)

	assert.Equal(t, StageNew, e.Status)
	assert.Equal(t, PriorityMedium, e.Priority)
	assert.Contains(t, e.EnquiryNumber, "ENQ-")
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateEnquiryRequest{
		CustomerID:  99,
		Division:    "Furniture",
		Requirement: "wardrobes",
		Source:      "Website",
	}, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateRejectsInvertedBudgetRange(t *testing.T) {
	svc := newTestService(newMockRepository())

	low, high := 50000.0, 20000.0
	_, err := svc.Create(context.Background(), CreateEnquiryRequest{
		CustomerID:  42,
		Division:    "Furniture",
		Requirement: "kitchen",
		Source:      "Website",
		BudgetMin:   &low,
		BudgetMax:   &high,
	}, 1)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestMoveAcrossBoard(t *testing.T) {
	svc := newTestService(newMockRepository())
	e := createEnquiry(t, svc)

	moved, err := svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageSiteVisit})
	require.NoError(t, err)
	assert.Equal(t, StageSiteVisit, moved.Status)

	// Cards can also move backward between live stages.
	moved, err = svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageContacted})
	require.NoError(t, err)
	assert.Equal(t, StageContacted, moved.Status)

	_, err = svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: Stage("Archived")})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestLostRequiresReasonAndIsTerminal(t *testing.T) {
	svc := newTestService(newMockRepository())
	e := createEnquiry(t, svc)

	_, err := svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageLost})
	assert.ErrorIs(t, err, shared.ErrValidation)

	blank := "   "
	_, err = svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageLost, LostReason: &blank})
	assert.ErrorIs(t, err, shared.ErrValidation)

	reason := "went with a competitor"
	lost, err := svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageLost, LostReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, StageLost, lost.Status)
	require.NotNil(t, lost.LostReason)
	assert.Equal(t, reason, *lost.LostReason)

	_, err = svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageContacted})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = svc.Update(context.Background(), e.ID, UpdateEnquiryRequest{})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestMarkQuotationShared(t *testing.T) {
	svc := newTestService(newMockRepository())
	e := createEnquiry(t, svc)

	require.NoError(t, svc.MarkQuotationShared(context.Background(), e.ID))
	got, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, StageQuotationShared, got.Status)

	// Idempotent for repeat sends.
	require.NoError(t, svc.MarkQuotationShared(context.Background(), e.ID))
}

func TestMarkQuotationSharedLeavesLostAlone(t *testing.T) {
	svc := newTestService(newMockRepository())
	e := createEnquiry(t, svc)

	reason := "budget cancelled"
	_, err := svc.Move(context.Background(), e.ID, MoveEnquiryRequest{Status: StageLost, LostReason: &reason})
	require.NoError(t, err)

	require.NoError(t, svc.MarkQuotationShared(context.Background(), e.ID))
	got, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, StageLost, got.Status)
}

func TestKanbanGroupsByStageInColumnOrder(t *testing.T) {
	svc := newTestService(newMockRepository())
	first := createEnquiry(t, svc)
	second := createEnquiry(t, svc)
	createEnquiry(t, svc)

	_, err := svc.Move(context.Background(), first.ID, MoveEnquiryRequest{Status: StageContacted})
	require.NoError(t, err)
	_, err = svc.Move(context.Background(), second.ID, MoveEnquiryRequest{Status: StageDesignOngoing})
	require.NoError(t, err)

	columns, err := svc.Kanban(context.Background())
	require.NoError(t, err)
	require.Len(t, columns, len(PipelineStages))

	byStage := make(map[Stage]int)
	for i, col := range columns {
		assert.Equal(t, PipelineStages[i], col.Stage)
		assert.NotNil(t, col.Enquiries)
		byStage[col.Stage] = len(col.Enquiries)
	}
	assert.Equal(t, 1, byStage[StageNew])
	assert.Equal(t, 1, byStage[StageContacted])
	assert.Equal(t, 1, byStage[StageDesignOngoing])
	assert.Equal(t, 0, byStage[StageLost])
}
