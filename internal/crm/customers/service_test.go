package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	customers map[int64]Customer
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: make(map[int64]Customer), nextID: 1}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := c
	return &out, nil
}

func (m *mockRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.customers[id]
	return ok, nil
}

func (m *mockRepository) List(_ context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range m.customers {
		if req.LifecycleStage != nil && c.LifecycleStage != *req.LifecycleStage {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, c Customer) (int64, error) {
	for _, existing := range m.customers {
		if existing.Phone == c.Phone {
			return 0, shared.ErrDuplicate
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.customers[c.ID] = c
	return c.ID, nil
}

func (m *mockRepository) Update(_ context.Context, c Customer) error {
	if _, ok := m.customers[c.ID]; !ok {
		return shared.ErrNotFound
	}
	m.customers[c.ID] = c
	return nil
}

func (m *mockRepository) AddLifetimeValue(_ context.Context, id int64, amount float64, stage LifecycleStage) error {
	c, ok := m.customers[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.LifetimeValue += amount
	if c.LifecycleStage == StageLead || c.LifecycleStage == StageProspect {
		c.LifecycleStage = stage
	}
	m.customers[id] = c
	return nil
}

func TestCreateStartsAsLead(t *testing.T) {
	svc := NewService(newMockRepository())

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeIndividual,
		FullName:     "Asha Menon",
		Phone:        "9876543210",
		Source:       "Walk-in",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, StageLead, c.LifecycleStage)
	assert.Zero(t, c.LifetimeValue)
	assert.NotNil(t, c.Divisions)
	assert.NotNil(t, c.Tags)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: CustomerType("Reseller"),
		FullName:     "Asha Menon",
		Phone:        "9876543210",
		Source:       "Walk-in",
	}, 1)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateDuplicatePhone(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeIndividual, FullName: "Asha Menon", Phone: "9876543210", Source: "Walk-in",
	}, 1)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeBuilder, FullName: "Someone Else", Phone: "9876543210", Source: "Website",
	}, 1)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestOrderCompletionGrowsLifetimeValueAndPromotes(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeArchitect, FullName: "Ravi Shah", Phone: "9000000001", Source: "Architect Referral",
	}, 1)
	require.NoError(t, err)
	require.Equal(t, StageLead, c.LifecycleStage)

	require.NoError(t, svc.RecordOrderCompletion(context.Background(), c.ID, 2714))
	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2714.0, got.LifetimeValue, 0.001)
	assert.Equal(t, StageCustomer, got.LifecycleStage)

	// Accumulator only grows across repeat orders.
	require.NoError(t, svc.RecordOrderCompletion(context.Background(), c.ID, 5000))
	got, err = svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7714.0, got.LifetimeValue, 0.001)
}

func TestOrderCompletionKeepsVIPStage(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeCorporate, FullName: "Build Corp", Phone: "9000000002", Source: "Existing",
	}, 1)
	require.NoError(t, err)

	vip := StageVIP
	_, err = svc.Update(context.Background(), c.ID, UpdateCustomerRequest{LifecycleStage: &vip})
	require.NoError(t, err)

	require.NoError(t, svc.RecordOrderCompletion(context.Background(), c.ID, 100000))
	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, StageVIP, got.LifecycleStage)
	assert.InDelta(t, 100000.0, got.LifetimeValue, 0.001)
}

func TestOrderCompletionRejectsNegativeAmount(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeIndividual, FullName: "Asha Menon", Phone: "9876543210", Source: "Walk-in",
	}, 1)
	require.NoError(t, err)

	err = svc.RecordOrderCompletion(context.Background(), c.ID, -1)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := NewService(newMockRepository())

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		CustomerType: TypeIndividual, FullName: "Asha Menon", Phone: "9876543210", Source: "Walk-in",
	}, 1)
	require.NoError(t, err)

	city := "Kochi"
	updated, err := svc.Update(context.Background(), c.ID, UpdateCustomerRequest{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Asha Menon", updated.FullName)
	assert.Equal(t, "9876543210", updated.Phone)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Kochi", *updated.City)

	bad := LifecycleStage("Churned")
	_, err = svc.Update(context.Background(), c.ID, UpdateCustomerRequest{LifecycleStage: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
