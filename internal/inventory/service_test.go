package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	mu       sync.Mutex
	items    map[int64]Item
	nextID   int64
	sales    map[string]float64
	insights []Insight
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		items:  make(map[int64]Item),
		nextID: 1,
		sales:  make(map[string]float64),
	}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Item, error) {
	i, ok := m.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := i
	return &out, nil
}

func (m *mockRepository) List(_ context.Context, _ ListItemsRequest) ([]Item, int, error) {
	all, err := m.ListAll(context.Background())
	return all, len(all), err
}

func (m *mockRepository) ListAll(_ context.Context) ([]Item, error) {
	var out []Item
	for id := int64(1); id < m.nextID; id++ {
		if i, ok := m.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, item Item) (int64, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item.ID, nil
}

func (m *mockRepository) Update(_ context.Context, item Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return shared.ErrNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockRepository) CountLowStock(_ context.Context) (int, error) {
	n := 0
	for _, i := range m.items {
		if i.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) MonthlySales(_ context.Context, itemCode string, _ time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales[itemCode], nil
}

func (m *mockRepository) ReplaceInsights(_ context.Context, insights []Insight) error {
	m.insights = insights
	return nil
}

func (m *mockRepository) ListInsights(_ context.Context) ([]Insight, error) {
	return m.insights, nil
}

func TestCreateRejectsReservedOverQuantity(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateItemRequest{
		ItemName: "Teak veneer", ItemCode: "FRN-TKV-1", Quantity: 5, Reserved: 6,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestScanInsightsAttributesSalesPerItem(t *testing.T) {
	repo := newMockRepository()
	// Stocked but never sold: slow moving.
	repo.items[1] = Item{ID: 1, ItemName: "Brass handles", ItemCode: "HRD-BRH-1",
		Quantity: 40, ReorderLevel: 10}
	// Selling 20/month against reorder level 10 with 5 on hand: both
	// reorder-needed and high-demand.
	repo.items[2] = Item{ID: 2, ItemName: "Hinges", ItemCode: "HRD-HNG-2",
		Quantity: 5, ReorderLevel: 10}
	repo.nextID = 3
	repo.sales = map[string]float64{"HRD-BRH-1": 0, "HRD-HNG-2": 20}

	svc := NewService(repo)
	n, err := svc.ScanInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	byItem := make(map[int64]map[InsightType]bool)
	for _, in := range repo.insights {
		if byItem[in.ItemID] == nil {
			byItem[in.ItemID] = make(map[InsightType]bool)
		}
		byItem[in.ItemID][in.InsightType] = true
		assert.False(t, in.GeneratedAt.IsZero())
	}

	assert.True(t, byItem[1][InsightSlowMoving])
	assert.False(t, byItem[1][InsightHighDemand])
	assert.True(t, byItem[2][InsightReorderNeeded])
	assert.True(t, byItem[2][InsightHighDemand])
	assert.False(t, byItem[2][InsightSlowMoving])
}

func TestScanInsightsReplacesPreviousRows(t *testing.T) {
	repo := newMockRepository()
	repo.insights = []Insight{{ItemID: 99, InsightType: InsightOverstock}}
	// 40 on hand at 15/month is 80 days of stock: no advisory applies.
	repo.items[1] = Item{ID: 1, ItemName: "Ply boards", ItemCode: "FRN-PLY-1",
		Quantity: 40, ReorderLevel: 10}
	repo.nextID = 2
	repo.sales = map[string]float64{"FRN-PLY-1": 15}

	svc := NewService(repo)
	n, err := svc.ScanInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, repo.insights)
}
