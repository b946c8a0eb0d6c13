package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLowStockBoundary(t *testing.T) {
	for _, tc := range []struct {
		name     string
		quantity int
		reserved int
		reorder  int
		low      bool
	}{
		{"well above", 100, 0, 10, false},
		{"one above", 11, 0, 10, false},
		{"exactly at boundary", 10, 0, 10, true},
		{"below", 9, 0, 10, true},
		{"reserved pushes below", 15, 6, 10, true},
		{"reserved keeps above", 20, 5, 10, false},
		{"zero everything", 0, 0, 0, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			item := Item{Quantity: tc.quantity, Reserved: tc.reserved, ReorderLevel: tc.reorder}
			assert.Equal(t, tc.low, item.IsLowStock())
		})
	}
}

func TestAvailableSubtractsReserved(t *testing.T) {
	item := Item{Quantity: 12, Reserved: 5}
	assert.Equal(t, 7, item.Available())
}

func TestDaysOfStock(t *testing.T) {
	assert.Equal(t, 999, DaysOfStock(100, 0))
	assert.Equal(t, 30, DaysOfStock(10, 10))
	assert.Equal(t, 60, DaysOfStock(20, 10))
	assert.Equal(t, 3, DaysOfStock(1, 10))
}

func TestClassifyReorderNeeded(t *testing.T) {
	item := Item{ID: 1, ItemName: "Teak veneer", Quantity: 8, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 4)

	require.Len(t, insights, 1)
	assert.Equal(t, InsightReorderNeeded, insights[0].InsightType)
	assert.Equal(t, PriorityHigh, insights[0].Priority)
}

func TestClassifyReorderUrgentBelowHalf(t *testing.T) {
	item := Item{ID: 1, ItemName: "Teak veneer", Quantity: 4, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 4)

	require.Len(t, insights, 1)
	assert.Equal(t, InsightReorderNeeded, insights[0].InsightType)
	assert.Equal(t, PriorityUrgent, insights[0].Priority)
}

func TestClassifyOverstock(t *testing.T) {
	// 100 available at 10/month is 300 days of stock, well over reorder*2.
	item := Item{ID: 2, ItemName: "Laminate sheets", Quantity: 100, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 10)

	require.NotEmpty(t, insights)
	assert.Equal(t, InsightOverstock, insights[0].InsightType)
	assert.Equal(t, 300, insights[0].DaysOfStock)
}

func TestClassifySlowMovingWhenNoSales(t *testing.T) {
	item := Item{ID: 3, ItemName: "Brass handles", Quantity: 40, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 0)

	require.Len(t, insights, 1)
	assert.Equal(t, InsightSlowMoving, insights[0].InsightType)
	assert.Equal(t, PriorityLow, insights[0].Priority)
}

func TestClassifyHighDemandCanStackWithReorder(t *testing.T) {
	// Selling 20/month against a reorder level of 10 with only 5 available.
	item := Item{ID: 4, ItemName: "Hinges", Quantity: 5, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 20)

	types := make(map[InsightType]bool)
	for _, in := range insights {
		types[in.InsightType] = true
	}
	assert.True(t, types[InsightReorderNeeded])
	assert.True(t, types[InsightHighDemand])
}

func TestClassifyHealthyItemHasNoInsights(t *testing.T) {
	// 50 available at 25/month is 60 days of stock: neither over nor under.
	item := Item{ID: 5, ItemName: "Ply boards", Quantity: 50, Reserved: 0, ReorderLevel: 10}
	insights := Classify(item, 25)

	for _, in := range insights {
		assert.NotEqual(t, InsightReorderNeeded, in.InsightType)
		assert.NotEqual(t, InsightOverstock, in.InsightType)
		assert.NotEqual(t, InsightSlowMoving, in.InsightType)
	}
}
