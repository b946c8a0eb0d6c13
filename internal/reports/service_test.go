package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	buckets []salesBucket
	totals  profitLossTotals
	counts  []StatusCount
}

func (m *mockRepository) SalesBuckets(_ context.Context, _, _ time.Time, _ bool) ([]salesBucket, error) {
	return m.buckets, nil
}

func (m *mockRepository) ProfitLossTotals(_ context.Context, _, _ time.Time) (*profitLossTotals, error) {
	out := m.totals
	return &out, nil
}

func (m *mockRepository) OrderStatusCounts(_ context.Context) ([]StatusCount, error) {
	return m.counts, nil
}

func window() (time.Time, time.Time) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func TestFormatINRGroupsIndianStyle(t *testing.T) {
	assert.Equal(t, "₹12,34,567.50", FormatINR(1234567.5))
	assert.Equal(t, "₹2,714.00", FormatINR(2714))
	assert.Equal(t, "₹0.00", FormatINR(0))
}

func TestSalesReportTotalsAcrossBuckets(t *testing.T) {
	svc := NewService(&mockRepository{buckets: []salesBucket{
		{Period: "2026-08", Division: "Furniture", Orders: 3, Revenue: 250000},
		{Period: "2026-08", Division: "Doors & Windows", Orders: 1, Revenue: 80000},
	}})

	from, to := window()
	report, err := svc.Sales(context.Background(), from, to, "month")
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.InDelta(t, 330000.0, report.TotalRevenue, 0.001)
	assert.Equal(t, "₹3,30,000.00", report.TotalFormatted)
	assert.Equal(t, "₹2,50,000.00", report.Rows[0].RevenueFormatted)
}

func TestSalesReportValidatesWindowAndGrouping(t *testing.T) {
	svc := NewService(&mockRepository{})
	from, to := window()

	_, err := svc.Sales(context.Background(), to, from, "day")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Sales(context.Background(), from, to, "week")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestProfitLossNetsCollectionsAgainstOutflow(t *testing.T) {
	svc := NewService(&mockRepository{totals: profitLossTotals{
		Revenue:            500000,
		PendingReceivables: 120000,
		PettyCashOutflow:   15000,
	}})

	from, to := window()
	pl, err := svc.ProfitLoss(context.Background(), from, to)
	require.NoError(t, err)

	assert.InDelta(t, 380000.0, pl.Collected, 0.001)
	assert.InDelta(t, 365000.0, pl.NetPosition, 0.001)
	assert.Equal(t, "₹3,65,000.00", pl.Formatted.NetPosition)
}

func TestProjectStatusListsEveryLadderRung(t *testing.T) {
	svc := NewService(&mockRepository{counts: []StatusCount{
		{Status: "Order Confirmed", Count: 2},
		{Status: "In Production", Count: 3},
		{Status: "Completed", Count: 5},
	}})

	ps, err := svc.ProjectStatus(context.Background())
	require.NoError(t, err)

	require.Len(t, ps.Statuses, 6)
	assert.Equal(t, "Order Confirmed", ps.Statuses[0].Status)
	assert.Equal(t, 2, ps.Statuses[0].Count)
	assert.Equal(t, 0, ps.Statuses[1].Count)
	assert.Equal(t, 10, ps.Total)
	assert.Equal(t, 5, ps.Completed)
}
