package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	stats     Stats
	executive Executive
	statCalls int
	execCalls int
}

func (m *mockRepository) Stats(_ context.Context, _ time.Time) (*Stats, error) {
	m.statCalls++
	out := m.stats
	return &out, nil
}

func (m *mockRepository) Executive(_ context.Context) (*Executive, error) {
	m.execCalls++
	out := m.executive
	return &out, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, client, 30*time.Second), mr
}

func TestStatsServedFromCacheOnRepeat(t *testing.T) {
	repo := &mockRepository{stats: Stats{
		TotalLeads:       12,
		ActiveProjects:   4,
		PendingPayments:  1714,
		LowStockItems:    3,
		PendingPettyCash: 2,
		TodayAttendance:  9,
	}}
	svc, _ := newTestService(t, repo)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, first.TotalLeads)
	assert.InDelta(t, 1714.0, first.PendingPayments, 0.001)

	// Second read hits the cache, not the repository.
	repo.stats.TotalLeads = 99
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, second.TotalLeads)
	assert.Equal(t, 1, repo.statCalls)
}

func TestStatsRecomputedAfterTTL(t *testing.T) {
	repo := &mockRepository{stats: Stats{TotalLeads: 12}}
	svc, mr := newTestService(t, repo)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)

	repo.stats.TotalLeads = 20
	mr.FastForward(time.Minute)

	refreshed, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, refreshed.TotalLeads)
	assert.Equal(t, 2, repo.statCalls)
}

func TestExecutiveCached(t *testing.T) {
	repo := &mockRepository{}
	repo.executive.Sales.TotalCustomers = 40
	repo.executive.Sales.ConversionRate = 25
	repo.executive.Divisions = []DivisionStat{{Division: "Furniture", TotalOrders: 5, TotalRevenue: 120000}}
	svc, _ := newTestService(t, repo)

	first, err := svc.Executive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, first.Sales.TotalCustomers)
	require.Len(t, first.Divisions, 1)

	_, err = svc.Executive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.execCalls)
}

func TestNilCacheStillServes(t *testing.T) {
	repo := &mockRepository{stats: Stats{TotalLeads: 7}}
	svc := NewService(repo, nil, time.Second)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalLeads)
}
