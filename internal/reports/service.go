package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/sales/orders"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service assembles the reporting views.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sales buckets order revenue by day or month within the window.
func (s *Service) Sales(ctx context.Context, from, to time.Time, groupBy string) (*SalesReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: report window is empty", shared.ErrValidation)
	}
	var monthly bool
	switch groupBy {
	case "", "day":
	case "month":
		monthly = true
	default:
		return nil, fmt.Errorf("%w: group_by must be day or month", shared.ErrValidation)
	}

	buckets, err := s.repo.SalesBuckets(ctx, from, to, monthly)
	if err != nil {
		return nil, fmt.Errorf("sales buckets: %w", err)
	}

	report := &SalesReport{From: from, To: to, Rows: make([]SalesRow, 0, len(buckets))}
	for _, b := range buckets {
		report.Rows = append(report.Rows, SalesRow{
			Period:           b.Period,
			Division:         b.Division,
			Orders:           b.Orders,
			Revenue:          b.Revenue,
			RevenueFormatted: FormatINR(b.Revenue),
		})
		report.TotalRevenue += b.Revenue
	}
	report.TotalFormatted = FormatINR(report.TotalRevenue)
	return report, nil
}

// ProfitLoss nets collections against petty cash outflow for the window.
func (s *Service) ProfitLoss(ctx context.Context, from, to time.Time) (*ProfitLoss, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: report window is empty", shared.ErrValidation)
	}

	totals, err := s.repo.ProfitLossTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("profit loss totals: %w", err)
	}

	pl := &ProfitLoss{
		From:               from,
		To:                 to,
		Revenue:            totals.Revenue,
		Collected:          totals.Revenue - totals.PendingReceivables,
		PendingReceivables: totals.PendingReceivables,
		PettyCashOutflow:   totals.PettyCashOutflow,
	}
	pl.NetPosition = pl.Collected - pl.PettyCashOutflow
	pl.Formatted.Revenue = FormatINR(pl.Revenue)
	pl.Formatted.Collected = FormatINR(pl.Collected)
	pl.Formatted.NetPosition = FormatINR(pl.NetPosition)
	return pl, nil
}

// ProjectStatus reports the order population at every ladder rung, always
// listing all rungs in ladder order.
func (s *Service) ProjectStatus(ctx context.Context) (*ProjectStatus, error) {
	counts, err := s.repo.OrderStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("order status counts: %w", err)
	}

	byStatus := make(map[string]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	ps := &ProjectStatus{Statuses: make([]StatusCount, 0, len(orders.StatusLadder))}
	for _, status := range orders.StatusLadder {
		n := byStatus[string(status)]
		ps.Statuses = append(ps.Statuses, StatusCount{Status: string(status), Count: n})
		ps.Total += n
		if status == orders.StatusCompleted {
			ps.Completed = n
		}
	}
	return ps, nil
}
