package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates read-only counters across the whole schema. The
// dashboard never writes.
type Repository interface {
	Stats(ctx context.Context, dayStart time.Time) (*Stats, error)
	Executive(ctx context.Context) (*Executive, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Stats(ctx context.Context, dayStart time.Time) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM enquiries WHERE status <> 'Lost'),
			(SELECT COUNT(*) FROM orders WHERE status <> 'Completed'),
			(SELECT COALESCE(SUM(balance_pending), 0) FROM orders),
			(SELECT COUNT(*) FROM inventory_items WHERE quantity - reserved <= reorder_level),
			(SELECT COUNT(*) FROM petty_cash_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM attendance WHERE check_in >= $1)
	`, dayStart).Scan(
		&s.TotalLeads, &s.ActiveProjects, &s.PendingPayments,
		&s.LowStockItems, &s.PendingPettyCash, &s.TodayAttendance,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Executive(ctx context.Context) (*Executive, error) {
	var e Executive
	var converted int
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM enquiries),
			(SELECT COUNT(*) FROM enquiries WHERE status = 'Quotation Shared'),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(net_total), 0) FROM orders),
			(SELECT COALESCE(AVG(net_total), 0) FROM orders),
			(SELECT COALESCE(SUM(balance_pending), 0) FROM orders)
	`).Scan(
		&e.Sales.TotalCustomers, &e.Sales.TotalEnquiries, &converted,
		&e.Sales.TotalOrders, &e.Sales.TotalRevenue, &e.Sales.AvgOrderValue,
		&e.Finance.TotalPendingAmount,
	)
	if err != nil {
		return nil, err
	}
	if e.Sales.TotalEnquiries > 0 {
		e.Sales.ConversionRate = float64(converted) / float64(e.Sales.TotalEnquiries) * 100
	}
	e.Finance.TotalCollected = e.Sales.TotalRevenue - e.Finance.TotalPendingAmount

	rows, err := r.db.Query(ctx, `
		SELECT division, COUNT(*), COALESCE(SUM(net_total), 0)
		FROM orders GROUP BY division ORDER BY SUM(net_total) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d DivisionStat
		if err := rows.Scan(&d.Division, &d.TotalOrders, &d.TotalRevenue); err != nil {
			return nil, err
		}
		e.Divisions = append(e.Divisions, d)
	}
	if e.Divisions == nil {
		e.Divisions = []DivisionStat{}
	}
	return &e, rows.Err()
}
