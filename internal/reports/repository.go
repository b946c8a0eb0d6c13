package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type salesBucket struct {
	Period   string
	Division string
	Orders   int
	Revenue  float64
}

type profitLossTotals struct {
	Revenue            float64
	PendingReceivables float64
	PettyCashOutflow   float64
}

// Repository runs the reporting aggregates. Read-only.
type Repository interface {
	SalesBuckets(ctx context.Context, from, to time.Time, monthly bool) ([]salesBucket, error)
	ProfitLossTotals(ctx context.Context, from, to time.Time) (*profitLossTotals, error)
	OrderStatusCounts(ctx context.Context) ([]StatusCount, error)
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

func (r *repository) SalesBuckets(ctx context.Context, from, to time.Time, monthly bool) ([]salesBucket, error) {
	format := "YYYY-MM-DD"
	if monthly {
		format = "YYYY-MM"
	}
	rows, err := r.db.Query(ctx, `
		SELECT to_char(order_date, $1), division, COUNT(*), COALESCE(SUM(net_total), 0)
		FROM orders
		WHERE order_date >= $2 AND order_date < $3
		GROUP BY 1, 2
		ORDER BY 1 ASC, 2 ASC
	`, format, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []salesBucket
	for rows.Next() {
		var b salesBucket
		if err := rows.Scan(&b.Period, &b.Division, &b.Orders, &b.Revenue); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) ProfitLossTotals(ctx context.Context, from, to time.Time) (*profitLossTotals, error) {
	var t profitLossTotals
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(net_total), 0) FROM orders WHERE order_date >= $1 AND order_date < $2),
			(SELECT COALESCE(SUM(balance_pending), 0) FROM orders WHERE order_date >= $1 AND order_date < $2),
			(SELECT COALESCE(SUM(amount), 0) FROM petty_cash_requests
				WHERE status IN ('approved', 'disbursed') AND created_at >= $1 AND created_at < $2)
	`, from, to).Scan(&t.Revenue, &t.PendingReceivables, &t.PettyCashOutflow)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) OrderStatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
