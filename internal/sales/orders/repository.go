package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/platform/db"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Create(ctx context.Context, order Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateBalance(ctx context.Context, id int64, balance float64) error
	InsertPayment(ctx context.Context, payment Payment) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = `id, order_number, quotation_id, customer_id, division, order_items,
	net_total, advance_paid, balance_pending, status, order_date,
	expected_delivery_days, expected_delivery_date, notes, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var items []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.QuotationID, &o.CustomerID, &o.Division, &items,
		&o.NetTotal, &o.AdvancePaid, &o.BalancePending, &o.Status, &o.OrderDate,
		&o.ExpectedDeliveryDays, &o.ExpectedDeliveryDate, &o.Notes, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.OrderItems); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &o, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, amount, reference, received_by, received_at
		FROM order_payments WHERE order_id = $1 ORDER BY received_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Reference, &p.ReceivedBy, &p.ReceivedAt); err != nil {
			return nil, err
		}
		order.Payments = append(order.Payments, p)
	}
	return order, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1

	if req.CustomerID != nil {
		where += fmt.Sprintf(" AND customer_id = $%d", argPos)
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Division != nil {
		where += fmt.Sprintf(" AND division = $%d", argPos)
		args = append(args, *req.Division)
		argPos++
	}
	if req.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*req.Status))
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY order_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, o Order) (int64, error) {
	items, err := json.Marshal(o.OrderItems)
	if err != nil {
		return 0, fmt.Errorf("encode order items: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO orders (order_number, quotation_id, customer_id, division, order_items,
			net_total, advance_paid, balance_pending, status, order_date,
			expected_delivery_days, expected_delivery_date, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, o.OrderNumber, o.QuotationID, o.CustomerID, o.Division, items,
		o.NetTotal, o.AdvancePaid, o.BalancePending, string(o.Status), o.OrderDate,
		o.ExpectedDeliveryDays, o.ExpectedDeliveryDate, o.Notes, o.CreatedBy).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateBalance(ctx context.Context, id int64, balance float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET balance_pending = $1, updated_at = NOW() WHERE id = $2`,
		balance, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) InsertPayment(ctx context.Context, p Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_payments (order_id, amount, reference, received_by, received_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.OrderID, p.Amount, p.Reference, p.ReceivedBy, p.ReceivedAt)
	return err
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	// ORD-{YY}{MM}-{SEQ}
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "ORD", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", date.Format("0601"), seq), nil
}
