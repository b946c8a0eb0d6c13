package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence for inventory items and their advisories.
type Repository interface {
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, req ListItemsRequest) ([]Item, int, error)
	ListAll(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item Item) (int64, error)
	Update(ctx context.Context, item Item) error
	CountLowStock(ctx context.Context) (int, error)
	MonthlySales(ctx context.Context, itemCode string, since time.Time) (float64, error)
	ReplaceInsights(ctx context.Context, insights []Insight) error
	ListInsights(ctx context.Context) ([]Insight, error)
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

const itemColumns = `id, division, store_location, item_name, item_code, category,
	quantity, reserved, unit, reorder_level, unit_price, supplier, last_restocked,
	created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var i Item
	err := row.Scan(
		&i.ID, &i.Division, &i.StoreLocation, &i.ItemName, &i.ItemCode, &i.Category,
		&i.Quantity, &i.Reserved, &i.Unit, &i.ReorderLevel, &i.UnitPrice, &i.Supplier,
		&i.LastRestocked, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	return scanItem(row)
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1

	if req.Division != nil {
		where += fmt.Sprintf(" AND division = $%d", argPos)
		args = append(args, *req.Division)
		argPos++
	}
	if req.Category != nil {
		where += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *req.Category)
		argPos++
	}
	if req.Search != nil {
		where += fmt.Sprintf(" AND (item_name ILIKE $%d OR item_code ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.LowStock {
		where += " AND quantity - reserved <= reorder_level"
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM inventory_items "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM inventory_items %s ORDER BY item_name ASC LIMIT $%d OFFSET $%d`,
		itemColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *i)
	}
	return out, total, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY item_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO inventory_items (division, store_location, item_name, item_code, category,
			quantity, reserved, unit, reorder_level, unit_price, supplier, last_restocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, item.Division, item.StoreLocation, item.ItemName, item.ItemCode, item.Category,
		item.Quantity, item.Reserved, item.Unit, item.ReorderLevel, item.UnitPrice,
		item.Supplier, item.LastRestocked).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("%w: item code %s", shared.ErrDuplicate, item.ItemCode)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, item Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items SET store_location = $1, item_name = $2, category = $3,
			quantity = $4, reserved = $5, unit = $6, reorder_level = $7, unit_price = $8,
			supplier = $9, last_restocked = $10, updated_at = NOW()
		WHERE id = $11
	`, item.StoreLocation, item.ItemName, item.Category,
		item.Quantity, item.Reserved, item.Unit, item.ReorderLevel, item.UnitPrice,
		item.Supplier, item.LastRestocked, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE quantity - reserved <= reorder_level`).Scan(&n)
	return n, err
}

// MonthlySales sums quantities of an item code across order line items
// since the cutoff, reading the JSONB snapshots directly.
func (r *repository) MonthlySales(ctx context.Context, itemCode string, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM((li->>'quantity')::numeric), 0)
		FROM orders, jsonb_array_elements(order_items) AS li
		WHERE order_date >= $1 AND li->>'product_code' = $2
	`, since, itemCode).Scan(&total)
	return total, err
}

func (r *repository) ReplaceInsights(ctx context.Context, insights []Insight) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM inventory_insights`); err != nil {
		return err
	}
	for _, in := range insights {
		_, err := r.db.Exec(ctx, `
			INSERT INTO inventory_insights (item_id, item_name, insight_type, current_quantity,
				reserved, avg_monthly_sales, days_of_stock, recommendation, priority, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, in.ItemID, in.ItemName, string(in.InsightType), in.CurrentQuantity,
			in.Reserved, in.AvgMonthlySales, in.DaysOfStock, in.Recommendation,
			string(in.Priority), in.GeneratedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ListInsights(ctx context.Context) ([]Insight, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, item_id, item_name, insight_type, current_quantity, reserved,
			avg_monthly_sales, days_of_stock, recommendation, priority, generated_at
		FROM inventory_insights
		ORDER BY CASE priority
			WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3
		END, item_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Insight
	for rows.Next() {
		var in Insight
		if err := rows.Scan(&in.ID, &in.ItemID, &in.ItemName, &in.InsightType,
			&in.CurrentQuantity, &in.Reserved, &in.AvgMonthlySales, &in.DaysOfStock,
			&in.Recommendation, &in.Priority, &in.GeneratedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
