package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence operations for customer records.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, c Customer) (int64, error)
	Update(ctx context.Context, c Customer) error
	AddLifetimeValue(ctx context.Context, id int64, amount float64, stage LifecycleStage) error
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

const customerColumns = `id, customer_type, full_name, company_name, phone, whatsapp, email,
	address, city, pincode, gstin, source, assigned_to, linked_divisions,
	lifecycle_stage, lifetime_value, notes, tags, created_by, created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID, &c.CustomerType, &c.FullName, &c.CompanyName, &c.Phone, &c.WhatsApp, &c.Email,
		&c.Address, &c.City, &c.Pincode, &c.GSTIN, &c.Source, &c.AssignedTo, &c.Divisions,
		&c.LifecycleStage, &c.LifetimeValue, &c.Notes, &c.Tags, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1

	if req.Search != nil {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR phone ILIKE $%d OR company_name ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.CustomerType != nil {
		where += fmt.Sprintf(" AND customer_type = $%d", argPos)
		args = append(args, string(*req.CustomerType))
		argPos++
	}
	if req.LifecycleStage != nil {
		where += fmt.Sprintf(" AND lifecycle_stage = $%d", argPos)
		args = append(args, string(*req.LifecycleStage))
		argPos++
	}
	if req.City != nil {
		where += fmt.Sprintf(" AND city = $%d", argPos)
		args = append(args, *req.City)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM customers %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		customerColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (customer_type, full_name, company_name, phone, whatsapp, email,
			address, city, pincode, gstin, source, assigned_to, linked_divisions,
			lifecycle_stage, lifetime_value, notes, tags, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`, string(c.CustomerType), c.FullName, c.CompanyName, c.Phone, c.WhatsApp, c.Email,
		c.Address, c.City, c.Pincode, c.GSTIN, c.Source, c.AssignedTo, c.Divisions,
		string(c.LifecycleStage), c.LifetimeValue, c.Notes, c.Tags, c.CreatedBy).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("%w: phone %s already registered", shared.ErrDuplicate, c.Phone)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, c Customer) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers SET customer_type = $1, full_name = $2, company_name = $3, phone = $4,
			whatsapp = $5, email = $6, address = $7, city = $8, pincode = $9, gstin = $10,
			source = $11, assigned_to = $12, linked_divisions = $13, lifecycle_stage = $14,
			notes = $15, tags = $16, updated_at = NOW()
		WHERE id = $17
	`, string(c.CustomerType), c.FullName, c.CompanyName, c.Phone,
		c.WhatsApp, c.Email, c.Address, c.City, c.Pincode, c.GSTIN,
		c.Source, c.AssignedTo, c.Divisions, string(c.LifecycleStage),
		c.Notes, c.Tags, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: phone %s already registered", shared.ErrDuplicate, c.Phone)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddLifetimeValue atomically increments the accumulator and promotes the
// lifecycle stage in one statement so concurrent completions never lose value.
func (r *repository) AddLifetimeValue(ctx context.Context, id int64, amount float64, stage LifecycleStage) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET lifetime_value = lifetime_value + $1,
			lifecycle_stage = CASE WHEN lifecycle_stage IN ('Lead', 'Prospect') THEN $2 ELSE lifecycle_stage END,
			updated_at = NOW()
		WHERE id = $3
	`, amount, string(stage), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
