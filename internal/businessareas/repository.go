package businessareas

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository persists business areas.
type Repository interface {
	Get(ctx context.Context, id int64) (*Area, error)
	List(ctx context.Context) ([]Area, error)
	Create(ctx context.Context, area Area) (int64, error)
	ExistsActive(ctx context.Context, name string) (bool, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const areaColumns = `id, name, description, is_active, created_at, updated_at`

func scanArea(row pgx.Row) (*Area, error) {
	var a Area
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Area, error) {
	row := r.db.QueryRow(ctx, `SELECT `+areaColumns+` FROM business_areas WHERE id = $1`, id)
	return scanArea(row)
}

func (r *repository) List(ctx context.Context) ([]Area, error) {
	rows, err := r.db.Query(ctx, `SELECT `+areaColumns+` FROM business_areas ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, area Area) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO business_areas (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`, area.Name, area.Description, area.IsActive).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("%w: business area %s", shared.ErrDuplicate, area.Name)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) ExistsActive(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM business_areas WHERE name = $1 AND is_active)`,
		name).Scan(&exists)
	return exists, err
}
