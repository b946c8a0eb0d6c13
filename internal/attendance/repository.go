package attendance

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

// Repository defines persistence for attendance records.
type Repository interface {
	FindOpenForDay(ctx context.Context, userID int64, dayStart time.Time) (*Record, error)
	ExistsForDay(ctx context.Context, userID int64, dayStart time.Time) (bool, error)
	Create(ctx context.Context, rec Record) (int64, error)
	SetCheckOut(ctx context.Context, id int64, at time.Time) error
	Get(ctx context.Context, id int64) (*Record, error)
	List(ctx context.Context, req ListRecordsRequest) ([]Record, error)
	CountForDay(ctx context.Context, dayStart time.Time) (int, error)
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

const recordColumns = `id, user_id, check_in, check_out, location_lat, location_lng,
	location_address, status, notes`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.CheckIn, &r.CheckOut, &r.LocationLat, &r.LocationLng,
		&r.LocationAddress, &r.Status, &r.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *repository) FindOpenForDay(ctx context.Context, userID int64, dayStart time.Time) (*Record, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+recordColumns+` FROM attendance
		WHERE user_id = $1 AND check_in >= $2 AND check_out IS NULL
		ORDER BY check_in DESC LIMIT 1
	`, userID, dayStart)
	return scanRecord(row)
}

func (r *repository) ExistsForDay(ctx context.Context, userID int64, dayStart time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM attendance WHERE user_id = $1 AND check_in >= $2)
	`, userID, dayStart).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, rec Record) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance (user_id, check_in, location_lat, location_lng, location_address, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, rec.UserID, rec.CheckIn, rec.LocationLat, rec.LocationLng,
		rec.LocationAddress, string(rec.Status), rec.Notes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) SetCheckOut(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE attendance SET check_out = $1 WHERE id = $2 AND check_out IS NULL`, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM attendance WHERE id = $1`, id)
	return scanRecord(row)
}

func (r *repository) List(ctx context.Context, req ListRecordsRequest) ([]Record, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1

	if req.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, *req.UserID)
		argPos++
	}
	if req.FromDate != nil {
		where += fmt.Sprintf(" AND check_in >= $%d", argPos)
		args = append(args, *req.FromDate)
		argPos++
	}
	if req.ToDate != nil {
		where += fmt.Sprintf(" AND check_in <= $%d", argPos)
		args = append(args, *req.ToDate)
		argPos++
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT %s FROM attendance %s ORDER BY check_in DESC LIMIT $%d OFFSET $%d`,
		recordColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *repository) CountForDay(ctx context.Context, dayStart time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE check_in >= $1`, dayStart).Scan(&n)
	return n, err
}
