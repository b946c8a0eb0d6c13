package pettycash

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence operations for petty cash requests.
type Repository interface {
	Get(ctx context.Context, id int64) (*Request, error)
	List(ctx context.Context, req ListRequests) ([]Request, int, error)
	Create(ctx context.Context, r Request) (int64, error)
	Update(ctx context.Context, r Request) error
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

const requestColumns = `id, requested_by, division, amount, purpose, category, status,
	reviewed_by, reviewed_at, rejection_reason, disbursed_by, disbursed_at,
	receipt_upload_id, notes, created_at, updated_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.RequestedBy, &r.Division, &r.Amount, &r.Purpose, &r.Category, &r.Status,
		&r.ReviewedBy, &r.ReviewedAt, &r.RejectionReason, &r.DisbursedBy, &r.DisbursedAt,
		&r.ReceiptUploadID, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM petty_cash_requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (r *repository) List(ctx context.Context, req ListRequests) ([]Request, int, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1

	if req.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*req.Status))
		argPos++
	}
	if req.Division != nil {
		where += fmt.Sprintf(" AND division = $%d", argPos)
		args = append(args, *req.Division)
		argPos++
	}
	if req.RequestedBy != nil {
		where += fmt.Sprintf(" AND requested_by = $%d", argPos)
		args = append(args, *req.RequestedBy)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM petty_cash_requests "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM petty_cash_requests %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		requestColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		rec, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rec)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, rec Request) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO petty_cash_requests (requested_by, division, amount, purpose, category, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, rec.RequestedBy, rec.Division, rec.Amount, rec.Purpose, string(rec.Category),
		string(rec.Status), rec.Notes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, rec Request) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE petty_cash_requests SET status = $1, reviewed_by = $2, reviewed_at = $3,
			rejection_reason = $4, disbursed_by = $5, disbursed_at = $6,
			receipt_upload_id = $7, updated_at = NOW()
		WHERE id = $8
	`, string(rec.Status), rec.ReviewedBy, rec.ReviewedAt,
		rec.RejectionReason, rec.DisbursedBy, rec.DisbursedAt,
		rec.ReceiptUploadID, rec.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
