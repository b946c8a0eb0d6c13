package enquiries

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

// Repository defines persistence operations for enquiries.
type Repository interface {
	Get(ctx context.Context, id int64) (*Enquiry, error)
	List(ctx context.Context, req ListEnquiriesRequest) ([]Enquiry, int, error)
	ListOpen(ctx context.Context) ([]Enquiry, error)
	Create(ctx context.Context, e Enquiry) (int64, error)
	Update(ctx context.Context, e Enquiry) error
	UpdateStatus(ctx context.Context, id int64, status Stage, lostReason *string) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
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

const enquiryColumns = `id, enquiry_number, customer_id, division, product_category,
	requirement_summary, budget_range_min, budget_range_max, site_visit_date,
	site_visit_notes, assigned_to, enquiry_source, status, lost_reason, priority,
	follow_up_date, created_by, created_at, updated_at`

func scanEnquiry(row pgx.Row) (*Enquiry, error) {
	var e Enquiry
	err := row.Scan(
		&e.ID, &e.EnquiryNumber, &e.CustomerID, &e.Division, &e.ProductCategory,
		&e.Requirement, &e.BudgetMin, &e.BudgetMax, &e.SiteVisitDate,
		&e.SiteVisitNotes, &e.AssignedTo, &e.Source, &e.Status, &e.LostReason, &e.Priority,
		&e.FollowUpDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Enquiry, error) {
	row := r.db.QueryRow(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id)
	return scanEnquiry(row)
}

func (r *repository) List(ctx context.Context, req ListEnquiriesRequest) ([]Enquiry, int, error) {
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
	if req.Priority != nil {
		where += fmt.Sprintf(" AND priority = $%d", argPos)
		args = append(args, string(*req.Priority))
		argPos++
	}
	if req.AssignedTo != nil {
		where += fmt.Sprintf(" AND assigned_to = $%d", argPos)
		args = append(args, *req.AssignedTo)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM enquiries "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM enquiries %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		enquiryColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	return out, total, rows.Err()
}

// ListOpen returns every enquiry still on the board, for kanban grouping.
func (r *repository) ListOpen(ctx context.Context) ([]Enquiry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+enquiryColumns+` FROM enquiries ORDER BY priority DESC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, e Enquiry) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO enquiries (enquiry_number, customer_id, division, product_category,
			requirement_summary, budget_range_min, budget_range_max, assigned_to,
			enquiry_source, status, priority, follow_up_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, e.EnquiryNumber, e.CustomerID, e.Division, e.ProductCategory,
		e.Requirement, e.BudgetMin, e.BudgetMax, e.AssignedTo,
		e.Source, string(e.Status), string(e.Priority), e.FollowUpDate, e.CreatedBy).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, e Enquiry) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enquiries SET product_category = $1, requirement_summary = $2,
			budget_range_min = $3, budget_range_max = $4, site_visit_date = $5,
			site_visit_notes = $6, assigned_to = $7, priority = $8, follow_up_date = $9,
			updated_at = NOW()
		WHERE id = $10
	`, e.ProductCategory, e.Requirement, e.BudgetMin, e.BudgetMax, e.SiteVisitDate,
		e.SiteVisitNotes, e.AssignedTo, string(e.Priority), e.FollowUpDate, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Stage, lostReason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enquiries SET status = $1, lost_reason = $2, updated_at = NOW() WHERE id = $3
	`, string(status), lostReason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "ENQ", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ENQ-%s-%04d", date.Format("0601"), seq), nil
}
