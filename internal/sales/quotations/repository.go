package quotations

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
	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence operations for quotations.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Quotation, error)
	List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error)
	Create(ctx context.Context, quotation Quotation) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status, userID int64, reason *string) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
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

const quotationColumns = `id, quote_number, customer_id, enquiry_id, division, version, revision_of,
	status, line_items, subtotal, discount_amount, tax_amount, net_total, valid_till,
	terms, notes, rejection_reason, created_by, reviewed_by, reviewed_at, created_at, updated_at`

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	var items []byte
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.CustomerID, &q.EnquiryID, &q.Division, &q.Version, &q.RevisionOf,
		&q.Status, &items, &q.Subtotal, &q.DiscountAmount, &q.TaxAmount, &q.NetTotal, &q.ValidTill,
		&q.Terms, &q.Notes, &q.RejectionReason, &q.CreatedBy, &q.ReviewedBy, &q.ReviewedAt,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &q.LineItems); err != nil {
			return nil, fmt.Errorf("decode line items: %w", err)
		}
	}
	return &q, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
	return scanQuotation(row)
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
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
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM quotations "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM quotations %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		quotationColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, *q)
	}
	return quotations, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	items, err := json.Marshal(normalizeItems(q.LineItems))
	if err != nil {
		return 0, fmt.Errorf("encode line items: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO quotations (quote_number, customer_id, enquiry_id, division, version, revision_of,
			status, line_items, subtotal, discount_amount, tax_amount, net_total, valid_till,
			terms, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, q.QuoteNumber, q.CustomerID, q.EnquiryID, q.Division, q.Version, q.RevisionOf,
		string(q.Status), items, q.Subtotal, q.DiscountAmount, q.TaxAmount, q.NetTotal, q.ValidTill,
		q.Terms, q.Notes, q.CreatedBy).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, userID int64, reason *string) error {
	var tag pgconn.CommandTag
	var err error
	if status == StatusApproved || status == StatusRejected {
		tag, err = r.db.Exec(ctx, `
			UPDATE quotations
			SET status = $1, reviewed_by = $2, reviewed_at = NOW(), rejection_reason = $3, updated_at = NOW()
			WHERE id = $4
		`, string(status), userID, reason, id)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE quotations SET status = $1, updated_at = NOW() WHERE id = $2
		`, string(status), id)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	// QT-{YY}{MM}-{SEQ}
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "QT", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("QT-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations SET status = $1, updated_at = NOW()
		WHERE status IN ($2, $3) AND valid_till < $4
	`, string(StatusExpired), string(StatusDraft), string(StatusSent), now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func normalizeItems(items []pricing.LineItem) []pricing.LineItem {
	if items == nil {
		return []pricing.LineItem{}
	}
	return items
}
