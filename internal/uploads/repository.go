package uploads

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository persists upload metadata.
type Repository interface {
	Create(ctx context.Context, u Upload) (int64, error)
	Get(ctx context.Context, id int64) (*Upload, error)
	ListForEntity(ctx context.Context, entityType string, entityID int64) ([]Upload, error)
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

const uploadColumns = `id, file_name, stored_name, folder, content_type, size_bytes,
	linked_entity_type, linked_entity_id, uploaded_by, created_at`

func scanUpload(row pgx.Row) (*Upload, error) {
	var u Upload
	err := row.Scan(
		&u.ID, &u.FileName, &u.StoredName, &u.Folder, &u.ContentType, &u.SizeBytes,
		&u.LinkedEntityType, &u.LinkedEntityID, &u.UploadedBy, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u Upload) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO uploads (file_name, stored_name, folder, content_type, size_bytes,
			linked_entity_type, linked_entity_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, u.FileName, u.StoredName, u.Folder, u.ContentType, u.SizeBytes,
		u.LinkedEntityType, u.LinkedEntityID, u.UploadedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert upload: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Upload, error) {
	row := r.db.QueryRow(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE id = $1`, id)
	return scanUpload(row)
}

func (r *repository) ListForEntity(ctx context.Context, entityType string, entityID int64) ([]Upload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+uploadColumns+` FROM uploads
		WHERE linked_entity_type = $1 AND linked_entity_id = $2
		ORDER BY created_at DESC
	`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
