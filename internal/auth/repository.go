package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByPhone fetches a user and its roles by phone number.
func (r *PGRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	return r.findBy(ctx, "u.phone = $1", phone)
}

// FindByID fetches a user and its roles by ID.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findBy(ctx, "u.id = $1", id)
}

func (r *PGRepository) findBy(ctx context.Context, cond string, arg any) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.phone, u.name, u.pin_hash, u.is_active, u.created_at, u.updated_at
		FROM users u
		WHERE `+cond, arg).Scan(
		&user.ID, &user.Phone, &user.Name, &user.PINHash, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
