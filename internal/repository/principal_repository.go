package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// PrincipalRepository handles persistence for identity accounts.
type PrincipalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Update(ctx context.Context, principal *domain.Principal) error
	UpdateActive(ctx context.Context, id string, active bool) error
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository instantiates the repository.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

func (r *principalRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	const query = `
        SELECT id, email, password_hash, role, active_flag, created_at, updated_at
        FROM principals WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	const query = `
        SELECT id, email, password_hash, role, active_flag, created_at, updated_at
        FROM principals WHERE email=$1`
	return r.scanOne(ctx, query, email)
}

func (r *principalRepository) Update(ctx context.Context, principal *domain.Principal) error {
	const query = `
        UPDATE principals
        SET password_hash=$1, role=$2, active_flag=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		principal.PasswordHash,
		principal.Role,
		principal.Active,
		principal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *principalRepository) UpdateActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE principals SET active_flag=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *principalRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Principal, error) {
	var p domain.Principal
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
