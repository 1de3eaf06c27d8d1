package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// StaffAccountRow is a staff profile joined with its principal row.
type StaffAccountRow struct {
	Principal domain.Principal
	Profile   domain.StaffProfile
}

// StaffAccountFilter defines query params for staff account listing.
type StaffAccountFilter struct {
	Role   *domain.Role
	Active *bool
	Limit  int
	Offset int
}

// StaffProfileRepository handles persistence for staff profiles.
type StaffProfileRepository interface {
	GetByPrincipalID(ctx context.Context, principalID string) (*domain.StaffProfile, error)
	Update(ctx context.Context, profile *domain.StaffProfile) error
	ListAccounts(ctx context.Context, filter StaffAccountFilter) ([]StaffAccountRow, error)
}

type staffProfileRepository struct {
	pool *pgxpool.Pool
}

// NewStaffProfileRepository instantiates the repository.
func NewStaffProfileRepository(pool *pgxpool.Pool) StaffProfileRepository {
	return &staffProfileRepository{pool: pool}
}

func (r *staffProfileRepository) GetByPrincipalID(ctx context.Context, principalID string) (*domain.StaffProfile, error) {
	const query = `
        SELECT principal_id, name, username, phone, position, is_admin, created_at, updated_at
        FROM staff_profiles WHERE principal_id=$1`

	var profile domain.StaffProfile
	if err := r.pool.QueryRow(ctx, query, principalID).Scan(
		&profile.PrincipalID,
		&profile.Name,
		&profile.Username,
		&profile.Phone,
		&profile.Position,
		&profile.IsAdmin,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *staffProfileRepository) Update(ctx context.Context, profile *domain.StaffProfile) error {
	const query = `
        UPDATE staff_profiles
        SET name=$1, username=$2, phone=$3, position=$4, is_admin=$5, updated_at=NOW()
        WHERE principal_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		profile.Name,
		profile.Username,
		profile.Phone,
		profile.Position,
		profile.IsAdmin,
		profile.PrincipalID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffProfileRepository) ListAccounts(ctx context.Context, filter StaffAccountFilter) ([]StaffAccountRow, error) {
	query := `
        SELECT p.id, p.email, p.password_hash, p.role, p.active_flag, p.created_at, p.updated_at,
               s.principal_id, s.name, s.username, s.phone, s.position, s.is_admin, s.created_at, s.updated_at
        FROM principals p
        JOIN staff_profiles s ON s.principal_id = p.id`
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("p.role=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("p.active_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY p.created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffAccountRow
	for rows.Next() {
		var row StaffAccountRow
		if err := rows.Scan(
			&row.Principal.ID,
			&row.Principal.Email,
			&row.Principal.PasswordHash,
			&row.Principal.Role,
			&row.Principal.Active,
			&row.Principal.CreatedAt,
			&row.Principal.UpdatedAt,
			&row.Profile.PrincipalID,
			&row.Profile.Name,
			&row.Profile.Username,
			&row.Profile.Phone,
			&row.Profile.Position,
			&row.Profile.IsAdmin,
			&row.Profile.CreatedAt,
			&row.Profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
