package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// ReservationFilter captures listing parameters.
type ReservationFilter struct {
	GuestID  *string
	RoomID   *string
	Statuses []domain.ReservationStatus
	Limit    int
	Offset   int
}

// ReservationRepository encapsulates reservation persistence.
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `
        SELECT id, guest_id, room_id, status, payment_received, check_in, check_out, created_at, updated_at
        FROM reservations WHERE id=$1`

	var res domain.Reservation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.GuestID,
		&res.RoomID,
		&res.Status,
		&res.PaymentReceived,
		&res.CheckIn,
		&res.CheckOut,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error) {
	query := `
        SELECT id, guest_id, room_id, status, payment_received, check_in, check_out, created_at, updated_at
        FROM reservations`
	args := []any{}
	clauses := []string{}

	if filter.GuestID != nil {
		args = append(args, *filter.GuestID)
		clauses = append(clauses, fmt.Sprintf("guest_id=$%d", len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		clauses = append(clauses, fmt.Sprintf("room_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			args = append(args, status)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
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

	var result []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID,
			&res.GuestID,
			&res.RoomID,
			&res.Status,
			&res.PaymentReceived,
			&res.CheckIn,
			&res.CheckOut,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	return result, rows.Err()
}
