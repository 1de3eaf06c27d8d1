package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// RoomRepository encapsulates room and like persistence.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
	DeleteLikesByRoom(ctx context.Context, roomID string) (int64, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository instantiates repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	const query = `
        SELECT id, name, image_keys, panorama_key, created_at, updated_at
        FROM rooms WHERE id=$1`

	var room domain.Room
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.ImageKeys,
		&room.PanoramaKey,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteLikesByRoom removes dependent like rows ahead of room deletion.
func (r *roomRepository) DeleteLikesByRoom(ctx context.Context, roomID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE room_id=$1`, roomID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
