package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	"github.com/spec-kit/resort-admin-service/internal/storage"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// RoomDeletionReport summarizes what the workflow removed.
type RoomDeletionReport struct {
	LikesRemoved    int64
	ObjectsRemoved  int
	ObjectsOrphaned int
}

// RoomService owns the room deletion workflow.
type RoomService struct {
	rooms      repository.RoomRepository
	objects    storage.ObjectRemover
	bucket     string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRoomService builds the service.
func NewRoomService(rooms repository.RoomRepository, objects storage.ObjectRemover, bucket string, dispatcher events.Dispatcher, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, objects: objects, bucket: bucket, dispatcher: dispatcher, logger: logger}
}

// Delete runs the sequenced deletion workflow. Dependent like rows go
// first so they never outlive the room; storage objects are removed
// best-effort between the like and room deletes, and a storage failure
// never blocks the record delete. Any database failure aborts the
// remaining steps.
func (s *RoomService) Delete(ctx context.Context, actor Actor, roomID string) (*RoomDeletionReport, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, apperrors.NewPermissionDenied("room deletion requires an admin role")
	}

	likesRemoved, err := s.rooms.DeleteLikesByRoom(ctx, roomID)
	if err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"id": roomID})
		}
		return nil, apperrors.MapError(err)
	}

	report := &RoomDeletionReport{LikesRemoved: likesRemoved}

	keys := append([]string{}, room.ImageKeys...)
	if room.PanoramaKey != nil && *room.PanoramaKey != "" {
		keys = append(keys, *room.PanoramaKey)
	}
	for _, key := range keys {
		if err := s.objects.RemoveObject(ctx, s.bucket, key); err != nil {
			// orphaned objects in storage are accepted over failing the delete
			report.ObjectsOrphaned++
			s.logger.Warn("storage object removal failed",
				zap.String("room_id", roomID),
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		report.ObjectsRemoved++
	}

	if err := s.rooms.Delete(ctx, roomID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"id": roomID})
		}
		return nil, apperrors.NewStoreFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRoomDeleted,
			SubjectID: roomID,
			Actor:     events.Actor{PrincipalID: actor.ID, Role: actor.Role},
			Timestamp: time.Now().UTC(),
			Payload: events.RoomDeletedPayload{
				LikesRemoved:    report.LikesRemoved,
				ObjectsRemoved:  report.ObjectsRemoved,
				ObjectsOrphaned: report.ObjectsOrphaned,
			},
		})
	}
	return report, nil
}
