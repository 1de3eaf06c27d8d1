package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/service"
	util "github.com/spec-kit/resort-admin-service/pkg/util"
)

type stubRooms struct {
	room        *domain.Room
	likesByRoom map[string]int64
	deleted     bool

	likesErr  error
	deleteErr error
}

func (s *stubRooms) GetByID(_ context.Context, id string) (*domain.Room, error) {
	if s.room == nil || s.room.ID != id {
		return nil, pgx.ErrNoRows
	}
	copied := *s.room
	return &copied, nil
}

func (s *stubRooms) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if s.room == nil || s.room.ID != id {
		return pgx.ErrNoRows
	}
	s.deleted = true
	return nil
}

func (s *stubRooms) DeleteLikesByRoom(_ context.Context, roomID string) (int64, error) {
	if s.likesErr != nil {
		return 0, s.likesErr
	}
	n := s.likesByRoom[roomID]
	s.likesByRoom[roomID] = 0
	return n, nil
}

type stubRemover struct {
	removed []string
	err     error
}

func (s *stubRemover) RemoveObject(_ context.Context, _ string, key string) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, key)
	return nil
}

func roomFixture() (*stubRooms, *stubRemover, *captureDispatcher) {
	panorama := "rooms/r1/pano.jpg"
	rooms := &stubRooms{
		room: &domain.Room{
			ID:          "r1",
			Name:        "Ocean Suite",
			ImageKeys:   []string{"rooms/r1/one.jpg", "rooms/r1/two.jpg"},
			PanoramaKey: &panorama,
		},
		likesByRoom: map[string]int64{"r1": 3},
	}
	return rooms, &stubRemover{}, &captureDispatcher{}
}

func TestRoomDeletionRemovesLikesObjectsAndRoom(t *testing.T) {
	rooms, remover, dispatcher := roomFixture()
	svc := service.NewRoomService(rooms, remover, "room-images", dispatcher, zap.NewNop())

	report, err := svc.Delete(context.Background(),
		service.Actor{ID: "a1", Role: domain.RoleAdmin}, "r1")
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.LikesRemoved)
	assert.Zero(t, rooms.likesByRoom["r1"])
	assert.Equal(t, 3, report.ObjectsRemoved)
	assert.ElementsMatch(t, []string{"rooms/r1/one.jpg", "rooms/r1/two.jpg", "rooms/r1/pano.jpg"}, remover.removed)
	assert.True(t, rooms.deleted)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventRoomDeleted, dispatcher.published[0].Type)
}

func TestRoomDeletionSurvivesStorageFailure(t *testing.T) {
	rooms, remover, dispatcher := roomFixture()
	remover.err = errors.New("storage unreachable")
	svc := service.NewRoomService(rooms, remover, "room-images", dispatcher, zap.NewNop())

	report, err := svc.Delete(context.Background(),
		service.Actor{ID: "a1", Role: domain.RoleAdmin}, "r1")
	require.NoError(t, err)

	// likes and room are gone even though every object delete failed
	assert.Equal(t, int64(3), report.LikesRemoved)
	assert.Zero(t, report.ObjectsRemoved)
	assert.Equal(t, 3, report.ObjectsOrphaned)
	assert.True(t, rooms.deleted)
}

func TestRoomDeletionAbortsWhenLikeCleanupFails(t *testing.T) {
	rooms, remover, dispatcher := roomFixture()
	rooms.likesErr = errors.New("db down")
	svc := service.NewRoomService(rooms, remover, "room-images", dispatcher, zap.NewNop())

	_, err := svc.Delete(context.Background(),
		service.Actor{ID: "a1", Role: domain.RoleAdmin}, "r1")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE_FAILURE", domainErr.Code)
	assert.Empty(t, remover.removed)
	assert.False(t, rooms.deleted)
}

func TestRoomDeletionRequiresAdminRole(t *testing.T) {
	rooms, remover, dispatcher := roomFixture()
	svc := service.NewRoomService(rooms, remover, "room-images", dispatcher, zap.NewNop())

	_, err := svc.Delete(context.Background(),
		service.Actor{ID: "s1", Role: domain.RoleStaff}, "r1")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERMISSION_DENIED", domainErr.Code)
	assert.False(t, rooms.deleted)
}

func TestRoomDeletionMissingRoom(t *testing.T) {
	rooms, remover, dispatcher := roomFixture()
	svc := service.NewRoomService(rooms, remover, "room-images", dispatcher, zap.NewNop())

	_, err := svc.Delete(context.Background(),
		service.Actor{ID: "a1", Role: domain.RoleAdmin}, "ghost")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
