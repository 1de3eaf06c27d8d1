package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/policy"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	"github.com/spec-kit/resort-admin-service/internal/service"
	util "github.com/spec-kit/resort-admin-service/pkg/util"
)

type stubReservations struct {
	byID    map[string]*domain.Reservation
	deleted []string
}

func (s *stubReservations) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *r
	return &copied, nil
}

func (s *stubReservations) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubReservations) List(_ context.Context, _ repository.ReservationFilter) ([]domain.Reservation, error) {
	return nil, nil
}

func reservationFixture(res ...*domain.Reservation) (*service.ReservationService, *stubReservations, *captureDispatcher) {
	repo := &stubReservations{byID: map[string]*domain.Reservation{}}
	for _, r := range res {
		repo.byID[r.ID] = r
	}
	dispatcher := &captureDispatcher{}
	return service.NewReservationService(repo, dispatcher), repo, dispatcher
}

func TestStaffDeletesCancelledReservation(t *testing.T) {
	svc, repo, dispatcher := reservationFixture(
		&domain.Reservation{ID: "b1", Status: domain.ReservationCancelled},
	)

	err := svc.Delete(context.Background(), service.Actor{ID: "s1", Role: domain.RoleStaff}, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, repo.deleted)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventReservationDeleted, dispatcher.published[0].Type)
}

func TestStaffCannotDeleteAwaitingPayment(t *testing.T) {
	svc, repo, _ := reservationFixture(
		&domain.Reservation{ID: "b1", Status: domain.ReservationConfirmedPendingPayment},
	)

	err := svc.Delete(context.Background(), service.Actor{ID: "s1", Role: domain.RoleStaff}, "b1")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERMISSION_DENIED", domainErr.Code)
	assert.Empty(t, repo.deleted)
}

func TestAdminDeletesUnpaidAwaitingPayment(t *testing.T) {
	svc, repo, _ := reservationFixture(
		&domain.Reservation{ID: "b1", Status: domain.ReservationConfirmedPendingPayment, PaymentReceived: false},
	)

	err := svc.Delete(context.Background(), service.Actor{ID: "a1", Role: domain.RoleAdmin}, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, repo.deleted)
}

func TestAdminCannotDeletePaidReservation(t *testing.T) {
	svc, _, _ := reservationFixture(
		&domain.Reservation{ID: "b1", Status: domain.ReservationConfirmedPendingPayment, PaymentReceived: true},
	)

	err := svc.Delete(context.Background(), service.Actor{ID: "a1", Role: domain.RoleAdmin}, "b1")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, policy.ReasonReservationPaid, domainErr.Message)
}

func TestDeleteMissingReservation(t *testing.T) {
	svc, _, _ := reservationFixture()

	err := svc.Delete(context.Background(), service.Actor{ID: "a1", Role: domain.RoleAdmin}, "ghost")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
