package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/policy"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// ReservationService applies the deletion policy to reservations.
type ReservationService struct {
	reservations repository.ReservationRepository
	dispatcher   events.Dispatcher
}

// NewReservationService builds the service.
func NewReservationService(reservations repository.ReservationRepository, dispatcher events.Dispatcher) *ReservationService {
	return &ReservationService{reservations: reservations, dispatcher: dispatcher}
}

// Delete removes a reservation when the actor's role permits it for the
// reservation's status and payment state. Reservations have no dependent
// rows, so the delete is a single statement.
func (s *ReservationService) Delete(ctx context.Context, actor Actor, reservationID string) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("reservation", map[string]any{"id": reservationID})
		}
		return apperrors.MapError(err)
	}

	decision := policy.AuthorizeReservationDeletion(actor.Role, reservation.Status, reservation.PaymentReceived)
	if !decision.Allowed {
		return apperrors.NewPermissionDenied(decision.Reason)
	}

	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("reservation", map[string]any{"id": reservationID})
		}
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReservationDeleted,
			SubjectID: reservationID,
			Actor:     events.Actor{PrincipalID: actor.ID, Role: actor.Role},
			Timestamp: time.Now().UTC(),
			Payload: events.ReservationDeletedPayload{
				Status:          reservation.Status,
				PaymentReceived: reservation.PaymentReceived,
			},
		})
	}
	return nil
}

// List returns reservations for back-office review.
func (s *ReservationService) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	reservations, err := s.reservations.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reservations, nil
}
