package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/events"
)

// StartAuditWorker registers audit handlers for every mutation event so
// each back-office change lands in the structured log.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, ev events.Event) error {
		logger.Info("audit",
			zap.String("event_id", ev.ID),
			zap.String("event_type", string(ev.Type)),
			zap.String("subject_id", ev.SubjectID),
			zap.String("actor_id", ev.Actor.PrincipalID),
			zap.String("actor_role", string(ev.Actor.Role)),
			zap.Time("at", ev.Timestamp),
			zap.Any("payload", ev.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventAccountStatusChanged,
		events.EventStaffProfileUpdated,
		events.EventReservationDeleted,
		events.EventRoomDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
