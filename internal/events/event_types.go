package events

import (
	"time"

	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountStatusChanged EventType = "account_status_changed"
	EventStaffProfileUpdated  EventType = "staff_profile_updated"
	EventReservationDeleted   EventType = "reservation_deleted"
	EventRoomDeleted          EventType = "room_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	PrincipalID string      `json:"principal_id"`
	Role        domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountStatusChangedPayload payload.
type AccountStatusChangedPayload struct {
	TargetRole          domain.Role `json:"target_role"`
	Active              bool        `json:"active"`
	SessionsInvalidated int         `json:"sessions_invalidated"`
}

// StaffProfileUpdatedPayload payload.
type StaffProfileUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// ReservationDeletedPayload payload.
type ReservationDeletedPayload struct {
	Status          domain.ReservationStatus `json:"status"`
	PaymentReceived bool                     `json:"payment_received"`
}

// RoomDeletedPayload payload.
type RoomDeletedPayload struct {
	LikesRemoved    int64 `json:"likes_removed"`
	ObjectsRemoved  int   `json:"objects_removed"`
	ObjectsOrphaned int   `json:"objects_orphaned"`
}
