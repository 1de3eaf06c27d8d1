package domain

import "time"

// ReservationStatus enumerates reservation lifecycle states.
type ReservationStatus string

const (
	ReservationPending                 ReservationStatus = "Pending"
	ReservationConfirmedPendingPayment ReservationStatus = "Confirmed_Pending_Payment"
	ReservationConfirmed               ReservationStatus = "Confirmed"
	ReservationRejected                ReservationStatus = "Rejected"
	ReservationExpired                 ReservationStatus = "Expired"
	ReservationCancelled               ReservationStatus = "Cancelled"
	ReservationCompleted               ReservationStatus = "Completed"
)

// Reservation is a booking row. Booking workflows live elsewhere; this
// service only reads and deletes reservations.
type Reservation struct {
	ID              string
	GuestID         string
	RoomID          string
	Status          ReservationStatus
	PaymentReceived bool
	CheckIn         time.Time
	CheckOut        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
