package policy

import "github.com/spec-kit/resort-admin-service/internal/domain"

// Deny reasons for reservation deletion.
const (
	ReasonReservationRoleDenied  = "role is not permitted to delete reservations"
	ReasonReservationStatusStaff = "staff may only delete pending, rejected, expired or cancelled reservations"
	ReasonReservationPaid        = "reservations with received payment cannot be deleted"
)

// staffDeletableStatuses are the terminal-or-unstarted states any staff
// member may clear out.
var staffDeletableStatuses = map[domain.ReservationStatus]struct{}{
	domain.ReservationPending:   {},
	domain.ReservationRejected:  {},
	domain.ReservationExpired:   {},
	domain.ReservationCancelled: {},
}

// CanDeleteReservation reports whether actorRole may delete a reservation
// in the given status with the given payment state.
func CanDeleteReservation(actorRole domain.Role, status domain.ReservationStatus, paymentReceived bool) bool {
	return AuthorizeReservationDeletion(actorRole, status, paymentReceived).Allowed
}

// AuthorizeReservationDeletion is the reason-bearing form consumed by the
// HTTP layer.
func AuthorizeReservationDeletion(actorRole domain.Role, status domain.ReservationStatus, paymentReceived bool) Decision {
	switch actorRole {
	case domain.RoleSuperAdmin:
		return allow()
	case domain.RoleAdmin:
		if _, ok := staffDeletableStatuses[status]; ok {
			return allow()
		}
		if status == domain.ReservationConfirmedPendingPayment {
			if paymentReceived {
				return deny(ReasonReservationPaid)
			}
			return allow()
		}
		return deny(ReasonReservationStatusStaff)
	case domain.RoleStaff:
		if _, ok := staffDeletableStatuses[status]; ok {
			return allow()
		}
		return deny(ReasonReservationStatusStaff)
	default:
		return deny(ReasonReservationRoleDenied)
	}
}
