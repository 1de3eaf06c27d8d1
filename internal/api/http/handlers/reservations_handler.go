package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/service"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// ReservationsHandler exposes reservation management endpoints.
type ReservationsHandler struct {
	reservations *service.ReservationService
}

// NewReservationsHandler constructs handler.
func NewReservationsHandler(reservations *service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{reservations: reservations}
}

// Delete handles DELETE /reservations/:reservationId.
func (h *ReservationsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	id := c.Params("reservationId")
	if err := h.reservations.Delete(c.Context(),
		service.Actor{ID: principal.ID, Role: principal.Role}, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"message": "reservation deleted",
		"id":      id,
	}})
}
