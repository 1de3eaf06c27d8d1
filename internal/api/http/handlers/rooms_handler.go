package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/service"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// RoomsHandler exposes room management endpoints.
type RoomsHandler struct {
	rooms *service.RoomService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(rooms *service.RoomService) *RoomsHandler {
	return &RoomsHandler{rooms: rooms}
}

// Delete handles DELETE /rooms/:roomId.
func (h *RoomsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	id := c.Params("roomId")
	report, err := h.rooms.Delete(c.Context(),
		service.Actor{ID: principal.ID, Role: principal.Role}, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"message":          "room deleted",
		"id":               id,
		"likes_removed":    report.LikesRemoved,
		"objects_removed":  report.ObjectsRemoved,
		"objects_orphaned": report.ObjectsOrphaned,
	}})
}
