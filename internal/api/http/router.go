package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admins         *handlers.AdminsHandler
	Staff          *handlers.StaffHandler
	Reservations   *handlers.ReservationsHandler
	Rooms          *handlers.RoomsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	admins := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	admins.Get("/", cfg.Admins.List)
	admins.Patch("/:adminId/status", cfg.Admins.UpdateStatus)

	staff := protected.Group("/staff", auth.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	staff.Get("/", cfg.Staff.List)
	staff.Patch("/:staffId/status", cfg.Staff.UpdateStatus)
	staff.Put("/:staffId", cfg.Staff.Update)

	reservations := protected.Group("/reservations", auth.RequireBackOffice())
	reservations.Delete("/:reservationId", cfg.Reservations.Delete)

	rooms := protected.Group("/rooms",
		auth.RequireBearerCredential(),
		auth.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	rooms.Delete("/:roomId", cfg.Rooms.Delete)
}
