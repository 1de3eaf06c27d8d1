package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewPermissionDenied("insufficient role")
		}
		return c.Next()
	}
}

// RequireBackOffice ensures the caller is staff, admin or super admin.
func RequireBackOffice() fiber.Handler {
	return RequireRole(domain.RoleStaff, domain.RoleAdmin, domain.RoleSuperAdmin)
}

// RequireBearerCredential rejects cookie-authenticated callers. Used on
// endpoints that must only be reachable with a service bearer token.
func RequireBearerCredential() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if principal.Source != CredentialBearer {
			return apperrors.NewUnauthenticated("bearer credential required")
		}
		return c.Next()
	}
}
