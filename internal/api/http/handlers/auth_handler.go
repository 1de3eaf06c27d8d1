package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/api/dto"
	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/service"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// AuthHandler exposes back-office login and logout.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *auth.SessionStore
	validate    *validator.Validate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionStore) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, validate: validator.New()}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("email and password required", validationDetails(err))
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.WriteCookie(c, result.Session)

	resp := fiber.Map{
		"account": staffAccountResponse(result.Principal, result.Profile),
		"auth":    dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(h.sessions.CookieName())
	if err := h.authService.Logout(c.Context(), sid); err != nil {
		return apperrors.MapError(err)
	}
	h.sessions.ClearCookie(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "signed_out"}})
}

func validationDetails(err error) map[string]any {
	details := map[string]any{}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return details
	}
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return details
}
