package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resort-admin-service/internal/api/dto"
	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/policy"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	"github.com/spec-kit/resort-admin-service/internal/service"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// AdminsHandler exposes administrator account endpoints.
type AdminsHandler struct {
	accounts *service.AccountService
	staff    *service.StaffService
	validate *validator.Validate
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(accounts *service.AccountService, staff *service.StaffService) *AdminsHandler {
	return &AdminsHandler{accounts: accounts, staff: staff, validate: validator.New()}
}

// UpdateStatus handles PATCH /admin/:adminId/status.
func (h *AdminsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("isActive is required", validationDetails(err))
	}

	result, err := h.accounts.ChangeStatus(c.Context(),
		service.Actor{ID: principal.ID, Role: principal.Role},
		policy.ScopeAdminAccounts,
		c.Params("adminId"),
		*req.IsActive,
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statusUpdateResponse(result)})
}

// List handles GET /admin.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	role := domain.RoleAdmin
	filter := repository.StaffAccountFilter{
		Role:   &role,
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if val := c.Query("active"); val != "" {
		active := val == "true"
		filter.Active = &active
	}

	rows, err := h.staff.ListAccounts(c.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, *staffAccountResponse(&rows[i].Principal, &rows[i].Profile))
	}
	return c.JSON(fiber.Map{"data": resp})
}
