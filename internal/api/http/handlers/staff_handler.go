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

// StaffHandler exposes staff account management endpoints.
type StaffHandler struct {
	accounts *service.AccountService
	staff    *service.StaffService
	validate *validator.Validate
}

// NewStaffHandler constructs handler.
func NewStaffHandler(accounts *service.AccountService, staff *service.StaffService) *StaffHandler {
	return &StaffHandler{accounts: accounts, staff: staff, validate: validator.New()}
}

// UpdateStatus handles PATCH /staff/:staffId/status. It shares the exact
// rule set of the admin status endpoint; only the accepted target class
// differs.
func (h *StaffHandler) UpdateStatus(c *fiber.Ctx) error {
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
		policy.ScopeStaffAccounts,
		c.Params("staffId"),
		*req.IsActive,
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statusUpdateResponse(result)})
}

// Update handles PUT /staff/:staffId.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.StaffUpdate{
		Password: req.Password,
		Name:     req.Name,
		Username: req.Username,
		Phone:    req.Phone,
		Position: req.Position,
		IsAdmin:  req.IsAdmin,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	account, err := h.staff.UpdateProfile(c.Context(),
		service.Actor{ID: principal.ID, Role: principal.Role},
		c.Params("staffId"),
		update,
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffAccountResponse(account.Principal, account.Profile)})
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	filter := repository.StaffAccountFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if val := c.Query("role"); val != "" {
		role := domain.Role(val)
		if !role.Valid() {
			return apperrors.NewValidationError("invalid role filter", map[string]any{"role": val})
		}
		filter.Role = &role
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

func statusUpdateResponse(result *service.StatusChangeResult) dto.StatusUpdateResponse {
	return dto.StatusUpdateResponse{
		ID:       result.Principal.ID,
		Result:   string(result.Outcome),
		IsActive: result.Principal.Active,
	}
}

func staffAccountResponse(principal *domain.Principal, profile *domain.StaffProfile) *dto.StaffResponse {
	resp := &dto.StaffResponse{
		ID:        principal.ID,
		Email:     principal.Email,
		Role:      string(principal.Role),
		IsActive:  principal.Active,
		UpdatedAt: principal.UpdatedAt,
	}
	if profile != nil {
		resp.Name = profile.Name
		resp.Username = profile.Username
		resp.Phone = profile.Phone
		resp.Position = profile.Position
		resp.IsAdmin = profile.IsAdmin
		if profile.UpdatedAt.After(resp.UpdatedAt) {
			resp.UpdatedAt = profile.UpdatedAt
		}
	}
	return resp
}
