package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// StaffUpdate is a partial profile update; nil fields are left untouched.
type StaffUpdate struct {
	Password *string
	Role     *domain.Role
	Name     *string
	Username *string
	Phone    *string
	Position *string
	IsAdmin  *bool
}

// StaffAccount is the merged view returned after an update.
type StaffAccount struct {
	Principal *domain.Principal
	Profile   *domain.StaffProfile
}

// StaffService manages staff profile mutations.
type StaffService struct {
	principals repository.PrincipalRepository
	profiles   repository.StaffProfileRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewStaffService builds the service.
func NewStaffService(principals repository.PrincipalRepository, profiles repository.StaffProfileRepository, dispatcher events.Dispatcher, bcryptCost int) *StaffService {
	return &StaffService{principals: principals, profiles: profiles, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// UpdateProfile applies a partial staff update and returns the merged
// result. Passwords are checked against the strength policy before any
// write; username collisions surface as a conflict.
func (s *StaffService) UpdateProfile(ctx context.Context, actor Actor, targetID string, update StaffUpdate) (*StaffAccount, error) {
	principal, err := s.principals.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff account", map[string]any{"id": targetID})
		}
		return nil, apperrors.MapError(err)
	}
	if !principal.Role.IsBackOffice() {
		return nil, apperrors.NewNotFound("staff account", map[string]any{"id": targetID})
	}

	profile, err := s.profiles.GetByPrincipalID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff profile", map[string]any{"id": targetID})
		}
		return nil, apperrors.MapError(err)
	}

	changed := make([]string, 0, 7)
	principalDirty := false

	if update.Password != nil {
		if err := auth.ValidatePasswordStrength(*update.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		principal.PasswordHash = hash
		principalDirty = true
		changed = append(changed, "password")
	}
	if update.Role != nil {
		if !update.Role.Valid() || !update.Role.IsBackOffice() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*update.Role)})
		}
		principal.Role = *update.Role
		profile.IsAdmin = *update.Role == domain.RoleAdmin || *update.Role == domain.RoleSuperAdmin
		principalDirty = true
		changed = append(changed, "role")
	}
	if update.Name != nil {
		profile.Name = *update.Name
		changed = append(changed, "name")
	}
	if update.Username != nil {
		profile.Username = *update.Username
		changed = append(changed, "username")
	}
	if update.Phone != nil {
		profile.Phone = *update.Phone
		changed = append(changed, "phone")
	}
	if update.Position != nil {
		profile.Position = *update.Position
		changed = append(changed, "position")
	}
	if update.IsAdmin != nil {
		profile.IsAdmin = *update.IsAdmin
		changed = append(changed, "is_admin")
	}

	if len(changed) == 0 {
		return &StaffAccount{Principal: principal, Profile: profile}, nil
	}

	if principalDirty {
		if err := s.principals.Update(ctx, principal); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already taken", map[string]any{"username": profile.Username})
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStaffProfileUpdated,
			SubjectID: targetID,
			Actor:     events.Actor{PrincipalID: actor.ID, Role: actor.Role},
			Timestamp: time.Now().UTC(),
			Payload:   events.StaffProfileUpdatedPayload{Fields: changed},
		})
	}

	return &StaffAccount{Principal: principal, Profile: profile}, nil
}

// ListAccounts returns staff accounts for the back-office roster view.
func (s *StaffService) ListAccounts(ctx context.Context, filter repository.StaffAccountFilter) ([]repository.StaffAccountRow, error) {
	rows, err := s.profiles.ListAccounts(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}
