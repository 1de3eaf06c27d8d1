package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// Actor identifies the caller inside service operations.
type Actor struct {
	ID   string
	Role domain.Role
}

// LoginResult bundles everything the login handler returns.
type LoginResult struct {
	Principal *domain.Principal
	Profile   *domain.StaffProfile
	Token     string
	ExpiresAt time.Time
	Session   *auth.Session
}

// AuthService coordinates back-office login and logout.
type AuthService struct {
	principals repository.PrincipalRepository
	profiles   repository.StaffProfileRepository
	sessions   *auth.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	PrincipalRepo repository.PrincipalRepository
	ProfileRepo   repository.StaffProfileRepository
	Sessions      *auth.SessionStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		principals: deps.PrincipalRepo,
		profiles:   deps.ProfileRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates a back-office account and issues both a bearer
// token and a cookie session. Customer accounts cannot enter the back
// office.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	principal, err := s.principals.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !principal.Active {
		return nil, apperrors.NewUnauthenticated("account is disabled")
	}
	if !principal.Role.IsBackOffice() {
		return nil, apperrors.NewPermissionDenied("back-office role required")
	}
	if err := auth.ComparePassword(principal.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(principal.ID, principal.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	sess, err := s.sessions.Create(ctx, principal.ID, principal.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &LoginResult{
		Principal: principal,
		Token:     token,
		ExpiresAt: exp,
		Session:   sess,
	}

	profile, err := s.profiles.GetByPrincipalID(ctx, principal.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	result.Profile = profile
	return result, nil
}

// Logout destroys the caller's cookie session, if any.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
