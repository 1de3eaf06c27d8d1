package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

const principalKey = "auth_principal"

// CredentialSource records which credential established the principal.
type CredentialSource string

const (
	CredentialBearer CredentialSource = "bearer"
	CredentialCookie CredentialSource = "cookie"
)

// Principal represents the authenticated caller.
type Principal struct {
	ID      string
	Email   string
	Role    domain.Role
	Source  CredentialSource
	Account *domain.Principal
	Profile *domain.StaffProfile
}

// IsTarget reports whether the principal acts on its own account.
func (p *Principal) IsTarget(targetID string) bool {
	return p != nil && p.ID == targetID
}

// Middleware resolves the acting principal from either a bearer token or
// a session cookie, bearer first.
type Middleware struct {
	tokens     *TokenManager
	sessions   *SessionStore
	principals repository.PrincipalRepository
	profiles   repository.StaffProfileRepository
}

// NewMiddleware constructs the identity-resolving middleware.
func NewMiddleware(tokens *TokenManager, sessions *SessionStore, principals repository.PrincipalRepository, profiles repository.StaffProfileRepository) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions, principals: principals, profiles: profiles}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	subjectID, source, err := m.resolveCredential(c)
	if err != nil {
		return err
	}

	account, err := m.principals.GetByID(c.Context(), subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthenticated("account not found")
		}
		return apperrors.MapError(err)
	}
	if !account.Active {
		return apperrors.NewUnauthenticated("account is disabled")
	}

	principal := &Principal{
		ID:      account.ID,
		Email:   account.Email,
		Role:    account.Role,
		Source:  source,
		Account: account,
	}

	if account.Role.IsBackOffice() {
		profile, err := m.profiles.GetByPrincipalID(c.Context(), account.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
		principal.Profile = profile
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// resolveCredential tries the Authorization header, then the session
// cookie. Cookie fallback only runs when no usable bearer token exists.
func (m *Middleware) resolveCredential(c *fiber.Ctx) (string, CredentialSource, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "", apperrors.NewUnauthenticated("invalid authorization header")
		}
		claims, err := m.tokens.ParseToken(parts[1])
		if err == nil {
			return claims.SubjectID, CredentialBearer, nil
		}
	}

	sid := c.Cookies(m.sessions.CookieName())
	if sid != "" {
		sess, err := m.sessions.Get(c.Context(), sid)
		if err == nil {
			return sess.PrincipalID, CredentialCookie, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", "", apperrors.MapError(err)
		}
	}

	return "", "", apperrors.NewUnauthenticated("no valid credential presented")
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
