package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/events"
	"github.com/spec-kit/resort-admin-service/internal/policy"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	apperrors "github.com/spec-kit/resort-admin-service/pkg/util"
)

// StatusOutcome distinguishes an applied change from an idempotent no-op.
type StatusOutcome string

const (
	StatusUpdated  StatusOutcome = "updated"
	StatusNoChange StatusOutcome = "no_change"
)

// StatusChangeResult reports what a status change actually did.
type StatusChangeResult struct {
	Outcome             StatusOutcome
	Principal           *domain.Principal
	SessionsInvalidated int
}

// SessionInvalidator force-expires every live session of a principal.
type SessionInvalidator interface {
	InvalidateSubject(ctx context.Context, principalID string) (int, error)
}

// AccountService applies active-flag changes under the shared status
// policy. Both the admin and staff status endpoints go through here.
type AccountService struct {
	principals repository.PrincipalRepository
	sessions   SessionInvalidator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(principals repository.PrincipalRepository, sessions SessionInvalidator, dispatcher events.Dispatcher, logger *zap.Logger) *AccountService {
	return &AccountService{principals: principals, sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// ChangeStatus evaluates the policy and, when allowed and needed,
// persists the new active flag. Deactivation additionally invalidates the
// target's live sessions; that step is best-effort because the state
// mutation has already committed.
func (s *AccountService) ChangeStatus(ctx context.Context, actor Actor, scope policy.TargetScope, targetID string, requestedActive bool) (*StatusChangeResult, error) {
	target, err := s.principals.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": targetID})
		}
		return nil, apperrors.MapError(err)
	}

	decision := policy.AuthorizeStatusChange(scope, policy.StatusChange{
		ActorRole:       actor.Role,
		TargetRole:      target.Role,
		TargetActive:    target.Active,
		RequestedActive: requestedActive,
		ActorIsTarget:   actor.ID == target.ID,
	})
	if !decision.Allowed {
		return nil, apperrors.NewPermissionDenied(decision.Reason)
	}
	if decision.NoChange {
		return &StatusChangeResult{Outcome: StatusNoChange, Principal: target}, nil
	}

	if err := s.principals.UpdateActive(ctx, target.ID, requestedActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": targetID})
		}
		return nil, apperrors.MapError(err)
	}
	target.Active = requestedActive

	invalidated := 0
	if !requestedActive && s.sessions != nil {
		n, err := s.sessions.InvalidateSubject(ctx, target.ID)
		if err != nil {
			s.logger.Warn("session invalidation failed after deactivation",
				zap.String("principal_id", target.ID), zap.Error(err))
		} else {
			invalidated = n
		}
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountStatusChanged,
		SubjectID: target.ID,
		Actor:     events.Actor{PrincipalID: actor.ID, Role: actor.Role},
		Timestamp: time.Now().UTC(),
		Payload: events.AccountStatusChangedPayload{
			TargetRole:          target.Role,
			Active:              requestedActive,
			SessionsInvalidated: invalidated,
		},
	})

	return &StatusChangeResult{
		Outcome:             StatusUpdated,
		Principal:           target,
		SessionsInvalidated: invalidated,
	}, nil
}

func (s *AccountService) publish(ctx context.Context, ev events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, ev)
}
