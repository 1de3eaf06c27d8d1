package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/repository"
)

// Status enumerates watcher states.
type Status string

const (
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Snapshot mirrors the identity-resolver output for one tracked session.
type Snapshot struct {
	Status      Status
	PrincipalID string
	Email       string
	Role        domain.Role
	Name        string
	Position    string
}

// Watcher tracks a single session and keeps a Snapshot in sync with the
// authoritative stores. It owns an explicit subscription handle on the
// session-change feed; every notification triggers a full recompute, so
// notification and initial-fetch interleavings are harmless.
type Watcher struct {
	sessionID  string
	sessions   *auth.SessionStore
	principals repository.PrincipalRepository
	profiles   repository.StaffProfileRepository
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot Snapshot

	pubsub interface{ Close() error }
	done   chan struct{}
}

// NewWatcher builds a watcher for the given session id.
func NewWatcher(sessionID string, sessions *auth.SessionStore, principals repository.PrincipalRepository, profiles repository.StaffProfileRepository, logger *zap.Logger) *Watcher {
	return &Watcher{
		sessionID:  sessionID,
		sessions:   sessions,
		principals: principals,
		profiles:   profiles,
		logger:     logger,
		snapshot:   Snapshot{Status: StatusLoading},
		done:       make(chan struct{}),
	}
}

// Start subscribes to the session-change feed, performs the initial
// fetch, and keeps refreshing until Close is called. The subscription is
// opened before the first fetch so no change can slip between them.
func (w *Watcher) Start(ctx context.Context) error {
	pubsub := w.sessions.Subscribe(ctx)
	w.pubsub = pubsub

	w.refresh(ctx)

	ch := pubsub.Channel()
	go func() {
		defer close(w.done)
		for msg := range ch {
			ev, err := auth.DecodeSessionEvent(msg.Payload)
			if err != nil {
				w.logger.Warn("undecodable session event", zap.Error(err))
				continue
			}
			if !w.relevant(ev) {
				continue
			}
			w.refresh(ctx)
		}
	}()
	return nil
}

// Close releases the subscription and waits for the loop to stop.
func (w *Watcher) Close() error {
	if w.pubsub == nil {
		return nil
	}
	err := w.pubsub.Close()
	<-w.done
	return err
}

// Snapshot returns the current state.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// relevant filters events to the tracked session's subject. An event
// without a session id is a subject-wide invalidation and always counts
// once the watcher knows its principal.
func (w *Watcher) relevant(ev auth.SessionEvent) bool {
	if ev.SessionID == w.sessionID {
		return true
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot.PrincipalID != "" && ev.PrincipalID == w.snapshot.PrincipalID
}

// refresh recomputes the snapshot from the authoritative stores. It never
// patches prior state; every field is rebuilt from scratch.
func (w *Watcher) refresh(ctx context.Context) {
	next := Snapshot{Status: StatusAnonymous}

	sess, err := w.sessions.Get(ctx, w.sessionID)
	switch {
	case errors.Is(err, auth.ErrSessionNotFound):
		w.store(next)
		return
	case err != nil:
		w.logger.Warn("session lookup failed", zap.Error(err))
		w.store(next)
		return
	}

	principal, err := w.principals.GetByID(ctx, sess.PrincipalID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			w.logger.Warn("principal lookup failed", zap.Error(err))
		}
		w.store(next)
		return
	}
	if !principal.Active {
		w.store(next)
		return
	}

	next = Snapshot{
		Status:      StatusAuthenticated,
		PrincipalID: principal.ID,
		Email:       principal.Email,
		Role:        principal.Role,
	}

	if principal.Role.IsBackOffice() {
		profile, err := w.profiles.GetByPrincipalID(ctx, principal.ID)
		if err == nil {
			next.Name = profile.Name
			next.Position = profile.Position
		} else if !errors.Is(err, pgx.ErrNoRows) {
			w.logger.Warn("staff profile lookup failed", zap.Error(err))
		}
	}

	w.store(next)
}

func (w *Watcher) store(s Snapshot) {
	w.mu.Lock()
	w.snapshot = s
	w.mu.Unlock()
}
