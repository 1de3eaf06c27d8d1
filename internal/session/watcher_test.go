package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/domain"
	"github.com/spec-kit/resort-admin-service/internal/repository"
	"github.com/spec-kit/resort-admin-service/internal/session"
)

type stubPrincipals struct {
	byID map[string]*domain.Principal
}

func (s *stubPrincipals) GetByID(_ context.Context, id string) (*domain.Principal, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (s *stubPrincipals) GetByEmail(_ context.Context, _ string) (*domain.Principal, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubPrincipals) Update(_ context.Context, _ *domain.Principal) error { return nil }

func (s *stubPrincipals) UpdateActive(_ context.Context, _ string, _ bool) error { return nil }

type stubProfiles struct {
	byPrincipal map[string]*domain.StaffProfile
}

func (s *stubProfiles) GetByPrincipalID(_ context.Context, principalID string) (*domain.StaffProfile, error) {
	p, ok := s.byPrincipal[principalID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (s *stubProfiles) Update(_ context.Context, _ *domain.StaffProfile) error { return nil }

func (s *stubProfiles) ListAccounts(_ context.Context, _ repository.StaffAccountFilter) ([]repository.StaffAccountRow, error) {
	return nil, nil
}

func watcherFixture(t *testing.T) (*auth.SessionStore, *stubPrincipals, *stubProfiles) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := auth.NewSessionStore(client, config.SessionConfig{
		CookieName: "test_session",
		TTLMinutes: 60,
	})
	principals := &stubPrincipals{byID: map[string]*domain.Principal{
		"p1": {ID: "p1", Email: "manager@resort.test", Role: domain.RoleAdmin, Active: true},
	}}
	profiles := &stubProfiles{byPrincipal: map[string]*domain.StaffProfile{
		"p1": {PrincipalID: "p1", Name: "Maya", Position: "Operations Manager"},
	}}
	return store, principals, profiles
}

func TestWatcherInitialFetchAuthenticated(t *testing.T) {
	store, principals, profiles := watcherFixture(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "p1", domain.RoleAdmin)
	require.NoError(t, err)

	w := session.NewWatcher(sess.ID, store, principals, profiles, zap.NewNop())
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Close() })

	snap := w.Snapshot()
	assert.Equal(t, session.StatusAuthenticated, snap.Status)
	assert.Equal(t, "p1", snap.PrincipalID)
	assert.Equal(t, domain.RoleAdmin, snap.Role)
	assert.Equal(t, "Maya", snap.Name)
	assert.Equal(t, "Operations Manager", snap.Position)
}

func TestWatcherUnknownSessionIsAnonymous(t *testing.T) {
	store, principals, profiles := watcherFixture(t)

	w := session.NewWatcher("missing", store, principals, profiles, zap.NewNop())
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Close() })

	snap := w.Snapshot()
	assert.Equal(t, session.StatusAnonymous, snap.Status)
	assert.Empty(t, snap.PrincipalID)
}

func TestWatcherTransitionsToAnonymousOnInvalidation(t *testing.T) {
	store, principals, profiles := watcherFixture(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "p1", domain.RoleAdmin)
	require.NoError(t, err)

	w := session.NewWatcher(sess.ID, store, principals, profiles, zap.NewNop())
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Close() })

	require.Equal(t, session.StatusAuthenticated, w.Snapshot().Status)

	_, err = store.InvalidateSubject(ctx, "p1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap := w.Snapshot()
		return snap.Status == session.StatusAnonymous && snap.Name == ""
	}, 3*time.Second, 20*time.Millisecond, "watcher should drop to anonymous after invalidation")
}

func TestWatcherRefreshesOnNewSessionForSubject(t *testing.T) {
	store, principals, profiles := watcherFixture(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "p1", domain.RoleAdmin)
	require.NoError(t, err)

	w := session.NewWatcher(sess.ID, store, principals, profiles, zap.NewNop())
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Close() })

	// profile rename becomes visible after the next relevant notification
	profiles.byPrincipal["p1"].Name = "Maya R."
	_, err = store.Create(ctx, "p1", domain.RoleAdmin)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return w.Snapshot().Name == "Maya R."
	}, 3*time.Second, 20*time.Millisecond)
}
