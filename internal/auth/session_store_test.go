package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resort-admin-service/internal/auth"
	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/domain"
)

func newTestStore(t *testing.T) (*auth.SessionStore, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := auth.NewSessionStore(client, config.SessionConfig{
		CookieName: "test_session",
		TTLMinutes: 60,
	})
	return store, client
}

func TestSessionCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "p-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "p-1", loaded.PrincipalID)
	assert.Equal(t, domain.RoleAdmin, loaded.Role)
}

func TestSessionGetUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSessionDestroy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "p-1", domain.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, store.Destroy(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	// destroying a gone session is a no-op
	assert.NoError(t, store.Destroy(ctx, sess.ID))
}

func TestInvalidateSubjectRemovesAllSessions(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "p-1", domain.RoleAdmin)
	require.NoError(t, err)
	second, err := store.Create(ctx, "p-1", domain.RoleAdmin)
	require.NoError(t, err)
	other, err := store.Create(ctx, "p-2", domain.RoleStaff)
	require.NoError(t, err)

	n, err := store.InvalidateSubject(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	_, err = store.Get(ctx, second.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	// unrelated subject keeps its session
	_, err = store.Get(ctx, other.ID)
	assert.NoError(t, err)
}

func TestSessionEventsPublished(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	pubsub := store.Subscribe(ctx)
	t.Cleanup(func() { _ = pubsub.Close() })
	ch := pubsub.Channel()

	sess, err := store.Create(ctx, "p-1", domain.RoleAdmin)
	require.NoError(t, err)

	select {
	case msg := <-ch:
		ev, err := auth.DecodeSessionEvent(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, auth.SessionEventSignedIn, ev.Kind)
		assert.Equal(t, "p-1", ev.PrincipalID)
		assert.Equal(t, sess.ID, ev.SessionID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected signed_in event")
	}

	_, err = store.InvalidateSubject(ctx, "p-1")
	require.NoError(t, err)

	select {
	case msg := <-ch:
		ev, err := auth.DecodeSessionEvent(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, auth.SessionEventSignedOut, ev.Kind)
		assert.Equal(t, "p-1", ev.PrincipalID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected signed_out event")
	}
}
