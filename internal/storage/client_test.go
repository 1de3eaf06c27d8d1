package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *storage.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return storage.NewClient(config.StorageConfig{
		URL:        srv.URL,
		ServiceKey: "service-key",
	})
}

func TestRemoveObject(t *testing.T) {
	var gotPath, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	err := client.RemoveObject(context.Background(), "room-images", "rooms/42/front.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/object/room-images/rooms/42/front.jpg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
}

func TestRemoveObjectMissingIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, client.RemoveObject(context.Background(), "room-images", "gone.jpg"))
}

func TestRemoveObjectServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Error(t, client.RemoveObject(context.Background(), "room-images", "a.jpg"))
}
