package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/fitness"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, time.Hour), mr
}

func testSession() *models.Session {
	return &models.Session{
		UserID:    42,
		Email:     "ivan@example.com",
		FullName:  "Ivan Petrov",
		Role:      models.RoleClient,
		ProfileID: 7,
		Token:     "jwt-token",
	}
}

func TestRedisStore_SessionRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	got, err := store.GetSession(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.SetSession(ctx, 100, testSession()))

	got, err = store.GetSession(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ivan@example.com", got.Email)
	assert.Equal(t, "jwt-token", got.Token)
	assert.True(t, got.IsClient())

	require.NoError(t, store.ClearSession(ctx, 100))
	got, err = store.GetSession(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_CorruptSessionDiscarded(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:100", "{not json"))

	got, err := store.GetSession(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("session:100"))
}

func TestRedisStore_StateRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	state := &models.ChatState{
		ChatID:      100,
		CurrentStep: models.StateSlotEnterStart,
		TempData:    map[string]interface{}{"training_type_id": int64(3)},
	}
	require.NoError(t, store.SetState(ctx, state))

	got, err := store.GetState(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateSlotEnterStart, got.CurrentStep)
	id, ok := got.GetInt64("training_type_id")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	require.NoError(t, store.ClearState(ctx, 100))
	got, err = store.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_CheckRateLimit(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.CheckRateLimit(ctx, 100, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, err := store.CheckRateLimit(ctx, 100, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_SessionAndRateLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, 1, testSession()))
	got, err := store.GetSession(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UserID)

	require.NoError(t, store.ClearSession(ctx, 1))
	got, err = store.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := store.CheckRateLimit(ctx, 1, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.CheckRateLimit(ctx, 1, 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFailoverStore_FallsBackWhenPrimaryDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zerolog.Nop()
	primary := NewRedisStore(client, time.Hour)
	fallback := NewMemoryStore()
	store := NewFailoverStore(primary, fallback, &logger)
	ctx := context.Background()

	mr.Close()

	require.NoError(t, store.SetSession(ctx, 5, testSession()))

	got, err := store.GetSession(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "jwt-token", got.Token)
}

func TestFailoverStore_ClearSessionClearsBothLayers(t *testing.T) {
	logger := zerolog.Nop()
	primary := NewMemoryStore()
	fallback := NewMemoryStore()
	store := NewFailoverStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, primary.SetSession(ctx, 9, testSession()))
	require.NoError(t, fallback.SetSession(ctx, 9, testSession()))

	require.NoError(t, store.ClearSession(ctx, 9))

	got, err := primary.GetSession(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = fallback.GetSession(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_LoginLogoutLifecycle(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testSession())
	}))
	defer backend.Close()

	store := NewMemoryStore()
	logger := zerolog.Nop()
	manager := NewManager(store, &logger)

	client := fitness.NewClient(backend.URL, manager)
	manager.AttachAuth(fitness.NewAuthService(client))
	ctx := context.Background()

	sess, err := manager.Login(ctx, 200, "ivan@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, sess.Role)

	header := manager.AuthHeader(ctx, 200)
	assert.Equal(t, "Bearer jwt-token", header["Authorization"])
	assert.Equal(t, "jwt-token", manager.Token(WithChat(ctx, 200)))

	require.NoError(t, manager.Logout(ctx, 200))
	assert.Empty(t, manager.AuthHeader(ctx, 200))
	assert.Nil(t, manager.Current(ctx, 200))
	assert.Equal(t, "", manager.Token(WithChat(ctx, 200)))
}

func TestManager_LoginFailureDoesNotPersist(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"No user with this email"}`))
	}))
	defer backend.Close()

	store := NewMemoryStore()
	logger := zerolog.Nop()
	manager := NewManager(store, &logger)
	client := fitness.NewClient(backend.URL, manager)
	manager.AttachAuth(fitness.NewAuthService(client))
	ctx := context.Background()

	_, err := manager.Login(ctx, 300, "ivan@example.com", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "No user with this email")
	assert.Nil(t, manager.Current(ctx, 300))
	assert.Empty(t, manager.AuthHeader(ctx, 300))
}
