package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/database"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if b := args.Get(0); b != nil {
		return b.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestReconciler(t *testing.T, pusher StatusPusher) (*Reconciler, *database.DB) {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zerolog.Nop()
	return NewReconciler(db, pusher, nil, RetryPolicy{MaxRetries: 3}, &logger), db
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	assert.Equal(t, 10*time.Second, policy.NextDelay(10), "delay is clamped to MaxDelay")
	assert.Equal(t, time.Second, policy.NextDelay(0), "attempt below 1 is treated as first")
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := RetryPolicy{}
	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
}

func TestRetryPolicyExhausted(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3}
	assert.False(t, policy.Exhausted(2))
	assert.True(t, policy.Exhausted(3))
	assert.True(t, policy.Exhausted(4))
}

func TestEnqueueCompletion_JournalsOnce(t *testing.T) {
	pusher := &mockPusher{}
	w, db := newTestReconciler(t, pusher)
	ctx := context.Background()

	require.NoError(t, w.EnqueueCompletion(ctx, 100, 7))
	require.NoError(t, w.EnqueueCompletion(ctx, 100, 7))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, models.TaskCompleteBooking, tasks[0].TaskType)
}

func TestEnqueueCompletion_RequiresBookingID(t *testing.T) {
	pusher := &mockPusher{}
	w, _ := newTestReconciler(t, pusher)

	assert.Error(t, w.EnqueueCompletion(context.Background(), 100, 0))
}

func TestProcessTask_PushesStatusUnderChatContext(t *testing.T) {
	pusher := &mockPusher{}
	w, db := newTestReconciler(t, pusher)
	ctx := context.Background()

	pusher.On("UpdateStatus", mock.MatchedBy(func(ctx context.Context) bool {
		chatID, ok := session.ChatFrom(ctx)
		return ok && chatID == 100
	}), int64(7), models.BookingCompleted).Return(&models.Booking{ID: 7, Status: models.BookingCompleted}, nil)

	require.NoError(t, w.EnqueueCompletion(ctx, 100, 7))
	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w.processTask(ctx, &tasks[0])

	pusher.AssertExpectations(t)
	remaining, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProcessTask_RetriesThenFails(t *testing.T) {
	pusher := &mockPusher{}
	w, db := newTestReconciler(t, pusher)
	ctx := context.Background()

	pusher.On("UpdateStatus", mock.Anything, int64(9), models.BookingCompleted).
		Return(nil, errors.New("backend unavailable"))

	require.NoError(t, w.EnqueueCompletion(ctx, 100, 9))
	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]

	w.processTask(ctx, &task)

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, failed, "first failure schedules a retry")

	// Exhaust the attempts.
	task.RetryCount = w.retryPolicy.MaxRetries - 1
	w.processTask(ctx, &task)

	failed, err = db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "backend unavailable", failed[0].LastError)
}

func TestProcessTask_BadPayloadFails(t *testing.T) {
	pusher := &mockPusher{}
	w, db := newTestReconciler(t, pusher)
	ctx := context.Background()

	task := &models.SyncTask{
		TaskType:  models.TaskCompleteBooking,
		BookingID: 4,
		Payload:   "{not json",
		Status:    models.SyncStatusPending,
	}
	require.NoError(t, db.CreateSyncTask(ctx, task))

	w.processTask(ctx, task)

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	pusher.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
