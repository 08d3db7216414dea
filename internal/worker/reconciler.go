// Package worker runs the background reconciler that pushes inferred
// booking status transitions back to the backend. The bot shows a
// CONFIRMED booking whose end time has passed as COMPLETED immediately;
// making the backend agree is journaled, queued and retried here so the
// user never waits on it.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/database"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/metrics"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StatusPusher is the slice of the booking API the reconciler needs.
type StatusPusher interface {
	UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error)
}

// EventSink receives an event after a status push lands. Optional.
type EventSink interface {
	PublishJSON(eventType string, payload interface{}) error
}

// statusTaskPayload is persisted in SyncTask.Payload as JSON. The chat id
// is kept because status pushes run under that chat's bearer token.
type statusTaskPayload struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
	ChatID    int64  `json:"chat_id"`
}

type Reconciler struct {
	db            *database.DB
	pusher        StatusPusher
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.SyncTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	events        EventSink
	logger        *zerolog.Logger
}

// NewReconciler builds a reconciler with sane defaults.
func NewReconciler(db *database.DB, pusher StatusPusher, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *Reconciler {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &Reconciler{
		db:            db,
		pusher:        pusher,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.SyncTask, models.WorkerQueueSize),
		redisQueueKey: "reconcile:queue",
		deadLetterKey: "reconcile:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
		logger:        logger,
	}
}

// SetPollInterval overrides how often the journal is polled.
func (w *Reconciler) SetPollInterval(d time.Duration) {
	if d > 0 {
		w.pollInterval = d
	}
}

// SetBatchSize overrides the journal poll batch size.
func (w *Reconciler) SetBatchSize(n int) {
	if n > 0 {
		w.batchSize = n
	}
}

// SetEventSink attaches a bus notified when a booking status push lands.
func (w *Reconciler) SetEventSink(sink EventSink) {
	w.events = sink
}

// EnqueueCompletion journals a COMPLETED push for the booking unless one
// is already open, then schedules it via redis or the in-memory queue.
func (w *Reconciler) EnqueueCompletion(ctx context.Context, chatID, bookingID int64) error {
	if bookingID == 0 {
		return errors.New("booking id is required")
	}

	open, err := w.db.HasOpenTaskForBooking(ctx, models.TaskCompleteBooking, bookingID)
	if err != nil {
		return fmt.Errorf("check open tasks: %w", err)
	}
	if open {
		return nil
	}

	payloadBytes, err := json.Marshal(statusTaskPayload{
		BookingID: bookingID,
		Status:    models.BookingCompleted,
		ChatID:    chatID,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	syncTask := models.SyncTask{
		TaskType:  models.TaskCompleteBooking,
		BookingID: bookingID,
		Payload:   string(payloadBytes),
		Status:    models.SyncStatusPending,
		CreatedAt: time.Now(),
	}

	if err := w.db.CreateSyncTask(ctx, &syncTask); err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	if w.redis != nil {
		if err := w.pushRedis(ctx, syncTask); err != nil {
			w.logger.Warn().Err(err).Msg("reconciler: redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- syncTask:
	default:
		w.logger.Warn().Int64("task_id", syncTask.ID).Msg("reconciler: in-memory queue full, task left to polling")
	}

	return nil
}

// Start launches the main loop; stops when ctx is done.
func (w *Reconciler) Start(ctx context.Context) {
	w.logger.Info().Msg("reconciler started")
	defer w.logger.Info().Msg("reconciler stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingSyncTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("reconciler: fetch pending tasks")
			time.Sleep(w.pollInterval)
			continue
		}
		if len(tasks) == 0 {
			time.Sleep(w.pollInterval)
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *Reconciler) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *Reconciler) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return models.SyncTask{}, false
		}
		w.logger.Error().Err(err).Msg("reconciler: redis BRPOP")
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("reconciler: decode redis task")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *Reconciler) processTask(ctx context.Context, task *models.SyncTask) {
	payload, err := w.decodePayload(task.Payload)
	if err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	if err := w.pushStatus(ctx, task.TaskType, payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, models.SyncStatusCompleted, "", nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: mark completed")
	}
	metrics.IncSyncTask("completed")

	if w.events != nil && task.TaskType == models.TaskCompleteBooking {
		if err := w.events.PublishJSON(events.EventBookingCompleted, events.BookingEventPayload{
			BookingID: payload.BookingID,
			Status:    payload.Status,
		}); err != nil {
			w.logger.Warn().Err(err).Int64("booking_id", payload.BookingID).Msg("reconciler: publish completed event")
		}
	}
}

func (w *Reconciler) pushStatus(ctx context.Context, taskType string, payload statusTaskPayload) error {
	switch taskType {
	case models.TaskCompleteBooking:
		if payload.BookingID == 0 || payload.Status == "" {
			return errors.New("booking id or status missing")
		}
		_, err := w.pusher.UpdateStatus(session.WithChat(ctx, payload.ChatID), payload.BookingID, payload.Status)
		return err
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
}

func (w *Reconciler) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	if w.retryPolicy.Exhausted(attempt) {
		if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, models.SyncStatusFailed, cause.Error(), nil); err != nil {
			w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: mark failed")
		}
		w.pushDeadLetter(ctx, task)
		metrics.IncSyncTask("failed")
		return
	}

	nextDelay := w.retryPolicy.NextDelay(attempt)
	nextTime := time.Now().Add(nextDelay)
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, models.SyncStatusRetry, cause.Error(), &nextTime); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: mark retry")
	}
	metrics.IncSyncTask("retry")
}

func (w *Reconciler) failTask(ctx context.Context, task *models.SyncTask, cause error) {
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, models.SyncStatusFailed, cause.Error(), nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: mark failed")
	}
	w.pushDeadLetter(ctx, task)
	metrics.IncSyncTask("failed")
}

func (w *Reconciler) decodePayload(raw string) (statusTaskPayload, error) {
	var payload statusTaskPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (w *Reconciler) pushRedis(ctx context.Context, task models.SyncTask) error {
	if w.redis == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *Reconciler) pushDeadLetter(ctx context.Context, task *models.SyncTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: encode deadletter")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("reconciler: deadletter push")
	}
}
