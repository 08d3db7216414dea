package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	"github.com/rs/zerolog"
)

// FailoverStore prefers the primary store and falls back in-process when
// it errors, probing the primary again after a minute.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverStore) markDown(err error) {
	f.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().UnixNano())
}

// shouldProbe reports whether the primary deserves another attempt.
func (f *FailoverStore) shouldProbe() bool {
	return f.isDown.Load() && time.Since(time.Unix(0, f.lastCheck.Load())) > time.Minute
}

func (f *FailoverStore) GetSession(ctx context.Context, chatID int64) (*models.Session, error) {
	if !f.isDown.Load() || f.shouldProbe() {
		session, err := f.primary.GetSession(ctx, chatID)
		if err == nil {
			f.isDown.Store(false)
			return session, nil
		}
		f.markDown(err)
	}
	return f.fallback.GetSession(ctx, chatID)
}

func (f *FailoverStore) SetSession(ctx context.Context, chatID int64, session *models.Session) error {
	if !f.isDown.Load() || f.shouldProbe() {
		if err := f.primary.SetSession(ctx, chatID, session); err == nil {
			f.isDown.Store(false)
			return nil
		} else {
			f.markDown(err)
		}
	}
	return f.fallback.SetSession(ctx, chatID, session)
}

func (f *FailoverStore) ClearSession(ctx context.Context, chatID int64) error {
	var primaryErr error
	if !f.isDown.Load() || f.shouldProbe() {
		primaryErr = f.primary.ClearSession(ctx, chatID)
		if primaryErr != nil {
			f.markDown(primaryErr)
		} else {
			f.isDown.Store(false)
		}
	}
	// Clear both layers so a logout never leaves a stale copy behind.
	return f.fallback.ClearSession(ctx, chatID)
}

func (f *FailoverStore) GetState(ctx context.Context, chatID int64) (*models.ChatState, error) {
	if !f.isDown.Load() || f.shouldProbe() {
		state, err := f.primary.GetState(ctx, chatID)
		if err == nil {
			f.isDown.Store(false)
			return state, nil
		}
		f.markDown(err)
	}
	return f.fallback.GetState(ctx, chatID)
}

func (f *FailoverStore) SetState(ctx context.Context, state *models.ChatState) error {
	if !f.isDown.Load() || f.shouldProbe() {
		if err := f.primary.SetState(ctx, state); err == nil {
			f.isDown.Store(false)
			return nil
		} else {
			f.markDown(err)
		}
	}
	return f.fallback.SetState(ctx, state)
}

func (f *FailoverStore) ClearState(ctx context.Context, chatID int64) error {
	if !f.isDown.Load() || f.shouldProbe() {
		if err := f.primary.ClearState(ctx, chatID); err != nil {
			f.markDown(err)
		} else {
			f.isDown.Store(false)
		}
	}
	return f.fallback.ClearState(ctx, chatID)
}

func (f *FailoverStore) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	if !f.isDown.Load() || f.shouldProbe() {
		allowed, err := f.primary.CheckRateLimit(ctx, chatID, limit, window)
		if err == nil {
			f.isDown.Store(false)
			return allowed, nil
		}
		f.markDown(err)
	}
	return f.fallback.CheckRateLimit(ctx, chatID, limit, window)
}
