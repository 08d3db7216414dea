package session

import (
	"context"
	"fmt"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/fitness"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/metrics"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	"github.com/rs/zerolog"
)

// Manager is the explicit session object the rest of the front-end talks
// to: login/register persist the backend's auth response, logout tears it
// down, and Token feeds the API transport. It is injected everywhere it
// is needed; there is no ambient global session.
type Manager struct {
	store  Store
	auth   *fitness.AuthService
	logger *zerolog.Logger
}

func NewManager(store Store, logger *zerolog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// AttachAuth wires the auth service after the API client is built; the
// transport needs the manager as its token source first.
func (m *Manager) AttachAuth(auth *fitness.AuthService) {
	m.auth = auth
}

// Login authenticates and persists the session on success.
func (m *Manager) Login(ctx context.Context, chatID int64, email, password string) (*models.Session, error) {
	if m.auth == nil {
		return nil, fmt.Errorf("auth service not attached")
	}
	sess, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetSession(ctx, chatID, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	metrics.SessionOpened()
	return sess, nil
}

// Register creates an account and persists the returned session.
func (m *Manager) Register(ctx context.Context, chatID int64, req models.RegisterRequest) (*models.Session, error) {
	if m.auth == nil {
		return nil, fmt.Errorf("auth service not attached")
	}
	sess, err := m.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetSession(ctx, chatID, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	metrics.SessionOpened()
	return sess, nil
}

// Logout clears the persisted session and the chat's conversation state.
func (m *Manager) Logout(ctx context.Context, chatID int64) error {
	if err := m.store.ClearSession(ctx, chatID); err != nil {
		return err
	}
	if err := m.store.ClearState(ctx, chatID); err != nil {
		m.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to clear chat state on logout")
	}
	metrics.SessionClosed()
	return nil
}

// Current returns the chat's session, or nil when unauthenticated.
// Store errors degrade to "no session" so a flaky store never breaks
// public screens; the failure is logged.
func (m *Manager) Current(ctx context.Context, chatID int64) *models.Session {
	sess, err := m.store.GetSession(ctx, chatID)
	if err != nil {
		m.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to read session")
		return nil
	}
	return sess
}

// AuthHeader returns an empty map when unauthenticated, otherwise the
// bearer header.
func (m *Manager) AuthHeader(ctx context.Context, chatID int64) map[string]string {
	sess := m.Current(ctx, chatID)
	if sess == nil || sess.Token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + sess.Token}
}

// Token implements fitness.TokenSource using the chat id bound to ctx.
func (m *Manager) Token(ctx context.Context) string {
	chatID, ok := ChatFrom(ctx)
	if !ok {
		return ""
	}
	sess := m.Current(ctx, chatID)
	if sess == nil {
		return ""
	}
	return sess.Token
}
