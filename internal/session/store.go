// Package session owns the per-chat authenticated session and the chat
// conversation state. The store plays the role a browser's local storage
// plays for a web front-end: it holds the auth response verbatim under one
// known key, and nothing else survives a logout.
package session

import (
	"context"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// Store persists sessions and chat states keyed by chat id. A nil result
// with a nil error means "not present". Implementations must treat corrupt
// stored data as absent rather than failing the caller.
type Store interface {
	GetSession(ctx context.Context, chatID int64) (*models.Session, error)
	SetSession(ctx context.Context, chatID int64, session *models.Session) error
	ClearSession(ctx context.Context, chatID int64) error

	GetState(ctx context.Context, chatID int64) (*models.ChatState, error)
	SetState(ctx context.Context, state *models.ChatState) error
	ClearState(ctx context.Context, chatID int64) error

	CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error)
}

type chatKey struct{}

// WithChat binds the chat id to the context so the API transport can
// resolve the right bearer token.
func WithChat(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatKey{}, chatID)
}

// ChatFrom extracts the chat id bound by WithChat.
func ChatFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(chatKey{}).(int64)
	return id, ok
}
