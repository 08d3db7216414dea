package session

import (
	"context"
	"sync"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// MemoryStore is the in-process fallback used when redis is unavailable.
type MemoryStore struct {
	sessions   sync.Map
	states     sync.Map
	rateLimits sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) GetSession(ctx context.Context, chatID int64) (*models.Session, error) {
	val, ok := m.sessions.Load(chatID)
	if !ok {
		return nil, nil
	}
	return val.(*models.Session), nil
}

func (m *MemoryStore) SetSession(ctx context.Context, chatID int64, session *models.Session) error {
	m.sessions.Store(chatID, session)
	return nil
}

func (m *MemoryStore) ClearSession(ctx context.Context, chatID int64) error {
	m.sessions.Delete(chatID)
	return nil
}

func (m *MemoryStore) GetState(ctx context.Context, chatID int64) (*models.ChatState, error) {
	val, ok := m.states.Load(chatID)
	if !ok {
		return nil, nil
	}
	return val.(*models.ChatState), nil
}

func (m *MemoryStore) SetState(ctx context.Context, state *models.ChatState) error {
	m.states.Store(state.ChatID, state)
	return nil
}

func (m *MemoryStore) ClearState(ctx context.Context, chatID int64) error {
	m.states.Delete(chatID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (m *MemoryStore) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := m.rateLimits.Load(chatID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	m.rateLimits.Store(chatID, entry)
	return entry.count <= limit, nil
}
