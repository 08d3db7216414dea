package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
	EventSlotPublished    = "slot_published"
	EventSlotCancelled    = "slot_cancelled"
	EventUserLoggedIn     = "user_logged_in"
	EventUserRegistered   = "user_registered"
)

// BookingEventPayload is the minimal booking snapshot event consumers get.
type BookingEventPayload struct {
	BookingID    int64  `json:"booking_id"`
	ClientID     int64  `json:"client_id"`
	ClientName   string `json:"client_name,omitempty"`
	TrainerName  string `json:"trainer_name,omitempty"`
	TrainingType string `json:"training_type,omitempty"`
	Status       string `json:"status"`
	StartTime    string `json:"start_time"`
}

// SlotEventPayload describes a published or cancelled time slot.
type SlotEventPayload struct {
	SlotID       int64  `json:"slot_id"`
	TrainerID    int64  `json:"trainer_id"`
	TrainingType string `json:"training_type,omitempty"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Capacity     int    `json:"capacity"`
	Status       string `json:"status"`
}

// UserEventPayload accompanies login and registration events.
type UserEventPayload struct {
	UserID int64  `json:"user_id"`
	ChatID int64  `json:"chat_id"`
	Role   string `json:"role"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
