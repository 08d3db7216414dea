package fitness

import (
	"context"
	"fmt"
	"net/url"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// TimeSlotService wraps the slot lifecycle and roster endpoints.
type TimeSlotService struct {
	client *Client
}

func NewTimeSlotService(client *Client) *TimeSlotService {
	return &TimeSlotService{client: client}
}

// List returns all time slots.
func (s *TimeSlotService) List(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := s.client.get(ctx, "/time-slots", "Неуспешно извличане на часовете", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Get returns one slot by id.
func (s *TimeSlotService) Get(ctx context.Context, id int64) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	path := fmt.Sprintf("/time-slots/%d", id)
	if err := s.client.get(ctx, path, "Неуспешно извличане на часа", &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListByTrainer returns the trainer's slots in [startDate, endDate].
// Dates travel as the backend's naive wall-clock strings.
func (s *TimeSlotService) ListByTrainer(ctx context.Context, trainerID int64, startDate, endDate string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	path := fmt.Sprintf("/time-slots/trainer/%d?startDate=%s&endDate=%s",
		trainerID, url.QueryEscape(startDate), url.QueryEscape(endDate))
	if err := s.client.get(ctx, path, "Неуспешно извличане на часовете", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Create publishes a new slot with its client-derived end time and
// capacity. The backend decides conflicts.
func (s *TimeSlotService) Create(ctx context.Context, req models.TimeSlotRequest) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := s.client.post(ctx, "/time-slots", req, "Неуспешно създаване на час", &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Cancel marks a slot as cancelled.
func (s *TimeSlotService) Cancel(ctx context.Context, id int64) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	path := fmt.Sprintf("/time-slots/%d/cancel", id)
	if err := s.client.put(ctx, path, nil, "Неуспешно отменяне на часа", &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Clients returns the roster of booked clients for a slot.
func (s *TimeSlotService) Clients(ctx context.Context, id int64) ([]models.ClientProfile, error) {
	var clients []models.ClientProfile
	path := fmt.Sprintf("/time-slots/%d/clients", id)
	if err := s.client.get(ctx, path, "Неуспешно извличане на записаните клиенти", &clients); err != nil {
		return nil, err
	}
	return clients, nil
}
