package fitness

import (
	"context"
	"fmt"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// BookingService wraps the booking lifecycle endpoints.
type BookingService struct {
	client *Client
}

func NewBookingService(client *Client) *BookingService {
	return &BookingService{client: client}
}

// Create books a slot for the client. The follow-up list refresh is an
// independent request; there is no atomicity between the two.
func (s *BookingService) Create(ctx context.Context, clientID, timeSlotID int64) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/client/%d", clientID)
	body := models.BookingRequest{TimeSlotID: timeSlotID}
	if err := s.client.post(ctx, path, body, "Неуспешно създаване на резервация", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByClient returns all bookings of a client.
func (s *BookingService) ListByClient(ctx context.Context, clientID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	path := fmt.Sprintf("/bookings/client/%d/bookings", clientID)
	if err := s.client.get(ctx, path, "Неуспешно извличане на резервациите", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets a booking's status, used by the reconciler to push
// inferred COMPLETED transitions back to the backend.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%d/status", bookingID)
	body := models.BookingStatusRequest{Status: status}
	if err := s.client.put(ctx, path, body, "Неуспешна промяна на статуса на резервацията", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel cancels a booking.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%d/cancel", bookingID)
	if err := s.client.put(ctx, path, nil, "Неуспешно отменяне на резервацията", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
