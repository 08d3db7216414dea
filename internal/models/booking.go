package models

import "time"

// Booking is a client's reservation of a time slot.
type Booking struct {
	ID               int64  `json:"id"`
	ClientID         int64  `json:"clientId"`
	ClientName       string `json:"clientName"`
	TimeSlotID       int64  `json:"timeSlotId"`
	TrainerID        int64  `json:"trainerId"`
	TrainerName      string `json:"trainerName"`
	TrainingTypeName string `json:"trainingTypeName"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
	FormattedDate    string `json:"formattedDate,omitempty"`
	FormattedTime    string `json:"formattedTime,omitempty"`
}

// BookingRequest creates a booking for a slot. The client id travels in
// the URL path.
type BookingRequest struct {
	TimeSlotID int64 `json:"timeSlotId"`
}

// BookingStatusRequest updates a booking's status.
type BookingStatusRequest struct {
	Status string `json:"status"`
}

// Start parses the booking's start time.
func (b *Booking) Start() (time.Time, error) {
	return ParseSlotTime(b.StartTime)
}

// End parses the booking's end time.
func (b *Booking) End() (time.Time, error) {
	return ParseSlotTime(b.EndTime)
}
