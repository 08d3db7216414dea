package models

import "time"

// TimeSlot is a trainer-published bookable interval. Start and end times
// are naive wall-clock strings exactly as the backend serializes them.
type TimeSlot struct {
	ID               int64  `json:"id"`
	TrainerID        int64  `json:"trainerId"`
	TrainerName      string `json:"trainerName"`
	TrainingTypeID   int64  `json:"trainingTypeId"`
	TrainingTypeName string `json:"trainingTypeName"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Capacity         int    `json:"capacity"`
	BookedCount      int    `json:"bookedCount"`
	Status           string `json:"status"`
	AvailableSpots   int    `json:"availableSpots"`
}

// TimeSlotRequest is the creation payload. End time and capacity are
// derived client-side before submission; the backend stays the authority
// on conflicts and persistence.
type TimeSlotRequest struct {
	TrainerID      int64  `json:"trainerId"`
	TrainingTypeID int64  `json:"trainingTypeId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Capacity       int    `json:"capacity"`
}

// Start parses the slot's start time, accepting both the backend layout
// and the shorter input layout.
func (s *TimeSlot) Start() (time.Time, error) {
	return ParseSlotTime(s.StartTime)
}

// End parses the slot's end time.
func (s *TimeSlot) End() (time.Time, error) {
	return ParseSlotTime(s.EndTime)
}

// ParseSlotTime parses a naive wall-clock timestamp in either backend
// layout. The zone is deliberately left local; values are never converted.
func ParseSlotTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(SlotTimeLayout, value, time.Local)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(SlotInputLayout, value, time.Local)
}
