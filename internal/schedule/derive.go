// Package schedule holds the pure derivation logic the booking screens
// share: end-time and capacity inference for new slots, calendar coloring,
// display-status inference and booking list ordering. Nothing here talks
// to the backend or mutates its inputs.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// DeriveEndTime computes a slot's end time from a naive wall-clock start
// ("2006-01-02T15:04" or with seconds) and a duration in minutes. The
// computation is purely textual: no timezone conversion, and the end hour
// wraps modulo 24 while the date component stays that of the start. A slot
// starting 23:00 with a 90-minute duration therefore ends "00:30" on the
// same displayed date. That matches the upstream behavior and is pinned by
// a regression test; see the day-rollover note in DESIGN.md.
func DeriveEndTime(start string, durationMin int) (string, error) {
	datePart, timePart, ok := strings.Cut(start, "T")
	if !ok {
		return "", fmt.Errorf("start time %q: missing date/time separator", start)
	}

	fields := strings.Split(timePart, ":")
	if len(fields) < 2 {
		return "", fmt.Errorf("start time %q: missing minutes", start)
	}
	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", fmt.Errorf("start time %q: bad hour: %w", start, err)
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", fmt.Errorf("start time %q: bad minute: %w", start, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("start time %q: out of range", start)
	}
	if durationMin <= 0 {
		return "", fmt.Errorf("duration %d must be positive", durationMin)
	}

	totalEnd := hour*60 + minute + durationMin
	endHour := (totalEnd / 60) % 24
	endMinute := totalEnd % 60

	return fmt.Sprintf("%sT%02d:%02d", datePart, endHour, endMinute), nil
}

// DeriveCapacity infers slot capacity from the training type: PERSONAL is
// always single-occupant, GROUP uses the max-client count when set and
// falls back to a default of 5 otherwise.
func DeriveCapacity(tt models.TrainingType) int {
	if tt.Category == models.CategoryPersonal {
		return 1
	}
	if tt.MaxClients != nil && *tt.MaxClients > 0 {
		return *tt.MaxClients
	}
	return models.DefaultGroupCapacity
}

// NewSlotRequest assembles the creation payload for a slot from the chosen
// training type and start time. The backend remains the authority on
// conflict detection and persistence.
func NewSlotRequest(trainerID int64, tt models.TrainingType, start string) (models.TimeSlotRequest, error) {
	end, err := DeriveEndTime(start, tt.Duration)
	if err != nil {
		return models.TimeSlotRequest{}, err
	}
	return models.TimeSlotRequest{
		TrainerID:      trainerID,
		TrainingTypeID: tt.ID,
		StartTime:      start,
		EndTime:        end,
		Capacity:       DeriveCapacity(tt),
	}, nil
}

// Color is a visual category for calendar rendering.
type Color string

const (
	ColorFree      Color = "free"      // green
	ColorFilled    Color = "filled"    // blue
	ColorCancelled Color = "cancelled" // red
	ColorUnknown   Color = "unknown"   // gray
)

// SlotColor maps a slot to its visual category. Applied independently per
// slot; a fully booked AVAILABLE slot renders the same as a BOOKED one.
func SlotColor(slot models.TimeSlot) Color {
	switch slot.Status {
	case models.SlotAvailable:
		if slot.AvailableSpots > 0 {
			return ColorFree
		}
		return ColorFilled
	case models.SlotBooked, models.BookingCompleted:
		return ColorFilled
	case models.SlotCancelled:
		return ColorCancelled
	default:
		return ColorUnknown
	}
}

// DeriveDisplayStatus is the view-only status of a booking: a CONFIRMED
// booking whose end time is strictly before now displays as COMPLETED.
// The underlying record is never mutated; pushing the inferred status back
// to the backend is the reconciler's job.
func DeriveDisplayStatus(raw, endTime string, now time.Time) string {
	if raw != models.BookingConfirmed {
		return raw
	}
	end, err := models.ParseSlotTime(endTime)
	if err != nil {
		return raw
	}
	if end.Before(now) {
		return models.BookingCompleted
	}
	return raw
}

// StaleConfirmed returns the bookings whose raw status is CONFIRMED but
// whose end time has passed. These are the reconciliation candidates.
func StaleConfirmed(bookings []models.Booking, now time.Time) []models.Booking {
	var stale []models.Booking
	for _, b := range bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		end, err := models.ParseSlotTime(b.EndTime)
		if err != nil {
			continue
		}
		if end.Before(now) {
			stale = append(stale, b)
		}
	}
	return stale
}
