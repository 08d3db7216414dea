package schedule

import (
	"testing"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDeriveEndTime(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		expected string
	}{
		{"SameHour", "2025-05-20T10:00", 45, "2025-05-20T10:45"},
		{"CrossHour", "2025-05-20T10:30", 45, "2025-05-20T11:15"},
		{"CrossHours", "2025-05-20T09:15", 120, "2025-05-20T11:15"},
		{"ZeroPadding", "2025-05-20T08:00", 65, "2025-05-20T09:05"},
		{"WithSeconds", "2025-05-20T10:00:00", 60, "2025-05-20T11:00"},
		{"ExactMidnight", "2025-05-20T23:00", 60, "2025-05-20T00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := DeriveEndTime(tt.start, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, end)
		})
	}
}

// The end hour wraps modulo 24 but the date component is kept from the
// start, so a slot crossing midnight ends a calendar day earlier than
// reality. This pins the documented upstream behavior; do not "fix" it
// here without changing the backend contract too.
func TestDeriveEndTime_MidnightWrapKeepsStartDate(t *testing.T) {
	end, err := DeriveEndTime("2025-05-20T23:30", 90)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-20T01:00", end)

	end, err = DeriveEndTime("2025-05-20T23:00", 90)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-20T00:30", end)
}

func TestDeriveEndTime_Invalid(t *testing.T) {
	_, err := DeriveEndTime("2025-05-20", 60)
	assert.Error(t, err)

	_, err = DeriveEndTime("2025-05-20T10", 60)
	assert.Error(t, err)

	_, err = DeriveEndTime("2025-05-20Txx:00", 60)
	assert.Error(t, err)

	_, err = DeriveEndTime("2025-05-20T25:00", 60)
	assert.Error(t, err)

	_, err = DeriveEndTime("2025-05-20T10:00", 0)
	assert.Error(t, err)
}

func TestDeriveCapacity(t *testing.T) {
	t.Run("PersonalIgnoresMaxClients", func(t *testing.T) {
		assert.Equal(t, 1, DeriveCapacity(models.TrainingType{Category: models.CategoryPersonal}))
		assert.Equal(t, 1, DeriveCapacity(models.TrainingType{Category: models.CategoryPersonal, MaxClients: intPtr(12)}))
	})

	t.Run("GroupUsesMaxClients", func(t *testing.T) {
		assert.Equal(t, 8, DeriveCapacity(models.TrainingType{Category: models.CategoryGroup, MaxClients: intPtr(8)}))
	})

	t.Run("GroupFallback", func(t *testing.T) {
		assert.Equal(t, 5, DeriveCapacity(models.TrainingType{Category: models.CategoryGroup}))
		assert.Equal(t, 5, DeriveCapacity(models.TrainingType{Category: models.CategoryGroup, MaxClients: intPtr(0)}))
	})
}

func TestNewSlotRequest(t *testing.T) {
	tt := models.TrainingType{
		ID:         7,
		Duration:   60,
		Category:   models.CategoryGroup,
		MaxClients: intPtr(10),
	}

	req, err := NewSlotRequest(42, tt, "2025-05-20T10:00")
	require.NoError(t, err)
	assert.Equal(t, int64(42), req.TrainerID)
	assert.Equal(t, int64(7), req.TrainingTypeID)
	assert.Equal(t, "2025-05-20T10:00", req.StartTime)
	assert.Equal(t, "2025-05-20T11:00", req.EndTime)
	assert.Equal(t, 10, req.Capacity)

	_, err = NewSlotRequest(42, tt, "bad")
	assert.Error(t, err)
}

func TestSlotColor(t *testing.T) {
	tests := []struct {
		name     string
		slot     models.TimeSlot
		expected Color
	}{
		{"AvailableWithSpots", models.TimeSlot{Status: models.SlotAvailable, AvailableSpots: 3}, ColorFree},
		{"AvailableFull", models.TimeSlot{Status: models.SlotAvailable, AvailableSpots: 0}, ColorFilled},
		{"Booked", models.TimeSlot{Status: models.SlotBooked}, ColorFilled},
		{"Completed", models.TimeSlot{Status: models.BookingCompleted}, ColorFilled},
		{"Cancelled", models.TimeSlot{Status: models.SlotCancelled}, ColorCancelled},
		{"Unknown", models.TimeSlot{Status: "WEIRD"}, ColorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SlotColor(tt.slot))
		})
	}

	// Fully booked AVAILABLE and BOOKED share one visual category.
	assert.Equal(t,
		SlotColor(models.TimeSlot{Status: models.SlotAvailable, AvailableSpots: 0}),
		SlotColor(models.TimeSlot{Status: models.SlotBooked}))
}

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.Local)

	t.Run("ConfirmedPastEndIsCompleted", func(t *testing.T) {
		got := DeriveDisplayStatus(models.BookingConfirmed, "2025-05-20T11:00:00", now)
		assert.Equal(t, models.BookingCompleted, got)
	})

	t.Run("ConfirmedFutureStaysConfirmed", func(t *testing.T) {
		got := DeriveDisplayStatus(models.BookingConfirmed, "2025-05-20T13:00:00", now)
		assert.Equal(t, models.BookingConfirmed, got)
	})

	t.Run("OnlyConfirmedIsOverridden", func(t *testing.T) {
		got := DeriveDisplayStatus(models.BookingCancelled, "2025-05-20T11:00:00", now)
		assert.Equal(t, models.BookingCancelled, got)
	})

	t.Run("UnparseableEndKeepsRaw", func(t *testing.T) {
		got := DeriveDisplayStatus(models.BookingConfirmed, "garbage", now)
		assert.Equal(t, models.BookingConfirmed, got)
	})
}

func TestStaleConfirmed(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.Local)
	bookings := []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, EndTime: "2025-05-20T11:00:00"},
		{ID: 2, Status: models.BookingConfirmed, EndTime: "2025-05-20T13:00:00"},
		{ID: 3, Status: models.BookingCancelled, EndTime: "2025-05-20T10:00:00"},
		{ID: 4, Status: models.BookingConfirmed, EndTime: "bad"},
	}

	stale := StaleConfirmed(bookings, now)
	assert.Len(t, stale, 1)
	assert.Equal(t, int64(1), stale[0].ID)

	assert.Nil(t, StaleConfirmed(nil, now))
}
