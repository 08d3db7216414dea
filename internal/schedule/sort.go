package schedule

import (
	"sort"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// SortBookings orders a client's booking list into three fixed buckets by
// display status: CONFIRMED first ascending by start time, then COMPLETED
// descending, then CANCELLED last descending. The slice is sorted in
// place and also returned for convenience.
func SortBookings(bookings []models.Booking, now time.Time) []models.Booking {
	sort.SliceStable(bookings, func(i, j int) bool {
		return compareBookings(bookings[i], bookings[j], now) < 0
	})
	return bookings
}

func compareBookings(a, b models.Booking, now time.Time) int {
	statusA := DeriveDisplayStatus(a.Status, a.EndTime, now)
	statusB := DeriveDisplayStatus(b.Status, b.EndTime, now)

	rankA, rankB := bucketRank(statusA), bucketRank(statusB)
	if rankA != rankB {
		return rankA - rankB
	}

	startA := startUnix(a)
	startB := startUnix(b)

	// CONFIRMED ascending, everything else most recent first.
	if rankA == 0 {
		switch {
		case startA < startB:
			return -1
		case startA > startB:
			return 1
		default:
			return 0
		}
	}
	switch {
	case startA > startB:
		return -1
	case startA < startB:
		return 1
	default:
		return 0
	}
}

func bucketRank(status string) int {
	switch status {
	case models.BookingConfirmed:
		return 0
	case models.BookingCompleted:
		return 1
	case models.BookingCancelled:
		return 2
	default:
		return 1
	}
}

func startUnix(b models.Booking) int64 {
	t, err := models.ParseSlotTime(b.StartTime)
	if err != nil {
		return 0
	}
	return t.Unix()
}
