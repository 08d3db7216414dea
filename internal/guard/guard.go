// Package guard decides whether a chat may enter a screen. The decision
// is pure: the caller renders the login prompt or the user's home screen
// depending on the verdict, the protected screen itself is never built
// for a rejected visitor.
package guard

import (
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

type Verdict int

const (
	// Allow lets the requested screen render.
	Allow Verdict = iota
	// RedirectLogin sends an unauthenticated chat to the login flow.
	RedirectLogin
	// RedirectHome sends an authenticated chat with the wrong role to its
	// own home screen.
	RedirectHome
)

// Decide checks the session against the roles a screen admits. An empty
// allowed list means any authenticated user may enter.
func Decide(session *models.Session, allowed ...string) Verdict {
	if session == nil || session.Token == "" {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, role := range allowed {
		if session.Role == role {
			return Allow
		}
	}
	return RedirectHome
}

// Home names the state a redirected user lands on: trainers go to their
// dashboard, clients to their bookings, anyone else back to the main menu.
func Home(session *models.Session) string {
	switch {
	case session == nil:
		return models.StateMainMenu
	case session.IsTrainer():
		return models.StateTrainerDashboard
	case session.IsClient():
		return models.StateMyBookings
	default:
		return models.StateMainMenu
	}
}
