package guard

import (
	"testing"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	"github.com/stretchr/testify/assert"
)

func clientSession() *models.Session {
	return &models.Session{UserID: 1, Role: models.RoleClient, ProfileID: 10, Token: "tok"}
}

func trainerSession() *models.Session {
	return &models.Session{UserID: 2, Role: models.RoleTrainer, ProfileID: 20, Token: "tok"}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Session
		allowed []string
		want    Verdict
	}{
		{"nil session", nil, []string{models.RoleClient}, RedirectLogin},
		{"session without token", &models.Session{Role: models.RoleClient}, []string{models.RoleClient}, RedirectLogin},
		{"client on client screen", clientSession(), []string{models.RoleClient}, Allow},
		{"trainer on trainer screen", trainerSession(), []string{models.RoleTrainer}, Allow},
		{"trainer on client screen", trainerSession(), []string{models.RoleClient}, RedirectHome},
		{"client on trainer screen", clientSession(), []string{models.RoleTrainer}, RedirectHome},
		{"any authenticated user", clientSession(), nil, Allow},
		{"unauthenticated on open screen", nil, nil, RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.session, tt.allowed...))
		})
	}
}

func TestHome(t *testing.T) {
	assert.Equal(t, models.StateTrainerDashboard, Home(trainerSession()))
	assert.Equal(t, models.StateMyBookings, Home(clientSession()))
	assert.Equal(t, models.StateMainMenu, Home(nil))
	assert.Equal(t, models.StateMainMenu, Home(&models.Session{Role: "ADMIN", Token: "tok"}))
}
