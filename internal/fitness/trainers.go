package fitness

import (
	"context"
	"fmt"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// TrainerService wraps the trainer profile endpoints.
type TrainerService struct {
	client *Client
}

func NewTrainerService(client *Client) *TrainerService {
	return &TrainerService{client: client}
}

// List returns all trainers for browsing.
func (s *TrainerService) List(ctx context.Context) ([]models.TrainerProfile, error) {
	var trainers []models.TrainerProfile
	if err := s.client.get(ctx, "/trainers", "Неуспешно извличане на списъка с треньори", &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Get returns one trainer by profile id.
func (s *TrainerService) Get(ctx context.Context, id int64) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	path := fmt.Sprintf("/trainers/%d", id)
	if err := s.client.get(ctx, path, "Неуспешно извличане на профила на треньора", &trainer); err != nil {
		return nil, err
	}
	return &trainer, nil
}

// Own returns the authenticated trainer's own profile.
func (s *TrainerService) Own(ctx context.Context) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	if err := s.client.get(ctx, "/trainers/profile", "Неуспешно извличане на профила на треньора", &trainer); err != nil {
		return nil, err
	}
	return &trainer, nil
}

// Update replaces the trainer's mutable fields.
func (s *TrainerService) Update(ctx context.Context, id int64, upd models.TrainerProfileUpdate) (*models.TrainerProfile, error) {
	var trainer models.TrainerProfile
	path := fmt.Sprintf("/trainers/%d", id)
	if err := s.client.put(ctx, path, upd, "Неуспешно обновяване на профила на треньора", &trainer); err != nil {
		return nil, err
	}
	return &trainer, nil
}
