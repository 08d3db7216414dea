package fitness

import (
	"context"
	"fmt"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// TrainingTypeService wraps the training-type CRUD endpoints.
type TrainingTypeService struct {
	client *Client
}

func NewTrainingTypeService(client *Client) *TrainingTypeService {
	return &TrainingTypeService{client: client}
}

// List returns all training types.
func (s *TrainingTypeService) List(ctx context.Context) ([]models.TrainingType, error) {
	var types []models.TrainingType
	if err := s.client.get(ctx, "/training-types", "Неуспешно извличане на типовете тренировки", &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Create adds a new training type.
func (s *TrainingTypeService) Create(ctx context.Context, req models.TrainingTypeRequest) (*models.TrainingType, error) {
	var tt models.TrainingType
	if err := s.client.post(ctx, "/training-types", req, "Неуспешно създаване на тип тренировка", &tt); err != nil {
		return nil, err
	}
	return &tt, nil
}

// Update modifies an existing training type.
func (s *TrainingTypeService) Update(ctx context.Context, id int64, req models.TrainingTypeRequest) (*models.TrainingType, error) {
	var tt models.TrainingType
	path := fmt.Sprintf("/training-types/%d", id)
	if err := s.client.put(ctx, path, req, "Неуспешно обновяване на типа тренировка", &tt); err != nil {
		return nil, err
	}
	return &tt, nil
}

// Delete removes a training type.
func (s *TrainingTypeService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/training-types/%d", id)
	return s.client.delete(ctx, path, "Неуспешно изтриване на типа тренировка")
}
