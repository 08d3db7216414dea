package fitness

import (
	"context"
	"fmt"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// ClientService wraps the client profile endpoints.
type ClientService struct {
	client *Client
}

func NewClientService(client *Client) *ClientService {
	return &ClientService{client: client}
}

// Get returns a client profile by id.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	path := fmt.Sprintf("/clients/%d", id)
	if err := s.client.get(ctx, path, "Неуспешно извличане на клиентския профил", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces the client's mutable fields.
func (s *ClientService) Update(ctx context.Context, id int64, upd models.ClientProfileUpdate) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	path := fmt.Sprintf("/clients/%d", id)
	if err := s.client.put(ctx, path, upd, "Неуспешно обновяване на клиентския профил", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
