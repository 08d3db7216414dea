package fitness

import (
	"context"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

// AuthService wraps the authentication endpoints. Both operations are
// public; the returned session object is persisted by the caller.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a session. On a backend-provided error
// body the message is surfaced verbatim.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var session models.Session
	body := models.LoginRequest{Email: email, Password: password}
	if err := s.client.postAuth(ctx, "/auth/login", body, "Неуспешен вход", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates a new CLIENT or TRAINER account and returns its session.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	var session models.Session
	if err := s.client.postAuth(ctx, "/auth/register", req, "Неуспешна регистрация", &session); err != nil {
		return nil, err
	}
	return &session, nil
}
