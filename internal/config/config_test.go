package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
telegram:
  bot_token: "test_token"
backend:
  base_url: "http://localhost:8080/api"
database:
  path: "journal.db"
redis:
  address: "localhost:6379"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "test_token" {
		t.Errorf("expected bot_token test_token, got %s", cfg.Telegram.BotToken)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected backend base url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 10 {
		t.Errorf("expected default backend timeout 10, got %d", cfg.Backend.TimeoutSeconds)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_BOT_TOKEN", "token_from_env")

	yamlContent := `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
backend:
  base_url: "http://localhost:8080/api"
database:
  path: "journal.db"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "token_from_env" {
		t.Errorf("expected token_from_env, got %s", cfg.Telegram.BotToken)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Backend:  BackendConfig{BaseURL: "http://localhost:8080/api"},
				Database: DatabaseConfig{Path: "journal.db"},
			},
			wantErr: false,
		},
		{
			name: "missing token",
			cfg: Config{
				Backend:  BackendConfig{BaseURL: "http://localhost:8080/api"},
				Database: DatabaseConfig{Path: "journal.db"},
			},
			wantErr: true,
		},
		{
			name: "missing backend url",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Database: DatabaseConfig{Path: "journal.db"},
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Backend:  BackendConfig{BaseURL: "http://localhost:8080/api"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Backend.TimeoutSeconds != 10 {
		t.Errorf("expected default backend timeout 10, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Redis.SessionTTLSeconds != models.DefaultRedisTTL {
		t.Errorf("expected default session ttl %d, got %d", models.DefaultRedisTTL, cfg.Redis.SessionTTLSeconds)
	}
	if cfg.Bot.PaginationSize != models.DefaultPaginationSize {
		t.Errorf("expected default pagination size %d, got %d", models.DefaultPaginationSize, cfg.Bot.PaginationSize)
	}
	if cfg.Bot.BookingsPageSize != models.DefaultBookingsPaginationSize {
		t.Errorf("expected default bookings page size %d, got %d", models.DefaultBookingsPaginationSize, cfg.Bot.BookingsPageSize)
	}
	if cfg.Bot.RateLimitMessages != models.RateLimitMessages {
		t.Errorf("expected default rate limit messages %d, got %d", models.RateLimitMessages, cfg.Bot.RateLimitMessages)
	}
	if cfg.Bot.ReconcileMaxAttempts != 5 {
		t.Errorf("expected default reconcile attempts 5, got %d", cfg.Bot.ReconcileMaxAttempts)
	}
}
