// Package domain declares the interfaces the bot front-end is wired
// against, so screens can be exercised in tests without a live Telegram
// connection or a running backend.
package domain

import (
	"context"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	SendDocument(chatID int64, filePath string) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// AuthManager is the session lifecycle as the screens see it.
type AuthManager interface {
	Login(ctx context.Context, chatID int64, email, password string) (*models.Session, error)
	Register(ctx context.Context, chatID int64, req models.RegisterRequest) (*models.Session, error)
	Logout(ctx context.Context, chatID int64) error
	Current(ctx context.Context, chatID int64) *models.Session
}

type TrainerDirectory interface {
	List(ctx context.Context) ([]models.TrainerProfile, error)
	Get(ctx context.Context, id int64) (*models.TrainerProfile, error)
	Own(ctx context.Context) (*models.TrainerProfile, error)
	Update(ctx context.Context, id int64, update models.TrainerProfileUpdate) (*models.TrainerProfile, error)
}

type ClientProfiles interface {
	Get(ctx context.Context, id int64) (*models.ClientProfile, error)
	Update(ctx context.Context, id int64, update models.ClientProfileUpdate) (*models.ClientProfile, error)
}

type TrainingTypeCatalog interface {
	List(ctx context.Context) ([]models.TrainingType, error)
	Create(ctx context.Context, req models.TrainingTypeRequest) (*models.TrainingType, error)
	Update(ctx context.Context, id int64, req models.TrainingTypeRequest) (*models.TrainingType, error)
	Delete(ctx context.Context, id int64) error
}

type SlotSchedule interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	Get(ctx context.Context, id int64) (*models.TimeSlot, error)
	ListByTrainer(ctx context.Context, trainerID int64, startDate, endDate string) ([]models.TimeSlot, error)
	Create(ctx context.Context, req models.TimeSlotRequest) (*models.TimeSlot, error)
	Cancel(ctx context.Context, id int64) (*models.TimeSlot, error)
	Clients(ctx context.Context, id int64) ([]models.ClientProfile, error)
}

type BookingBook interface {
	Create(ctx context.Context, clientID, timeSlotID int64) (*models.Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID int64) (*models.Booking, error)
}

// CompletionQueue journals inferred COMPLETED transitions for the
// background reconciler.
type CompletionQueue interface {
	EnqueueCompletion(ctx context.Context, chatID, bookingID int64) error
}

// SchedulePublisher mirrors a trainer's month schedule to an external
// sheet. Optional; a nil publisher disables the mirror.
type SchedulePublisher interface {
	ReplaceSchedule(ctx context.Context, trainerName string, year int, month time.Month, slots []models.TimeSlot) error
}
