// Package bot is the Telegram front-end of the booking system. Every
// screen fetches what it needs from the backend on entry; the only state
// kept locally is the chat's session and its place in a conversation.
package bot

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/config"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/domain"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/metrics"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Bot struct {
	tgService     domain.TelegramService
	config        *config.Config
	store         session.Store
	sessions      domain.AuthManager
	trainers      domain.TrainerDirectory
	clients       domain.ClientProfiles
	trainingTypes domain.TrainingTypeCatalog
	slots         domain.SlotSchedule
	bookings      domain.BookingBook
	reconciler    domain.CompletionQueue
	eventBus      domain.EventPublisher
	sheets        domain.SchedulePublisher
	presets       []models.TrainingTypeRequest
	logger        *zerolog.Logger

	// One update per chat at a time; a second tap while the first request
	// is in flight would double-submit the same form.
	inflight sync.Map
}

type Deps struct {
	Telegram      domain.TelegramService
	Config        *config.Config
	Store         session.Store
	Sessions      domain.AuthManager
	Trainers      domain.TrainerDirectory
	Clients       domain.ClientProfiles
	TrainingTypes domain.TrainingTypeCatalog
	Slots         domain.SlotSchedule
	Bookings      domain.BookingBook
	Reconciler    domain.CompletionQueue
	EventBus      domain.EventPublisher
	Sheets        domain.SchedulePublisher
	Presets       []models.TrainingTypeRequest
	Logger        *zerolog.Logger
}

func NewBot(deps Deps) *Bot {
	if deps.EventBus == nil {
		deps.EventBus = events.NewEventBus()
	}
	if deps.Logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		deps.Logger = &l
	}

	return &Bot{
		tgService:     deps.Telegram,
		config:        deps.Config,
		store:         deps.Store,
		sessions:      deps.Sessions,
		trainers:      deps.Trainers,
		clients:       deps.Clients,
		trainingTypes: deps.TrainingTypes,
		slots:         deps.Slots,
		bookings:      deps.Bookings,
		reconciler:    deps.Reconciler,
		eventBus:      deps.EventBus,
		sheets:        deps.Sheets,
		presets:       deps.Presets,
		logger:        deps.Logger,
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tgService.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			// Each update is handled off the receive loop; the inflight
			// guard drops extra taps from a chat whose previous update is
			// still being handled.
			go b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		chatID := chatIDOf(update)
		if chatID == 0 {
			return
		}

		if _, busy := b.inflight.LoadOrStore(chatID, struct{}{}); busy {
			b.logger.Debug().Int64("chat_id", chatID).Msg("Dropping update while previous one is in flight")
			return
		}
		defer b.inflight.Delete(chatID)

		// Backend calls issued while handling this update authenticate
		// with this chat's token.
		updateCtx = session.WithChat(updateCtx, chatID)

		allowed, err := b.store.CheckRateLimit(updateCtx, chatID, b.config.Bot.RateLimitMessages, time.Duration(b.config.Bot.RateLimitWindow)*time.Second)
		if err != nil {
			b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Rate limit check failed")
		} else if !allowed {
			b.logger.Warn().Int64("chat_id", chatID).Msg("Rate limit exceeded")
			if update.Message != nil {
				b.sendMessage(chatID, "⚠️ Изпращате съобщения твърде често. Моля, изчакайте малко.")
			}
			return
		}

		if update.CallbackQuery != nil {
			metrics.IncBotUpdate("callback")
			b.handleCallbackQuery(updateCtx, update)
			return
		}

		if update.Message == nil {
			return
		}

		metrics.IncBotUpdate("message")
		b.handleMessage(updateCtx, update)
	})
}

func (b *Bot) withRecovery(handler func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncBotUpdate("panic")
			b.logger.Error().Interface("panic", r).Msg("Recovered from panic in update handler")
		}
	}()
	handler()
}

func chatIDOf(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.tgService.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) getChatState(ctx context.Context, chatID int64) *models.ChatState {
	state, err := b.store.GetState(ctx, chatID)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to get chat state")
		return nil
	}
	return state
}

func (b *Bot) setChatState(ctx context.Context, chatID int64, step string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	state := &models.ChatState{ChatID: chatID, CurrentStep: step, TempData: data}
	if err := b.store.SetState(ctx, state); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to set chat state")
	}
}

func (b *Bot) clearChatState(ctx context.Context, chatID int64) {
	if err := b.store.ClearState(ctx, chatID); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to clear chat state")
	}
}

func (b *Bot) Stop() {
	b.tgService.StopReceivingUpdates()
}
