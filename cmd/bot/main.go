package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/bot"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/config"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/database"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/fitness"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/google"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/logging"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/metrics"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/service"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/session"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, presets, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open journal database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, store := initSessionStore(ctx, cfg, &logger)

	// Session manager doubles as the token source for backend calls; the
	// auth service is attached after the client exists.
	manager := session.NewManager(store, &logger)
	apiClient := fitness.NewClient(
		cfg.Backend.BaseURL,
		manager,
		fitness.WithTimeout(time.Duration(cfg.Backend.TimeoutSeconds)*time.Second),
		fitness.WithRateLimit(cfg.Backend.RateLimitRPS, cfg.Backend.RateLimitBurst),
	)
	manager.AttachAuth(fitness.NewAuthService(apiClient))

	trainerService := fitness.NewTrainerService(apiClient)
	clientService := fitness.NewClientService(apiClient)
	trainingTypeService := fitness.NewTrainingTypeService(apiClient)
	timeSlotService := fitness.NewTimeSlotService(apiClient)
	bookingService := fitness.NewBookingService(apiClient)

	retryPolicy := worker.RetryPolicy{
		MaxRetries:    cfg.Bot.ReconcileMaxAttempts,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}
	eventBus := events.NewEventBus()
	subscribeAuditLog(eventBus, &logger)

	reconciler := worker.NewReconciler(db, bookingService, redisClient, retryPolicy, &logger)
	reconciler.SetPollInterval(time.Duration(cfg.Bot.ReconcileIntervalSec) * time.Second)
	reconciler.SetBatchSize(cfg.Bot.ReconcileBatchSize)
	reconciler.SetEventSink(eventBus)
	go reconciler.Start(ctx)

	sheetsService := initGoogleSheets(ctx, cfg, &logger)

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go func() {
			if err := metrics.Serve(cfg.Monitoring.PrometheusPort); err != nil {
				logger.Error().Err(err).Msg("Metrics server error")
			}
		}()
	}

	return startBot(ctx, cfg, store, manager, trainerService, clientService,
		trainingTypeService, timeSlotService, bookingService, reconciler,
		eventBus, sheetsService, presets, &logger)
}

func loadConfigAndLogger() (*config.Config, []models.TrainingTypeRequest, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	presets, err := loadPresets(cfg.Bot.TrainingTypePresets, &logger)
	if err != nil {
		return nil, nil, zerolog.Logger{}, closer, err
	}

	return cfg, presets, logger, closer, nil
}

// loadPresets reads the quick-create training type templates. A missing
// file just disables the feature.
func loadPresets(path string, logger *zerolog.Logger) ([]models.TrainingTypeRequest, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("Training type presets file not found")
			return nil, nil
		}
		return nil, err
	}

	var presetsConfig struct {
		Presets []models.TrainingTypeRequest `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &presetsConfig); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to parse presets file")
		return nil, err
	}

	logger.Info().Int("count", len(presetsConfig.Presets)).Msg("Training type presets loaded")
	return presetsConfig.Presets, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create database directory")
		return err
	}
	if cfg.Exports.Path != "" {
		if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
			logger.Error().Err(err).Msg("Failed to create exports directory")
			return err
		}
	}
	return nil
}

func initSessionStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, session.Store) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = session.NewRedisClient(cfg.Redis)
		if errPing := session.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(cfg.Redis.SessionTTLSeconds) * time.Second
	primary := session.NewRedisStore(redisClient, ttl)
	fallback := session.NewMemoryStore()
	return redisClient, session.NewFailoverStore(primary, fallback, logger)
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if cfg.Google.GoogleCredentialsFile == "" || cfg.Google.ScheduleSpreadSheetID == "" {
		logger.Info().Msg("Google Sheets mirror disabled")
		return nil
	}

	sheetsSvc, err := google.NewSheetsService(cfg.Google.GoogleCredentialsFile, cfg.Google.ScheduleSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		if email, emailErr := google.ServiceAccountEmail(cfg.Google.GoogleCredentialsFile); emailErr == nil {
			logger.Error().Err(err).Str("service_account", email).Msg("Google Sheets connection test failed; share the spreadsheet with the service account")
		} else {
			logger.Error().Err(err).Msg("Google Sheets connection test failed")
		}
		return nil
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	store session.Store,
	manager *session.Manager,
	trainerService *fitness.TrainerService,
	clientService *fitness.ClientService,
	trainingTypeService *fitness.TrainingTypeService,
	timeSlotService *fitness.TimeSlotService,
	bookingService *fitness.BookingService,
	reconciler *worker.Reconciler,
	eventBus *events.EventBus,
	sheetsService *google.SheetsService,
	presets []models.TrainingTypeRequest,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	deps := bot.Deps{
		Telegram:      service.NewTelegramService(service.NewBotWrapper(botAPI)),
		Config:        cfg,
		Store:         store,
		Sessions:      manager,
		Trainers:      trainerService,
		Clients:       clientService,
		TrainingTypes: trainingTypeService,
		Slots:         timeSlotService,
		Bookings:      bookingService,
		Reconciler:    reconciler,
		EventBus:      eventBus,
		Presets:       presets,
		Logger:        logger,
	}
	if sheetsService != nil {
		deps.Sheets = sheetsService
	}

	telegramBot := bot.NewBot(deps)

	logger.Info().Msg("Bot started...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// subscribeAuditLog writes every published event to the structured log.
func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(ev *events.Event) error {
		payload := json.RawMessage(ev.Payload)
		logger.Info().Str("event", ev.Type).RawJSON("payload", payload).Msg("Event")
		return nil
	}

	for _, eventType := range []string{
		events.EventUserLoggedIn,
		events.EventUserRegistered,
		events.EventBookingCreated,
		events.EventBookingCancelled,
		events.EventBookingCompleted,
		events.EventSlotPublished,
		events.EventSlotCancelled,
	} {
		bus.Subscribe(eventType, logEvent)
	}
}
