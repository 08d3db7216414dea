package bot

import (
	"context"
	"testing"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/config"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/fitness"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegram records outgoing messages instead of talking to Telegram.
type fakeTelegram struct {
	texts     []string
	keyboards []tgbotapi.InlineKeyboardMarkup
}

func (f *fakeTelegram) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	f.texts = append(f.texts, text)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error) {
	f.texts = append(f.texts, text)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	f.texts = append(f.texts, text)
	f.keyboards = append(f.keyboards, keyboard)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) SendDocument(chatID int64, filePath string) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) AnswerCallback(callbackID string, text string) error { return nil }

func (f *fakeTelegram) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTelegram) GetSelf() tgbotapi.User { return tgbotapi.User{UserName: "test_bot"} }

func (f *fakeTelegram) StopReceivingUpdates() {}

func (f *fakeTelegram) lastText() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

// stubAuth serves one fixed session for every chat.
type stubAuth struct {
	session *models.Session
}

func (s *stubAuth) Login(ctx context.Context, chatID int64, email, password string) (*models.Session, error) {
	return s.session, nil
}

func (s *stubAuth) Register(ctx context.Context, chatID int64, req models.RegisterRequest) (*models.Session, error) {
	return s.session, nil
}

func (s *stubAuth) Logout(ctx context.Context, chatID int64) error { return nil }

func (s *stubAuth) Current(ctx context.Context, chatID int64) *models.Session { return s.session }

type stubSlots struct {
	slots []models.TimeSlot
}

func (s *stubSlots) List(ctx context.Context) ([]models.TimeSlot, error) { return s.slots, nil }

func (s *stubSlots) Get(ctx context.Context, id int64) (*models.TimeSlot, error) {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return &s.slots[i], nil
		}
	}
	return nil, nil
}

func (s *stubSlots) ListByTrainer(ctx context.Context, trainerID int64, startDate, endDate string) ([]models.TimeSlot, error) {
	return s.slots, nil
}

func (s *stubSlots) Create(ctx context.Context, req models.TimeSlotRequest) (*models.TimeSlot, error) {
	return &models.TimeSlot{ID: 1}, nil
}

func (s *stubSlots) Cancel(ctx context.Context, id int64) (*models.TimeSlot, error) {
	return &models.TimeSlot{ID: id, Status: models.SlotCancelled}, nil
}

func (s *stubSlots) Clients(ctx context.Context, id int64) ([]models.ClientProfile, error) {
	return nil, nil
}

type stubBookings struct {
	bookings []models.Booking
}

func (s *stubBookings) Create(ctx context.Context, clientID, timeSlotID int64) (*models.Booking, error) {
	return &models.Booking{ID: 1, ClientID: clientID, TimeSlotID: timeSlotID}, nil
}

func (s *stubBookings) ListByClient(ctx context.Context, clientID int64) ([]models.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookings) UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.Booking, error) {
	return &models.Booking{ID: bookingID, Status: status}, nil
}

func (s *stubBookings) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	return &models.Booking{ID: bookingID, Status: models.BookingCancelled}, nil
}

// stubTrainers serves one fixed trainer profile and counts own-profile
// lookups.
type stubTrainers struct {
	profile  models.TrainerProfile
	ownCalls int
}

func (s *stubTrainers) List(ctx context.Context) ([]models.TrainerProfile, error) {
	return []models.TrainerProfile{s.profile}, nil
}

func (s *stubTrainers) Get(ctx context.Context, id int64) (*models.TrainerProfile, error) {
	p := s.profile
	return &p, nil
}

func (s *stubTrainers) Own(ctx context.Context) (*models.TrainerProfile, error) {
	s.ownCalls++
	p := s.profile
	return &p, nil
}

func (s *stubTrainers) Update(ctx context.Context, id int64, update models.TrainerProfileUpdate) (*models.TrainerProfile, error) {
	p := s.profile
	return &p, nil
}

type recordingQueue struct {
	enqueued []int64
}

func (r *recordingQueue) EnqueueCompletion(ctx context.Context, chatID, bookingID int64) error {
	r.enqueued = append(r.enqueued, bookingID)
	return nil
}

func newTestBot(t *testing.T, deps Deps) (*Bot, *fakeTelegram) {
	t.Helper()

	tg := &fakeTelegram{}
	logger := zerolog.Nop()

	if deps.Config == nil {
		deps.Config = &config.Config{}
		deps.Config.Bot.PaginationSize = 8
		deps.Config.Bot.BookingsPageSize = 5
		deps.Config.Bot.RateLimitMessages = 20
		deps.Config.Bot.RateLimitWindow = 60
	}
	deps.Telegram = tg
	deps.Store = session.NewMemoryStore()
	deps.Logger = &logger
	if deps.Sessions == nil {
		deps.Sessions = &stubAuth{}
	}
	if deps.Slots == nil {
		deps.Slots = &stubSlots{}
	}
	if deps.Bookings == nil {
		deps.Bookings = &stubBookings{}
	}
	if deps.Reconciler == nil {
		deps.Reconciler = &recordingQueue{}
	}

	return NewBot(deps), tg
}

// countingAuth records logout calls on top of the fixed session.
type countingAuth struct {
	stubAuth
	logouts int
}

func (c *countingAuth) Logout(ctx context.Context, chatID int64) error {
	c.logouts++
	return nil
}

func TestSendError_UnauthorizedKeepsSession(t *testing.T) {
	client := &models.Session{UserID: 1, Role: models.RoleClient, Token: "tok"}
	auth := &countingAuth{stubAuth: stubAuth{session: client}}
	b, tg := newTestBot(t, Deps{Sessions: auth})

	b.sendError(context.Background(), 100, &fitness.APIError{
		Kind:       fitness.KindUnauthorized,
		StatusCode: 401,
		Message:    "Нямате права за достъп или сесията е изтекла",
	}, "fallback")

	assert.Equal(t, 0, auth.logouts, "an expired token must not drop the stored session")
	assert.Equal(t, "❌ Нямате права за достъп или сесията е изтекла", tg.lastText())
	assert.NotNil(t, b.sessions.Current(context.Background(), 100))
}

func TestHandleMenuButton_UnauthenticatedGetsLoginPrompt(t *testing.T) {
	b, tg := newTestBot(t, Deps{})

	b.handleMenuButton(context.Background(), 100, btnBook)

	assert.Contains(t, tg.lastText(), "Влезте в профила си")
}

func TestHandleMenuButton_TrainerRedirectedFromClientScreen(t *testing.T) {
	trainer := &models.Session{UserID: 1, Role: models.RoleTrainer, Token: "tok", FullName: "Мария"}
	b, tg := newTestBot(t, Deps{Sessions: &stubAuth{session: trainer}})

	b.handleMenuButton(context.Background(), 100, btnMyBookings)

	assert.Contains(t, tg.lastText(), "Здравейте, Мария")
}

func TestProcessUpdate_DropsUpdateWhileChatBusy(t *testing.T) {
	b, tg := newTestBot(t, Deps{})

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 100},
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}

	b.inflight.Store(int64(100), struct{}{})
	b.processUpdate(context.Background(), update)
	assert.Empty(t, tg.texts, "a chat with an update in flight is left alone")

	b.inflight.Delete(int64(100))
	b.processUpdate(context.Background(), update)
	assert.NotEmpty(t, tg.texts)
}

func TestShowTrainerProfile_UsesOwnProfileEndpoint(t *testing.T) {
	trainer := &models.Session{UserID: 1, Role: models.RoleTrainer, Token: "tok", ProfileID: 4}
	dir := &stubTrainers{profile: models.TrainerProfile{ID: 4, FullName: "Мария Иванова"}}
	b, tg := newTestBot(t, Deps{Sessions: &stubAuth{session: trainer}, Trainers: dir})

	b.showTrainerProfile(context.Background(), 100, trainer)

	assert.Equal(t, 1, dir.ownCalls)
	assert.Contains(t, tg.lastText(), "Мария Иванова")
}

func TestBookableSlots_Filter(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.Local)
	slots := []models.TimeSlot{
		{ID: 1, TrainingTypeID: 5, Status: models.SlotAvailable, AvailableSpots: 2, StartTime: "2026-09-15T10:00:00"},
		// Wrong type.
		{ID: 2, TrainingTypeID: 6, Status: models.SlotAvailable, AvailableSpots: 2, StartTime: "2026-09-15T10:00:00"},
		// No spots left.
		{ID: 3, TrainingTypeID: 5, Status: models.SlotAvailable, AvailableSpots: 0, StartTime: "2026-09-15T10:00:00"},
		// Already started.
		{ID: 4, TrainingTypeID: 5, Status: models.SlotAvailable, AvailableSpots: 2, StartTime: "2026-09-01T10:00:00"},
		// Cancelled.
		{ID: 5, TrainingTypeID: 5, Status: models.SlotCancelled, AvailableSpots: 2, StartTime: "2026-09-15T10:00:00"},
		// Later start, sorts after the first.
		{ID: 6, TrainingTypeID: 5, Status: models.SlotAvailable, AvailableSpots: 1, StartTime: "2026-09-12T10:00:00"},
	}

	open := bookableSlots(slots, 5, now)

	require.Len(t, open, 2)
	assert.Equal(t, int64(6), open[0].ID)
	assert.Equal(t, int64(1), open[1].ID)
}

func TestShowMyBookings_JournalsStaleConfirmed(t *testing.T) {
	client := &models.Session{UserID: 1, Role: models.RoleClient, Token: "tok", ProfileID: 9}
	queue := &recordingQueue{}
	past := time.Now().Add(-2 * time.Hour).Format(models.SlotTimeLayout)
	future := time.Now().Add(2 * time.Hour).Format(models.SlotTimeLayout)
	bookings := &stubBookings{bookings: []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, StartTime: past, EndTime: past},
		{ID: 2, Status: models.BookingConfirmed, StartTime: future, EndTime: future},
		{ID: 3, Status: models.BookingCancelled, StartTime: past, EndTime: past},
	}}

	b, tg := newTestBot(t, Deps{
		Sessions:   &stubAuth{session: client},
		Bookings:   bookings,
		Reconciler: queue,
	})

	b.showMyBookings(context.Background(), 100, client, 0)

	assert.Equal(t, []int64{1}, queue.enqueued)
	assert.Contains(t, tg.lastText(), "Моите резервации")
}

func TestShowBookableSlots_NoneAvailable(t *testing.T) {
	client := &models.Session{UserID: 1, Role: models.RoleClient, Token: "tok", ProfileID: 9}
	b, tg := newTestBot(t, Deps{
		Sessions: &stubAuth{session: client},
		Slots:    &stubSlots{},
	})

	b.showBookableSlots(context.Background(), 100, 5, 0)

	assert.Equal(t, "Няма налични часове за избрания тип тренировка.", tg.lastText())
}

func TestCallback_SlotCancelGoesThroughConfirmation(t *testing.T) {
	trainer := &models.Session{UserID: 1, Role: models.RoleTrainer, Token: "tok", ProfileID: 3}
	b, tg := newTestBot(t, Deps{Sessions: &stubAuth{session: trainer}})

	update := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    "tscancel_7",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 100}},
	}}
	b.handleCallbackQuery(context.Background(), update)

	assert.Contains(t, tg.lastText(), "Сигурни ли сте")

	update.CallbackQuery.Data = "tscancelok_7"
	b.handleCallbackQuery(context.Background(), update)

	assert.Equal(t, "✅ Времевият слот е отменен успешно", tg.lastText())
}
