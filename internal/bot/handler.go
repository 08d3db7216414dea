package bot

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/guard"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if update.Message.IsCommand() {
		b.handleCommand(ctx, chatID, update.Message.Command())
		return
	}

	if text == btnCancelOp {
		b.clearChatState(ctx, chatID)
		b.showHome(ctx, chatID)
		return
	}

	// A chat mid-conversation gets its text routed to the active step, not
	// the menu.
	if state := b.getChatState(ctx, chatID); state != nil && state.CurrentStep != "" {
		b.handleStateInput(ctx, chatID, text, state)
		return
	}

	b.handleMenuButton(ctx, chatID, text)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start":
		b.clearChatState(ctx, chatID)
		b.showHome(ctx, chatID)
	case "help":
		text := "Използвайте бутоните от менюто, за да управлявате резервациите си. /start връща началния екран."
		keyboard := b.menuKeyboardFor(b.sessions.Current(ctx, chatID))
		if _, err := b.tgService.SendWithKeyboard(chatID, text, keyboard); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send help")
		}
	default:
		b.sendMessage(chatID, "Непозната команда. Използвайте /start.")
	}
}

func (b *Bot) handleMenuButton(ctx context.Context, chatID int64, text string) {
	session := b.sessions.Current(ctx, chatID)

	switch text {
	case btnLogin:
		b.startLogin(ctx, chatID)
	case btnRegister:
		b.startRegister(ctx, chatID)
	case btnLogout:
		b.handleLogout(ctx, chatID)

	case btnBook:
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.startBookingWizard(ctx, chatID)
		}
	case btnMyBookings:
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showMyBookings(ctx, chatID, session, 0)
		}
	case btnTrainers:
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showTrainers(ctx, chatID, 0)
		}

	case btnSchedule:
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showTrainerCalendar(ctx, chatID, session, "")
		}
	case btnAddSlot:
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.startAddSlot(ctx, chatID, session)
		}
	case btnMyTypes:
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showTrainingTypes(ctx, chatID)
		}
	case btnExport:
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.exportSchedule(ctx, chatID, session)
		}

	case btnProfile:
		switch {
		case session.IsTrainer():
			b.showTrainerProfile(ctx, chatID, session)
		case session.IsClient():
			b.showClientProfile(ctx, chatID, session)
		default:
			b.showLoginPrompt(ctx, chatID)
		}

	default:
		b.showHome(ctx, chatID)
	}
}

// requireRole applies the screen guard and renders the redirect target
// itself when the visitor is rejected.
func (b *Bot) requireRole(ctx context.Context, chatID int64, session *models.Session, roles ...string) bool {
	switch guard.Decide(session, roles...) {
	case guard.Allow:
		return true
	case guard.RedirectLogin:
		b.showLoginPrompt(ctx, chatID)
		return false
	default:
		b.showHomeScreen(ctx, chatID, session)
		return false
	}
}

func (b *Bot) handleStateInput(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	switch state.CurrentStep {
	case models.StateLoginEmail, models.StateLoginPassword:
		b.handleLoginStep(ctx, chatID, text, state)
	case models.StateRegisterRole, models.StateRegisterName, models.StateRegisterEmail,
		models.StateRegisterPassword, models.StateRegisterPhone, models.StateRegisterExtra:
		b.handleRegisterStep(ctx, chatID, text, state)
	case models.StateSlotEnterStart:
		b.handleSlotStartInput(ctx, chatID, text, state)
	case models.StateTypeName, models.StateTypeDescription, models.StateTypeDuration,
		models.StateTypeCategory, models.StateTypeMaxClients:
		b.handleTypeStep(ctx, chatID, text, state)
	case models.StateEditProfile:
		b.handleProfileEditInput(ctx, chatID, text, state)
	default:
		b.clearChatState(ctx, chatID)
		b.showHome(ctx, chatID)
	}
}

// showHome renders the screen the chat's role calls home.
func (b *Bot) showHome(ctx context.Context, chatID int64) {
	b.showHomeScreen(ctx, chatID, b.sessions.Current(ctx, chatID))
}

func (b *Bot) showHomeScreen(ctx context.Context, chatID int64, session *models.Session) {
	switch guard.Home(session) {
	case models.StateTrainerDashboard:
		b.showTrainerDashboard(ctx, chatID, session)
	case models.StateMyBookings:
		b.showClientHome(ctx, chatID, session)
	default:
		b.showLoginPrompt(ctx, chatID)
	}
}

func (b *Bot) showLoginPrompt(ctx context.Context, chatID int64) {
	text := "Добре дошли във фитнес системата за резервации! 💪\n\nВлезте в профила си или се регистрирайте, за да продължите."
	if _, err := b.tgService.SendWithKeyboard(chatID, text, guestMenuKeyboard()); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send login prompt")
	}
}

func (b *Bot) showClientHome(ctx context.Context, chatID int64, session *models.Session) {
	text := "Здравейте, " + session.FullName + "! 👋\nИзберете действие от менюто."
	if _, err := b.tgService.SendWithKeyboard(chatID, text, clientMenuKeyboard()); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send client menu")
	}
}

// showTrainerDashboard greets the trainer with their next few slots.
func (b *Bot) showTrainerDashboard(ctx context.Context, chatID int64, session *models.Session) {
	text := "Здравейте, " + session.FullName + "! 👋"

	now := time.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, 7).Format("2006-01-02")
	if slots, err := b.slots.ListByTrainer(ctx, session.ProfileID, from, to); err == nil {
		upcoming := upcomingSlots(slots, now, 5)
		if len(upcoming) > 0 {
			text += "\n\nПредстоящи часове:"
			for _, slot := range upcoming {
				text += "\n" + slotEmoji(slot) + " " + formatInterval(slot.StartTime, slot.EndTime) + " | " + slot.TrainingTypeName
			}
		} else {
			text += "\n\nНямате предстоящи часове тази седмица."
		}
	} else {
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to load upcoming slots")
	}

	if _, err := b.tgService.SendWithKeyboard(chatID, text, trainerMenuKeyboard()); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send trainer menu")
	}
}

// upcomingSlots picks the first n future, non-cancelled slots in start
// order.
func upcomingSlots(slots []models.TimeSlot, now time.Time, n int) []models.TimeSlot {
	var future []models.TimeSlot
	for _, slot := range slots {
		if slot.Status == models.SlotCancelled {
			continue
		}
		start, err := slot.Start()
		if err != nil || !start.After(now) {
			continue
		}
		future = append(future, slot)
	}
	sort.Slice(future, func(i, j int) bool { return future[i].StartTime < future[j].StartTime })
	if len(future) > n {
		future = future[:n]
	}
	return future
}
