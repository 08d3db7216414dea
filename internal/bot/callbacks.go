package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	data := callback.Data

	if err := b.tgService.AnswerCallback(callback.ID, ""); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to answer callback")
	}

	if data == "noop" {
		return
	}

	// Callback data is "<action>_<args>"; the action never contains an
	// underscore.
	action, arg := data, ""
	if i := strings.Index(data, "_"); i >= 0 {
		action, arg = data[:i], data[i+1:]
	}

	session := b.sessions.Current(ctx, chatID)

	switch action {
	// Booking wizard (client).
	case "ttype":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showBookableSlots(ctx, chatID, parseID(arg), 0)
		}
	case "slpage":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			typeID, page := parseIDPage(arg)
			b.showBookableSlots(ctx, chatID, typeID, page)
		}
	case "slot":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showBookingConfirm(ctx, chatID, parseID(arg))
		}
	case "bookok":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.createBooking(ctx, chatID, session, parseID(arg))
		}
	case "bookno":
		b.sendMessage(chatID, "Резервацията е отказана.")

	// Bookings list (client).
	case "bkpage":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showMyBookings(ctx, chatID, session, parsePage(arg))
		}
	case "bk":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showBookingDetail(ctx, chatID, session, parseID(arg))
		}
	case "bkcancel":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.confirmBookingCancel(ctx, chatID, parseID(arg))
		}
	case "bkcancelok":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.cancelBooking(ctx, chatID, session, parseID(arg))
		}

	// Trainer directory (client).
	case "trpage":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showTrainers(ctx, chatID, parsePage(arg))
		}
	case "trainer":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.showTrainerCard(ctx, chatID, parseID(arg))
		}

	// Profile editing.
	case "editc":
		if b.requireRole(ctx, chatID, session, models.RoleClient) {
			b.promptProfileEdit(ctx, chatID, models.RoleClient, arg)
		}
	case "editt":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.promptProfileEdit(ctx, chatID, models.RoleTrainer, arg)
		}

	// Schedule (trainer).
	case "month":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showTrainerCalendar(ctx, chatID, session, arg)
		}
	case "day":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showDaySlots(ctx, chatID, session, arg)
		}
	case "ts":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showSlotDetail(ctx, chatID, parseID(arg))
		}
	case "tscancel":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.confirmSlotCancel(ctx, chatID, parseID(arg))
		}
	case "tscancelok":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.cancelSlot(ctx, chatID, parseID(arg))
		}
	case "tsclients":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showSlotClients(ctx, chatID, parseID(arg))
		}

	// Slot creation (trainer).
	case "slottype":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.promptSlotStart(ctx, chatID, parseID(arg))
		}
	case "slotok":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			state := b.getChatState(ctx, chatID)
			if state == nil || state.CurrentStep != models.StateSlotConfirm {
				b.sendMessage(chatID, "Часът вече не е в процес на създаване.")
				return
			}
			b.createSlot(ctx, chatID, session, state)
		}
	case "slotno":
		b.clearChatState(ctx, chatID)
		b.sendMessage(chatID, "Създаването на час е отказано.")

	// Training types (trainer).
	case "ttlist":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showTrainingTypes(ctx, chatID)
		}
	case "tt":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showTrainingTypeDetail(ctx, chatID, parseID(arg))
		}
	case "ttnew":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.startTypeWizard(ctx, chatID, 0)
		}
	case "ttedit":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.startTypeWizard(ctx, chatID, parseID(arg))
		}
	case "ttdel":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.confirmTypeDelete(ctx, chatID, parseID(arg))
		}
	case "ttdelok":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.deleteTrainingType(ctx, chatID, parseID(arg))
		}
	case "ttpresets":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.showPresets(ctx, chatID)
		}
	case "preset":
		if b.requireRole(ctx, chatID, session, models.RoleTrainer) {
			b.createFromPreset(ctx, chatID, parsePage(arg))
		}

	default:
		b.logger.Warn().Str("data", data).Msg("Unknown callback")
	}
}

func parseID(arg string) int64 {
	id, _ := strconv.ParseInt(arg, 10, 64)
	return id
}

func parsePage(arg string) int {
	page, _ := strconv.Atoi(arg)
	return page
}

// parseIDPage splits "<id>_<page>" callback arguments.
func parseIDPage(arg string) (int64, int) {
	i := strings.Index(arg, "_")
	if i < 0 {
		return parseID(arg), 0
	}
	return parseID(arg[:i]), parsePage(arg[i+1:])
}
