package bot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startBookingWizard opens the three-step booking flow: pick a training
// type, pick one of its open future slots, confirm with price.
func (b *Bot) startBookingWizard(ctx context.Context, chatID int64) {
	types, err := b.trainingTypes.List(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на тренировките. Моля, опитайте по-късно.")
		return
	}
	if len(types) == 0 {
		b.sendMessage(chatID, "В момента няма предлагани тренировки.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tt := range types {
		label := fmt.Sprintf("%s (%s, %d мин.)", tt.Name, categoryText(tt.Category), tt.Duration)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("ttype_%d", tt.ID)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "Изберете тип тренировка:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send training type list")
	}
}

// bookableSlots filters the full schedule down to what the wizard offers:
// the chosen type, open, with spots, starting in the future.
func bookableSlots(slots []models.TimeSlot, trainingTypeID int64, now time.Time) []models.TimeSlot {
	var out []models.TimeSlot
	for _, slot := range slots {
		if slot.TrainingTypeID != trainingTypeID {
			continue
		}
		if slot.Status != models.SlotAvailable || slot.AvailableSpots <= 0 {
			continue
		}
		start, err := slot.Start()
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func (b *Bot) showBookableSlots(ctx context.Context, chatID int64, trainingTypeID int64, page int) {
	slots, err := b.slots.List(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на часовете. Моля, опитайте по-късно.")
		return
	}

	open := bookableSlots(slots, trainingTypeID, time.Now())
	if len(open) == 0 {
		b.sendMessage(chatID, "Няма налични часове за избрания тип тренировка.")
		return
	}

	start, end, page, totalPages := paginate(len(open), page, b.config.Bot.PaginationSize)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, slot := range open[start:end] {
		label := fmt.Sprintf("%s | %s", formatInterval(slot.StartTime, slot.EndTime), slot.TrainerName)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("slot_%d", slot.ID)),
		))
	}
	if nav := paginationRow(fmt.Sprintf("slpage_%d_", trainingTypeID), page, totalPages); nav != nil {
		rows = append(rows, nav)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "Изберете час:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send slot list")
	}
}

func (b *Bot) showBookingConfirm(ctx context.Context, chatID int64, slotID int64) {
	slot, err := b.slots.Get(ctx, slotID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на часа. Моля, опитайте по-късно.")
		return
	}

	price := "-"
	category := ""
	if types, err := b.trainingTypes.List(ctx); err == nil {
		for _, tt := range types {
			if tt.ID == slot.TrainingTypeID {
				category = tt.Category
				break
			}
		}
	}
	if trainer, err := b.trainers.Get(ctx, slot.TrainerID); err == nil && category != "" {
		price = formatPrice(bookingPrice(trainer, category))
	}

	text := fmt.Sprintf(
		"*Потвърдете резервацията*\n\n🏋️ Тренировка: %s\n👤 Треньор: %s\n📅 Дата: %s\n🕐 Час: %s - %s\n💰 Цена: %s\n👥 Свободни места: %d",
		slot.TrainingTypeName, slot.TrainerName,
		formatDate(slot.StartTime), formatTime(slot.StartTime), formatTime(slot.EndTime),
		price, slot.AvailableSpots,
	)

	keyboard := confirmKeyboard(fmt.Sprintf("bookok_%d", slotID), "bookno")
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send booking confirmation")
	}
}

func (b *Bot) createBooking(ctx context.Context, chatID int64, session *models.Session, slotID int64) {
	booking, err := b.bookings.Create(ctx, session.ProfileID, slotID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Резервацията не бе успешна. Моля, опитайте по-късно.")
		return
	}

	if err := b.eventBus.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID:    booking.ID,
		ClientID:     booking.ClientID,
		ClientName:   booking.ClientName,
		TrainerName:  booking.TrainerName,
		TrainingType: booking.TrainingTypeName,
		Status:       booking.Status,
		StartTime:    booking.StartTime,
	}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish booking event")
	}

	b.sendMessage(chatID, "✅ Резервацията е създадена успешно!")
	b.showMyBookings(ctx, chatID, session, 0)
}

// showMyBookings lists the client's bookings newest-relevant-first. Stale
// confirmed bookings are journaled for the reconciler on the way through;
// the list itself renders the inferred status immediately.
func (b *Bot) showMyBookings(ctx context.Context, chatID int64, session *models.Session, page int) {
	bookings, err := b.bookings.ListByClient(ctx, session.ProfileID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на резервациите. Моля, опитайте по-късно.")
		return
	}
	if len(bookings) == 0 {
		b.sendMessage(chatID, "Все още нямате резервации.")
		return
	}

	now := time.Now()
	for _, stale := range schedule.StaleConfirmed(bookings, now) {
		if err := b.reconciler.EnqueueCompletion(ctx, chatID, stale.ID); err != nil {
			b.logger.Warn().Err(err).Int64("booking_id", stale.ID).Msg("Failed to journal completion")
		}
	}

	sorted := schedule.SortBookings(bookings, now)
	start, end, page, totalPages := paginate(len(sorted), page, b.config.Bot.BookingsPageSize)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, booking := range sorted[start:end] {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatBookingLine(booking, now), fmt.Sprintf("bk_%d", booking.ID)),
		))
	}
	if nav := paginationRow("bkpage_", page, totalPages); nav != nil {
		rows = append(rows, nav)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "📋 Моите резервации:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send bookings list")
	}
}

func (b *Bot) findBooking(ctx context.Context, session *models.Session, bookingID int64) (*models.Booking, error) {
	bookings, err := b.bookings.ListByClient(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, nil
}

func (b *Bot) showBookingDetail(ctx context.Context, chatID int64, session *models.Session, bookingID int64) {
	booking, err := b.findBooking(ctx, session, bookingID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на резервациите. Моля, опитайте по-късно.")
		return
	}
	if booking == nil {
		b.sendMessage(chatID, "Резервацията не е намерена.")
		return
	}

	now := time.Now()
	text := formatBookingDetail(*booking, now)

	var rows [][]tgbotapi.InlineKeyboardButton
	if schedule.DeriveDisplayStatus(booking.Status, booking.EndTime, now) == models.BookingConfirmed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмени резервацията", fmt.Sprintf("bkcancel_%d", booking.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBackLabel, "bkpage_0"),
	))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send booking detail")
	}
}

func (b *Bot) confirmBookingCancel(ctx context.Context, chatID int64, bookingID int64) {
	text := "Сигурни ли сте, че искате да отмените тази резервация?"
	keyboard := confirmKeyboard(fmt.Sprintf("bkcancelok_%d", bookingID), fmt.Sprintf("bk_%d", bookingID))
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send cancel confirmation")
	}
}

func (b *Bot) cancelBooking(ctx context.Context, chatID int64, session *models.Session, bookingID int64) {
	booking, err := b.bookings.Cancel(ctx, bookingID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Отмяната не бе успешна. Моля, опитайте по-късно.")
		return
	}

	if err := b.eventBus.PublishJSON(events.EventBookingCancelled, events.BookingEventPayload{
		BookingID:    booking.ID,
		ClientID:     booking.ClientID,
		TrainerName:  booking.TrainerName,
		TrainingType: booking.TrainingTypeName,
		Status:       booking.Status,
		StartTime:    booking.StartTime,
	}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish cancellation event")
	}

	b.sendMessage(chatID, "✅ Резервацията е отменена.")
	b.showMyBookings(ctx, chatID, session, 0)
}

func (b *Bot) showTrainers(ctx context.Context, chatID int64, page int) {
	trainers, err := b.trainers.List(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на треньорите. Моля, опитайте по-късно.")
		return
	}
	if len(trainers) == 0 {
		b.sendMessage(chatID, "В момента няма регистрирани треньори.")
		return
	}

	start, end, page, totalPages := paginate(len(trainers), page, b.config.Bot.PaginationSize)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range trainers[start:end] {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.FullName, fmt.Sprintf("trainer_%d", t.ID)),
		))
	}
	if nav := paginationRow("trpage_", page, totalPages); nav != nil {
		rows = append(rows, nav)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "🏋️ Нашите треньори:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send trainers list")
	}
}

func (b *Bot) showTrainerCard(ctx context.Context, chatID int64, trainerID int64) {
	trainer, err := b.trainers.Get(ctx, trainerID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на профила. Моля, опитайте по-късно.")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBackLabel, "trpage_0"),
		),
	)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, formatTrainerCard(*trainer), keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send trainer card")
	}
}

func (b *Bot) showClientProfile(ctx context.Context, chatID int64, session *models.Session) {
	profile, err := b.clients.Get(ctx, session.ProfileID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на профила. Моля, опитайте по-късно.")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Име", "editc_full_name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Телефон", "editc_phone"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Здравна информация", "editc_health_info"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Фитнес цели", "editc_fitness_goals"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Дата на раждане", "editc_date_of_birth"),
		),
	)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, formatClientProfile(*profile), keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send client profile")
	}
}
