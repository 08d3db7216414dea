package bot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// monthBounds returns the first and last day of a month as input-layout
// date strings for the schedule query.
func monthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// showTrainerCalendar renders the trainer's month view. monthKey is
// "2006-01"; empty means the current month.
func (b *Bot) showTrainerCalendar(ctx context.Context, chatID int64, session *models.Session, monthKey string) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if monthKey != "" {
		if t, err := time.ParseInLocation("2006-01", monthKey, time.Local); err == nil {
			year, month = t.Year(), t.Month()
		}
	}

	from, to := monthBounds(year, month)
	slots, err := b.slots.ListByTrainer(ctx, session.ProfileID, from, to)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на графика. Моля, опитайте по-късно.")
		return
	}

	keyboard := monthCalendarKeyboard(year, month, slots)
	text := "📆 Вашият график\n🟢 свободен  🔵 резервиран  🔴 отменен"
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send calendar")
	}
}

// showDaySlots lists the trainer's slots on one day. day is "2006-01-02".
func (b *Bot) showDaySlots(ctx context.Context, chatID int64, session *models.Session, day string) {
	slots, err := b.slots.ListByTrainer(ctx, session.ProfileID, day, day)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на графика. Моля, опитайте по-късно.")
		return
	}

	var daySlots []models.TimeSlot
	for _, slot := range slots {
		if strings.HasPrefix(slot.StartTime, day) {
			daySlots = append(daySlots, slot)
		}
	}
	if len(daySlots) == 0 {
		b.sendMessage(chatID, "Няма часове за "+formatDate(day+"T00:00")+".")
		return
	}
	sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].StartTime < daySlots[j].StartTime })

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, slot := range daySlots {
		label := fmt.Sprintf("%s %s - %s | %s (%d/%d)",
			slotEmoji(slot), formatTime(slot.StartTime), formatTime(slot.EndTime),
			slot.TrainingTypeName, slot.BookedCount, slot.Capacity)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("ts_%d", slot.ID)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	text := "Часове за " + formatDate(day+"T00:00") + ":"
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send day slots")
	}
}

func (b *Bot) showSlotDetail(ctx context.Context, chatID int64, slotID int64) {
	slot, err := b.slots.Get(ctx, slotID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на часа. Моля, опитайте по-късно.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👥 Записани клиенти", fmt.Sprintf("tsclients_%d", slot.ID)),
	))
	if slot.Status != models.SlotCancelled {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмени часа", fmt.Sprintf("tscancel_%d", slot.ID)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, formatSlotDetail(*slot), keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send slot detail")
	}
}

func (b *Bot) confirmSlotCancel(ctx context.Context, chatID int64, slotID int64) {
	text := "Сигурни ли сте, че искате да отмените този час? Всички резервации за него ще бъдат отменени."
	keyboard := confirmKeyboard(fmt.Sprintf("tscancelok_%d", slotID), fmt.Sprintf("ts_%d", slotID))
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send slot cancel confirmation")
	}
}

func (b *Bot) cancelSlot(ctx context.Context, chatID int64, slotID int64) {
	slot, err := b.slots.Cancel(ctx, slotID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Отмяната не бе успешна. Моля, опитайте по-късно.")
		return
	}

	if err := b.eventBus.PublishJSON(events.EventSlotCancelled, events.SlotEventPayload{
		SlotID:       slot.ID,
		TrainerID:    slot.TrainerID,
		TrainingType: slot.TrainingTypeName,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Capacity:     slot.Capacity,
		Status:       slot.Status,
	}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish slot cancellation event")
	}

	b.sendMessage(chatID, "✅ Времевият слот е отменен успешно")
}

func (b *Bot) showSlotClients(ctx context.Context, chatID int64, slotID int64) {
	clients, err := b.slots.Clients(ctx, slotID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на клиентите. Моля, опитайте по-късно.")
		return
	}
	if len(clients) == 0 {
		b.sendMessage(chatID, "Все още няма записани клиенти за този слот.")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 Записани клиенти:\n\n")
	for i, c := range clients {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, c.FullName))
		if c.Phone != "" {
			sb.WriteString(" | " + c.Phone)
		}
		sb.WriteString("\n")
	}
	b.sendMessage(chatID, sb.String())
}

// startAddSlot begins slot creation: pick a training type, then enter the
// start time. End time and capacity are derived from the type.
func (b *Bot) startAddSlot(ctx context.Context, chatID int64, session *models.Session) {
	types, err := b.trainingTypes.List(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на тренировките. Моля, опитайте по-късно.")
		return
	}
	if len(types) == 0 {
		b.sendMessage(chatID, "Първо създайте тип тренировка от менюто „"+btnMyTypes+"“.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tt := range types {
		label := fmt.Sprintf("%s (%d мин.)", tt.Name, tt.Duration)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("slottype_%d", tt.ID)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "➕ Добавяне на нов час\n\nИзберете тип тренировка:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send slot type list")
	}
}

func (b *Bot) promptSlotStart(ctx context.Context, chatID int64, trainingTypeID int64) {
	b.setChatState(ctx, chatID, models.StateSlotEnterStart, map[string]interface{}{
		"training_type_id": trainingTypeID,
	})
	b.sendMessage(chatID, "Въведете начало на часа във формат ГГГГ-ММ-ДД ЧЧ:ММ (например 2026-09-15 10:00):")
}

func (b *Bot) handleSlotStartInput(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	start, err := time.ParseInLocation("2006-01-02 15:04", text, time.Local)
	if err != nil {
		b.sendMessage(chatID, "Невалиден формат. Въведете начало като ГГГГ-ММ-ДД ЧЧ:ММ:")
		return
	}
	if !start.After(time.Now()) {
		b.sendMessage(chatID, "Началото трябва да е в бъдещето. Опитайте отново:")
		return
	}

	session := b.sessions.Current(ctx, chatID)
	if !session.IsTrainer() {
		b.clearChatState(ctx, chatID)
		b.showLoginPrompt(ctx, chatID)
		return
	}

	trainingTypeID := state.GetInt64("training_type_id")
	tt, err := b.findTrainingType(ctx, trainingTypeID)
	if err != nil || tt == nil {
		b.clearChatState(ctx, chatID)
		b.sendError(ctx, chatID, err, "Типът тренировка не е намерен.")
		return
	}

	req, err := schedule.NewSlotRequest(session.ProfileID, *tt, start.Format(models.SlotInputLayout))
	if err != nil {
		b.clearChatState(ctx, chatID)
		b.sendError(ctx, chatID, err, "Часът не може да бъде съставен. Опитайте отново.")
		return
	}

	data := state.TempData
	data["start_time"] = req.StartTime
	data["end_time"] = req.EndTime
	data["capacity"] = req.Capacity
	b.setChatState(ctx, chatID, models.StateSlotConfirm, data)

	text = fmt.Sprintf(
		"*Потвърдете новия час*\n\n🏋️ Тренировка: %s\n📅 Дата: %s\n🕐 Час: %s - %s\n👥 Капацитет: %d",
		tt.Name, formatDate(req.StartTime), formatTime(req.StartTime), formatTime(req.EndTime), req.Capacity,
	)
	keyboard := confirmKeyboard("slotok", "slotno")
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send slot confirmation")
	}
}

func (b *Bot) createSlot(ctx context.Context, chatID int64, session *models.Session, state *models.ChatState) {
	req := models.TimeSlotRequest{
		TrainerID:      session.ProfileID,
		TrainingTypeID: state.GetInt64("training_type_id"),
		StartTime:      state.GetString("start_time"),
		EndTime:        state.GetString("end_time"),
		Capacity:       state.GetInt("capacity"),
	}
	b.clearChatState(ctx, chatID)

	slot, err := b.slots.Create(ctx, req)
	if err != nil {
		b.sendError(ctx, chatID, err, "Часът не бе създаден. Моля, опитайте по-късно.")
		return
	}

	if err := b.eventBus.PublishJSON(events.EventSlotPublished, events.SlotEventPayload{
		SlotID:       slot.ID,
		TrainerID:    slot.TrainerID,
		TrainingType: slot.TrainingTypeName,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Capacity:     slot.Capacity,
		Status:       slot.Status,
	}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish slot event")
	}

	b.sendMessage(chatID, "✅ Времевият слот е създаден успешно")
}

func (b *Bot) findTrainingType(ctx context.Context, id int64) (*models.TrainingType, error) {
	types, err := b.trainingTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			return &types[i], nil
		}
	}
	return nil, nil
}

func (b *Bot) showTrainerProfile(ctx context.Context, chatID int64, session *models.Session) {
	trainer, err := b.trainers.Own(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Не е намерен профил на треньор")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Име", "editt_full_name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Телефон", "editt_phone"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Представяне", "editt_bio"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Специализации", "editt_specializations"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Цена персонална", "editt_personal_price"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Цена групова", "editt_group_price"),
		),
	)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, formatTrainerCard(*trainer), keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send trainer profile")
	}
}

var profileFieldPrompts = map[string]string{
	"full_name":       "Въведете новото име:",
	"phone":           "Въведете новия телефонен номер:",
	"date_of_birth":   "Въведете дата на раждане (ГГГГ-ММ-ДД):",
	"health_info":     "Въведете здравна информация:",
	"fitness_goals":   "Въведете фитнес цели:",
	"bio":             "Въведете ново представяне:",
	"specializations": "Въведете специализации, разделени със запетая:",
	"personal_price":  "Въведете цена за персонална тренировка (лв.):",
	"group_price":     "Въведете цена за групова тренировка (лв.):",
}

func (b *Bot) promptProfileEdit(ctx context.Context, chatID int64, role, field string) {
	prompt, ok := profileFieldPrompts[field]
	if !ok {
		b.sendMessage(chatID, "Това поле не може да бъде редактирано.")
		return
	}
	b.setChatState(ctx, chatID, models.StateEditProfile, map[string]interface{}{
		"field": field,
		"role":  role,
	})
	b.sendMessage(chatID, prompt)
}

func (b *Bot) handleProfileEditInput(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	field := state.GetString("field")
	role := state.GetString("role")
	b.clearChatState(ctx, chatID)

	session := b.sessions.Current(ctx, chatID)
	if session == nil {
		b.showLoginPrompt(ctx, chatID)
		return
	}

	if role == models.RoleTrainer {
		update := models.TrainerProfileUpdate{}
		switch field {
		case "full_name":
			update.FullName = text
		case "phone":
			update.Phone = text
		case "bio":
			update.Bio = text
		case "specializations":
			update.Specializations = splitTrimmed(text)
		case "personal_price", "group_price":
			price, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
			if err != nil || price < 0 {
				b.sendMessage(chatID, "Невалидна цена. Редакцията е отказана.")
				return
			}
			if field == "personal_price" {
				update.PersonalPrice = &price
			} else {
				update.GroupPrice = &price
			}
		}
		if _, err := b.trainers.Update(ctx, session.ProfileID, update); err != nil {
			b.sendError(ctx, chatID, err, "Профилът не бе обновен. Моля, опитайте по-късно.")
			return
		}
		b.sendMessage(chatID, "✅ Профилът е обновен.")
		b.showTrainerProfile(ctx, chatID, session)
		return
	}

	update := models.ClientProfileUpdate{}
	switch field {
	case "full_name":
		update.FullName = text
	case "phone":
		update.Phone = text
	case "date_of_birth":
		update.DateOfBirth = text
	case "health_info":
		update.HealthInformation = text
	case "fitness_goals":
		update.FitnessGoals = text
	}
	if _, err := b.clients.Update(ctx, session.ProfileID, update); err != nil {
		b.sendError(ctx, chatID, err, "Профилът не бе обновен. Моля, опитайте по-късно.")
		return
	}
	b.sendMessage(chatID, "✅ Профилът е обновен.")
	b.showClientProfile(ctx, chatID, session)
}
