package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showTrainingTypes(ctx context.Context, chatID int64) {
	types, err := b.trainingTypes.List(ctx)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на тренировките. Моля, опитайте по-късно.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tt := range types {
		label := fmt.Sprintf("%s (%s, %d мин.)", tt.Name, categoryText(tt.Category), tt.Duration)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("tt_%d", tt.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Нов тип", "ttnew"),
	))
	if len(b.presets) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 От шаблон", "ttpresets"),
		))
	}

	text := "🏷 Вашите тренировки:"
	if len(types) == 0 {
		text = "Все още нямате създадени тренировки."
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send training types")
	}
}

func (b *Bot) showTrainingTypeDetail(ctx context.Context, chatID int64, typeID int64) {
	tt, err := b.findTrainingType(ctx, typeID)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на тренировката. Моля, опитайте по-късно.")
		return
	}
	if tt == nil {
		b.sendMessage(chatID, "Типът тренировка не е намерен.")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактирай", fmt.Sprintf("ttedit_%d", tt.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Изтрий", fmt.Sprintf("ttdel_%d", tt.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBackLabel, "ttlist"),
		),
	)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, formatTrainingType(*tt), keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send training type detail")
	}
}

// startTypeWizard walks name, description, duration, category and, for
// group trainings, capacity. editID zero means creation.
func (b *Bot) startTypeWizard(ctx context.Context, chatID int64, editID int64) {
	data := map[string]interface{}{}
	if editID != 0 {
		data["edit_id"] = editID
	}
	b.setChatState(ctx, chatID, models.StateTypeName, data)
	b.sendMessage(chatID, "Въведете име на тренировката:")
}

func (b *Bot) handleTypeStep(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	data := state.TempData
	if data == nil {
		data = map[string]interface{}{}
	}

	switch state.CurrentStep {
	case models.StateTypeName:
		if text == "" {
			b.sendMessage(chatID, "Името не може да бъде празно. Опитайте отново:")
			return
		}
		data["name"] = text
		b.setChatState(ctx, chatID, models.StateTypeDescription, data)
		b.sendMessage(chatID, "Въведете описание (или - за пропускане):")

	case models.StateTypeDescription:
		if text != "-" {
			data["description"] = text
		}
		b.setChatState(ctx, chatID, models.StateTypeDuration, data)
		b.sendMessage(chatID, "Въведете продължителност в минути:")

	case models.StateTypeDuration:
		duration, err := strconv.Atoi(text)
		if err != nil || duration <= 0 {
			b.sendMessage(chatID, "Невалидна продължителност. Въведете цяло число минути:")
			return
		}
		data["duration"] = duration
		b.setChatState(ctx, chatID, models.StateTypeCategory, data)
		b.sendMessage(chatID, "Каква е тренировката?\n1 - Персонална\n2 - Групова")

	case models.StateTypeCategory:
		switch text {
		case "1", "Персонална":
			data["category"] = models.CategoryPersonal
			b.submitTrainingType(ctx, chatID, data)
		case "2", "Групова":
			data["category"] = models.CategoryGroup
			b.setChatState(ctx, chatID, models.StateTypeMaxClients, data)
			b.sendMessage(chatID, "Въведете максимален брой клиенти:")
		default:
			b.sendMessage(chatID, "Изберете 1 за персонална или 2 за групова:")
		}

	case models.StateTypeMaxClients:
		maxClients, err := strconv.Atoi(text)
		if err != nil || maxClients <= 0 {
			b.sendMessage(chatID, "Невалиден брой. Въведете цяло число:")
			return
		}
		data["max_clients"] = maxClients
		b.submitTrainingType(ctx, chatID, data)
	}
}

func (b *Bot) submitTrainingType(ctx context.Context, chatID int64, data map[string]interface{}) {
	state := &models.ChatState{TempData: data}
	req := models.TrainingTypeRequest{
		Name:        state.GetString("name"),
		Description: state.GetString("description"),
		Duration:    state.GetInt("duration"),
		Category:    state.GetString("category"),
	}
	if req.Category == models.CategoryGroup {
		maxClients := state.GetInt("max_clients")
		req.MaxClients = &maxClients
	}
	editID := state.GetInt64("edit_id")
	b.clearChatState(ctx, chatID)

	if editID != 0 {
		if _, err := b.trainingTypes.Update(ctx, editID, req); err != nil {
			b.sendError(ctx, chatID, err, "Тренировката не бе обновена. Моля, опитайте по-късно.")
			return
		}
		b.sendMessage(chatID, "✅ Типът тренировка беше успешно актуализиран")
	} else {
		if _, err := b.trainingTypes.Create(ctx, req); err != nil {
			b.sendError(ctx, chatID, err, "Тренировката не бе създадена. Моля, опитайте по-късно.")
			return
		}
		b.sendMessage(chatID, "✅ Типът тренировка беше успешно създаден")
	}
	b.showTrainingTypes(ctx, chatID)
}

func (b *Bot) confirmTypeDelete(ctx context.Context, chatID int64, typeID int64) {
	text := "Сигурни ли сте, че искате да изтриете тази тренировка?"
	keyboard := confirmKeyboard(fmt.Sprintf("ttdelok_%d", typeID), fmt.Sprintf("tt_%d", typeID))
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send delete confirmation")
	}
}

func (b *Bot) deleteTrainingType(ctx context.Context, chatID int64, typeID int64) {
	if err := b.trainingTypes.Delete(ctx, typeID); err != nil {
		b.sendError(ctx, chatID, err, "Тренировката не бе изтрита. Моля, опитайте по-късно.")
		return
	}
	b.sendMessage(chatID, "✅ Типът тренировка беше успешно изтрит")
	b.showTrainingTypes(ctx, chatID)
}

func (b *Bot) showPresets(ctx context.Context, chatID int64) {
	if len(b.presets) == 0 {
		b.sendMessage(chatID, "Няма налични шаблони.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, p := range b.presets {
		label := fmt.Sprintf("%s (%s, %d мин.)", p.Name, categoryText(p.Category), p.Duration)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("preset_%d", i)),
		))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, "📋 Изберете шаблон:", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send presets")
	}
}

func (b *Bot) createFromPreset(ctx context.Context, chatID int64, index int) {
	if index < 0 || index >= len(b.presets) {
		b.sendMessage(chatID, "Шаблонът не е намерен.")
		return
	}
	if _, err := b.trainingTypes.Create(ctx, b.presets[index]); err != nil {
		b.sendError(ctx, chatID, err, "Тренировката не бе създадена. Моля, опитайте по-късно.")
		return
	}
	b.sendMessage(chatID, "✅ Типът тренировка беше успешно създаден")
	b.showTrainingTypes(ctx, chatID)
}
