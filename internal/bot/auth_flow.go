package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/events"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
)

func (b *Bot) startLogin(ctx context.Context, chatID int64) {
	b.setChatState(ctx, chatID, models.StateLoginEmail, nil)
	b.sendMessage(chatID, "Въведете вашия имейл:")
}

func (b *Bot) handleLoginStep(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	switch state.CurrentStep {
	case models.StateLoginEmail:
		if !strings.Contains(text, "@") {
			b.sendMessage(chatID, "Невалиден имейл. Опитайте отново:")
			return
		}
		b.setChatState(ctx, chatID, models.StateLoginPassword, map[string]interface{}{"email": text})
		b.sendMessage(chatID, "Въведете вашата парола:")

	case models.StateLoginPassword:
		email := state.GetString("email")
		session, err := b.sessions.Login(ctx, chatID, email, text)
		if err != nil {
			b.clearChatState(ctx, chatID)
			b.sendError(ctx, chatID, err, "Неуспешен вход. Опитайте отново.")
			return
		}
		b.clearChatState(ctx, chatID)

		if err := b.eventBus.PublishJSON(events.EventUserLoggedIn, events.UserEventPayload{
			UserID: session.UserID,
			ChatID: chatID,
			Role:   session.Role,
		}); err != nil {
			b.logger.Warn().Err(err).Msg("Failed to publish login event")
		}

		b.sendMessage(chatID, "✅ Успешен вход!")
		b.showHomeScreen(ctx, chatID, session)
	}
}

func (b *Bot) startRegister(ctx context.Context, chatID int64) {
	b.setChatState(ctx, chatID, models.StateRegisterRole, nil)
	b.sendMessage(chatID, "Регистрация 📝\n\nКакъв профил искате да създадете?\n1 - Клиент\n2 - Треньор")
}

// Role-specific fields collected after the common ones. Optional fields
// are skipped with "-".
var clientExtraFields = []struct{ key, prompt string }{
	{"date_of_birth", "Дата на раждане (ГГГГ-ММ-ДД, или - за пропускане):"},
	{"health_info", "Здравна информация (или - за пропускане):"},
	{"fitness_goals", "Фитнес цели (или - за пропускане):"},
}

var trainerExtraFields = []struct{ key, prompt string }{
	{"bio", "Кратко представяне (или - за пропускане):"},
	{"specializations", "Специализации, разделени със запетая (или - за пропускане):"},
	{"personal_price", "Цена за персонална тренировка (лв.):"},
	{"group_price", "Цена за групова тренировка (лв.):"},
}

func (b *Bot) handleRegisterStep(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	data := state.TempData
	if data == nil {
		data = map[string]interface{}{}
	}

	switch state.CurrentStep {
	case models.StateRegisterRole:
		switch text {
		case "1", "Клиент", "клиент":
			data["role"] = models.RoleClient
		case "2", "Треньор", "треньор":
			data["role"] = models.RoleTrainer
		default:
			b.sendMessage(chatID, "Изберете 1 за клиент или 2 за треньор:")
			return
		}
		b.setChatState(ctx, chatID, models.StateRegisterName, data)
		b.sendMessage(chatID, "Въведете вашето име:")

	case models.StateRegisterName:
		if text == "" {
			b.sendMessage(chatID, "Името не може да бъде празно. Опитайте отново:")
			return
		}
		data["full_name"] = text
		b.setChatState(ctx, chatID, models.StateRegisterEmail, data)
		b.sendMessage(chatID, "Въведете вашия имейл:")

	case models.StateRegisterEmail:
		if !strings.Contains(text, "@") {
			b.sendMessage(chatID, "Невалиден имейл. Опитайте отново:")
			return
		}
		data["email"] = text
		b.setChatState(ctx, chatID, models.StateRegisterPassword, data)
		b.sendMessage(chatID, "Въведете парола (минимум 6 символа):")

	case models.StateRegisterPassword:
		if len(text) < 6 {
			b.sendMessage(chatID, "Паролата трябва да е поне 6 символа. Опитайте отново:")
			return
		}
		data["password"] = text
		b.setChatState(ctx, chatID, models.StateRegisterPhone, data)
		b.sendMessage(chatID, "Въведете телефонен номер (или - за пропускане):")

	case models.StateRegisterPhone:
		if text != "-" {
			data["phone"] = text
		}
		data["extra_index"] = 0
		b.setChatState(ctx, chatID, models.StateRegisterExtra, data)
		b.sendMessage(chatID, b.extraPrompt(data))

	case models.StateRegisterExtra:
		b.handleRegisterExtra(ctx, chatID, text, state)
	}
}

func (b *Bot) extraPrompt(data map[string]interface{}) string {
	fields := clientExtraFields
	if data["role"] == models.RoleTrainer {
		fields = trainerExtraFields
	}
	idx := 0
	if v, ok := data["extra_index"].(int); ok {
		idx = v
	} else if v, ok := data["extra_index"].(float64); ok {
		idx = int(v)
	}
	if idx >= len(fields) {
		return ""
	}
	return fields[idx].prompt
}

func (b *Bot) handleRegisterExtra(ctx context.Context, chatID int64, text string, state *models.ChatState) {
	data := state.TempData
	role := state.GetString("role")
	fields := clientExtraFields
	if role == models.RoleTrainer {
		fields = trainerExtraFields
	}

	idx := state.GetInt("extra_index")
	if idx < len(fields) {
		field := fields[idx]
		switch field.key {
		case "personal_price", "group_price":
			price, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
			if err != nil || price < 0 {
				b.sendMessage(chatID, "Невалидна цена. Въведете число:")
				return
			}
			data[field.key] = price
		default:
			if text != "-" {
				data[field.key] = text
			}
		}
		idx++
	}

	if idx < len(fields) {
		data["extra_index"] = idx
		b.setChatState(ctx, chatID, models.StateRegisterExtra, data)
		b.sendMessage(chatID, fields[idx].prompt)
		return
	}

	b.finishRegistration(ctx, chatID, state)
}

func (b *Bot) finishRegistration(ctx context.Context, chatID int64, state *models.ChatState) {
	req := models.RegisterRequest{
		Email:    state.GetString("email"),
		Password: state.GetString("password"),
		FullName: state.GetString("full_name"),
		Phone:    state.GetString("phone"),
		Role:     state.GetString("role"),
	}

	if req.Role == models.RoleTrainer {
		req.Bio = state.GetString("bio")
		if specs := state.GetString("specializations"); specs != "" {
			req.Specializations = splitTrimmed(specs)
		}
		personal := state.GetFloat64("personal_price")
		group := state.GetFloat64("group_price")
		req.PersonalPrice = &personal
		req.GroupPrice = &group
	} else {
		req.DateOfBirth = state.GetString("date_of_birth")
		req.HealthInformation = state.GetString("health_info")
		req.FitnessGoals = state.GetString("fitness_goals")
	}

	session, err := b.sessions.Register(ctx, chatID, req)
	if err != nil {
		b.clearChatState(ctx, chatID)
		b.sendError(ctx, chatID, err, "Регистрацията не бе успешна. Опитайте отново.")
		return
	}
	b.clearChatState(ctx, chatID)

	if err := b.eventBus.PublishJSON(events.EventUserRegistered, events.UserEventPayload{
		UserID: session.UserID,
		ChatID: chatID,
		Role:   session.Role,
	}); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to publish registration event")
	}

	b.sendMessage(chatID, "✅ Регистрацията е успешна! Добре дошли, "+session.FullName+"!")
	b.showHomeScreen(ctx, chatID, session)
}

func (b *Bot) handleLogout(ctx context.Context, chatID int64) {
	if err := b.sessions.Logout(ctx, chatID); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Logout failed")
	}
	b.sendMessage(chatID, "Излязохте от профила си. 👋")
	b.showLoginPrompt(ctx, chatID)
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
