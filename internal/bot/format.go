package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"
)

// User-facing labels. The product speaks Bulgarian.
const (
	btnLogin    = "🔑 Вход"
	btnRegister = "📝 Регистрация"

	btnBook       = "📅 Запази час"
	btnMyBookings = "📋 Моите резервации"
	btnTrainers   = "🏋️ Треньори"
	btnProfile    = "👤 Профил"
	btnLogout     = "🚪 Изход"

	btnSchedule  = "📆 График"
	btnAddSlot   = "➕ Добавяне на нов час"
	btnMyTypes   = "🏷 Тренировки"
	btnExport    = "📊 Експорт на графика"
	btnCancelOp  = "❌ Отказ"
	btnBackLabel = "⬅️ Назад"
)

func statusText(status string) string {
	switch status {
	case models.BookingConfirmed:
		return "Потвърдена"
	case models.BookingCompleted:
		return "Приключила"
	case models.BookingCancelled:
		return "Отменена"
	default:
		return status
	}
}

func statusEmoji(status string) string {
	switch status {
	case models.BookingConfirmed:
		return "🟢"
	case models.BookingCompleted:
		return "🔵"
	case models.BookingCancelled:
		return "🔴"
	default:
		return "⚪"
	}
}

func categoryText(category string) string {
	switch category {
	case models.CategoryPersonal:
		return "Персонална"
	case models.CategoryGroup:
		return "Групова"
	default:
		return category
	}
}

func slotStatusText(slot models.TimeSlot) string {
	switch schedule.SlotColor(slot) {
	case schedule.ColorFree:
		return "Свободен"
	case schedule.ColorFilled:
		return "Резервиран"
	case schedule.ColorCancelled:
		return "Отменен"
	default:
		return slot.Status
	}
}

func slotEmoji(slot models.TimeSlot) string {
	switch schedule.SlotColor(slot) {
	case schedule.ColorFree:
		return "🟢"
	case schedule.ColorFilled:
		return "🔵"
	case schedule.ColorCancelled:
		return "🔴"
	default:
		return "⚪"
	}
}

// formatDate renders a wall-clock timestamp as dd.MM.yyyy. Unparseable
// input is shown raw rather than hidden.
func formatDate(value string) string {
	t, err := models.ParseSlotTime(value)
	if err != nil {
		return value
	}
	return t.Format("02.01.2006")
}

func formatTime(value string) string {
	t, err := models.ParseSlotTime(value)
	if err != nil {
		return value
	}
	return t.Format("15:04")
}

func formatInterval(start, end string) string {
	return fmt.Sprintf("%s, %s - %s", formatDate(start), formatTime(start), formatTime(end))
}

func formatPrice(amount float64) string {
	return fmt.Sprintf("%.2f лв.", amount)
}

// bookingPrice resolves the displayed cost from the trainer's price list
// by training category. Unknown categories price at zero.
func bookingPrice(trainer *models.TrainerProfile, category string) float64 {
	if trainer == nil {
		return 0
	}
	switch category {
	case models.CategoryPersonal:
		return trainer.PersonalPrice
	case models.CategoryGroup:
		return trainer.GroupPrice
	default:
		return 0
	}
}

func formatBookingLine(b models.Booking, now time.Time) string {
	display := schedule.DeriveDisplayStatus(b.Status, b.EndTime, now)
	return fmt.Sprintf("%s %s | %s | %s", statusEmoji(display), formatInterval(b.StartTime, b.EndTime), b.TrainingTypeName, statusText(display))
}

func formatBookingDetail(b models.Booking, now time.Time) string {
	display := schedule.DeriveDisplayStatus(b.Status, b.EndTime, now)
	var sb strings.Builder
	sb.WriteString("*Резервация*\n\n")
	sb.WriteString(fmt.Sprintf("🏋️ Тренировка: %s\n", b.TrainingTypeName))
	sb.WriteString(fmt.Sprintf("👤 Треньор: %s\n", b.TrainerName))
	sb.WriteString(fmt.Sprintf("📅 Дата: %s\n", formatDate(b.StartTime)))
	sb.WriteString(fmt.Sprintf("🕐 Час: %s - %s\n", formatTime(b.StartTime), formatTime(b.EndTime)))
	sb.WriteString(fmt.Sprintf("%s Статус: %s\n", statusEmoji(display), statusText(display)))
	if b.Notes != "" {
		sb.WriteString(fmt.Sprintf("📝 Бележки: %s\n", b.Notes))
	}
	return sb.String()
}

func formatSlotDetail(slot models.TimeSlot) string {
	var sb strings.Builder
	sb.WriteString("*Времеви слот*\n\n")
	sb.WriteString(fmt.Sprintf("🏋️ Тренировка: %s\n", slot.TrainingTypeName))
	sb.WriteString(fmt.Sprintf("📅 Дата: %s\n", formatDate(slot.StartTime)))
	sb.WriteString(fmt.Sprintf("🕐 Час: %s - %s\n", formatTime(slot.StartTime), formatTime(slot.EndTime)))
	sb.WriteString(fmt.Sprintf("%s Статус: %s\n", slotEmoji(slot), slotStatusText(slot)))
	sb.WriteString(fmt.Sprintf("👥 Заети места: %d/%d\n", slot.BookedCount, slot.Capacity))
	return sb.String()
}

func formatTrainerCard(t models.TrainerProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n\n", t.FullName))
	if t.Bio != "" {
		sb.WriteString(t.Bio + "\n\n")
	}
	if len(t.Specializations) > 0 {
		sb.WriteString(fmt.Sprintf("🎯 Специализации: %s\n", strings.Join(t.Specializations, ", ")))
	}
	sb.WriteString(fmt.Sprintf("💪 Персонална тренировка: %s\n", formatPrice(t.PersonalPrice)))
	sb.WriteString(fmt.Sprintf("👥 Групова тренировка: %s\n", formatPrice(t.GroupPrice)))
	if t.Phone != "" {
		sb.WriteString(fmt.Sprintf("📞 Телефон: %s\n", t.Phone))
	}
	if t.Email != "" {
		sb.WriteString(fmt.Sprintf("📧 Имейл: %s\n", t.Email))
	}
	return sb.String()
}

func formatTrainingType(tt models.TrainingType) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n\n", tt.Name))
	if tt.Description != "" {
		sb.WriteString(tt.Description + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("⏱ Продължителност: %d мин.\n", tt.Duration))
	sb.WriteString(fmt.Sprintf("🏷 Категория: %s\n", categoryText(tt.Category)))
	if tt.Category == models.CategoryGroup && tt.MaxClients != nil {
		sb.WriteString(fmt.Sprintf("👥 Макс. клиенти: %d\n", *tt.MaxClients))
	}
	return sb.String()
}

func formatClientProfile(p models.ClientProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n\n", p.FullName))
	sb.WriteString(fmt.Sprintf("📧 Имейл: %s\n", p.Email))
	if p.Phone != "" {
		sb.WriteString(fmt.Sprintf("📞 Телефон: %s\n", p.Phone))
	}
	if p.DateOfBirth != "" {
		sb.WriteString(fmt.Sprintf("🎂 Дата на раждане: %s\n", p.DateOfBirth))
	}
	if p.HealthInformation != "" {
		sb.WriteString(fmt.Sprintf("🩺 Здравна информация: %s\n", p.HealthInformation))
	}
	if p.FitnessGoals != "" {
		sb.WriteString(fmt.Sprintf("🎯 Фитнес цели: %s\n", p.FitnessGoals))
	}
	return sb.String()
}
