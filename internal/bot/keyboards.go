package bot

import (
	"fmt"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func guestMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnLogin),
			tgbotapi.NewKeyboardButton(btnRegister),
		),
	)
}

func clientMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBook),
			tgbotapi.NewKeyboardButton(btnMyBookings),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTrainers),
			tgbotapi.NewKeyboardButton(btnProfile),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnLogout),
		),
	)
}

func trainerMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSchedule),
			tgbotapi.NewKeyboardButton(btnAddSlot),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyTypes),
			tgbotapi.NewKeyboardButton(btnProfile),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnExport),
			tgbotapi.NewKeyboardButton(btnLogout),
		),
	)
}

func (b *Bot) menuKeyboardFor(session *models.Session) tgbotapi.ReplyKeyboardMarkup {
	switch {
	case session.IsTrainer():
		return trainerMenuKeyboard()
	case session.IsClient():
		return clientMenuKeyboard()
	default:
		return guestMenuKeyboard()
	}
}

func confirmKeyboard(yesData, noData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да", yesData),
			tgbotapi.NewInlineKeyboardButtonData("❌ Не", noData),
		),
	)
}

// paginate slices items for one page and reports the page bounds actually
// used. Page numbers are zero-based and clamped.
func paginate(total, page, pageSize int) (start, end, clampedPage, totalPages int) {
	if pageSize <= 0 {
		pageSize = models.DefaultPaginationSize
	}
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	start = page * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end, page, totalPages
}

// paginationRow builds the prev/next navigation row, omitting arrows at
// the edges. Returns nil when everything fits on one page.
func paginationRow(prefix string, page, totalPages int) []tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("%s%d", prefix, page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), "noop"))
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("%s%d", prefix, page+1)))
	}
	return row
}

// monthCalendarKeyboard renders a month as an inline calendar. Days with
// slots get the color of their "best" slot (free beats filled beats
// cancelled); a day cell always carries a day_ callback so empty days can
// still answer with a hint.
func monthCalendarKeyboard(year int, month time.Month, slots []models.TimeSlot) tgbotapi.InlineKeyboardMarkup {
	dayColors := map[int]schedule.Color{}
	for _, slot := range slots {
		start, err := slot.Start()
		if err != nil || start.Year() != year || start.Month() != month {
			continue
		}
		c := schedule.SlotColor(slot)
		if better(c, dayColors[start.Day()]) {
			dayColors[start.Day()] = c
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("month_%s", prevMonth(year, month))),
		tgbotapi.NewInlineKeyboardButtonData(monthTitle(year, month), "noop"),
		tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("month_%s", nextMonth(year, month))),
	))

	weekdays := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Нд"}
	var header []tgbotapi.InlineKeyboardButton
	for _, wd := range weekdays {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(wd, "noop"))
	}
	rows = append(rows, header)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	// Monday-first offset.
	offset := (int(first.Weekday()) + 6) % 7

	row := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", "noop"))
	}
	for day := 1; day <= daysInMonth; day++ {
		label := fmt.Sprintf("%d", day)
		if c, ok := dayColors[day]; ok {
			label = colorDot(c) + label
		}
		data := fmt.Sprintf("day_%04d-%02d-%02d", year, month, day)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, data))
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", "noop"))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func better(a, b schedule.Color) bool {
	return colorRank(a) > colorRank(b)
}

func colorRank(c schedule.Color) int {
	switch c {
	case schedule.ColorFree:
		return 3
	case schedule.ColorFilled:
		return 2
	case schedule.ColorCancelled:
		return 1
	default:
		return 0
	}
}

func colorDot(c schedule.Color) string {
	switch c {
	case schedule.ColorFree:
		return "🟢"
	case schedule.ColorFilled:
		return "🔵"
	case schedule.ColorCancelled:
		return "🔴"
	default:
		return ""
	}
}

var bulgarianMonths = [...]string{
	"Януари", "Февруари", "Март", "Април", "Май", "Юни",
	"Юли", "Август", "Септември", "Октомври", "Ноември", "Декември",
}

func monthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", bulgarianMonths[month-1], year)
}

func prevMonth(year int, month time.Month) string {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	return t.Format("2006-01")
}

func nextMonth(year int, month time.Month) string {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return t.Format("2006-01")
}
