package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"

	"github.com/xuri/excelize/v2"
)

// exportSchedule builds an Excel workbook with the trainer's slots for
// the current month and sends it as a document.
func (b *Bot) exportSchedule(ctx context.Context, chatID int64, session *models.Session) {
	now := time.Now()
	from, to := monthBounds(now.Year(), now.Month())

	slots, err := b.slots.ListByTrainer(ctx, session.ProfileID, from, to)
	if err != nil {
		b.sendError(ctx, chatID, err, "Грешка при зареждане на графика. Моля, опитайте по-късно.")
		return
	}
	if len(slots) == 0 {
		b.sendMessage(chatID, "Няма часове за експорт този месец.")
		return
	}

	filePath, err := b.writeScheduleWorkbook(session.FullName, now.Year(), now.Month(), slots)
	if err != nil {
		b.logger.Error().Err(err).Msg("Schedule export failed")
		b.sendMessage(chatID, "❌ Експортът не бе успешен. Моля, опитайте по-късно.")
		return
	}

	if _, err := b.tgService.SendDocument(chatID, filePath); err != nil {
		b.logger.Error().Err(err).Str("file_path", filePath).Msg("Failed to send export")
		b.sendMessage(chatID, "❌ Файлът не бе изпратен. Моля, опитайте по-късно.")
		return
	}

	if b.sheets != nil {
		if err := b.sheets.ReplaceSchedule(ctx, session.FullName, now.Year(), now.Month(), slots); err != nil {
			b.logger.Error().Err(err).Msg("Failed to mirror schedule to sheet")
		} else {
			b.sendMessage(chatID, "Графикът е обновен и в споделената таблица. 📊")
		}
	}
}

func (b *Bot) writeScheduleWorkbook(trainerName string, year int, month time.Month, slots []models.TimeSlot) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "График"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s: %s", trainerName, monthTitle(year, month)))

	headers := []string{"Дата", "Начало", "Край", "Тренировка", "Статус", "Заети места"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A2", "F2", headerStyle)

	for i, slot := range sorted {
		row := i + 3
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), formatDate(slot.StartTime))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), formatTime(slot.StartTime))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), formatTime(slot.EndTime))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), slot.TrainingTypeName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), slotStatusText(slot))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%d/%d", slot.BookedCount, slot.Capacity))

		if styleID, err := slotRowStyle(f, slot); err == nil {
			_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), styleID)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "C", 10)
	_ = f.SetColWidth(sheetName, "D", "D", 25)
	_ = f.SetColWidth(sheetName, "E", "E", 14)
	_ = f.SetColWidth(sheetName, "F", "F", 14)

	_ = f.MergeCell(sheetName, "A1", "F1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%04d-%02d.xlsx", year, month)
	filePath := filepath.Join(b.config.Exports.Path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Msg("Schedule export created")
	return filePath, nil
}

func slotRowStyle(f *excelize.File, slot models.TimeSlot) (int, error) {
	var color string
	switch schedule.SlotColor(slot) {
	case schedule.ColorFree:
		color = "#C6EFCE"
	case schedule.ColorFilled:
		color = "#DDEBF7"
	case schedule.ColorCancelled:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
}
