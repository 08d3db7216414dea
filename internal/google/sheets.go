// Package google mirrors trainer schedules into a shared Google
// spreadsheet so gym staff can see the month at a glance without opening
// the bot.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/models"
	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/schedule"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const scheduleSheetName = "График"

type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewSheetsService(credentialsFile, spreadsheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	return &SheetsService{service: srv, spreadsheetID: spreadsheetID}, nil
}

// TestConnection reads one cell to verify the service account can reach
// the spreadsheet.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, scheduleSheetName+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// ServiceAccountEmail extracts the account email from the credentials
// file, for sharing instructions in logs.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// ReplaceSchedule overwrites the schedule sheet with one trainer's slots
// for a month. The sheet is cleared first so cancelled rows do not linger.
func (s *SheetsService) ReplaceSchedule(ctx context.Context, trainerName string, year int, month time.Month, slots []models.TimeSlot) error {
	sheetID, err := s.sheetIDByName(ctx, scheduleSheetName)
	if err != nil {
		return fmt.Errorf("unable to get sheet ID: %v", err)
	}

	clearRange := scheduleSheetName + "!A:Z"
	if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to clear sheet: %v", err)
	}

	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })

	var data [][]interface{}
	data = append(data, []interface{}{fmt.Sprintf("%s: %02d.%d", trainerName, month, year)})
	data = append(data, []interface{}{})
	data = append(data, []interface{}{"Дата", "Начало", "Край", "Тренировка", "Статус", "Заети места"})

	var formatRequests []*sheets.Request
	formatRequests = append(formatRequests,
		&sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						HorizontalAlignment: "CENTER",
						TextFormat:          &sheets.TextFormat{Bold: true, FontSize: 14},
					},
				},
				Fields: "userEnteredFormat(textFormat,horizontalAlignment)",
			},
		},
		&sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    2,
					EndRowIndex:      3,
					StartColumnIndex: 0,
					EndColumnIndex:   6,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						HorizontalAlignment: "CENTER",
						TextFormat:          &sheets.TextFormat{Bold: true},
						BackgroundColor:     &sheets.Color{Red: 0.86, Green: 0.92, Blue: 0.97},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
			},
		},
	)

	for i, slot := range sorted {
		start, _ := slot.Start()
		end, _ := slot.End()
		data = append(data, []interface{}{
			start.Format("02.01.2006"),
			start.Format("15:04"),
			end.Format("15:04"),
			slot.TrainingTypeName,
			statusLabel(slot),
			fmt.Sprintf("%d/%d", slot.BookedCount, slot.Capacity),
		})

		formatRequests = append(formatRequests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(i + 3),
					EndRowIndex:      int64(i + 4),
					StartColumnIndex: 0,
					EndColumnIndex:   6,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						VerticalAlignment: "TOP",
						WrapStrategy:      "WRAP",
						BackgroundColor:   slotBackground(slot),
					},
				},
				Fields: "userEnteredFormat(backgroundColor,verticalAlignment,wrapStrategy)",
			},
		})
	}

	if len(sorted) == 0 {
		data = append(data, []interface{}{"Няма часове за периода"})
	}

	valueRange := &sheets.ValueRange{Values: data}
	if _, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, scheduleSheetName+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to update schedule sheet: %v", err)
	}

	if len(formatRequests) > 0 {
		batch := &sheets.BatchUpdateSpreadsheetRequest{Requests: formatRequests}
		if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, batch).Context(ctx).Do(); err != nil {
			return fmt.Errorf("unable to apply formatting: %v", err)
		}
	}

	return s.adjustColumnWidths(ctx, sheetID)
}

func statusLabel(slot models.TimeSlot) string {
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

func slotBackground(slot models.TimeSlot) *sheets.Color {
	switch schedule.SlotColor(slot) {
	case schedule.ColorFree:
		return &sheets.Color{Red: 0.78, Green: 0.94, Blue: 0.81}
	case schedule.ColorFilled:
		return &sheets.Color{Red: 0.86, Green: 0.92, Blue: 0.97}
	case schedule.ColorCancelled:
		return &sheets.Color{Red: 1.0, Green: 0.78, Blue: 0.81}
	default:
		return &sheets.Color{Red: 1.0, Green: 1.0, Blue: 1.0}
	}
}

func (s *SheetsService) adjustColumnWidths(ctx context.Context, sheetID int64) error {
	requests := []*sheets.Request{
		{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   1,
				},
				Properties: &sheets.DimensionProperties{PixelSize: 120},
				Fields:     "pixelSize",
			},
		},
		{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 3,
					EndIndex:   4,
				},
				Properties: &sheets.DimensionProperties{PixelSize: 220},
				Fields:     "pixelSize",
			},
		},
	}

	batch := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, batch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to adjust column widths: %v", err)
	}
	return nil
}

func (s *SheetsService) sheetIDByName(ctx context.Context, sheetName string) (int64, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to get spreadsheet: %v", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet '%s' not found", sheetName)
}
