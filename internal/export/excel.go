package export

import (
	"fmt"
	"io"
	"time"

	"petmate/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "예약"

var headers = []string{"시간", "고객", "위치", "서비스", "반려동물", "금액", "상태", "요청사항"}

var statusFill = map[models.Status]string{
	models.StatusPending:   "#FFF2CC",
	models.StatusApproved:  "#DDEBF7",
	models.StatusCompleted: "#E2EFDA",
	models.StatusCancelled: "#F2F2F2",
}

// Exporter renders reservation sheets. Workbooks are streamed to the caller
// and never stored.
type Exporter struct {
	logger *zerolog.Logger
}

func NewExporter(logger *zerolog.Logger) *Exporter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Exporter{logger: logger}
}

// FileName is the download name of a day export.
func FileName(date time.Time) string {
	return fmt.Sprintf("reservations_%s.xlsx", date.Format(models.DateLayout))
}

// DayReservations writes a workbook with one row per booking of the given
// day to w.
func (e *Exporter) DayReservations(w io.Writer, views []models.BookingView, date time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	day := date.Format(models.DateLayout)
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("예약 현황 %s (%d건)", day, len(views)))
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	e.writeHeaders(f)
	e.writeRows(f, views)

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", lastCol, 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	e.logger.Info().Str("date", day).Int("rows", len(views)).Msg("reservation export created")
	return nil
}

func (e *Exporter) writeHeaders(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func (e *Exporter) writeRows(f *excelize.File, views []models.BookingView) {
	styles := make(map[models.Status]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err == nil {
			styles[status] = id
		}
	}

	for i, v := range views {
		row := i + 3
		values := []any{
			fmt.Sprintf("%s - %s", v.StartTime, v.EndTime),
			v.UserName,
			v.UserLocation,
			v.ServiceName,
			v.PetInfo,
			v.Price,
			v.Status.Label(),
			v.SpecialRequest,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			e.logger.Warn().Err(err).Int64("reservation_id", v.ID).Msg("write export row")
			continue
		}
		if id, ok := styles[v.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(7, row)
			_ = f.SetCellStyle(sheetName, cell, cell, id)
		}
	}
}
