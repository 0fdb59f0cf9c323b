package export

import (
	"bytes"
	"testing"
	"time"

	"petmate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func render(t *testing.T, exporter *Exporter, views []models.BookingView, date time.Time) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, exporter.DayReservations(&buf, views, date))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestDayReservations(t *testing.T) {
	exporter := NewExporter(nil)

	views := []models.BookingView{
		{ID: 1, UserName: "김철수", UserLocation: "강남구", ServiceName: "산책", PetInfo: "말티즈", StartTime: "09:00", EndTime: "10:00", Price: 20000, Status: models.StatusApproved},
		{ID: 2, UserName: "이영희", UserLocation: "서초구", ServiceName: "돌봄", PetInfo: "반려동물 2마리", StartTime: "13:00", EndTime: "15:00", Price: 45000, Status: models.StatusCancelled, SpecialRequest: "간식 금지"},
	}

	rows := render(t, exporter, views, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, rows, 4)
	assert.Equal(t, "예약 현황 2024-05-01 (2건)", rows[0][0])
	assert.Equal(t, headers, rows[1])
	assert.Equal(t, []string{"09:00 - 10:00", "김철수", "강남구", "산책", "말티즈", "20000", "승인"}, rows[2])
	assert.Equal(t, "취소", rows[3][6])
	assert.Equal(t, "간식 금지", rows[3][7])
}

func TestDayReservationsEmpty(t *testing.T) {
	rows := render(t, NewExporter(nil), nil, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	assert.Len(t, rows, 2)
}

func TestDayReservationsSameDayStayIsolated(t *testing.T) {
	exporter := NewExporter(nil)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var a, b bytes.Buffer
	require.NoError(t, exporter.DayReservations(&a, []models.BookingView{{ID: 1, UserName: "A-customer"}}, day))
	require.NoError(t, exporter.DayReservations(&b, []models.BookingView{{ID: 2, UserName: "B-customer"}}, day))

	for buf, want := range map[*bytes.Buffer]string{&a: "A-customer", &b: "B-customer"} {
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		name, err := f.GetCellValue(sheetName, "B3")
		require.NoError(t, err)
		assert.Equal(t, want, name)
		_ = f.Close()
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "reservations_2024-05-01.xlsx", FileName(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)))
}
