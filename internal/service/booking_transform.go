package service

import (
	"fmt"
	"strings"
	"time"

	"petmate/internal/models"
)

// BookingTransformer turns raw backend bookings into display rows. Times are
// rendered in the configured zone.
type BookingTransformer struct {
	loc *time.Location
}

func NewBookingTransformer(loc *time.Location) *BookingTransformer {
	if loc == nil {
		loc = time.Local
	}
	return &BookingTransformer{loc: loc}
}

// Transform never fails: every missing field gets its placeholder.
// fallbackDate is used as the row date when the booking has no start time.
func (t *BookingTransformer) Transform(raw models.BookingRecord, fallbackDate string) models.BookingView {
	view := models.BookingView{
		ID:             int64(raw.ID),
		UserName:       orDefault(raw.OwnerUserName, models.NoUserName),
		UserLocation:   orDefault(raw.Location, models.NoLocation),
		UserAvatar:     models.DefaultAvatar,
		ServiceName:    orDefault(raw.ProductName, models.NoServiceName),
		PetInfo:        petInfo(raw),
		StartTime:      models.NoTime,
		EndTime:        models.NoTime,
		Price:          float64(raw.TotalPrice),
		Status:         models.StatusFromCode(string(raw.Status)),
		Date:           fallbackDate,
		SpecialRequest: raw.SpecialRequest,
		PaymentStatus:  raw.PaymentStatus,
		CreatedAt:      timestampText(raw.CreatedAt),
		UpdatedAt:      timestampText(raw.UpdatedAt),
	}

	if start, ok := raw.StartDt.In(t.loc); ok {
		view.StartTime = start.Format(models.TimeLayout)
		view.Date = start.Format(models.DateLayout)
	}
	if end, ok := raw.EndDt.In(t.loc); ok {
		view.EndTime = end.Format(models.TimeLayout)
	}
	return view
}

// TransformAll maps a page of bookings.
func (t *BookingTransformer) TransformAll(raw []models.BookingRecord, fallbackDate string) []models.BookingView {
	views := make([]models.BookingView, 0, len(raw))
	for _, r := range raw {
		views = append(views, t.Transform(r, fallbackDate))
	}
	return views
}

func petInfo(raw models.BookingRecord) string {
	if info := strings.TrimSpace(raw.PetInfo); info != "" {
		return info
	}
	if raw.PetCount > 0 {
		return fmt.Sprintf("반려동물 %d마리", raw.PetCount)
	}
	return models.NoPetInfo
}

// timestampText keeps the backend form of a readable timestamp and drops
// values that do not parse.
func timestampText(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Raw
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
