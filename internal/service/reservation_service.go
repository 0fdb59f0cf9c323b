package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/models"

	"github.com/rs/zerolog"
)

type ReservationService struct {
	client      backend.Doer
	transformer *BookingTransformer
	eventBus    domain.EventPublisher
	loc         *time.Location
	now         func() time.Time
	logger      *zerolog.Logger
}

func NewReservationService(client backend.Doer, eventBus domain.EventPublisher, loc *time.Location, logger *zerolog.Logger) *ReservationService {
	if loc == nil {
		loc = time.Local
	}
	return &ReservationService{
		client:      client,
		transformer: NewBookingTransformer(loc),
		eventBus:    eventBus,
		loc:         loc,
		now:         time.Now,
		logger:      nopLogger(logger),
	}
}

// GetReservations lists the company's bookings starting on date.
func (s *ReservationService) GetReservations(ctx context.Context, date time.Time, company *models.CompanyContext) ([]models.BookingView, error) {
	if !company.HasCompany() {
		return nil, apperr.MissingContext(msgNoCompany)
	}

	day := date.In(s.loc).Format(models.DateLayout)
	records, err := s.fetchBookings(ctx, company.CompanyID, day, day, models.DayPageSize)
	if err != nil {
		if backend.IsNotFound(err) {
			return []models.BookingView{}, nil
		}
		s.logger.Error().Err(err).Int64("company_id", company.CompanyID).Str("date", day).Msg("get reservations")
		return nil, classifyAuth(err, msgForbidden)
	}
	return s.transformer.TransformAll(records, day), nil
}

// GetTodayStats never fails; any error yields all-zero counts.
func (s *ReservationService) GetTodayStats(ctx context.Context, company *models.CompanyContext) models.TodayStats {
	views, err := s.GetReservations(ctx, s.now(), company)
	if err != nil {
		readPolicy(s.logger, "today_stats", err)
		return models.TodayStats{}
	}

	stats := models.TodayStats{Total: len(views)}
	for _, v := range views {
		// Approved bookings share the completed bucket so that the three
		// buckets always add up to the total.
		switch v.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved, models.StatusCompleted:
			stats.Completed++
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// GetMonthlyReservations counts bookings per start day over the month
// containing anchor. Failures yield an empty map.
func (s *ReservationService) GetMonthlyReservations(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	counts := models.MonthlyCounts{}
	if !company.HasCompany() {
		readPolicy(s.logger, "monthly_reservations", apperr.MissingContext(msgNoCompany))
		return counts
	}

	first, last := monthWindow(anchor.In(s.loc))
	records, err := s.fetchBookings(ctx, company.CompanyID, first.Format(models.DateLayout), last.Format(models.DateLayout), models.MonthPageSize)
	if err != nil {
		readPolicy(s.logger, "monthly_reservations", err)
		return counts
	}

	for _, r := range records {
		start, ok := r.StartDt.In(s.loc)
		if !ok {
			continue
		}
		counts[start.Format(models.DateLayout)]++
	}
	return counts
}

// UpdateReservationStatus sends the backend code for status. company may be
// nil; it only scopes the change event.
func (s *ReservationService) UpdateReservationStatus(ctx context.Context, reservationID string, status models.Status, company *models.CompanyContext) (*models.StatusResult, error) {
	id := strings.TrimSpace(reservationID)
	if id == "" {
		return nil, apperr.MissingContext(msgNoReservation)
	}

	code := status.Code()
	var result models.StatusResult
	err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Endpoint: "booking_status",
		Path:     fmt.Sprintf("/api/booking/%s/status", url.PathEscape(id)),
		Query:    url.Values{"status": {code}},
	}, &result)
	if err != nil {
		return nil, writePolicy(s.logger, "update_reservation_status", err, msgStatusFailed)
	}
	if !result.Success {
		return nil, writePolicy(s.logger, "update_reservation_status", apperr.OperationFailed(orDefault(result.Message, msgStatusFailed), nil), msgStatusFailed)
	}

	s.publishEvent(events.EventReservationStatusChanged, events.ReservationEventPayload{
		ReservationID: id,
		CompanyID:     companyID(company),
		Status:        string(models.StatusFromCode(code)),
		StatusCode:    code,
	})
	return &result, nil
}

// DeleteReservation cancels a booking on the backend.
func (s *ReservationService) DeleteReservation(ctx context.Context, reservationID string, company *models.CompanyContext) (*models.StatusResult, error) {
	id := strings.TrimSpace(reservationID)
	if id == "" {
		return nil, apperr.MissingContext(msgNoReservation)
	}

	var result models.StatusResult
	err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPut,
		Endpoint: "booking_cancel",
		Path:     fmt.Sprintf("/api/booking/%s/cancel", url.PathEscape(id)),
	}, &result)
	if err != nil {
		return nil, writePolicy(s.logger, "delete_reservation", err, msgCancelFailed)
	}
	if !result.Success {
		return nil, writePolicy(s.logger, "delete_reservation", apperr.OperationFailed(orDefault(result.Message, msgCancelFailed), nil), msgCancelFailed)
	}

	s.publishEvent(events.EventReservationCancelled, events.ReservationEventPayload{
		ReservationID: id,
		CompanyID:     companyID(company),
		Status:        string(models.StatusCancelled),
		StatusCode:    models.StatusCancelled.Code(),
	})
	return &result, nil
}

func (s *ReservationService) fetchBookings(ctx context.Context, companyID int64, startDate, endDate string, limit int) ([]models.BookingRecord, error) {
	query := url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
		"limit":     {strconv.Itoa(limit)},
		"offset":    {"0"},
	}
	return backend.GetList[models.BookingRecord](ctx, s.client, "booking_company",
		fmt.Sprintf("/api/booking/company/%d", companyID), query)
}

func (s *ReservationService) publishEvent(eventType string, payload events.ReservationEventPayload) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("reservation_id", payload.ReservationID).Msg("publish event error")
	}
}

// companyID is 0 when no company is known, which makes listeners treat the
// change as affecting every company.
func companyID(company *models.CompanyContext) int64 {
	if !company.HasCompany() {
		return 0
	}
	return company.CompanyID
}

// monthWindow returns the first and last day of the month containing t.
func monthWindow(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
