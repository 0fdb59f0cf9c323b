package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petmate/internal/export"
	"petmate/internal/models"
)

func (s *Server) handleReservations(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	id := IdentityFrom(r.Context())
	views, err := s.svc.Reservations.GetReservations(r.Context(), date, id.Company)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":         date.Format(models.DateLayout),
		"reservations": views,
	})
}

func (s *Server) handleTodayStats(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, s.svc.Reservations.GetTodayStats(r.Context(), id.Company))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	anchor := s.now().In(s.loc)
	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
			return
		}
		anchor = parsed
	}

	id := IdentityFrom(r.Context())
	var counts models.MonthlyCounts
	switch {
	case s.svc.Dashboard != nil && r.URL.Query().Get("refresh") == "true":
		counts = s.svc.Dashboard.RefreshMonth(r.Context(), anchor, id.Company)
	case s.svc.Dashboard != nil:
		counts = s.svc.Dashboard.Counts(r.Context(), anchor, id.Company)
	default:
		counts = s.svc.Reservations.GetMonthlyReservations(r.Context(), anchor, id.Company)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":  anchor.Format("2006-01"),
		"counts": counts,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.svc.Exporter == nil {
		writeError(w, http.StatusNotImplemented, "export is not configured")
		return
	}
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	id := IdentityFrom(r.Context())
	views, err := s.svc.Reservations.GetReservations(r.Context(), date, id.Company)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := s.svc.Exporter.DayReservations(&buf, views, date); err != nil {
		s.logger.Error().Err(err).Msg("export reservations")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(date)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status := models.Status(strings.TrimSpace(body.Status))
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status; expected pending, approved, completed or cancelled")
		return
	}

	id := IdentityFrom(r.Context())
	result, err := s.svc.Reservations.UpdateReservationStatus(r.Context(), r.PathValue("id"), status, id.Company)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())
	result, err := s.svc.Reservations.DeleteReservation(r.Context(), r.PathValue("id"), id.Company)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// dateParam reads ?date=YYYY-MM-DD in the configured zone, defaulting to
// today. It writes the error response itself.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return s.now().In(s.loc), true
	}
	date, err := time.ParseInLocation(models.DateLayout, raw, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
