package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"petmate/internal/models"
)

func (s *Server) handleCompanyReviews(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || companyID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	q := r.URL.Query()
	page := intParam(q.Get("page"), models.DefaultReviewPage)
	size := intParam(q.Get("size"), 0)

	writeJSON(w, http.StatusOK, s.svc.Reviews.CompanyReviews(r.Context(), companyID, page, size))
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var input models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	raw, err := s.svc.Reviews.CreateReview(r.Context(), input)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeRaw(w, http.StatusCreated, raw)
}

func (s *Server) handleReviewForm(w http.ResponseWriter, r *http.Request) {
	reservationID := int64(intParam(r.URL.Query().Get("reservationId"), 0))

	form, err := s.svc.Reviews.LoadReviewForm(r.Context(), reservationID)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func intParam(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}
