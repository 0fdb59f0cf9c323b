package api

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxPaymentBody = 64 << 10

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPaymentBody))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	raw, err := s.svc.Payments.CreatePayment(r.Context(), json.RawMessage(body))
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	raw, err := s.svc.Payments.GetPaymentStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) handleBookingForPayment(w http.ResponseWriter, r *http.Request) {
	raw, err := s.svc.Payments.GetBookingForPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}
