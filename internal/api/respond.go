package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"petmate/internal/apperr"
	"petmate/internal/backend"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeRaw writes a backend body through unchanged.
func writeRaw(w http.ResponseWriter, statusCode int, raw json.RawMessage) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps an error kind onto an HTTP status. Backend errors that
// carry no kind keep 4xx statuses and turn 5xx into 502.
func writeAppError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		writeError(w, statusForKind(ae.Kind), ae.Error())
		return
	}

	if status := backend.StatusOf(err); status != 0 {
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = http.StatusText(status)
		}
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		writeError(w, status, msg)
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusBadGateway, "backend request failed")
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindMissingContext:
		return http.StatusBadRequest
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFoundAsEmpty:
		return http.StatusNotFound
	case apperr.KindOperationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
