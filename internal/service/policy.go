package service

import (
	"errors"
	"net/http"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/metrics"

	"github.com/rs/zerolog"
)

const (
	msgNoCompany      = "업체 정보를 찾을 수 없습니다. 로그인을 확인해주세요."
	msgSessionExpired = "인증이 만료되었습니다. 다시 로그인해주세요."
	msgForbidden      = "이 업체의 예약 정보에 접근할 권한이 없습니다."
	msgNoReservation  = "예약 ID가 필요합니다."
	msgStatusFailed   = "상태 변경에 실패했습니다."
	msgCancelFailed   = "예약 취소에 실패했습니다."
	msgNoPermission   = "권한이 없습니다."
)

// readPolicy is applied to reads that feed a display: the failure is logged
// and counted, and the caller substitutes its zero value.
func readPolicy(logger *zerolog.Logger, operation string, err error) {
	metrics.IncReadFallback(operation)
	logger.Warn().Err(err).Str("operation", operation).Msg("read failed, using default")
}

// writePolicy is applied to mutations: the failure is logged and returned
// with a user-facing message. Transport errors without an HTTP status pass
// through unchanged.
func writePolicy(logger *zerolog.Logger, operation string, err error, fallback string) error {
	logger.Error().Err(err).Str("operation", operation).Msg("mutation failed")

	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if classified := classifyAuth(err, msgNoPermission); classified != err {
		return classified
	}

	status := backend.StatusOf(err)
	if status == 0 {
		return err
	}
	if msg := backend.MessageOf(err); msg != "" {
		return apperr.OperationFailed(msg, err)
	}
	return apperr.OperationFailed(fallback, err)
}

// classifyAuth maps 401 and 403 responses onto their error kinds.
func classifyAuth(err error, forbidden string) error {
	switch backend.StatusOf(err) {
	case http.StatusUnauthorized:
		return apperr.Wrap(apperr.KindUnauthorized, msgSessionExpired, err)
	case http.StatusForbidden:
		return apperr.Wrap(apperr.KindForbidden, forbidden, err)
	}
	return err
}

func nopLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
