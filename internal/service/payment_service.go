package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"petmate/internal/apperr"
	"petmate/internal/backend"

	"github.com/rs/zerolog"
)

const (
	msgBookingIDRequired = "예약 ID가 필요합니다."
	msgPaymentIDRequired = "결제 ID가 필요합니다."
)

// PaymentService relays payment calls to the backend. Payloads and
// responses pass through untouched; failures are logged and returned.
type PaymentService struct {
	client backend.Doer
	logger *zerolog.Logger
}

func NewPaymentService(client backend.Doer, logger *zerolog.Logger) *PaymentService {
	return &PaymentService{client: client, logger: nopLogger(logger)}
}

// CreatePayment posts to /api/payment/process without credentials.
func (s *PaymentService) CreatePayment(ctx context.Context, payment json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := s.client.Do(ctx, backend.Request{
		Method:    http.MethodPost,
		Endpoint:  "payment_process",
		Path:      "/api/payment/process",
		Body:      payment,
		Anonymous: true,
	}, &out)
	if err != nil {
		s.logger.Error().Err(err).Msg("create payment")
		return nil, err
	}
	return out, nil
}

func (s *PaymentService) GetBookingForPayment(ctx context.Context, bookingID string) (json.RawMessage, error) {
	id := strings.TrimSpace(bookingID)
	if id == "" {
		return nil, apperr.MissingContext(msgBookingIDRequired)
	}
	return s.get(ctx, "booking_payment", fmt.Sprintf("/api/booking/payment/%s", url.PathEscape(id)))
}

func (s *PaymentService) GetPaymentStatus(ctx context.Context, paymentID string) (json.RawMessage, error) {
	id := strings.TrimSpace(paymentID)
	if id == "" {
		return nil, apperr.MissingContext(msgPaymentIDRequired)
	}
	return s.get(ctx, "payment_status", fmt.Sprintf("/api/payment/%s", url.PathEscape(id)))
}

func (s *PaymentService) get(ctx context.Context, endpoint, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.client.Do(ctx, backend.Request{Method: http.MethodGet, Endpoint: endpoint, Path: path}, &out); err != nil {
		s.logger.Error().Err(err).Str("endpoint", endpoint).Msg("payment relay")
		return nil, err
	}
	return out, nil
}
