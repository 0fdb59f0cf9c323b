package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"petmate/internal/config"
	"petmate/internal/domain"

	"github.com/rs/zerolog"
)

// Services are the operations the gateway exposes.
type Services struct {
	Reservations domain.ReservationService
	Dashboard    domain.DashboardService
	Reviews      domain.ReviewService
	Pets         domain.PetService
	Payments     domain.PaymentService
	Sessions     domain.SessionService
	Exporter     domain.ReservationExporter
}

// Server is the local HTTP API in front of the Petmate backend.
type Server struct {
	cfg      config.GatewayConfig
	svc      Services
	resolver *Resolver
	limiter  *rateLimiter
	loc      *time.Location
	apiBase  string
	now      func() time.Time
	logger   *zerolog.Logger
	server   *http.Server
}

// NewServer wires the routes. apiBase is the backend root used to build
// pet image links.
func NewServer(cfg config.GatewayConfig, svc Services, loc *time.Location, apiBase string, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if loc == nil {
		loc = time.Local
	}

	var sessions sessionLookup
	if svc.Sessions != nil {
		sessions = svc.Sessions
	}

	s := &Server{
		cfg:      cfg,
		svc:      svc,
		resolver: NewResolver(cfg.Auth, sessions, logger),
		limiter:  newRateLimiter(cfg.RateLimit),
		loc:      loc,
		apiBase:  apiBase,
		now:      time.Now,
		logger:   logger,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	handler := requestIDMiddleware(loggingMiddleware(logger, s.authMiddleware(mux)))
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, instrument(pattern, h))
	}

	handle("GET /healthz", s.handleHealth)

	handle("GET /v1/reservations", s.handleReservations)
	handle("GET /v1/reservations/today", s.handleTodayStats)
	handle("GET /v1/reservations/calendar", s.handleCalendar)
	handle("GET /v1/reservations/export", s.handleExport)
	handle("POST /v1/reservations/{id}/status", s.handleUpdateStatus)
	handle("DELETE /v1/reservations/{id}", s.handleCancelReservation)

	handle("GET /v1/companies/{id}/reviews", s.handleCompanyReviews)
	handle("POST /v1/reviews", s.handleCreateReview)
	handle("GET /v1/reviews/form", s.handleReviewForm)

	handle("GET /v1/breeds", s.handleBreeds)
	handle("GET /v1/pets", s.handleListPets)
	handle("POST /v1/pets", s.handleCreatePet)
	handle("PUT /v1/pets/{id}", s.handleUpdatePet)
	handle("DELETE /v1/pets/{id}", s.handleDeletePet)
	handle("PATCH /v1/pets/{id}/image", s.handleUpdatePetImage)

	handle("POST /v1/payments", s.handleCreatePayment)
	handle("GET /v1/payments/{id}", s.handlePaymentStatus)
	handle("GET /v1/payments/bookings/{id}", s.handleBookingForPayment)

	handle("GET /v1/session", s.handleGetSession)
	handle("DELETE /v1/session", s.handleClearSession)
	handle("PUT /v1/session/company", s.handleSetCompany)
	handle("PUT /v1/session/address", s.handleSetAddress)
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
