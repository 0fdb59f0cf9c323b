package service

import (
	"context"
	"strings"
	"time"

	"petmate/internal/apperr"
	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/models"

	"github.com/rs/zerolog"
)

const (
	msgUserRequired    = "사용자 정보를 찾을 수 없습니다."
	msgCompanyRequired = "업체 ID가 필요합니다."
	msgAddressRequired = "주소를 입력해주세요."
)

// SessionService stores per-user fallbacks the gateway cannot read from the
// access token: the managed company and the default address.
type SessionService struct {
	repo     domain.SessionRepository
	eventBus domain.EventPublisher
	now      func() time.Time
	logger   *zerolog.Logger
}

func NewSessionService(repo domain.SessionRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		eventBus: eventBus,
		now:      time.Now,
		logger:   nopLogger(logger),
	}
}

// Get returns the stored session, or nil when none exists.
func (s *SessionService) Get(ctx context.Context, userID string) (*models.Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.MissingContext(msgUserRequired)
	}
	return s.repo.Get(ctx, userID)
}

func (s *SessionService) SetCompany(ctx context.Context, userID string, companyID int64) (*models.Session, error) {
	if companyID <= 0 {
		return nil, apperr.Validation(msgCompanyRequired)
	}
	return s.update(ctx, userID, func(session *models.Session) {
		session.CompanyID = companyID
	})
}

// SetDefaultAddress stores the address and announces the change.
func (s *SessionService) SetDefaultAddress(ctx context.Context, userID, roadAddr string) (*models.Session, error) {
	roadAddr = strings.TrimSpace(roadAddr)
	if roadAddr == "" {
		return nil, apperr.Validation(msgAddressRequired)
	}
	session, err := s.update(ctx, userID, func(session *models.Session) {
		session.DefaultAddress = roadAddr
	})
	if err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.AddressEventPayload{UserID: session.UserID, RoadAddr: roadAddr}
		if err := s.eventBus.PublishJSON(events.EventDefaultAddressChanged, payload); err != nil {
			s.logger.Error().Err(err).Str("event_type", events.EventDefaultAddressChanged).Msg("publish event error")
		}
	}
	return session, nil
}

// Clear forgets the stored company and address, e.g. on logout.
func (s *SessionService) Clear(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperr.MissingContext(msgUserRequired)
	}
	if err := s.repo.Clear(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("clear session")
		return err
	}
	return nil
}

func (s *SessionService) update(ctx context.Context, userID string, apply func(*models.Session)) (*models.Session, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &models.Session{UserID: strings.TrimSpace(userID)}
	}
	apply(session)
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("user_id", session.UserID).Msg("save session")
		return nil, err
	}
	return session, nil
}
