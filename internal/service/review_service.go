package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	msgInvalidAccess  = "잘못된 접근입니다."
	msgRatingRange    = "별점은 1~5 사이여야 합니다."
	msgReviewEmpty    = "키워드 또는 코멘트 중 하나 이상 입력해 주세요."
	msgCommentTooLong = "코멘트는 1000자 이하로 입력해 주세요."
	msgReviewFailed   = "등록 실패"
	msgReviewFormLoad = "예약/키워드 로드 실패"
	msgReviewListLoad = "리뷰를 불러오지 못했습니다."
)

// serviceTypeByProduct maps a product display name onto the keyword catalog
// service type.
var serviceTypeByProduct = map[string]string{
	"산책": models.ServiceWalk,
	"돌봄": models.ServiceCare,
	"미용": models.ServiceGroom,
	"병원": models.ServiceHospital,
	"기타": models.ServiceEtc,
}

func ServiceTypeFor(productName string) string {
	if st, ok := serviceTypeByProduct[strings.TrimSpace(productName)]; ok {
		return st
	}
	return models.ServiceEtc
}

type ReviewService struct {
	client   backend.Doer
	eventBus domain.EventPublisher
	validate *validator.Validate
	pageSize int
	logger   *zerolog.Logger
}

func NewReviewService(client backend.Doer, eventBus domain.EventPublisher, pageSize int, logger *zerolog.Logger) *ReviewService {
	if pageSize <= 0 {
		pageSize = models.DefaultReviewPageSize
	}
	return &ReviewService{
		client:   client,
		eventBus: eventBus,
		validate: validator.New(),
		pageSize: pageSize,
		logger:   nopLogger(logger),
	}
}

// CompanyReviews loads a page of public reviews and their stats. On failure
// the summary is in its zero state and Error holds the message.
func (s *ReviewService) CompanyReviews(ctx context.Context, companyID int64, page, size int) models.ReviewSummary {
	summary := models.ReviewSummary{Reviews: []models.ReviewRecord{}}
	if companyID <= 0 {
		return summary
	}
	if page < 0 {
		page = models.DefaultReviewPage
	}
	if size <= 0 {
		size = s.pageSize
	}

	reviews, err := backend.GetListWith[models.ReviewRecord](ctx, s.client, backend.Request{
		Method:   http.MethodGet,
		Endpoint: "reviews_company",
		Path:     fmt.Sprintf("/api/reviews/company/%d", companyID),
		Query: url.Values{
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(size)},
		},
		Anonymous: true,
	})
	if err != nil {
		readPolicy(s.logger, "company_reviews", err)
		summary.Error = reviewLoadMessage(err)
		return summary
	}

	summary.Reviews = reviews
	summary.Stats = AggregateReviews(reviews)
	return summary
}

func reviewLoadMessage(err error) string {
	if msg := backend.MessageOf(err); msg != "" {
		return msg
	}
	if status := backend.StatusOf(err); status != 0 {
		return fmt.Sprintf("HTTP %d", status)
	}
	return msgReviewListLoad
}

// CreateReview validates and submits a review. The backend response is
// returned as received.
func (s *ReviewService) CreateReview(ctx context.Context, input models.ReviewInput) (json.RawMessage, error) {
	input.Comment = strings.TrimSpace(input.Comment)
	if input.KeywordIDs == nil {
		input.KeywordIDs = []int64{}
	}
	if err := s.validateReview(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Endpoint: "reviews_create",
		Path:     "/api/reviews",
		Body:     input,
	}, &raw)
	if err != nil {
		return nil, writePolicy(s.logger, "create_review", err, msgReviewFailed)
	}

	if s.eventBus != nil {
		payload := events.ReviewEventPayload{ReservationID: input.ReservationID, CompanyID: input.CompanyID, Rating: input.Rating}
		if err := s.eventBus.PublishJSON(events.EventReviewCreated, payload); err != nil {
			s.logger.Error().Err(err).Str("event_type", events.EventReviewCreated).Msg("publish event error")
		}
	}
	return raw, nil
}

func (s *ReviewService) validateReview(input models.ReviewInput) error {
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return apperr.Wrap(apperr.KindValidation, msgReviewFailed, err)
		}
		switch fieldErrs[0].Field() {
		case "ReservationID", "CompanyID":
			return apperr.MissingContext(msgInvalidAccess)
		case "Rating":
			return apperr.Validation(msgRatingRange)
		case "Comment":
			return apperr.Validation(msgCommentTooLong)
		}
		return apperr.Wrap(apperr.KindValidation, fieldErrs[0].Error(), err)
	}
	if input.Comment == "" && len(input.KeywordIDs) == 0 {
		return apperr.Validation(msgReviewEmpty)
	}
	return nil
}

// LoadReviewForm resolves the booking's product to a service type and loads
// the active keywords for it.
func (s *ReviewService) LoadReviewForm(ctx context.Context, reservationID int64) (*models.ReviewForm, error) {
	if reservationID <= 0 {
		return nil, apperr.MissingContext(msgInvalidAccess)
	}

	var booking struct {
		ProductName string `json:"productName"`
	}
	if err := s.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Endpoint: "booking_detail",
		Path:     fmt.Sprintf("/api/booking/%d", reservationID),
	}, &booking); err != nil {
		return nil, writePolicy(s.logger, "load_review_form", err, msgReviewFormLoad)
	}

	form := &models.ReviewForm{
		ProductName: booking.ProductName,
		ServiceType: ServiceTypeFor(booking.ProductName),
	}
	keywords, err := backend.GetList[models.Keyword](ctx, s.client, "review_keywords", "/api/review-keywords", url.Values{
		"serviceType": {form.ServiceType},
		"activeOnly":  {"1"},
	})
	if err != nil {
		return nil, writePolicy(s.logger, "load_review_form", err, msgReviewFormLoad)
	}
	form.Keywords = keywords
	return form, nil
}
