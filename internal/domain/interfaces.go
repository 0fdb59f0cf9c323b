package domain

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"petmate/internal/events"
	"petmate/internal/models"
)

type SessionRepository interface {
	Get(ctx context.Context, userID string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Clear(ctx context.Context, userID string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type EventSubscriber interface {
	Subscribe(eventType string, handler events.EventHandler) *events.Subscription
}

type ReservationService interface {
	GetReservations(ctx context.Context, date time.Time, company *models.CompanyContext) ([]models.BookingView, error)
	GetTodayStats(ctx context.Context, company *models.CompanyContext) models.TodayStats
	GetMonthlyReservations(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts
	UpdateReservationStatus(ctx context.Context, reservationID string, status models.Status, company *models.CompanyContext) (*models.StatusResult, error)
	DeleteReservation(ctx context.Context, reservationID string, company *models.CompanyContext) (*models.StatusResult, error)
}

type DashboardService interface {
	Counts(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts
	RefreshMonth(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts
}

type ReviewService interface {
	CompanyReviews(ctx context.Context, companyID int64, page, size int) models.ReviewSummary
	CreateReview(ctx context.Context, input models.ReviewInput) (json.RawMessage, error)
	LoadReviewForm(ctx context.Context, reservationID int64) (*models.ReviewForm, error)
}

type PetService interface {
	Breeds(ctx context.Context, species string) ([]models.Breed, error)
	ResolveBreedName(ctx context.Context, breedID int64, species string) (string, error)
	ListMyPets(ctx context.Context) []models.Pet
	CreatePet(ctx context.Context, input models.PetInput) (*models.Pet, error)
	UpdatePet(ctx context.Context, petID int64, input models.PetInput) (*models.Pet, error)
	DeletePet(ctx context.Context, petID int64) error
	UpdatePetImage(ctx context.Context, petID int64, imageURL string) error
}

type PaymentService interface {
	CreatePayment(ctx context.Context, payment json.RawMessage) (json.RawMessage, error)
	GetBookingForPayment(ctx context.Context, bookingID string) (json.RawMessage, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (json.RawMessage, error)
}

type SessionService interface {
	Get(ctx context.Context, userID string) (*models.Session, error)
	SetCompany(ctx context.Context, userID string, companyID int64) (*models.Session, error)
	SetDefaultAddress(ctx context.Context, userID, roadAddr string) (*models.Session, error)
	Clear(ctx context.Context, userID string) error
}

type ReservationExporter interface {
	DayReservations(w io.Writer, views []models.BookingView, date time.Time) error
}
