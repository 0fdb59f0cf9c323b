package api

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"petmate/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockReservations struct{ mock.Mock }

func (m *mockReservations) GetReservations(ctx context.Context, date time.Time, company *models.CompanyContext) ([]models.BookingView, error) {
	args := m.Called(ctx, date, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingView), args.Error(1)
}

func (m *mockReservations) GetTodayStats(ctx context.Context, company *models.CompanyContext) models.TodayStats {
	return m.Called(ctx, company).Get(0).(models.TodayStats)
}

func (m *mockReservations) GetMonthlyReservations(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	return m.Called(ctx, anchor, company).Get(0).(models.MonthlyCounts)
}

func (m *mockReservations) UpdateReservationStatus(ctx context.Context, id string, status models.Status, company *models.CompanyContext) (*models.StatusResult, error) {
	args := m.Called(ctx, id, status, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusResult), args.Error(1)
}

func (m *mockReservations) DeleteReservation(ctx context.Context, id string, company *models.CompanyContext) (*models.StatusResult, error) {
	args := m.Called(ctx, id, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusResult), args.Error(1)
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) Counts(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	return m.Called(ctx, anchor, company).Get(0).(models.MonthlyCounts)
}

func (m *mockDashboard) RefreshMonth(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	return m.Called(ctx, anchor, company).Get(0).(models.MonthlyCounts)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) CompanyReviews(ctx context.Context, companyID int64, page, size int) models.ReviewSummary {
	return m.Called(ctx, companyID, page, size).Get(0).(models.ReviewSummary)
}

func (m *mockReviews) CreateReview(ctx context.Context, input models.ReviewInput) (json.RawMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockReviews) LoadReviewForm(ctx context.Context, reservationID int64) (*models.ReviewForm, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewForm), args.Error(1)
}

type mockPets struct{ mock.Mock }

func (m *mockPets) Breeds(ctx context.Context, species string) ([]models.Breed, error) {
	args := m.Called(ctx, species)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Breed), args.Error(1)
}

func (m *mockPets) ResolveBreedName(ctx context.Context, breedID int64, species string) (string, error) {
	args := m.Called(ctx, breedID, species)
	return args.String(0), args.Error(1)
}

func (m *mockPets) ListMyPets(ctx context.Context) []models.Pet {
	return m.Called(ctx).Get(0).([]models.Pet)
}

func (m *mockPets) CreatePet(ctx context.Context, input models.PetInput) (*models.Pet, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *mockPets) UpdatePet(ctx context.Context, petID int64, input models.PetInput) (*models.Pet, error) {
	args := m.Called(ctx, petID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *mockPets) DeletePet(ctx context.Context, petID int64) error {
	return m.Called(ctx, petID).Error(0)
}

func (m *mockPets) UpdatePetImage(ctx context.Context, petID int64, imageURL string) error {
	return m.Called(ctx, petID, imageURL).Error(0)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) CreatePayment(ctx context.Context, payment json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockPayments) GetBookingForPayment(ctx context.Context, bookingID string) (json.RawMessage, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockPayments) GetPaymentStatus(ctx context.Context, paymentID string) (json.RawMessage, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Get(ctx context.Context, userID string) (*models.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessions) SetCompany(ctx context.Context, userID string, companyID int64) (*models.Session, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessions) SetDefaultAddress(ctx context.Context, userID, roadAddr string) (*models.Session, error) {
	args := m.Called(ctx, userID, roadAddr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessions) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) DayReservations(w io.Writer, views []models.BookingView, date time.Time) error {
	args := m.Called(w, views, date)
	if body := args.String(0); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}
