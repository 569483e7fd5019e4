package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"roomrental/bookings-api/domain"
	"roomrental/bookings-api/locks"
	"roomrental/bookings-api/metrics"
	"roomrental/bookings-api/repositories"
)

// BookingService exposes the booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetBookingByID(id uint) (*domain.Booking, error)
	GetAllBookings() ([]domain.Booking, error)
	GetBookingsByTenant(tenantID uint) ([]domain.Booking, error)
	GetBookingsByLandlord(landlordID uint) ([]domain.Booking, error)
	GetBookingsByProperty(propertyID uint) ([]domain.Booking, error)
	GetBookingsByStatus(status domain.BookingStatus) ([]domain.Booking, error)
	IsPropertyAvailable(propertyID uint, start, end time.Time) (bool, error)
	GetActiveBookingsForProperty(propertyID uint) ([]domain.Booking, error)
	UpdateStatus(id uint, status domain.BookingStatus) (*domain.Booking, error)
	ConfirmBooking(id uint) (*domain.Booking, error)
	CancelBooking(id uint) (*domain.Booking, error)
	RejectBooking(id uint) (*domain.Booking, error)
}

type bookingService struct {
	repo   repositories.BookingRepository
	locker locks.PropertyLocker
	logger zerolog.Logger
	// now is swapped in tests to pin the current date.
	now func() time.Time
}

// NewBookingService wires the service. The locker may be nil, in which
// case creation runs without the per-property critical section.
func NewBookingService(repo repositories.BookingRepository, locker locks.PropertyLocker, logger zerolog.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		locker: locker,
		logger: logger,
		now:    time.Now,
	}
}

// today truncates the clock to a calendar date so date-only comparisons
// against stored bookings behave.
func (s *bookingService) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	if !booking.StartDate.Before(booking.EndDate) {
		return domain.ErrInvalidDates
	}
	if !booking.StartDate.After(s.today()) || !booking.EndDate.After(s.today()) {
		return domain.ErrDatesInPast
	}

	// Hold the per-property lock across the conflict check and the insert
	// so two concurrent requests cannot both pass the check.
	if s.locker != nil {
		release, err := s.locker.Lock(ctx, booking.PropertyID)
		if err != nil {
			return err
		}
		defer release()
	}

	conflicts, err := s.repo.FindConflicting(booking.PropertyID, booking.StartDate, booking.EndDate)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		metrics.IncBookingConflict()
		s.logger.Info().
			Uint("property_id", booking.PropertyID).
			Int("conflicts", len(conflicts)).
			Msg("booking rejected, dates taken")
		return domain.ErrNotAvailable
	}

	booking.Status = domain.StatusPending
	if err := s.repo.Create(booking); err != nil {
		return err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Uint("booking_id", booking.ID).
		Uint("property_id", booking.PropertyID).
		Uint("tenant_id", booking.TenantID).
		Msg("booking created")
	return nil
}

func (s *bookingService) GetBookingByID(id uint) (*domain.Booking, error) {
	return s.repo.GetByID(id)
}

func (s *bookingService) GetAllBookings() ([]domain.Booking, error) {
	return s.repo.GetAll()
}

func (s *bookingService) GetBookingsByTenant(tenantID uint) ([]domain.Booking, error) {
	return s.repo.GetByTenant(tenantID)
}

func (s *bookingService) GetBookingsByLandlord(landlordID uint) ([]domain.Booking, error) {
	return s.repo.GetByLandlord(landlordID)
}

func (s *bookingService) GetBookingsByProperty(propertyID uint) ([]domain.Booking, error) {
	return s.repo.GetByProperty(propertyID)
}

func (s *bookingService) GetBookingsByStatus(status domain.BookingStatus) ([]domain.Booking, error) {
	return s.repo.GetByStatus(status)
}

// IsPropertyAvailable reports whether the property has no PENDING or
// CONFIRMED booking overlapping [start, end]. Past ranges are answered,
// not rejected; the date rules only gate creation.
func (s *bookingService) IsPropertyAvailable(propertyID uint, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, domain.ErrInvalidDates
	}
	conflicts, err := s.repo.FindConflicting(propertyID, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

func (s *bookingService) GetActiveBookingsForProperty(propertyID uint) ([]domain.Booking, error) {
	return s.repo.FindActive(propertyID, s.today())
}

func (s *bookingService) UpdateStatus(id uint, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}
	if booking.Status == status {
		return booking, nil
	}

	previous := booking.Status
	booking.Status = status
	if err := s.repo.Update(booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("booking_id", booking.ID).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("booking status updated")
	return booking, nil
}

func (s *bookingService) ConfirmBooking(id uint) (*domain.Booking, error) {
	return s.UpdateStatus(id, domain.StatusConfirmed)
}

func (s *bookingService) CancelBooking(id uint) (*domain.Booking, error) {
	return s.UpdateStatus(id, domain.StatusCancelled)
}

func (s *bookingService) RejectBooking(id uint) (*domain.Booking, error) {
	return s.UpdateStatus(id, domain.StatusRejected)
}
