package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrental/bookings-api/domain"
)

type mockBookingRepository struct {
	bookings             map[uint]*domain.Booking
	nextID               uint
	findConflictingCalls int
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: make(map[uint]*domain.Booking), nextID: 1}
}

func (m *mockBookingRepository) Create(booking *domain.Booking) error {
	booking.ID = m.nextID
	m.nextID++
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *mockBookingRepository) GetByID(id uint) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (m *mockBookingRepository) GetAll() ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepository) GetByTenant(tenantID uint) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) GetByLandlord(landlordID uint) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.LandlordID == landlordID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) GetByProperty(propertyID uint) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.PropertyID == propertyID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) GetByStatus(status domain.BookingStatus) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindConflicting(propertyID uint, start, end time.Time) ([]domain.Booking, error) {
	m.findConflictingCalls++
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.PropertyID != propertyID {
			continue
		}
		if b.Status != domain.StatusPending && b.Status != domain.StatusConfirmed {
			continue
		}
		if b.Overlaps(start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindActive(propertyID uint, date time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.PropertyID == propertyID && b.Status == domain.StatusConfirmed && !b.EndDate.Before(date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) Update(booking *domain.Booking) error {
	if _, ok := m.bookings[booking.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func day(t *testing.T, d string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", d)
	require.NoError(t, err)
	return parsed
}

func newTestService(repo *mockBookingRepository) *bookingService {
	svc := NewBookingService(repo, nil, zerolog.Nop()).(*bookingService)
	// Pin the clock so date validation is deterministic.
	svc.now = func() time.Time {
		return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedBooking(t *testing.T, repo *mockBookingRepository, status domain.BookingStatus, start, end string) *domain.Booking {
	t.Helper()
	booking := &domain.Booking{
		PropertyID:  1,
		TenantID:    2,
		LandlordID:  3,
		StartDate:   day(t, start),
		EndDate:     day(t, end),
		TotalAmount: 1200,
		Status:      status,
	}
	require.NoError(t, repo.Create(booking))
	return booking
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)

	booking := &domain.Booking{
		PropertyID:  1,
		TenantID:    2,
		LandlordID:  3,
		StartDate:   day(t, "2025-06-01"),
		EndDate:     day(t, "2025-06-10"),
		TotalAmount: 900,
	}

	err := svc.CreateBooking(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.NotZero(t, booking.ID)
}

func TestCreateBooking_BoundaryOverlapRejected(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)
	seedBooking(t, repo, domain.StatusConfirmed, "2025-06-01", "2025-06-10")

	// A range starting exactly on the existing end date still conflicts.
	booking := &domain.Booking{
		PropertyID: 1, TenantID: 4, LandlordID: 3,
		StartDate: day(t, "2025-06-10"), EndDate: day(t, "2025-06-15"),
		TotalAmount: 500,
	}
	err := svc.CreateBooking(context.Background(), booking)
	assert.ErrorIs(t, err, domain.ErrNotAvailable)

	// The day after the existing end date is free.
	booking = &domain.Booking{
		PropertyID: 1, TenantID: 4, LandlordID: 3,
		StartDate: day(t, "2025-06-11"), EndDate: day(t, "2025-06-15"),
		TotalAmount: 500,
	}
	err = svc.CreateBooking(context.Background(), booking)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledBookingsDoNotBlock(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)
	seedBooking(t, repo, domain.StatusCancelled, "2025-06-01", "2025-06-10")
	seedBooking(t, repo, domain.StatusRejected, "2025-06-01", "2025-06-10")

	booking := &domain.Booking{
		PropertyID: 1, TenantID: 4, LandlordID: 3,
		StartDate: day(t, "2025-06-01"), EndDate: day(t, "2025-06-10"),
		TotalAmount: 500,
	}
	err := svc.CreateBooking(context.Background(), booking)
	assert.NoError(t, err)
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)

	booking := &domain.Booking{
		PropertyID: 1, TenantID: 2, LandlordID: 3,
		StartDate: day(t, "2025-06-10"), EndDate: day(t, "2025-06-01"),
		TotalAmount: 500,
	}
	err := svc.CreateBooking(context.Background(), booking)
	assert.ErrorIs(t, err, domain.ErrInvalidDates)
	assert.Zero(t, repo.findConflictingCalls)
}

func TestCreateBooking_PastDatesRejectedBeforeConflictCheck(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)

	// Clock is pinned to 2025-05-01.
	booking := &domain.Booking{
		PropertyID: 1, TenantID: 2, LandlordID: 3,
		StartDate: day(t, "2025-04-01"), EndDate: day(t, "2025-04-10"),
		TotalAmount: 500,
	}
	err := svc.CreateBooking(context.Background(), booking)
	assert.ErrorIs(t, err, domain.ErrDatesInPast)
	assert.Zero(t, repo.findConflictingCalls)
}

func TestIsPropertyAvailable(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)
	seedBooking(t, repo, domain.StatusPending, "2025-06-01", "2025-06-10")

	available, err := svc.IsPropertyAvailable(1, day(t, "2025-06-05"), day(t, "2025-06-20"))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsPropertyAvailable(1, day(t, "2025-07-01"), day(t, "2025-07-10"))
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.IsPropertyAvailable(2, day(t, "2025-06-05"), day(t, "2025-06-20"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)
	booking := seedBooking(t, repo, domain.StatusPending, "2025-06-01", "2025-06-10")

	updated, err := svc.ConfirmBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	// Confirming again is a no-op success.
	updated, err = svc.ConfirmBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	updated, err = svc.CancelBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	// A cancelled booking cannot come back.
	_, err = svc.ConfirmBooking(booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_ConfirmedCannotBeRejected(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)
	booking := seedBooking(t, repo, domain.StatusConfirmed, "2025-06-01", "2025-06-10")

	_, err := svc.RejectBooking(booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)

	_, err := svc.ConfirmBooking(99)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestGetActiveBookingsForProperty(t *testing.T) {
	repo := newMockBookingRepository()
	svc := newTestService(repo)

	// Clock pinned to 2025-05-01: one confirmed booking still running, one
	// already finished, one pending.
	seedBooking(t, repo, domain.StatusConfirmed, "2025-04-20", "2025-05-10")
	seedBooking(t, repo, domain.StatusConfirmed, "2025-03-01", "2025-03-10")
	seedBooking(t, repo, domain.StatusPending, "2025-06-01", "2025-06-10")

	active, err := svc.GetActiveBookingsForProperty(1)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, day(t, "2025-05-10"), active[0].EndDate)
}
