package repositories

import (
	"errors"
	"time"

	"roomrental/bookings-api/domain"

	"gorm.io/gorm"
)

// BookingRepository is the persistence contract for bookings.
type BookingRepository interface {
	Create(booking *domain.Booking) error
	GetByID(id uint) (*domain.Booking, error)
	GetAll() ([]domain.Booking, error)
	GetByTenant(tenantID uint) ([]domain.Booking, error)
	GetByLandlord(landlordID uint) ([]domain.Booking, error)
	GetByProperty(propertyID uint) ([]domain.Booking, error)
	GetByStatus(status domain.BookingStatus) ([]domain.Booking, error)
	// FindConflicting returns the PENDING/CONFIRMED bookings on the property
	// whose date range overlaps [start, end], bounds inclusive.
	FindConflicting(propertyID uint, start, end time.Time) ([]domain.Booking, error)
	// FindActive returns CONFIRMED bookings on the property that have not
	// ended before the given date.
	FindActive(propertyID uint, date time.Time) ([]domain.Booking, error)
	Update(booking *domain.Booking) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository wires a gorm-backed repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *domain.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uint) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetAll() ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByTenant(tenantID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.Where("tenant_id = ?", tenantID).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByLandlord(landlordID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.Where("landlord_id = ?", landlordID).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByProperty(propertyID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.Where("property_id = ?", propertyID).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByStatus(status domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.Where("status = ?", status).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindConflicting(propertyID uint, start, end time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.
		Where("property_id = ?", propertyID).
		Where("status IN ?", []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindActive(propertyID uint, date time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.
		Where("property_id = ?", propertyID).
		Where("status = ?", domain.StatusConfirmed).
		Where("end_date >= ?", date).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) Update(booking *domain.Booking) error {
	return r.db.Save(booking).Error
}
