package domain

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors matched by the controllers to pick status codes.
var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotAvailable      = errors.New("property is not available for the selected dates")
	ErrInvalidDates      = errors.New("start date must be before end date")
	ErrDatesInPast       = errors.New("booking dates must be in the future")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusRejected  BookingStatus = "REJECTED"
)

// allowedTransitions is the booking state machine. CANCELLED and REJECTED
// are terminal; a confirmed booking can still be cancelled.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusRejected},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
	StatusRejected:  {},
}

// CanTransitionTo reports whether the move to next is legal. Repeating the
// current status is always allowed so confirm/cancel/reject are idempotent.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseStatus maps a raw string to a BookingStatus, case-insensitively.
func ParseStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// Booking is a reservation of a property for a date range. Start and end
// dates are calendar dates; the overlap rule uses inclusive bounds on both
// sides. Bookings are never deleted, only moved through the state machine.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	PropertyID      uint          `gorm:"not null;index" json:"property_id"`
	TenantID        uint          `gorm:"not null;index" json:"tenant_id"`
	LandlordID      uint          `gorm:"not null;index" json:"landlord_id"`
	StartDate       time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time     `gorm:"type:date;not null" json:"end_date"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	SpecialRequests string        `gorm:"type:text" json:"special_requests,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName sets the MySQL table name.
func (Booking) TableName() string {
	return "bookings"
}

// Overlaps reports whether the booking's range intersects [start, end],
// bounds inclusive: existing.start <= new.end && existing.end >= new.start.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
