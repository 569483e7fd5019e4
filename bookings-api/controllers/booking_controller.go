package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"roomrental/bookings-api/domain"
	"roomrental/bookings-api/dto"
	"roomrental/bookings-api/services"
)

const dateLayout = "2006-01-02"

// BookingController handles the booking HTTP endpoints.
type BookingController struct {
	service services.BookingService
}

// NewBookingController wires the controller.
func NewBookingController(service services.BookingService) *BookingController {
	return &BookingController{service: service}
}

// CreateBooking handles POST /api/bookings.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req dto.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "start_date must use the format 2006-01-02"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "end_date must use the format 2006-01-02"})
		return
	}

	booking := &domain.Booking{
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		LandlordID:      req.LandlordID,
		StartDate:       start,
		EndDate:         end,
		TotalAmount:     req.TotalAmount,
		SpecialRequests: req.SpecialRequests,
	}

	if err := ctrl.service.CreateBooking(c.Request.Context(), booking); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAvailable),
			errors.Is(err, domain.ErrInvalidDates),
			errors.Is(err, domain.ErrDatesInPast):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "booking rejected", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetAllBookings handles GET /api/bookings.
func (ctrl *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := ctrl.service.GetAllBookings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID handles GET /api/bookings/:id.
func (ctrl *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.service.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingsByTenant handles GET /api/bookings/tenant/:id.
func (ctrl *BookingController) GetBookingsByTenant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.listResponse(c, func() ([]domain.Booking, error) {
		return ctrl.service.GetBookingsByTenant(id)
	})
}

// GetBookingsByLandlord handles GET /api/bookings/landlord/:id.
func (ctrl *BookingController) GetBookingsByLandlord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.listResponse(c, func() ([]domain.Booking, error) {
		return ctrl.service.GetBookingsByLandlord(id)
	})
}

// GetBookingsByProperty handles GET /api/bookings/property/:id.
func (ctrl *BookingController) GetBookingsByProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.listResponse(c, func() ([]domain.Booking, error) {
		return ctrl.service.GetBookingsByProperty(id)
	})
}

// GetBookingsByStatus handles GET /api/bookings/status/:status.
func (ctrl *BookingController) GetBookingsByStatus(c *gin.Context) {
	status, ok := domain.ParseStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "unknown booking status"})
		return
	}
	ctrl.listResponse(c, func() ([]domain.Booking, error) {
		return ctrl.service.GetBookingsByStatus(status)
	})
}

// CheckAvailability handles GET /api/bookings/property/:id/availability.
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "startDate must use the format 2006-01-02"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "endDate must use the format 2006-01-02"})
		return
	}

	available, err := ctrl.service.IsPropertyAvailable(id, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDates) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// GetActiveBookings handles GET /api/bookings/property/:id/active.
func (ctrl *BookingController) GetActiveBookings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.listResponse(c, func() ([]domain.Booking, error) {
		return ctrl.service.GetActiveBookingsForProperty(id)
	})
}

// UpdateStatus handles PUT /api/bookings/:id/status with ?status=.
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	status, ok := domain.ParseStatus(c.Query("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "unknown booking status"})
		return
	}
	ctrl.transitionResponse(c, func() (*domain.Booking, error) {
		return ctrl.service.UpdateStatus(id, status)
	})
}

// ConfirmBooking handles PUT /api/bookings/:id/confirm.
func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.transitionResponse(c, func() (*domain.Booking, error) {
		return ctrl.service.ConfirmBooking(id)
	})
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.transitionResponse(c, func() (*domain.Booking, error) {
		return ctrl.service.CancelBooking(id)
	})
}

// RejectBooking handles PUT /api/bookings/:id/reject.
func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.transitionResponse(c, func() (*domain.Booking, error) {
		return ctrl.service.RejectBooking(id)
	})
}

// HealthCheck handles GET /health.
func (ctrl *BookingController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "bookings-api"})
}

func (ctrl *BookingController) listResponse(c *gin.Context, fetch func() ([]domain.Booking, error)) {
	bookings, err := fetch()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) transitionResponse(c *gin.Context, apply func() (*domain.Booking, error)) {
	booking, err := apply()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid transition", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request", Message: "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
