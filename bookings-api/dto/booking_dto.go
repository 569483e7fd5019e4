package dto

// BookingCreateRequest is the payload for creating a booking. Dates use the
// 2006-01-02 wire format and are parsed by the controller.
type BookingCreateRequest struct {
	PropertyID      uint    `json:"property_id" binding:"required"`
	TenantID        uint    `json:"tenant_id" binding:"required"`
	LandlordID      uint    `json:"landlord_id" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	TotalAmount     float64 `json:"total_amount" binding:"required,gt=0"`
	SpecialRequests string  `json:"special_requests"`
}

// ErrorResponse is the error envelope shared by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
