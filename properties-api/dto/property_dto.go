package dto

import "roomrental/properties-api/domain"

// PropertyRequest is the payload for creating or updating a property.
type PropertyRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state" binding:"required"`
	ZipCode       string   `json:"zip_code" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	PricePerMonth float64  `json:"price_per_month" binding:"min=0"`
	Bedrooms      int      `json:"bedrooms" binding:"min=0"`
	Bathrooms     int      `json:"bathrooms" binding:"min=0"`
	AreaSqft      int      `json:"area_sqft" binding:"min=0"`
	PropertyType  string   `json:"property_type"`
	LandlordID    uint     `json:"landlord_id" binding:"required"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Amenities     []string `json:"amenities"`
	ImageURLs     []string `json:"image_urls"`
}

// SearchFilters carries the optional search criteria. Nil means the filter
// is absent and matches everything.
type SearchFilters struct {
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	PropertyType *domain.PropertyType
}

// PageRequest is zero-indexed pagination plus sorting.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// PropertyPage is the paged search response envelope.
type PropertyPage struct {
	Content       []domain.Property `json:"content"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
}

// ErrorResponse is the error envelope shared by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
