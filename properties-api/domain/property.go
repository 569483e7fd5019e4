package domain

import (
	"strings"
	"time"
)

// PropertyType classifies a rentable unit.
type PropertyType string

const (
	TypeApartment PropertyType = "APARTMENT"
	TypeHouse     PropertyType = "HOUSE"
	TypeCondo     PropertyType = "CONDO"
	TypeStudio    PropertyType = "STUDIO"
	TypeRoom      PropertyType = "ROOM"
)

// ParsePropertyType maps a raw string to a PropertyType, case-insensitively.
func ParsePropertyType(raw string) (PropertyType, bool) {
	switch PropertyType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypeApartment:
		return TypeApartment, true
	case TypeHouse:
		return TypeHouse, true
	case TypeCondo:
		return TypeCondo, true
	case TypeStudio:
		return TypeStudio, true
	case TypeRoom:
		return TypeRoom, true
	}
	return "", false
}

// Property is a rentable unit listed by a landlord. Amenities and image
// URLs are stored as JSON columns.
type Property struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Address       string       `gorm:"not null" json:"address"`
	City          string       `gorm:"not null;index" json:"city"`
	State         string       `gorm:"not null" json:"state"`
	ZipCode       string       `gorm:"not null" json:"zip_code"`
	Country       string       `gorm:"not null" json:"country"`
	PricePerMonth float64      `gorm:"not null" json:"price_per_month"`
	Bedrooms      int          `gorm:"not null" json:"bedrooms"`
	Bathrooms     int          `gorm:"not null" json:"bathrooms"`
	AreaSqft      int          `gorm:"not null" json:"area_sqft"`
	PropertyType  PropertyType `gorm:"type:varchar(20)" json:"property_type"`
	LandlordID    uint         `gorm:"not null;index" json:"landlord_id"`
	Available     bool         `gorm:"default:true" json:"available"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Amenities     []string     `gorm:"serializer:json" json:"amenities"`
	ImageURLs     []string     `gorm:"serializer:json" json:"image_urls"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName sets the MySQL table name.
func (Property) TableName() string {
	return "properties"
}
