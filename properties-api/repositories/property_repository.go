package repositories

import (
	"errors"
	"fmt"
	"strings"

	"roomrental/properties-api/domain"
	"roomrental/properties-api/dto"

	"gorm.io/gorm"
)

// ErrPropertyNotFound is returned when a lookup misses.
var ErrPropertyNotFound = errors.New("property not found")

// sortColumns whitelists the sortable fields; keys are the API names.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"pricePerMonth": "price_per_month",
	"bedrooms":      "bedrooms",
	"areaSqft":      "area_sqft",
}

// PropertyRepository is the persistence contract for properties.
type PropertyRepository interface {
	Create(property *domain.Property) error
	GetByID(id uint) (*domain.Property, error)
	GetAll() ([]domain.Property, error)
	GetByLandlord(landlordID uint) ([]domain.Property, error)
	GetAvailable() ([]domain.Property, error)
	Search(filters dto.SearchFilters, page dto.PageRequest) ([]domain.Property, int64, error)
	Update(property *domain.Property) error
	Delete(id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository wires a gorm-backed repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *domain.Property) error {
	return r.db.Create(property).Error
}

func (r *propertyRepository) GetByID(id uint) (*domain.Property, error) {
	var property domain.Property
	err := r.db.First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) GetAll() ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) GetByLandlord(landlordID uint) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.Where("landlord_id = ?", landlordID).Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) GetAvailable() ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.Where("available = ?", true).Find(&properties).Error
	return properties, err
}

// Search applies the optional filters over available properties and returns
// one page plus the total match count. City matches as a case-insensitive
// substring, bedrooms is a minimum, the price bounds are inclusive.
func (r *propertyRepository) Search(filters dto.SearchFilters, page dto.PageRequest) ([]domain.Property, int64, error) {
	query := r.db.Model(&domain.Property{}).Where("available = ?", true)

	if filters.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filters.City)+"%")
	}
	if filters.MinPrice != nil {
		query = query.Where("price_per_month >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price_per_month <= ?", *filters.MaxPrice)
	}
	if filters.Bedrooms != nil {
		query = query.Where("bedrooms >= ?", *filters.Bedrooms)
	}
	if filters.PropertyType != nil {
		query = query.Where("property_type = ?", *filters.PropertyType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(page.SortDir, "asc") {
		direction = "ASC"
	}

	var properties []domain.Property
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func (r *propertyRepository) Update(property *domain.Property) error {
	return r.db.Save(property).Error
}

func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Property{}, id).Error
}
