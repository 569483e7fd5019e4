package services

import (
	"roomrental/properties-api/domain"
	"roomrental/properties-api/dto"
	"roomrental/properties-api/publishers"
	"roomrental/properties-api/repositories"

	"github.com/rs/zerolog"
)

// PropertyService holds the property business logic.
type PropertyService interface {
	CreateProperty(req dto.PropertyRequest) (*domain.Property, error)
	GetPropertyByID(id uint) (*domain.Property, error)
	GetAllProperties() ([]domain.Property, error)
	GetPropertiesByLandlord(landlordID uint) ([]domain.Property, error)
	GetAvailableProperties() ([]domain.Property, error)
	SearchProperties(filters dto.SearchFilters, page dto.PageRequest) (*dto.PropertyPage, error)
	UpdateProperty(id uint, req dto.PropertyRequest) (*domain.Property, error)
	UpdateAvailability(id uint, available bool) (*domain.Property, error)
	DeleteProperty(id uint) error
}

type propertyService struct {
	repo      repositories.PropertyRepository
	publisher publishers.PropertyPublisher
	logger    zerolog.Logger
}

// NewPropertyService wires the service with its repository and event
// publisher.
func NewPropertyService(repo repositories.PropertyRepository, publisher publishers.PropertyPublisher, logger zerolog.Logger) PropertyService {
	return &propertyService{repo: repo, publisher: publisher, logger: logger}
}

// publishEvent notifies the search index. Best effort: the write already
// happened, a lost event only delays the derived view.
func (s *propertyService) publishEvent(action string, propertyID uint) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(action, propertyID); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Uint("property_id", propertyID).
			Msg("failed to publish property event")
	}
}

func (s *propertyService) CreateProperty(req dto.PropertyRequest) (*domain.Property, error) {
	property := &domain.Property{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		PricePerMonth: req.PricePerMonth,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		AreaSqft:      req.AreaSqft,
		LandlordID:    req.LandlordID,
		Available:     true,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Amenities:     req.Amenities,
		ImageURLs:     req.ImageURLs,
	}
	if req.PropertyType != "" {
		if parsed, ok := domain.ParsePropertyType(req.PropertyType); ok {
			property.PropertyType = parsed
		}
	}

	if err := s.repo.Create(property); err != nil {
		return nil, err
	}

	s.publishEvent("create", property.ID)
	return property, nil
}

func (s *propertyService) GetPropertyByID(id uint) (*domain.Property, error) {
	return s.repo.GetByID(id)
}

func (s *propertyService) GetAllProperties() ([]domain.Property, error) {
	return s.repo.GetAll()
}

func (s *propertyService) GetPropertiesByLandlord(landlordID uint) ([]domain.Property, error) {
	return s.repo.GetByLandlord(landlordID)
}

func (s *propertyService) GetAvailableProperties() ([]domain.Property, error) {
	return s.repo.GetAvailable()
}

// SearchProperties applies defaults (page 0, size 10, newest first) and
// returns one page of available properties.
func (s *propertyService) SearchProperties(filters dto.SearchFilters, page dto.PageRequest) (*dto.PropertyPage, error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size < 1 {
		page.Size = 10
	}
	if page.SortBy == "" {
		page.SortBy = "createdAt"
	}
	if page.SortDir == "" {
		page.SortDir = "desc"
	}

	properties, total, err := s.repo.Search(filters, page)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))

	return &dto.PropertyPage{
		Content:       properties,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

func (s *propertyService) UpdateProperty(id uint, req dto.PropertyRequest) (*domain.Property, error) {
	property, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	property.Title = req.Title
	property.Description = req.Description
	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	property.Country = req.Country
	property.PricePerMonth = req.PricePerMonth
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.AreaSqft = req.AreaSqft
	property.Latitude = req.Latitude
	property.Longitude = req.Longitude
	if req.PropertyType != "" {
		if parsed, ok := domain.ParsePropertyType(req.PropertyType); ok {
			property.PropertyType = parsed
		}
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.ImageURLs != nil {
		property.ImageURLs = req.ImageURLs
	}

	if err := s.repo.Update(property); err != nil {
		return nil, err
	}

	s.publishEvent("update", property.ID)
	return property, nil
}

func (s *propertyService) UpdateAvailability(id uint, available bool) (*domain.Property, error) {
	property, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	property.Available = available
	if err := s.repo.Update(property); err != nil {
		return nil, err
	}

	s.publishEvent("update", property.ID)
	return property, nil
}

func (s *propertyService) DeleteProperty(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("delete", id)
	return nil
}
