package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"roomrental/properties-api/domain"
	"roomrental/search-api/dto"
	"roomrental/search-api/repositories"
)

// SearchService runs cached searches against the index and keeps the
// index in sync with the properties catalog.
type SearchService interface {
	Search(ctx context.Context, request dto.SearchRequest) (*dto.SearchResponse, error)
	IndexProperty(ctx context.Context, property domain.Property) error
	DeleteProperty(ctx context.Context, propertyID uint) error
	FetchPropertyFromAPI(ctx context.Context, propertyID uint) (*domain.Property, error)
}

type searchService struct {
	indexRepo        repositories.IndexRepository
	cacheRepo        repositories.CacheRepository
	propertiesAPIURL string
	httpClient       *http.Client
	logger           zerolog.Logger
}

// NewSearchService wires the service.
func NewSearchService(indexRepo repositories.IndexRepository, cacheRepo repositories.CacheRepository, propertiesAPIURL string, logger zerolog.Logger) SearchService {
	return &searchService{
		indexRepo:        indexRepo,
		cacheRepo:        cacheRepo,
		propertiesAPIURL: strings.TrimSuffix(propertiesAPIURL, "/"),
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		logger:           logger,
	}
}

// cacheKey hashes the normalized request so equal searches share a key.
func cacheKey(request dto.SearchRequest) string {
	raw := fmt.Sprintf("q:%s|city:%s|country:%s|min:%.2f|max:%.2f|bed:%d|bath:%d|page:%d|size:%d|sort:%s:%s",
		request.Query, request.City, request.Country,
		request.MinPrice, request.MaxPrice,
		request.Bedrooms, request.Bathrooms,
		request.Page, request.PageSize,
		request.SortBy, request.SortOrder)
	return fmt.Sprintf("search:%x", md5.Sum([]byte(raw)))
}

func applyDefaults(request *dto.SearchRequest) {
	if request.Page < 1 {
		request.Page = 1
	}
	if request.PageSize < 1 {
		request.PageSize = 10
	}
	if request.SortBy == "" {
		request.SortBy = "price_per_month"
	}
	if request.SortOrder == "" {
		request.SortOrder = "asc"
	}
}

func (s *searchService) Search(ctx context.Context, request dto.SearchRequest) (*dto.SearchResponse, error) {
	applyDefaults(&request)

	key := cacheKey(request)
	if properties, total, found := s.cacheRepo.Get(key); found {
		return buildResponse(request, properties, total), nil
	}

	properties, total, err := s.indexRepo.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	s.cacheRepo.Set(key, properties, total)
	s.logger.Debug().Str("key", key).Int("results", len(properties)).Msg("search results cached")

	return buildResponse(request, properties, total), nil
}

func buildResponse(request dto.SearchRequest, properties []domain.Property, total int) *dto.SearchResponse {
	totalPages := (total + request.PageSize - 1) / request.PageSize
	return &dto.SearchResponse{
		Results:      properties,
		TotalResults: total,
		Page:         request.Page,
		PageSize:     request.PageSize,
		TotalPages:   totalPages,
	}
}

func (s *searchService) IndexProperty(ctx context.Context, property domain.Property) error {
	if property.ID == 0 {
		return fmt.Errorf("property id cannot be zero")
	}
	if err := s.indexRepo.Index(ctx, property); err != nil {
		return err
	}

	// Cached result pages may now be stale.
	s.cacheRepo.Flush()
	s.logger.Info().Uint("property_id", property.ID).Msg("property indexed")
	return nil
}

func (s *searchService) DeleteProperty(ctx context.Context, propertyID uint) error {
	if propertyID == 0 {
		return fmt.Errorf("property id cannot be zero")
	}
	if err := s.indexRepo.Delete(ctx, propertyID); err != nil {
		return err
	}

	s.cacheRepo.Flush()
	s.logger.Info().Uint("property_id", propertyID).Msg("property removed from index")
	return nil
}

// FetchPropertyFromAPI pulls the current state of a property from the
// properties service.
func (s *searchService) FetchPropertyFromAPI(ctx context.Context, propertyID uint) (*domain.Property, error) {
	url := fmt.Sprintf("%s/api/properties/%d", s.propertiesAPIURL, propertyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property %d: %w", propertyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("properties API returned status %d: %s", resp.StatusCode, string(body))
	}

	var property domain.Property
	if err := json.NewDecoder(resp.Body).Decode(&property); err != nil {
		return nil, fmt.Errorf("failed to decode property %d: %w", propertyID, err)
	}
	return &property, nil
}
