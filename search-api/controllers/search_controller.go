package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"roomrental/search-api/dto"
	"roomrental/search-api/services"
)

// SearchController handles the search HTTP endpoints.
type SearchController struct {
	service services.SearchService
	logger  zerolog.Logger
}

// NewSearchController wires the controller.
func NewSearchController(service services.SearchService, logger zerolog.Logger) *SearchController {
	return &SearchController{service: service, logger: logger}
}

// Search handles GET /search.
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	request, err := parseSearchRequest(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateSearchRequest(request); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := c.service.Search(r.Context(), *request)
	if err != nil {
		c.logger.Error().Err(err).Msg("search failed")
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, response, http.StatusOK)
}

func parseSearchRequest(r *http.Request) (*dto.SearchRequest, error) {
	query := r.URL.Query()

	request := &dto.SearchRequest{
		Query:     query.Get("query"),
		City:      query.Get("city"),
		Country:   query.Get("country"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	var err error
	if request.MinPrice, err = parseFloatParam(query.Get("min_price"), "min_price"); err != nil {
		return nil, err
	}
	if request.MaxPrice, err = parseFloatParam(query.Get("max_price"), "max_price"); err != nil {
		return nil, err
	}
	if request.Bedrooms, err = parseIntParam(query.Get("bedrooms"), "bedrooms"); err != nil {
		return nil, err
	}
	if request.Bathrooms, err = parseIntParam(query.Get("bathrooms"), "bathrooms"); err != nil {
		return nil, err
	}
	if request.Page, err = parseIntParam(query.Get("page"), "page"); err != nil {
		return nil, err
	}
	if request.PageSize, err = parseIntParam(query.Get("page_size"), "page_size"); err != nil {
		return nil, err
	}

	return request, nil
}

func parseFloatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return value, nil
}

func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

func validateSearchRequest(request *dto.SearchRequest) error {
	if request.Page < 0 {
		return fmt.Errorf("page must be >= 1")
	}
	if request.PageSize > 100 {
		return fmt.Errorf("page_size must be <= 100")
	}
	if request.SortOrder != "" && request.SortOrder != "asc" && request.SortOrder != "desc" {
		return fmt.Errorf("sort_order must be 'asc' or 'desc'")
	}
	if request.MinPrice < 0 || request.MaxPrice < 0 {
		return fmt.Errorf("price bounds cannot be negative")
	}
	if request.MinPrice > 0 && request.MaxPrice > 0 && request.MinPrice > request.MaxPrice {
		return fmt.Errorf("min_price cannot be greater than max_price")
	}
	if request.Bedrooms < 0 || request.Bathrooms < 0 {
		return fmt.Errorf("bedrooms and bathrooms cannot be negative")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, dto.ErrorResponse{Error: message, Code: statusCode}, statusCode)
}
