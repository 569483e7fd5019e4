package dto

import "roomrental/properties-api/domain"

// SearchResponse is the paginated result of a property search.
type SearchResponse struct {
	Results      []domain.Property `json:"results"`
	TotalResults int               `json:"total_results"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
}

// ErrorResponse is the error envelope for search endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
