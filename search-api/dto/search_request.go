package dto

// SearchRequest carries the query parameters of a search. Zero values mean
// the filter is absent; defaults are applied by the service.
type SearchRequest struct {
	Query     string  `json:"query"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
	Page      int     `json:"page"`
	PageSize  int     `json:"page_size"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}
