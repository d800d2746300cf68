package dto

import "github.com/examhub-lk/examhub-api/internal/models"

// SearchRequest carries the query parameters of the document search endpoint.
// Limit and Offset are nil when the caller omitted them.
type SearchRequest struct {
	Query        string `json:"query" validate:"max=200"`
	Subject      string `json:"subject" validate:"omitempty,subject"`
	Medium       string `json:"medium" validate:"omitempty,oneof=sinhala english tamil"`
	DocumentType string `json:"documentType" validate:"omitempty,oneof=book short_note paper"`
	SortBy       string `json:"sortBy" validate:"omitempty,oneof=newest downloads upvotes title-asc title-desc"`
	Limit        *int   `json:"limit" validate:"omitempty,min=1,max=50"`
	Offset       *int   `json:"offset" validate:"omitempty,min=0"`
}

// SearchPage is the data payload of a search response.
type SearchPage struct {
	Items   []models.SearchResult `json:"items"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	HasMore bool                  `json:"hasMore"`
}
