package dto

import "github.com/examhub-lk/examhub-api/internal/models"

// FailedSearchListRequest captures admin listing parameters.
type FailedSearchListRequest struct {
	MinCount int    `json:"minCount" validate:"min=0"`
	Search   string `json:"search" validate:"max=200"`
	Limit    int    `json:"limit" validate:"min=0,max=200"`
	Offset   int    `json:"offset" validate:"min=0"`
}

// FailedSearchPage is the data payload of the admin listing.
type FailedSearchPage struct {
	Items   []models.FailedSearch `json:"items"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	HasMore bool                  `json:"hasMore"`
}
