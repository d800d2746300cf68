package service

import (
	"strings"

	"github.com/examhub-lk/examhub-api/internal/dto"
	"github.com/examhub-lk/examhub-api/internal/models"
)

// Search paths reported in response metadata and metrics.
const (
	SearchPathPrimary  = "primary"
	SearchPathFallback = "fallback"
	SearchPathListing  = "listing"
)

// searchOutcome is the tagged result of one search path. Each path computes its own pagination:
// the procedure gives no count, so a full page is the only signal that more rows may exist.
type searchOutcome interface {
	path() string
	page(limit, offset int) *dto.SearchPage
}

type primaryOutcome struct {
	items []models.SearchResult
}

func (o primaryOutcome) path() string { return SearchPathPrimary }

func (o primaryOutcome) page(limit, offset int) *dto.SearchPage {
	return &dto.SearchPage{
		Items:   nonNil(o.items),
		Total:   len(o.items),
		Page:    pageNumber(limit, offset),
		Limit:   limit,
		HasMore: len(o.items) == limit,
	}
}

type fallbackOutcome struct {
	items   []models.SearchResult
	total   int
	listing bool
}

func (o fallbackOutcome) path() string {
	if o.listing {
		return SearchPathListing
	}
	return SearchPathFallback
}

func (o fallbackOutcome) page(limit, offset int) *dto.SearchPage {
	return &dto.SearchPage{
		Items:   nonNil(o.items),
		Total:   o.total,
		Page:    pageNumber(limit, offset),
		Limit:   limit,
		HasMore: offset+limit < o.total,
	}
}

func pageNumber(limit, offset int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}

func nonNil(items []models.SearchResult) []models.SearchResult {
	if items == nil {
		return []models.SearchResult{}
	}
	return items
}

// shapeSearchRow converts a search procedure row.
func shapeSearchRow(row models.DocumentSearchRow) models.SearchResult {
	name := models.AnonymousUploader
	if row.UploaderName.Valid && strings.TrimSpace(row.UploaderName.String) != "" {
		name = row.UploaderName.String
	}
	return models.SearchResult{
		ID:             row.ID,
		Title:          row.Title,
		UploaderName:   name,
		UploaderAvatar: optionalString(row.UploaderAvatar.String, row.UploaderAvatar.Valid),
		Subject:        row.Subject,
		Medium:         row.Medium,
		Type:           row.Type,
		Upvotes:        row.Upvotes,
		Downvotes:      row.Downvotes,
		Views:          row.Views,
		Downloads:      row.Downloads,
		CreatedAt:      row.CreatedAt,
		FilePath:       row.FilePath,
	}
}

// shapeDocumentRow converts a documents/profiles join row. A missing profile means the uploader
// was deleted.
func shapeDocumentRow(row models.DocumentRow) models.SearchResult {
	result := models.SearchResult{
		ID:           row.ID,
		Title:        row.Title,
		UploaderName: models.AnonymousUploader,
		Subject:      row.Subject,
		Medium:       row.Medium,
		Type:         row.Type,
		Upvotes:      row.Upvotes,
		Downvotes:    row.Downvotes,
		Views:        row.Views,
		Downloads:    row.Downloads,
		CreatedAt:    row.CreatedAt,
		FilePath:     row.FilePath,
	}
	if !row.UploaderID.Valid {
		return result
	}
	switch {
	case row.UploaderFullName.Valid && strings.TrimSpace(row.UploaderFullName.String) != "":
		result.UploaderName = row.UploaderFullName.String
	case row.UploaderUsername.Valid && strings.TrimSpace(row.UploaderUsername.String) != "":
		result.UploaderName = row.UploaderUsername.String
	}
	result.UploaderAvatar = optionalString(row.UploaderAvatarURL.String, row.UploaderAvatarURL.Valid)
	return result
}

func optionalString(value string, valid bool) *string {
	if !valid || value == "" {
		return nil
	}
	return &value
}
