package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/dto"
	"github.com/examhub-lk/examhub-api/internal/models"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
	"github.com/examhub-lk/examhub-api/pkg/export"
	"github.com/examhub-lk/examhub-api/pkg/textnorm"
)

const (
	defaultFailedSearchLimit = 50
	maxFailedSearchExport    = 5000
)

type failedSearchRepository interface {
	List(ctx context.Context, filter models.FailedSearchFilter) ([]models.FailedSearch, int, error)
	Delete(ctx context.Context, id string) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// FailedSearchService exposes recorded zero-result searches for review.
type FailedSearchService struct {
	repo      failedSearchRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFailedSearchService constructs a FailedSearchService.
func NewFailedSearchService(repo failedSearchRepository, validate *validator.Validate, logger *zap.Logger) *FailedSearchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FailedSearchService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// List returns aggregates, most searched first.
func (s *FailedSearchService) List(ctx context.Context, req dto.FailedSearchListRequest) (*dto.FailedSearchPage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, validationMessage(err))
	}
	if req.Limit == 0 {
		req.Limit = defaultFailedSearchLimit
	}

	items, total, err := s.repo.List(ctx, models.FailedSearchFilter{
		MinCount: req.MinCount,
		Search:   textnorm.Normalize(req.Search),
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to list failed searches")
	}
	if items == nil {
		items = []models.FailedSearch{}
	}
	return &dto.FailedSearchPage{
		Items:   items,
		Total:   total,
		Page:    pageNumber(req.Limit, req.Offset),
		Limit:   req.Limit,
		HasMore: req.Offset+req.Limit < total,
	}, nil
}

// Export renders every aggregate matching req as a report in the given format.
func (s *FailedSearchService) Export(ctx context.Context, format export.Format, req dto.FailedSearchListRequest) ([]byte, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, validationMessage(err))
	}
	items, _, err := s.repo.List(ctx, models.FailedSearchFilter{
		MinCount: req.MinCount,
		Search:   textnorm.Normalize(req.Search),
		Limit:    maxFailedSearchExport,
	})
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load failed searches")
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Failed searches (%s)", s.now().UTC().Format("2006-01-02")),
		Headers: []string{"Query", "Normalized", "Count", "Filters", "Last searched", "First seen"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Query":         item.Query,
			"Normalized":    item.NormalizedQuery,
			"Count":         strconv.Itoa(item.SearchCount),
			"Filters":       describeFilters(item.Filters),
			"Last searched": item.LastSearchedAt.UTC().Format(time.RFC3339),
			"First seen":    item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	out, err := export.Render(format, dataset)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render export")
	}
	return out, nil
}

// Dismiss deletes a reviewed aggregate.
func (s *FailedSearchService) Dismiss(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "failed search not found")
		}
		return appErrors.WrapAs(appErrors.ErrInternal, err, "failed to delete failed search")
	}
	return nil
}

// Prune removes aggregates not searched within retention.
func (s *FailedSearchService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-retention)
	removed, err := s.repo.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune failed searches: %w", err)
	}
	s.logger.Info("pruned failed searches", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
	return removed, nil
}

func describeFilters(raw models.RawJSON) string {
	if len(raw) == 0 {
		return ""
	}
	var filters models.FailedSearchFilters
	if err := json.Unmarshal(raw, &filters); err != nil {
		return string(raw)
	}
	var parts []string
	if filters.Subject != "" {
		parts = append(parts, "subject="+filters.Subject)
	}
	if filters.Medium != "" {
		parts = append(parts, "medium="+filters.Medium)
	}
	if filters.DocumentType != "" {
		parts = append(parts, "type="+filters.DocumentType)
	}
	if filters.SortBy != "" {
		parts = append(parts, "sort="+filters.SortBy)
	}
	return strings.Join(parts, " ")
}
