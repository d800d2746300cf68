package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/catalog"
	"github.com/examhub-lk/examhub-api/internal/dto"
	"github.com/examhub-lk/examhub-api/internal/models"
	"github.com/examhub-lk/examhub-api/internal/repository"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
	"github.com/examhub-lk/examhub-api/pkg/logger"
)

type documentSearchRepository interface {
	SearchProcedure(ctx context.Context, filter models.SearchFilter) ([]models.DocumentSearchRow, error)
	FindApproved(ctx context.Context, filter models.SearchFilter) ([]models.DocumentRow, int, error)
}

type failedSearchRecorder interface {
	Record(ctx context.Context, query string, filters models.FailedSearchFilters)
}

// SearchConfig tunes the search paths.
type SearchConfig struct {
	RPCEnabled      bool
	PrimaryTimeout  time.Duration
	FallbackTimeout time.Duration
	DefaultLimit    int
	MaxLimit        int
	CacheTTL        time.Duration
}

// SearchInfo describes how a page was produced.
type SearchInfo struct {
	Path     string
	CacheHit bool
}

type cachedSearchPage struct {
	Path string         `json:"path"`
	Page dto.SearchPage `json:"page"`
}

// SearchService composes document search over the search procedure and the filter query fallback.
type SearchService struct {
	repo      documentSearchRepository
	catalog   *catalog.Catalog
	recorder  failedSearchRecorder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    SearchConfig
}

// NewSearchService constructs a SearchService. recorder, cache and metrics may be nil.
func NewSearchService(repo documentSearchRepository, cat *catalog.Catalog, recorder failedSearchRecorder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg SearchConfig) (*SearchService, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 || cfg.MaxLimit > 50 {
		cfg.MaxLimit = 50
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	if err := RegisterSubjectValidation(validate, cat); err != nil {
		return nil, err
	}
	return &SearchService{
		repo:      repo,
		catalog:   cat,
		recorder:  recorder,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}, nil
}

// RegisterSubjectValidation adds the "subject" tag, accepting known catalog ids.
func RegisterSubjectValidation(validate *validator.Validate, cat *catalog.Catalog) error {
	return validate.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return cat.Valid(fl.Field().String())
	})
}

// Search validates the request, serves it from cache when possible and otherwise runs the
// listing, primary or fallback path. Zero-result searches are handed to the recorder.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchPage, SearchInfo, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := s.validator.Struct(req); err != nil {
		return nil, SearchInfo{}, appErrors.WrapAs(appErrors.ErrValidation, err, validationMessage(err))
	}

	limit := s.config.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > s.config.MaxLimit {
		return nil, SearchInfo{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("limit must be between 1 and %d", s.config.MaxLimit))
	}
	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}

	filter := models.SearchFilter{
		Query:        req.Query,
		Subject:      req.Subject,
		Medium:       models.Medium(req.Medium),
		DocumentType: models.DocumentType(req.DocumentType),
		Sort:         models.SortOption(req.SortBy),
		Limit:        limit,
		Offset:       offset,
	}
	if filter.Sort == "" {
		filter.Sort = models.SortDownloads
		if filter.Query == "" {
			filter.Sort = models.SortNewest
		}
	}

	key := searchCacheKey(filter)
	var cached cachedSearchPage
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		info := SearchInfo{Path: cached.Path, CacheHit: true}
		page := cached.Page
		page.Items = nonNil(page.Items)
		s.afterSearch(ctx, req, &page, info)
		return &page, info, nil
	}

	outcome, err := s.run(ctx, filter)
	if err != nil {
		return nil, SearchInfo{}, err
	}

	page := outcome.page(limit, offset)
	info := SearchInfo{Path: outcome.path()}
	// A fallback answer while the procedure is enabled means it just failed; don't pin that
	// page for the whole TTL.
	if info.Path != SearchPathFallback || !s.config.RPCEnabled {
		_ = s.cache.Set(ctx, key, cachedSearchPage{Path: info.Path, Page: *page}, s.config.CacheTTL)
	}
	s.afterSearch(ctx, req, page, info)
	return page, info, nil
}

func (s *SearchService) afterSearch(ctx context.Context, req dto.SearchRequest, page *dto.SearchPage, info SearchInfo) {
	empty := len(page.Items) == 0
	s.metrics.RecordSearch(info.Path, empty)
	if !empty || req.Query == "" || s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, req.Query, models.FailedSearchFilters{
		Subject:      req.Subject,
		Medium:       req.Medium,
		DocumentType: req.DocumentType,
		SortBy:       req.SortBy,
	})
}

func (s *SearchService) run(ctx context.Context, filter models.SearchFilter) (searchOutcome, error) {
	if filter.Query == "" {
		items, total, err := s.findApproved(ctx, filter)
		if err != nil {
			return nil, err
		}
		return fallbackOutcome{items: items, total: total, listing: true}, nil
	}

	literature := s.catalog.IsLiteratureQuery(filter.Query)
	if literature {
		filter.LiteratureSubjects = s.catalog.LiteratureSubjectIDs()
	} else {
		filter.MatchedSubject, _ = s.catalog.ExactMatch(filter.Query)
		filter.SubjectHints = s.catalog.FuzzyMatch(filter.Query)
	}

	if s.config.RPCEnabled {
		items, err := s.searchProcedure(ctx, filter)
		if err == nil {
			if literature {
				items = s.literatureOnly(items)
			}
			return primaryOutcome{items: items}, nil
		}
		s.metrics.RecordSearchFallback()
		logger.WithRequest(ctx, s.logger).Warn("search procedure failed, using fallback query",
			zap.String("query", filter.Query),
			zap.Bool("procedure_missing", errors.Is(err, repository.ErrProcedureMissing)),
			zap.Error(err),
		)
	}

	items, total, err := s.findApproved(ctx, filter)
	if err != nil {
		return nil, err
	}
	return fallbackOutcome{items: items, total: total}, nil
}

func (s *SearchService) searchProcedure(ctx context.Context, filter models.SearchFilter) ([]models.SearchResult, error) {
	ctx, cancel := withTimeout(ctx, s.config.PrimaryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := s.repo.SearchProcedure(ctx, filter)
	s.metrics.ObserveDBQuery("search_procedure", time.Since(start))
	if err != nil {
		return nil, err
	}
	items := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		items = append(items, shapeSearchRow(row))
	}
	return items, nil
}

func (s *SearchService) findApproved(ctx context.Context, filter models.SearchFilter) ([]models.SearchResult, int, error) {
	ctx, cancel := withTimeout(ctx, s.config.FallbackTimeout)
	defer cancel()

	start := time.Now()
	rows, total, err := s.repo.FindApproved(ctx, filter)
	s.metrics.ObserveDBQuery("find_approved", time.Since(start))
	if err != nil {
		logger.WithRequest(ctx, s.logger).Error("document query failed", zap.String("query", filter.Query), zap.Error(err))
		return nil, 0, appErrors.WrapAs(appErrors.ErrSearchUnavailable, err, "")
	}
	items := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		items = append(items, shapeDocumentRow(row))
	}
	return items, total, nil
}

// literatureOnly drops procedure rows outside the literature subjects; the procedure itself has
// no notion of literature queries.
func (s *SearchService) literatureOnly(items []models.SearchResult) []models.SearchResult {
	kept := items[:0]
	for _, item := range items {
		if s.catalog.IsLiterature(item.Subject) {
			kept = append(kept, item)
		}
	}
	return kept
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func searchCacheKey(filter models.SearchFilter) string {
	raw := strings.Join([]string{
		strings.ToLower(filter.Query),
		filter.Subject,
		string(filter.Medium),
		string(filter.DocumentType),
		string(filter.Sort),
		fmt.Sprintf("%d", filter.Limit),
		fmt.Sprintf("%d", filter.Offset),
	}, "\x1f")
	return fmt.Sprintf("search:%016x", xxhash.Sum64String(raw))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.ErrValidation.Message
	}
	field := verrs[0].Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	switch verrs[0].Tag() {
	case "subject":
		return fmt.Sprintf("unknown subject %q", verrs[0].Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, verrs[0].Param())
	case "min", "max":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("invalid %s", field)
	}
}
