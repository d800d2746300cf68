package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/models"
	"github.com/examhub-lk/examhub-api/pkg/jobs"
	"github.com/examhub-lk/examhub-api/pkg/logger"
	"github.com/examhub-lk/examhub-api/pkg/textnorm"
)

// FailedSearchJobType tags recorder jobs on the queue.
const FailedSearchJobType = "failed_search.record"

type failedSearchUpserter interface {
	Upsert(ctx context.Context, item *models.FailedSearch) (int, error)
}

type jobDispatcher interface {
	Started() bool
	TryEnqueue(job jobs.Job) error
}

// FailedSearchRecorder counts zero-result searches per normalized query. Recording never blocks
// or fails the search that triggered it.
type FailedSearchRecorder struct {
	repo    failedSearchUpserter
	queue   jobDispatcher
	metrics *MetricsService
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewFailedSearchRecorder constructs a recorder. Each write is bounded by timeout.
func NewFailedSearchRecorder(repo failedSearchUpserter, metrics *MetricsService, logger *zap.Logger, timeout time.Duration) *FailedSearchRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &FailedSearchRecorder{repo: repo, metrics: metrics, logger: logger, timeout: timeout, now: time.Now}
}

// UseQueue makes Record dispatch onto queue instead of writing inline.
func (r *FailedSearchRecorder) UseQueue(queue jobDispatcher) {
	r.queue = queue
}

// Record schedules an upsert for query. Queries that normalize to nothing are ignored.
func (r *FailedSearchRecorder) Record(ctx context.Context, query string, filters models.FailedSearchFilters) {
	item, ok := r.build(query, filters)
	if !ok {
		r.metrics.RecordFailedSearch("skipped")
		return
	}

	if r.queue != nil && r.queue.Started() {
		err := r.queue.TryEnqueue(jobs.Job{ID: item.ID, Type: FailedSearchJobType, Payload: item})
		if err == nil {
			return
		}
		r.metrics.RecordFailedSearch("dropped")
		logger.WithRequest(ctx, r.logger).Warn("failed search not queued", zap.String("normalized_query", item.NormalizedQuery), zap.Error(err))
		return
	}

	if err := r.persist(ctx, item); err != nil {
		logger.WithRequest(ctx, r.logger).Warn("record failed search", zap.String("normalized_query", item.NormalizedQuery), zap.Error(err))
	}
}

// HandleJob is the queue handler. Returned errors make the queue retry.
func (r *FailedSearchRecorder) HandleJob(ctx context.Context, job jobs.Job) error {
	item, ok := job.Payload.(*models.FailedSearch)
	if !ok || item == nil {
		r.logger.Error("unexpected failed search payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	return r.persist(ctx, item)
}

func (r *FailedSearchRecorder) persist(ctx context.Context, item *models.FailedSearch) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	// Retries reuse the payload; the upsert sets search_count itself.
	record := *item
	count, err := r.repo.Upsert(ctx, &record)
	if err != nil {
		r.metrics.RecordFailedSearch("error")
		return err
	}
	r.metrics.RecordFailedSearch("recorded")
	r.logger.Debug("failed search recorded",
		zap.String("normalized_query", record.NormalizedQuery),
		zap.Int("search_count", count),
	)
	return nil
}

func (r *FailedSearchRecorder) build(query string, filters models.FailedSearchFilters) (*models.FailedSearch, bool) {
	normalized := textnorm.Normalize(query)
	if normalized == "" {
		return nil, false
	}
	item := &models.FailedSearch{
		ID:              uuid.NewString(),
		Query:           query,
		NormalizedQuery: normalized,
		LastSearchedAt:  r.now().UTC(),
	}
	if !filters.IsZero() {
		if raw, err := json.Marshal(filters); err == nil {
			item.Filters = raw
		}
	}
	return item, true
}
