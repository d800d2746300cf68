package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/examhub-lk/examhub-api/internal/models"
)

const maxFailedSearchRows = 5000

// FailedSearchRepository persists zero-result search aggregates.
type FailedSearchRepository struct {
	db *sqlx.DB
}

// NewFailedSearchRepository creates a repository.
func NewFailedSearchRepository(db *sqlx.DB) *FailedSearchRepository {
	return &FailedSearchRepository{db: db}
}

// Upsert inserts an aggregate for the normalized query or increments the existing one in a single
// statement, so concurrent misses for the same key never produce two rows. It returns the count
// after the write.
func (r *FailedSearchRepository) Upsert(ctx context.Context, item *models.FailedSearch) (int, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.LastSearchedAt.IsZero() {
		item.LastSearchedAt = time.Now().UTC()
	}

	var filters interface{}
	if len(item.Filters) > 0 {
		filters = string(item.Filters)
	}

	const query = `INSERT INTO failed_searches (id, query, normalized_query, filters, search_count, last_searched_at, created_at)
        VALUES ($1, $2, $3, $4::jsonb, 1, $5, $5)
        ON CONFLICT (normalized_query) DO UPDATE SET
            query = EXCLUDED.query,
            filters = EXCLUDED.filters,
            search_count = failed_searches.search_count + 1,
            last_searched_at = EXCLUDED.last_searched_at
        RETURNING search_count`

	var count int
	if err := r.db.GetContext(ctx, &count, query, item.ID, item.Query, item.NormalizedQuery, filters, item.LastSearchedAt); err != nil {
		return 0, fmt.Errorf("upsert failed search: %w", err)
	}
	item.SearchCount = count
	return count, nil
}

// List returns aggregates ordered by how often they were searched, with the total match count.
func (r *FailedSearchRepository) List(ctx context.Context, filter models.FailedSearchFilter) ([]models.FailedSearch, int, error) {
	base := "FROM failed_searches WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.MinCount > 0 {
		conditions = append(conditions, fmt.Sprintf("search_count >= $%d", len(args)+1))
		args = append(args, filter.MinCount)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("normalized_query LIKE $%d", len(args)+1))
		args = append(args, containsPattern(filter.Search))
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > maxFailedSearchRows {
		limit = maxFailedSearchRows
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT id, query, normalized_query, filters, search_count, last_searched_at, created_at %s ORDER BY search_count DESC, last_searched_at DESC, id ASC LIMIT %d OFFSET %d", base, limit, offset)
	var items []models.FailedSearch
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list failed searches: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count failed searches: %w", err)
	}

	return items, total, nil
}

// Delete removes an aggregate. It returns sql.ErrNoRows when the id is unknown.
func (r *FailedSearchRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM failed_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete failed search: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete failed search rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PruneBefore deletes aggregates last searched before the cutoff and reports how many were removed.
func (r *FailedSearchRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM failed_searches WHERE last_searched_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune failed searches: %w", err)
	}
	return res.RowsAffected()
}
