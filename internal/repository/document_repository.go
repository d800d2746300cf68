package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/examhub-lk/examhub-api/internal/models"
)

// DefaultSearchProcedure is the stored procedure used for full-text search.
const DefaultSearchProcedure = "search_documents"

// undefinedFunction is the SQLSTATE for a missing function or a signature mismatch.
const undefinedFunction pq.ErrorCode = "42883"

// ErrProcedureMissing marks a search procedure that is not installed in the database.
var ErrProcedureMissing = errors.New("search procedure missing")

var procedureName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var documentSorts = map[models.SortOption]string{
	models.SortNewest:    "d.created_at DESC",
	models.SortDownloads: "d.downloads DESC",
	models.SortUpvotes:   "d.upvotes DESC",
	models.SortTitleAsc:  "d.title ASC",
	models.SortTitleDesc: "d.title DESC",
}

const documentColumns = `d.id, d.title, d.subject, d.medium, d.type, d.upvotes, d.downvotes, d.views, d.downloads, d.created_at, d.file_path, d.uploader_id,
        p.full_name AS uploader_full_name, p.username AS uploader_username, p.avatar_url AS uploader_avatar_url`

// DocumentRepository reads approved documents for search and listing.
type DocumentRepository struct {
	db        *sqlx.DB
	procedure string
}

// NewDocumentRepository creates a repository. An empty or malformed procedure name falls back to
// DefaultSearchProcedure.
func NewDocumentRepository(db *sqlx.DB, procedure string) *DocumentRepository {
	if !procedureName.MatchString(procedure) {
		procedure = DefaultSearchProcedure
	}
	return &DocumentRepository{db: db, procedure: procedure}
}

// SearchProcedure runs the server-side search procedure. Its rows are already restricted to
// approved documents and ordered by the requested sort.
func (r *DocumentRepository) SearchProcedure(ctx context.Context, filter models.SearchFilter) ([]models.DocumentSearchRow, error) {
	query := fmt.Sprintf(`SELECT id, title, subject, medium, type, upvotes, downvotes, views, downloads, created_at, file_path, uploader_name, uploader_avatar
        FROM %s($1, $2, $3, $4, $5, $6, $7, $8)`, r.procedure)

	hints := filter.SubjectHints
	if hints == nil {
		hints = []string{}
	}
	args := []interface{}{
		filter.Query,
		nullable(filter.Subject),
		nullable(string(filter.Medium)),
		nullable(string(filter.DocumentType)),
		pq.Array(hints),
		string(filter.Sort),
		filter.Limit,
		filter.Offset,
	}

	var rows []models.DocumentSearchRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedFunction {
			return nil, fmt.Errorf("call %s: %w: %s", r.procedure, ErrProcedureMissing, pqErr.Message)
		}
		return nil, fmt.Errorf("call %s: %w", r.procedure, err)
	}
	return rows, nil
}

// FindApproved composes a filtered query over approved documents and returns one page plus the
// exact number of matching rows.
func (r *DocumentRepository) FindApproved(ctx context.Context, filter models.SearchFilter) ([]models.DocumentRow, int, error) {
	where, args := approvedConditions(filter)

	orderBy, ok := documentSorts[filter.Sort]
	if !ok {
		orderBy = documentSorts[models.SortDownloads]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s\n        FROM documents d LEFT JOIN profiles p ON p.id = d.uploader_id WHERE %s ORDER BY %s, d.id ASC LIMIT %d OFFSET %d",
		documentColumns, where, orderBy, limit, offset)
	var rows []models.DocumentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list approved documents: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM documents d WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count approved documents: %w", err)
	}

	return rows, total, nil
}

func approvedConditions(filter models.SearchFilter) (string, []interface{}) {
	conditions := []string{"d.status = $1"}
	args := []interface{}{models.DocumentStatusApproved}

	query := strings.TrimSpace(filter.Query)
	switch {
	case len(filter.LiteratureSubjects) > 0:
		conditions = append(conditions, fmt.Sprintf("d.subject = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.LiteratureSubjects))
	case query != "" && filter.MatchedSubject != "":
		conditions = append(conditions, fmt.Sprintf("(d.title ILIKE $%d OR d.subject = $%d)", len(args)+1, len(args)+2))
		args = append(args, containsPattern(query), filter.MatchedSubject)
	case query != "":
		conditions = append(conditions, fmt.Sprintf("d.title ILIKE $%d", len(args)+1))
		args = append(args, containsPattern(query))
	}

	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("d.subject = $%d", len(args)+1))
		args = append(args, filter.Subject)
	}
	if filter.Medium != "" {
		conditions = append(conditions, fmt.Sprintf("d.medium = $%d", len(args)+1))
		args = append(args, filter.Medium)
	}
	if filter.DocumentType != "" {
		conditions = append(conditions, fmt.Sprintf("d.type = $%d", len(args)+1))
		args = append(args, filter.DocumentType)
	}

	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches value literally anywhere in the column.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
