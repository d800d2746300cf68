package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhub-lk/examhub-api/internal/models"
)

func newDocumentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var documentRowColumns = []string{"id", "title", "subject", "medium", "type", "upvotes", "downvotes", "views", "downloads", "created_at", "file_path", "uploader_id", "uploader_full_name", "uploader_username", "uploader_avatar_url"}

const selectApproved = "SELECT d.id, d.title, d.subject, d.medium, d.type, d.upvotes, d.downvotes, d.views, d.downloads, d.created_at, d.file_path, d.uploader_id,\n        p.full_name AS uploader_full_name, p.username AS uploader_username, p.avatar_url AS uploader_avatar_url\n        FROM documents d LEFT JOIN profiles p ON p.id = d.uploader_id WHERE "

func TestDocumentRepositorySearchProcedure(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "subject", "medium", "type", "upvotes", "downvotes", "views", "downloads", "created_at", "file_path", "uploader_name", "uploader_avatar"}).
		AddRow("doc-1", "Maths 2020", "mathematics", "english", "paper", 4, 1, 30, 12, now, "docs/doc-1.pdf", "Nimal", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM search_documents($1, $2, $3, $4, $5, $6, $7, $8)")).
		WithArgs("maths", nil, "english", nil, pq.Array([]string{"mathematics"}), "downloads", 20, 0).
		WillReturnRows(rows)

	result, err := repo.SearchProcedure(context.Background(), models.SearchFilter{
		Query:        "maths",
		SubjectHints: []string{"mathematics"},
		Medium:       models.MediumEnglish,
		Sort:         models.SortDownloads,
		Limit:        20,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Nimal", result[0].UploaderName.String)
	assert.False(t, result[0].UploaderAvatar.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositorySearchProcedureError(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "custom_search")

	mock.ExpectQuery(regexp.QuoteMeta("FROM custom_search(")).
		WillReturnError(errors.New(`function custom_search does not exist`))

	_, err := repo.SearchProcedure(context.Background(), models.SearchFilter{Query: "x", Limit: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call custom_search")
	assert.False(t, errors.Is(err, ErrProcedureMissing))
}

func TestDocumentRepositorySearchProcedureMissing(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	mock.ExpectQuery(regexp.QuoteMeta("FROM search_documents(")).
		WillReturnError(&pq.Error{Code: "42883", Message: "function search_documents(text) does not exist"})

	_, err := repo.SearchProcedure(context.Background(), models.SearchFilter{Query: "x", Limit: 20})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcedureMissing))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestNewDocumentRepositoryRejectsUnsafeProcedure(t *testing.T) {
	repo := NewDocumentRepository(nil, "search_documents(); DROP TABLE documents; --")
	assert.Equal(t, DefaultSearchProcedure, repo.procedure)
}

func TestDocumentRepositoryFindApprovedWithMatchedSubject(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("doc-1", "Mathematics past papers 2019", "mathematics", "sinhala", "paper", 2, 0, 10, 50, time.Now(), "docs/doc-1.pdf", nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectApproved+"d.status = $1 AND (d.title ILIKE $2 OR d.subject = $3) ORDER BY d.downloads DESC, d.id ASC LIMIT 20 OFFSET 0")).
		WithArgs(models.DocumentStatusApproved, "%mathematics past papers%", "mathematics").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents d WHERE d.status = $1 AND (d.title ILIKE $2 OR d.subject = $3)")).
		WithArgs(models.DocumentStatusApproved, "%mathematics past papers%", "mathematics").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	result, total, err := repo.FindApproved(context.Background(), models.SearchFilter{
		Query:          "mathematics past papers",
		MatchedSubject: "mathematics",
		Sort:           models.SortDownloads,
		Limit:          20,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 1, total)
	assert.False(t, result[0].UploaderID.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryFindApprovedLiteratureScope(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	literature := []string{"english_literary_texts", "sinhala_language_literature"}
	mock.ExpectQuery(regexp.QuoteMeta(selectApproved+"d.status = $1 AND d.subject = ANY($2) AND d.medium = $3 ORDER BY d.title ASC, d.id ASC LIMIT 10 OFFSET 10")).
		WithArgs(models.DocumentStatusApproved, pq.Array(literature), models.MediumSinhala).
		WillReturnRows(sqlmock.NewRows(documentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents d WHERE d.status = $1 AND d.subject = ANY($2) AND d.medium = $3")).
		WithArgs(models.DocumentStatusApproved, pq.Array(literature), models.MediumSinhala).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, total, err := repo.FindApproved(context.Background(), models.SearchFilter{
		Query:              "sinhala literature",
		LiteratureSubjects: literature,
		Medium:             models.MediumSinhala,
		Sort:               models.SortTitleAsc,
		Limit:              10,
		Offset:             10,
	})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryFindApprovedListing(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	mock.ExpectQuery(regexp.QuoteMeta(selectApproved+"d.status = $1 AND d.subject = $2 AND d.type = $3 ORDER BY d.created_at DESC, d.id ASC LIMIT 20 OFFSET 0")).
		WithArgs(models.DocumentStatusApproved, "english", models.DocumentTypeBook).
		WillReturnRows(sqlmock.NewRows(documentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents d WHERE d.status = $1 AND d.subject = $2 AND d.type = $3")).
		WithArgs(models.DocumentStatusApproved, "english", models.DocumentTypeBook).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.FindApproved(context.Background(), models.SearchFilter{
		Subject:      "english",
		DocumentType: models.DocumentTypeBook,
		Sort:         models.SortNewest,
		Limit:        20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryFindApprovedCountError(t *testing.T) {
	db, mock, cleanup := newDocumentMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db, "")

	mock.ExpectQuery("FROM documents d LEFT JOIN profiles").WillReturnRows(sqlmock.NewRows(documentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents d")).WillReturnError(errors.New("connection reset"))

	_, _, err := repo.FindApproved(context.Background(), models.SearchFilter{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count approved documents")
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\% pass%`, containsPattern("100% pass"))
	assert.Equal(t, `%nonexistent\_xyz%`, containsPattern("nonexistent_xyz"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
