package models

import (
	"database/sql"
	"time"
)

// DocumentType categorises what kind of study material a document is.
type DocumentType string

const (
	DocumentTypeBook      DocumentType = "book"
	DocumentTypeShortNote DocumentType = "short_note"
	DocumentTypePaper     DocumentType = "paper"
	DocumentTypeJumbled   DocumentType = "jumbled"
)

// Medium is the language a document is written in.
type Medium string

const (
	MediumSinhala Medium = "sinhala"
	MediumEnglish Medium = "english"
	MediumTamil   Medium = "tamil"
)

// DocumentStatus tracks moderation state. Only approved documents are searchable.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// SortOption orders search and listing results.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortDownloads SortOption = "downloads"
	SortUpvotes   SortOption = "upvotes"
	SortTitleAsc  SortOption = "title-asc"
	SortTitleDesc SortOption = "title-desc"
)

// AnonymousUploader is shown when a document's uploader is missing or deleted.
const AnonymousUploader = "Anonymous"

// Document is a stored study document.
type Document struct {
	ID         string         `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	UploaderID sql.NullString `db:"uploader_id" json:"-"`
	FilePath   string         `db:"file_path" json:"filePath"`
	FileSize   int64          `db:"file_size" json:"fileSize"`
	Type       DocumentType   `db:"type" json:"type"`
	Subject    string         `db:"subject" json:"subject"`
	Medium     Medium         `db:"medium" json:"medium"`
	Status     DocumentStatus `db:"status" json:"status"`
	Upvotes    int            `db:"upvotes" json:"upvotes"`
	Downvotes  int            `db:"downvotes" json:"downvotes"`
	Views      int            `db:"views" json:"views"`
	Downloads  int            `db:"downloads" json:"downloads"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// DocumentSearchRow is a row returned by the search_documents procedure.
type DocumentSearchRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Subject        string         `db:"subject"`
	Medium         Medium         `db:"medium"`
	Type           DocumentType   `db:"type"`
	Upvotes        int            `db:"upvotes"`
	Downvotes      int            `db:"downvotes"`
	Views          int            `db:"views"`
	Downloads      int            `db:"downloads"`
	CreatedAt      time.Time      `db:"created_at"`
	FilePath       string         `db:"file_path"`
	UploaderName   sql.NullString `db:"uploader_name"`
	UploaderAvatar sql.NullString `db:"uploader_avatar"`
}

// DocumentRow is a documents row joined with its uploader profile.
type DocumentRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Subject           string         `db:"subject"`
	Medium            Medium         `db:"medium"`
	Type              DocumentType   `db:"type"`
	Upvotes           int            `db:"upvotes"`
	Downvotes         int            `db:"downvotes"`
	Views             int            `db:"views"`
	Downloads         int            `db:"downloads"`
	CreatedAt         time.Time      `db:"created_at"`
	FilePath          string         `db:"file_path"`
	UploaderID        sql.NullString `db:"uploader_id"`
	UploaderFullName  sql.NullString `db:"uploader_full_name"`
	UploaderUsername  sql.NullString `db:"uploader_username"`
	UploaderAvatarURL sql.NullString `db:"uploader_avatar_url"`
}

// SearchResult is the uniform record returned to search clients.
type SearchResult struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	UploaderName   string       `json:"uploaderName"`
	UploaderAvatar *string      `json:"uploaderAvatar"`
	Subject        string       `json:"subject"`
	Medium         Medium       `json:"medium"`
	Type           DocumentType `json:"type"`
	Upvotes        int          `json:"upvotes"`
	Downvotes      int          `json:"downvotes"`
	Views          int          `json:"views"`
	Downloads      int          `json:"downloads"`
	CreatedAt      time.Time    `json:"createdAt"`
	FilePath       string       `json:"filePath"`
}

// SearchFilter scopes document queries at the repository layer.
type SearchFilter struct {
	// Query is the raw search text; empty means a plain listing.
	Query string
	// MatchedSubject is the catalog id the query matched exactly, if any.
	MatchedSubject string
	// SubjectHints are fuzzy catalog matches passed to the search procedure.
	SubjectHints []string
	// LiteratureSubjects restricts results to these subjects when non-empty.
	LiteratureSubjects []string

	Subject      string
	Medium       Medium
	DocumentType DocumentType
	Sort         SortOption
	Limit        int
	Offset       int
}
