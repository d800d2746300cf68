package models

import (
	"fmt"
	"time"
)

// FailedSearch aggregates zero-result searches per normalized query.
type FailedSearch struct {
	ID              string    `db:"id" json:"id"`
	Query           string    `db:"query" json:"query"`
	NormalizedQuery string    `db:"normalized_query" json:"normalizedQuery"`
	Filters         RawJSON   `db:"filters" json:"filters,omitempty"`
	SearchCount     int       `db:"search_count" json:"searchCount"`
	LastSearchedAt  time.Time `db:"last_searched_at" json:"lastSearchedAt"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// FailedSearchFilters are the search filters active when a query came back empty.
type FailedSearchFilters struct {
	Subject      string `json:"subject,omitempty"`
	Medium       string `json:"medium,omitempty"`
	DocumentType string `json:"documentType,omitempty"`
	SortBy       string `json:"sortBy,omitempty"`
}

// IsZero reports whether no filter was set.
func (f FailedSearchFilters) IsZero() bool {
	return f == FailedSearchFilters{}
}

// FailedSearchFilter scopes the admin listing of failed searches.
type FailedSearchFilter struct {
	MinCount int
	Search   string
	Limit    int
	Offset   int
}

// RawJSON holds a nullable jsonb column verbatim.
type RawJSON []byte

// Scan implements sql.Scanner.
func (j *RawJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = RawJSON(v)
	default:
		return fmt.Errorf("scan json: unsupported type %T", src)
	}
	return nil
}

// MarshalJSON emits the stored document, or null when empty.
func (j RawJSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}
