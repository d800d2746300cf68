// Package catalog holds the fixed table of academic subjects documents are filed under and the
// lookups search uses to turn free text into subject identifiers.
package catalog

import (
	"strings"

	"github.com/examhub-lk/examhub-api/pkg/textnorm"
)

// Subject is one catalog entry.
type Subject struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type entry struct {
	subject    Subject
	id         string
	compactID  string
	name       string
	aliases    []string
	literature bool
}

// Catalog is an immutable subject table. It is safe for concurrent use.
type Catalog struct {
	entries       []entry
	byID          map[string]int
	literatureIDs []string
	keywords      []string
	noise         []string
}

// Default builds the catalog of the 52 O/L and A/L subjects.
func Default() *Catalog {
	return New(defaultSubjects)
}

// New builds a catalog from the given subjects. Entries keep their order.
func New(subjects []Subject) *Catalog {
	c := &Catalog{
		entries: make([]entry, 0, len(subjects)),
		byID:    make(map[string]int, len(subjects)),
	}
	for _, s := range subjects {
		if _, dup := c.byID[s.ID]; dup || s.ID == "" {
			continue
		}
		e := entry{
			subject:    Subject{ID: s.ID, Name: s.Name, Aliases: append([]string(nil), s.Aliases...)},
			id:         textnorm.Normalize(strings.ReplaceAll(s.ID, "_", " ")),
			compactID:  strings.ReplaceAll(s.ID, "_", ""),
			name:       textnorm.Normalize(s.Name),
			literature: hasLiteratureSuffix(s.ID),
		}
		for _, alias := range s.Aliases {
			if n := textnorm.Normalize(alias); n != "" {
				e.aliases = append(e.aliases, n)
			}
		}
		c.byID[s.ID] = len(c.entries)
		c.entries = append(c.entries, e)
		if e.literature {
			c.literatureIDs = append(c.literatureIDs, s.ID)
		}
	}
	for _, kw := range literatureKeywords {
		if n := textnorm.Normalize(kw); n != "" {
			c.keywords = append(c.keywords, n)
		}
	}
	c.noise = append(c.noise, noiseTerms...)
	return c
}

// Len returns the number of subjects.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All returns a copy of every subject in catalog order.
func (c *Catalog) All() []Subject {
	out := make([]Subject, len(c.entries))
	for i, e := range c.entries {
		out[i] = Subject{ID: e.subject.ID, Name: e.subject.Name, Aliases: append([]string(nil), e.subject.Aliases...)}
	}
	return out
}

// Lookup returns the subject with the given identifier.
func (c *Catalog) Lookup(id string) (Subject, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Subject{}, false
	}
	return c.entries[idx].subject, true
}

// Valid reports whether id is a known subject identifier.
func (c *Catalog) Valid(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IsLiterature reports whether id names a language or literature subject.
func (c *Catalog) IsLiterature(id string) bool {
	idx, ok := c.byID[id]
	return ok && c.entries[idx].literature
}

// ExactMatch returns the subject whose identifier or display name equals the query, ignoring
// case and punctuation. When the whole query does not match, document-kind words such as
// "past papers" or "notes" and bare years are dropped and the remainder is compared again.
func (c *Catalog) ExactMatch(query string) (string, bool) {
	q := textnorm.Normalize(query)
	if q == "" {
		return "", false
	}
	if id, ok := c.exact(q); ok {
		return id, true
	}
	stripped := c.stripNoise(q)
	if stripped == "" || stripped == q {
		return "", false
	}
	return c.exact(stripped)
}

func (c *Catalog) exact(q string) (string, bool) {
	for _, e := range c.entries {
		if e.id == q || e.name == q || e.compactID == q {
			return e.subject.ID, true
		}
	}
	return "", false
}

func (c *Catalog) stripNoise(q string) string {
	padded := " " + q + " "
	for _, term := range c.noise {
		needle := " " + term + " "
		for strings.Contains(padded, needle) {
			padded = strings.ReplaceAll(padded, needle, " ")
		}
	}
	fields := strings.Fields(padded)
	kept := fields[:0]
	for _, f := range fields {
		if isDigits(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// FuzzyMatch returns, in catalog order, every subject whose name, identifier or alias contains
// the query, plus every subject with an alias contained in the query.
func (c *Catalog) FuzzyMatch(query string) []string {
	q := textnorm.Normalize(query)
	if q == "" {
		return nil
	}
	var ids []string
	for _, e := range c.entries {
		if e.fuzzy(q) {
			ids = append(ids, e.subject.ID)
		}
	}
	return ids
}

func (e entry) fuzzy(q string) bool {
	if strings.Contains(e.name, q) || strings.Contains(e.id, q) || strings.Contains(e.compactID, q) {
		return true
	}
	for _, alias := range e.aliases {
		if strings.Contains(alias, q) || strings.Contains(q, alias) {
			return true
		}
	}
	return false
}

// IsLiteratureQuery reports whether the query is about language and literature subjects.
func (c *Catalog) IsLiteratureQuery(query string) bool {
	q := textnorm.Normalize(query)
	if q == "" {
		return false
	}
	for _, kw := range c.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// LiteratureSubjectIDs returns the identifiers ending in _literary_texts or _language_literature.
func (c *Catalog) LiteratureSubjectIDs() []string {
	return append([]string(nil), c.literatureIDs...)
}

func hasLiteratureSuffix(id string) bool {
	for _, suffix := range literatureSuffixes {
		if strings.HasSuffix(id, suffix) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
