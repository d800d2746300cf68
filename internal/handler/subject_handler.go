package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/catalog"
	"github.com/examhub-lk/examhub-api/internal/dto"
	"github.com/examhub-lk/examhub-api/pkg/response"
)

// SubjectHandler exposes the subject catalog.
type SubjectHandler struct {
	catalog *catalog.Catalog
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(cat *catalog.Catalog) *SubjectHandler {
	if cat == nil {
		cat = catalog.Default()
	}
	return &SubjectHandler{catalog: cat}
}

// List godoc
// @Summary List catalog subjects
// @Description Returns every subject, or the fuzzy matches for q.
// @Tags Subjects
// @Produce json
// @Param q query string false "Fuzzy match text"
// @Success 200 {object} response.Envelope{data=[]dto.SubjectView}
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		all := h.catalog.All()
		views := make([]dto.SubjectView, 0, len(all))
		for _, s := range all {
			views = append(views, h.view(s))
		}
		response.JSON(c, http.StatusOK, views)
		return
	}

	ids := h.catalog.FuzzyMatch(q)
	views := make([]dto.SubjectView, 0, len(ids))
	for _, id := range ids {
		if s, ok := h.catalog.Lookup(id); ok {
			views = append(views, h.view(s))
		}
	}
	response.JSON(c, http.StatusOK, views)
}

func (h *SubjectHandler) view(s catalog.Subject) dto.SubjectView {
	aliases := s.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return dto.SubjectView{ID: s.ID, Name: s.Name, Aliases: aliases, Literature: h.catalog.IsLiterature(s.ID)}
}
