package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/dto"
	"github.com/examhub-lk/examhub-api/internal/middleware"
	"github.com/examhub-lk/examhub-api/internal/service"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
	"github.com/examhub-lk/examhub-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchPage, service.SearchInfo, error)
}

// SearchHandler serves document search.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Search approved documents
// @Description Free-text search over approved documents. Without a query, lists approved documents.
// @Tags Documents
// @Produce json
// @Param query query string false "Search text"
// @Param subject query string false "Catalog subject id"
// @Param medium query string false "sinhala, english or tamil"
// @Param documentType query string false "book, short_note or paper"
// @Param sortBy query string false "newest, downloads, upvotes, title-asc or title-desc"
// @Param limit query int false "Page size (1-50, default 20)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} response.Envelope{data=dto.SearchPage}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /documents/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()

	req := dto.SearchRequest{
		Query:        c.Query("query"),
		Subject:      c.Query("subject"),
		Medium:       c.Query("medium"),
		DocumentType: c.Query("documentType"),
		SortBy:       c.Query("sortBy"),
	}
	var err error
	if req.Limit, err = optionalIntQuery(c, "limit"); err != nil {
		response.Error(c, err)
		return
	}
	if req.Offset, err = optionalIntQuery(c, "offset"); err != nil {
		response.Error(c, err)
		return
	}

	page, info, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, info.CacheHit)
	middleware.SetMeta(c, "path", info.Path)
	response.JSON(c, http.StatusOK, page, responseMeta(c, start))
}
