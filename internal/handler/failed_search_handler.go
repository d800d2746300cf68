package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/dto"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
	"github.com/examhub-lk/examhub-api/pkg/export"
	"github.com/examhub-lk/examhub-api/pkg/response"
)

type failedSearchService interface {
	List(ctx context.Context, req dto.FailedSearchListRequest) (*dto.FailedSearchPage, error)
	Export(ctx context.Context, format export.Format, req dto.FailedSearchListRequest) ([]byte, error)
	Dismiss(ctx context.Context, id string) error
}

// FailedSearchHandler serves the admin review of zero-result searches.
type FailedSearchHandler struct {
	service failedSearchService
}

// NewFailedSearchHandler constructs the handler.
func NewFailedSearchHandler(service failedSearchService) *FailedSearchHandler {
	return &FailedSearchHandler{service: service}
}

// List godoc
// @Summary List failed searches
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param minCount query int false "Minimum search count"
// @Param search query string false "Normalized query contains"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope{data=dto.FailedSearchPage}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/failed-searches [get]
func (h *FailedSearchHandler) List(c *gin.Context) {
	start := time.Now()
	req, err := failedSearchRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, responseMeta(c, start))
}

// Export godoc
// @Summary Export failed searches
// @Tags Admin
// @Security BearerAuth
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param minCount query int false "Minimum search count"
// @Param search query string false "Normalized query contains"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/failed-searches/export [get]
func (h *FailedSearchHandler) Export(c *gin.Context) {
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	req, err := failedSearchRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.service.Export(c.Request.Context(), format, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("failed-searches-%s.%s", time.Now().UTC().Format("20060102"), format.Extension())
	response.Attachment(c, filename, format.ContentType(), out)
}

// Dismiss godoc
// @Summary Dismiss a failed search
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Failed search ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/failed-searches/{id} [delete]
func (h *FailedSearchHandler) Dismiss(c *gin.Context) {
	if err := h.service.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func failedSearchRequest(c *gin.Context) (dto.FailedSearchListRequest, error) {
	var req dto.FailedSearchListRequest
	var err error
	req.Search = strings.TrimSpace(c.Query("search"))
	if req.MinCount, err = intQuery(c, "minCount", 0); err != nil {
		return req, err
	}
	if req.Limit, err = intQuery(c, "limit", 0); err != nil {
		return req, err
	}
	if req.Offset, err = intQuery(c, "offset", 0); err != nil {
		return req, err
	}
	return req, nil
}
