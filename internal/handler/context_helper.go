package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/middleware"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
)

// optionalIntQuery reads an integer query parameter. Absent or blank values yield nil.
func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", name))
	}
	return &value, nil
}

// intQuery reads an integer query parameter with a default.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	value, err := optionalIntQuery(c, name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return fallback, nil
	}
	return *value, nil
}

func responseMeta(c *gin.Context, start time.Time) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}
