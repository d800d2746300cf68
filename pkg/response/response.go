// Package response writes the {success, data, error} envelope every endpoint returns.
package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
)

// Envelope is the body of every JSON response. Data is set on success, Error and Code on failure.
type Envelope struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON writes a success envelope. The first non-nil meta map is attached.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	body := Envelope{Success: true, Data: data}
	for _, m := range meta {
		if m != nil {
			body.Meta = m
			break
		}
	}
	c.JSON(status, body)
}

// Error writes a failure envelope with the status of the *Error in err's chain. Untyped errors
// become 500s.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Success: false, Error: appErrors.Message(appErr), Code: appErr.Code})
}

// Attachment sends content as a downloadable file.
func Attachment(c *gin.Context, filename, contentType string, content []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}

// NoContent writes a bare 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
