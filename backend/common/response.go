package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standard envelope for every JSON endpoint.
type APIResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

const (
	RFC3339MilliZ = "2006-01-02T15:04:05.000Z07:00"
)

// RespSuccess responds 200 with a message and data.
func RespSuccess(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// RespCreated responds 201 with a message and data.
func RespCreated(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// RespSuccessStr responds 200 with a message only.
func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

// RespFieldErrors responds with a field->message map the client renders next
// to the matching form inputs.
func RespFieldErrors(c *gin.Context, statusCode int, msg string, errs map[string]string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
		Errors:  errs,
	})
}

// RespErrorStr responds with an error message only.
func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
	})
}

// RespError responds 500-style with a generic message plus the underlying
// error string in the error field.
func RespError(c *gin.Context, statusCode int, msg string, err error) {
	resp := APIResponse{
		Success: false,
		Message: msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// FormatTime renders a timestamp in the RFC3339MilliZ format the API uses.
func FormatTime(t time.Time) string {
	return t.UTC().Format(RFC3339MilliZ)
}
