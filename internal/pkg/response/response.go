// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint writes. Code carries the
// machine-readable rejection code of a settlement or pricing error.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes a successful envelope. A zero status means 200.
func Success(c *gin.Context, status int, message string, data any) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error aborts the chain and writes a failed envelope. The first optional data
// value is attached to the body.
func Error(c *gin.Context, status int, message string, err error, data ...any) {
	Fail(c, status, "", message, err, data...)
}

// Fail is Error with a rejection code.
func Fail(c *gin.Context, status int, code, message string, err error, data ...any) {
	c.Abort()

	body := Response{
		Success: false,
		Message: message,
		Code:    code,
	}
	if err != nil {
		body.Error = err.Error()
	}
	if len(data) > 0 {
		body.Data = data[0]
	}

	c.JSON(status, body)
}

// BadRequest writes a 400 for a request that could not be bound.
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string, err error) {
	Error(c, http.StatusUnauthorized, message, err)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string, err error, data ...any) {
	Error(c, http.StatusForbidden, message, err, data...)
}
