// Package response writes the JSON envelope every /api/v1 endpoint answers
// with.
package response

import (
	"github.com/gin-gonic/gin"
)

// requestIDKey mirrors middleware.RequestIDKey; importing middleware here
// would create a cycle.
const requestIDKey = "RequestID"

// Response is the envelope. Data carries the payload on success, Error the
// validation details or dependency status on failure.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error writes a failed envelope. details may be nil.
func Error(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     details,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
