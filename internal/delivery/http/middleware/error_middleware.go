package middleware

import (
	"errors"
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error. The
// AppError kind survives wrapping, so a storage failure inside a database
// call still answers as a storage failure.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", requestID,
					"method", c.Request.Method,
					"path", c.FullPath(),
					"kind", appErr.Kind,
					"error", err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
