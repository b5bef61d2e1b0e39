package middleware

import (
	"errors"
	"net/http"

	"vastorn-backend/internal/delivery/http/response"
	"vastorn-backend/pkg/apperror"
	"vastorn-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code != http.StatusInternalServerError {
				response.Error(c, appErr.Code, appErr.Message)
				return
			}
			// Never expose internal error details to clients. Log the
			// actual error server-side and send a generic message.
			logger.Log.Error("Unhandled request error",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		}
	}
}
