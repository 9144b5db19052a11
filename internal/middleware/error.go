package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"budgetwise/internal/config"
	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into the standard response envelope. AppErrors are returned with
// their status and message; unexpected errors are logged and return a
// generic internal error, with detail included only in debug mode.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			body := gin.H{"success": false, "message": appErr.Message}
			if appErr.Errors != nil {
				body["errors"] = appErr.Errors
			}
			c.JSON(appErr.StatusCode, body)
			return
		}

		// Unexpected error: log full details, return generic message
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		body := gin.H{"success": false, "message": apperrors.ErrInternalServer.Message}
		if config.Get().Debug {
			body["errors"] = gin.H{"exception": err.Error()}
		}
		c.JSON(apperrors.ErrInternalServer.StatusCode, body)
	}
}
