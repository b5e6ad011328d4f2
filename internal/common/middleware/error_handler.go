package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

// Recovery catches panics and converts them to a JSON 500.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", "path", c.Request.URL.Path, "panic", r)
				appErr := errors.Internal("internal server error", "")
				c.AbortWithStatusJSON(appErr.Status, appErr)
			}
		}()
		c.Next()
	}
}

// JSONErrorResponse wraps errors in a consistent JSON format.
func JSONErrorResponse(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Internal("internal server error", err.Error())
	}
	c.JSON(appErr.Status, appErr)
}
