package middleware

import (
	"errors"
	"net/http"

	"go-candidates-backend/internal/delivery/http/response"
	"go-candidates-backend/internal/domain"
	"go-candidates-backend/pkg/apperror"
	"go-candidates-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler drains errors appended to the gin context and maps them onto
// HTTP status codes: validation and parse problems are client faults,
// missing records are 404, everything else is a masked 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			response.Error(c, http.StatusBadRequest, validationErr.Message, nil)
			return
		}

		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			response.Error(c, http.StatusBadRequest, parseErr.Error(), nil)
			return
		}

		// Never expose internal error details to clients. Log server-side,
		// send a generic message.
		logger.Log.Error("Internal server error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
