package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/pkg/apperror"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// FromError writes the envelope for err based on its apperror kind.
// Unclassified errors are attached to the context for ErrorLogger and
// answered with a generic 500.
func FromError(c *gin.Context, err error) {
	switch kind := apperror.KindOf(err); {
	case errors.Is(kind, apperror.ErrValidation):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", apperror.Message(err))
	case errors.Is(kind, apperror.ErrDomain):
		Error(c, http.StatusConflict, "BUSINESS_RULE_VIOLATION", apperror.Message(err))
	case errors.Is(kind, apperror.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", apperror.Message(err))
	case errors.Is(kind, apperror.ErrForbidden):
		Error(c, http.StatusForbidden, "FORBIDDEN", apperror.Message(err))
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
