package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"meetingroom/internal/pkg/apperror"
)

func TestFromErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.Validation("bad slot"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.Domain("already booked"), http.StatusConflict, "BUSINESS_RULE_VIOLATION"},
		{apperror.NotFound("room not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperror.Forbidden("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		FromError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		assert.Contains(t, w.Body.String(), tc.code)
		if tc.status != http.StatusInternalServerError {
			assert.Contains(t, w.Body.String(), tc.err.Error())
		} else {
			assert.NotContains(t, w.Body.String(), "connection reset")
		}
	}
}
