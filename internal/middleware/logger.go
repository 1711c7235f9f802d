package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetingroom/internal/pkg/response"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// ErrorLogger recovers panics and writes one line per failed request:
// every 5xx, plus whatever handlers attached with c.Error.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logFailure(c, start, "panic", fmt.Sprint(recovered), debug.Stack())
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				logFailure(c, start, "handler", err.Error(), nil)
			}
			if len(c.Errors) == 0 && c.Writer.Status() >= http.StatusInternalServerError {
				logFailure(c, start, "status", http.StatusText(c.Writer.Status()), nil)
			}
		}()

		c.Next()
	}
}

func logFailure(c *gin.Context, start time.Time, kind, message string, stack []byte) {
	line := fmt.Sprintf(
		"request_failed kind=%s status=%d method=%s path=%s user_id=%s role=%s request_id=%s latency=%s error=%q",
		kind,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		UserID(c),
		c.GetString(ctxRole),
		c.GetString(ctxRequestID),
		time.Since(start),
		message,
	)
	if len(stack) > 0 {
		line += "\n" + string(stack)
	}
	log.Print(line)
}
