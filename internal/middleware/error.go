package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

// ErrorHandler logs errors attached by handlers. The response has already
// been written by handler.RespondError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			status := http.StatusInternalServerError
			if appErr, ok := apperrors.As(e.Err); ok {
				status = appErr.StatusCode()
			}

			event := log.Warn()
			if status >= 500 {
				event = log.Error()
			}
			event.
				Err(e.Err).
				Int("status", status).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}
	}
}
