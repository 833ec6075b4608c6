package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/shared/response"
)

// Recovery bắt panic trong handler, log kèm stack và trả 500 envelope.
// Nếu response đã bắt đầu ghi thì chỉ abort.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.InternalServerError(c, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
