package middleware

import (
	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/shared/utils"
)

const clientIPGinKey = "client_ip"

// ClientIPMiddleware extract IP một lần cho cả request.
// Đăng ký trước Logger và rate limiter để cả hai thấy cùng một IP.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPGinKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

// GetClientIP trả về IP đã extract, fallback sang utils.ExtractClientIP
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPGinKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
