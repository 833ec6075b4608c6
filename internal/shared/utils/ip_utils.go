package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const fallbackIP = "127.0.0.1"

// ExtractClientIP trả về IP của client theo thứ tự:
// X-Forwarded-For (hop đầu tiên), X-Real-IP, rồi RemoteAddr.
// Header chứa giá trị không phải IP bị bỏ qua.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); isValidIP(ip) {
			return ip
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); isValidIP(xri) {
		return xri
	}

	// RemoteAddr: "IP:port" hoặc "[IPv6]:port"
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	if isValidIP(host) {
		return host
	}
	return fallbackIP
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
