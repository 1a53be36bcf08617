package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP builds a rate-limit bypass for callers on private or
// loopback addresses, such as the local frontend and liveness probes.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
