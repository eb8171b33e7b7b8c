package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultAllowedOrigins is used when no origins are configured
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// CORS returns a middleware that echoes allowed origins. A "*" entry allows any origin,
// and an entry starting with "*." matches that domain suffix over https.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originAllowed(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Auth-Token, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Max-Age", "43200")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		switch {
		case candidate == "*", candidate == origin:
			return true
		case strings.HasPrefix(candidate, "*."):
			if strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, candidate[1:]) {
				return true
			}
		}
	}
	return false
}
