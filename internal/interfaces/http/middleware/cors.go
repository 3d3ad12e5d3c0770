// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/config"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing
func CORS(cfg *config.Config) gin.HandlerFunc {
	sec := cfg.Security
	corsCfg := cors.Config{
		AllowMethods:     sec.CORSAllowedMethods,
		AllowHeaders:     sec.CORSAllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", requestIDHeader, "Content-Disposition"},
		AllowCredentials: sec.CORSAllowCredentials,
		MaxAge:           24 * time.Hour,
	}

	if allowsAny(sec.CORSAllowedOrigins) && !sec.CORSAllowCredentials {
		corsCfg.AllowAllOrigins = true
	} else {
		allowed := sec.CORSAllowedOrigins
		corsCfg.AllowOriginFunc = func(origin string) bool {
			return isOriginAllowed(origin, allowed)
		}
	}
	return cors.New(corsCfg)
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}

// isOriginAllowed checks if the origin is in the allowed list
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		// *.example.com matches subdomains only
		if strings.HasPrefix(allowed, "*.") {
			domain := strings.TrimPrefix(allowed, "*")
			if strings.HasSuffix(origin, domain) {
				return true
			}
		}
	}
	return false
}
