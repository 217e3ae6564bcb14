package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists the origins allowed to make cross-origin requests.
	// ["*"] allows every origin; an empty list denies all of them.
	AllowOrigins []string

	// AllowMethods lists the HTTP methods advertised to cross-origin clients.
	AllowMethods []string

	// AllowHeaders lists the request headers advertised to cross-origin clients.
	AllowHeaders []string

	// AllowCredentials permits cookies and other credentials on
	// cross-origin requests.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge string
}

// DefaultCORSConfig returns the permissive development configuration:
// every origin allowed, the usual REST methods, no credentials.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		MaxAge:       "86400",
	}
}

// CORS returns the middleware with DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a middleware handling cross-origin requests per
// cfg. Same-origin requests (no Origin header) pass through untouched, as
// do requests from origins outside the allowlist. Preflight OPTIONS
// requests are answered with 204 without reaching the routes.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		// Responses differ per Origin, so caches must key on it.
		c.Writer.Header().Add("Vary", "Origin")

		allow, ok := allowOriginValue(cfg, origin)
		if !ok {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", allow)
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Max-Age", cfg.MaxAge)
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// allowOriginValue picks the Access-Control-Allow-Origin value for origin,
// or reports false when the origin is not allowed. The wildcard is only
// sent literally when credentials are off; browsers reject "*" combined
// with Allow-Credentials, so the specific origin is echoed instead.
func allowOriginValue(cfg CORSConfig, origin string) (string, bool) {
	for _, a := range cfg.AllowOrigins {
		switch {
		case a == "*" && cfg.AllowCredentials:
			return origin, true
		case a == "*":
			return "*", true
		case a == origin:
			return origin, true
		}
	}
	return "", false
}
