package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
	requestIDLength     = 16
)

// Accepted shape for an upstream-supplied ID.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestIDConfig controls whether upstream X-Request-ID values are reused.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID returns a middleware that tags every request with a fresh ID.
// Upstream X-Request-ID headers are ignored; use RequestIDWithConfig to
// trust them.
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig returns a middleware that assigns each request an ID,
// stores it in the gin context under "request_id", echoes it in the
// X-Request-ID response header, and attaches it to the request context so
// the slog context middleware includes it in every log line.
//
// With TrustUpstream set, a well-formed incoming X-Request-ID is kept
// instead of generating a new one.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := resolveRequestID(c, cfg)

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(
			logger.WithContextAttrs(c.Request.Context(), slog.String("request_id", id)))

		c.Next()
	}
}

func resolveRequestID(c *gin.Context, cfg RequestIDConfig) string {
	if cfg.TrustUpstream {
		if upstream := c.GetHeader(requestIDHeader); isValidRequestID(upstream) {
			return upstream
		}
	}
	return newRequestID()
}

func isValidRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}

// GetRequestID returns the ID assigned to this request, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

var requestIDSeq atomic.Uint64

// newRequestID returns 16 random bytes hex-encoded. If the system entropy
// source fails, a timestamp plus counter keeps IDs unique within the process.
func newRequestID() string {
	var b [requestIDLength]byte
	if _, err := rand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], requestIDSeq.Add(1))
	}
	return hex.EncodeToString(b[:])
}
