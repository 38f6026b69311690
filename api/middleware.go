package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/internal/logger"
	"github.com/gcbaptista/go-portfolio/model"
)

const (
	// HeaderRequestID carries the request identifier in both directions
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the gin context key holding the request identifier
	ContextKeyRequestID = "request_id"

	adminCookie = "admin_token"
)

// untrackedPrefixes are never recorded as page visits.
var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/health", "/metrics"}

// RequestSizeLimitMiddleware limits the size of request bodies to prevent memory exhaustion
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	})
}

// CORSMiddleware adds CORS headers for cross-origin requests.
// An empty origin list allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case len(allowedOrigins) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+HeaderRequestID)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLoggerMiddleware attaches a request-scoped logger to the request
// context and emits one log line per request.
func RequestLoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := base.With(zap.String("request_id", requestID(c)))
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("http_request", fields...)
		default:
			reqLogger.Info("http_request", fields...)
		}
	}
}

// VisitorTrackingMiddleware records page views with the client address hashed.
// Static assets, operational endpoints and requests sending DNT: 1 are skipped,
// as are responses that matched no route or did not succeed.
func (api *API) VisitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if api.visitors == nil || c.Request.Method != http.MethodGet || !trackable(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		c.Next()

		route := c.FullPath()
		if status := c.Writer.Status(); route == "" || status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		visit := model.Visit{
			HashedIP:  HashIP(c.ClientIP(), api.settings.Privacy.HashSalt),
			UserAgent: c.Request.UserAgent(),
			Path:      path,
			Timestamp: time.Now(),
		}

		// Recorded in the background so storage latency never reaches the visitor.
		api.pending.Add(1)
		go func() {
			defer api.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := api.visitors.RecordVisit(ctx, visit); err != nil {
				api.logger.Warn("Failed to record visit", zap.String("path", visit.Path), zap.Error(err))
				return
			}
			api.metrics.VisitTracked(route)
		}()
	}
}

func trackable(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// HashIP returns a truncated salted SHA-256 of ip. The same address and salt
// always give the same value, so unique visitors can be counted.
func HashIP(ip, salt string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// AdminAuthMiddleware requires the admin token as a Bearer token or the
// admin_token cookie. Without a configured token every request is refused.
func (api *API) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := api.settings.Admin.Token
		if expected == "" {
			SendUnavailableError(c, "Admin access")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			token, _ = c.Cookie(adminCookie)
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			SendError(c, http.StatusUnauthorized, ErrorCodeUnauthorized, "A valid admin token is required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
