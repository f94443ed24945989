package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/store"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags each request with the caller's X-Request-ID or a fresh
// UUID and echoes it back.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one log line per request and records HTTP metrics.
func accessLog(log *logger.Logger) gin.HandlerFunc {
	log = log.With("middleware", "access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		metrics.ObserveHTTP(route, c.Request.Method, status, elapsed)

		kv := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		}
		if status >= http.StatusInternalServerError {
			log.Warn("request", kv...)
		} else {
			log.Debug("request", kv...)
		}
	}
}

// AuthMiddleware verifies bearer tokens and makes sure a user row exists
// for the token subject.
type AuthMiddleware struct {
	log      *logger.Logger
	tokens   *identity.TokenVerifier
	profiles *profile.Service
}

func NewAuthMiddleware(log *logger.Logger, tokens *identity.TokenVerifier, profiles *profile.Service) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), tokens: tokens, profiles: profiles}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", profile.ErrUnauthorized)
			return
		}
		claims, err := am.tokens.Verify(tokenString)
		if err != nil {
			am.log.Debug("rejected token", "error", err, "request_id", c.GetString(requestIDKey))
			respondError(c, http.StatusUnauthorized, "unauthorized", identity.ErrInvalidToken)
			return
		}

		ctx := identity.WithUserID(c.Request.Context(), claims.Subject)
		if _, err := am.profiles.EnsureUser(ctx, store.NewUser{Name: claims.Name, Email: claims.Email}); err != nil {
			am.log.Error("ensure user failed", "user_id", claims.Subject, "error", err)
			respondError(c, http.StatusInternalServerError, "internal", nil)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
