package middleware

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/passosperdidos/parlamento-backend/internal/logger"
)

type APIKeyMiddleware struct {
  log *logger.Logger
  key string
}

func NewAPIKeyMiddleware(log *logger.Logger, key string) *APIKeyMiddleware {
  middlewareLogger := log.With("Middleware", "APIKeyMiddleware")
  if key == "" {
    middlewareLogger.Warn("API_KEY not set, requests will not be authenticated")
  }
  return &APIKeyMiddleware{log: middlewareLogger, key: key}
}

// RequireKey checks the X-API-KEY header against the configured key.
// With no key configured the check is a no-op.
func (am *APIKeyMiddleware) RequireKey() gin.HandlerFunc {
  return func(c *gin.Context) {
    if am.key == "" {
      c.Next()
      return
    }
    if c.GetHeader("X-API-KEY") != am.key {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid api key"})
      return
    }
    c.Next()
  }
}
