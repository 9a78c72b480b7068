package middleware

import (
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/gin-gonic/gin"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
)

func newProtectedRouter(key string) *gin.Engine {
  gin.SetMode(gin.TestMode)
  router := gin.New()
  am := NewAPIKeyMiddleware(logger.NewNop(), key)
  router.GET("/ping", am.RequireKey(), func(c *gin.Context) {
    c.String(http.StatusOK, "pong")
  })
  return router
}

func TestRequireKey(t *testing.T) {
  router := newProtectedRouter("secret")

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/ping", nil)
  router.ServeHTTP(w, req)
  if w.Code != http.StatusUnauthorized {
    t.Fatalf("missing key: want 401, got %d", w.Code)
  }

  w = httptest.NewRecorder()
  req = httptest.NewRequest(http.MethodGet, "/ping", nil)
  req.Header.Set("X-API-KEY", "wrong")
  router.ServeHTTP(w, req)
  if w.Code != http.StatusUnauthorized {
    t.Fatalf("wrong key: want 401, got %d", w.Code)
  }

  w = httptest.NewRecorder()
  req = httptest.NewRequest(http.MethodGet, "/ping", nil)
  req.Header.Set("X-API-KEY", "secret")
  router.ServeHTTP(w, req)
  if w.Code != http.StatusOK {
    t.Fatalf("valid key: want 200, got %d", w.Code)
  }
}

func TestRequireKeyUnconfigured(t *testing.T) {
  router := newProtectedRouter("")

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/ping", nil)
  router.ServeHTTP(w, req)
  if w.Code != http.StatusOK {
    t.Fatalf("no configured key should allow: got %d", w.Code)
  }
}
