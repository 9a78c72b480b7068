package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/passosperdidos/parlamento-backend/internal/handlers"
  "github.com/passosperdidos/parlamento-backend/internal/middleware"
)

type RouterConfig struct {
  InitiativeHandler *handlers.InitiativeHandler
  APIKeyMiddleware  *middleware.APIKeyMiddleware
  FrontendOrigin    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := []string{
    "http://localhost:80",
    "http://localhost:3000",
  }
  if cfg.FrontendOrigin != "" {
    origins = append(origins, cfg.FrontendOrigin)
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "OPTIONS"},
    AllowHeaders:     []string{"X-API-KEY", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.APIKeyMiddleware.RequireKey())
  api.GET("/projetos", cfg.InitiativeHandler.List)
  api.GET("/projetos/:external_id", cfg.InitiativeHandler.Get)
  api.GET("/types", cfg.InitiativeHandler.Types)
  api.GET("/phases", cfg.InitiativeHandler.PhaseNames)
  api.GET("/parties", cfg.InitiativeHandler.Parties)

  return router
}
