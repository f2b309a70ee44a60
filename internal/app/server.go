// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"llamacrm-service/internal/config"
	"llamacrm-service/internal/db"
	authHandler "llamacrm-service/internal/handlers/auth"
	enrichmentHandler "llamacrm-service/internal/handlers/enrichment"
	leadHandler "llamacrm-service/internal/handlers/lead"
	reportHandler "llamacrm-service/internal/handlers/report"
	wsHandler "llamacrm-service/internal/handlers/websocket"
	"llamacrm-service/internal/middleware"
	"llamacrm-service/internal/pkg/session"
	"llamacrm-service/internal/repository/postgres"
	authUsecase "llamacrm-service/internal/service/auth"
	"llamacrm-service/internal/service/enrichment"
	leadsvc "llamacrm-service/internal/service/lead"
	reportsvc "llamacrm-service/internal/service/report"
	"llamacrm-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Auth -----
	sessionManager := session.NewManager(redisClient)
	authService := authUsecase.NewAuthService(
		s.cfg.JWT,
		sessionManager,
		s.cfg.OperatorName,
		s.cfg.OperatorPasswordHash,
		logger,
	)

	// ----- WebSocket hub -----
	hub := websocket.NewHub(authService)
	go hub.Run(ctx)

	// ----- Lead collection -----
	leadRepo := postgres.NewLeadRepository(pool)
	leadStore := leadsvc.NewStore(leadRepo, hub, logger)

	// Initial sync is fail-soft: the service starts with an empty
	// collection and a sync banner if the table is unreachable.
	if err := leadStore.Load(ctx); err != nil {
		logger.Warn("initial lead load failed", zap.Error(err))
	}

	// ----- Reporting -----
	reportService := reportsvc.NewService(leadStore, redisClient, s.cfg.ReportCacheTTL, logger)

	// ----- Enrichment (optional) -----
	var enrichService *enrichment.Service
	if s.cfg.GeminiAPIKey != "" {
		enrichService, err = enrichment.NewService(ctx, s.cfg.GeminiAPIKey, s.cfg.GeminiModel, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize enrichment: %w", err)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, enrichment endpoints disabled")
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:    authHandler.NewAuthHandler(authService),
		LeadHandler:    leadHandler.NewLeadHandler(leadStore),
		ReportHandler:  reportHandler.NewReportHandler(reportService),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService),
	}
	if enrichService != nil {
		handlers.EnrichmentHandler = enrichmentHandler.NewEnrichmentHandler(enrichService, leadStore)
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
