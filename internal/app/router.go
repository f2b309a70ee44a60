// internal/app/router.go
package app

import (
	authHandler "llamacrm-service/internal/handlers/auth"
	enrichmentHandler "llamacrm-service/internal/handlers/enrichment"
	leadHandler "llamacrm-service/internal/handlers/lead"
	reportHandler "llamacrm-service/internal/handlers/report"
	wsHandler "llamacrm-service/internal/handlers/websocket"
	"llamacrm-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler       *authHandler.AuthHandler
	LeadHandler       *leadHandler.LeadHandler
	ReportHandler     *reportHandler.ReportHandler
	EnrichmentHandler *enrichmentHandler.EnrichmentHandler
	WSHandler         *wsHandler.WebSocketHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"version":    "1.0.0",
			"ws_clients": h.WSHandler.ClientCount(),
		})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)

		authProtected := auth.Group("")
		authProtected.Use(h.AuthMiddleware.Auth())
		{
			authProtected.POST("/logout", h.AuthHandler.Logout)
		}
	}

	// ==================== Leads ====================
	leads := api.Group("/leads")
	leads.Use(h.AuthMiddleware.Auth())
	{
		leads.GET("", h.LeadHandler.ListLeads)
		leads.POST("", h.LeadHandler.CreateLead)
		leads.POST("/reload", h.LeadHandler.ReloadLeads)
		leads.GET("/:id", h.LeadHandler.GetLead)
		leads.PUT("/:id", h.LeadHandler.UpdateLead)

		// AI enrichment, only wired when a Gemini key is configured
		if h.EnrichmentHandler != nil {
			leads.POST("/:id/strategy", h.EnrichmentHandler.GenerateStrategy)
			leads.POST("/:id/chat-analysis", h.EnrichmentHandler.AnalyzeChat)
		}
	}

	// ==================== Reporting ====================
	reporting := api.Group("")
	reporting.Use(h.AuthMiddleware.Auth())
	{
		reporting.GET("/stats", h.ReportHandler.GetStats)
		reporting.GET("/reports", h.ReportHandler.GetReport)
		reporting.GET("/sync/status", h.LeadHandler.SyncStatus)
	}

	logger.Info("router configured")
}
