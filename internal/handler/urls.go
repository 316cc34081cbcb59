package handlers

import (
	"github.com/gin-gonic/gin"

	"GuardHer/internal/service"
	"GuardHer/internal/store"
	"GuardHer/pkg/config"
	"GuardHer/pkg/middleware"
)

type Handlers struct {
	sos       *service.SOSService
	analysis  *service.AnalysisService
	analytics *service.AnalyticsService
	evidence  *store.EvidenceStore
}

func NewHandlers(sos *service.SOSService, analysis *service.AnalysisService, analytics *service.AnalyticsService, evidence *store.EvidenceStore) *Handlers {
	return &Handlers{
		sos:       sos,
		analysis:  analysis,
		analytics: analytics,
		evidence:  evidence,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	// Register System Module Routes
	h.registerSystemRoutes(r)

	// Register Business Module Routes
	h.registerSOSRoutes(r)
	h.registerAnalyzeRoutes(r)
	h.registerAnalyticsRoutes(r)
}

// SOS Module
func (h *Handlers) registerSOSRoutes(r *gin.RouterGroup) {
	sos := r.Group("/sos")
	sos.Use(middleware.TokenAuth(config.GlobalConfig.UserToken))
	{
		sos.POST("/create", h.handleCreateSOS)

		sos.POST("/update", h.handleUpdateSOS)

		sos.GET("/track/:userId", h.handleTrack)

		sos.POST("/resolve/:sessionId", h.handleResolveSOS)

		sos.POST("/helpers/:sessionId", h.handleAssignHelper)

		sos.DELETE("/helpers/:sessionId/:helperId", h.handleRemoveHelper)

		sos.GET("/active", h.handleActiveSessions)
	}
}

// Evidence Analysis Module
func (h *Handlers) registerAnalyzeRoutes(r *gin.RouterGroup) {
	analyze := r.Group("/analyze")
	analyze.Use(middleware.TokenAuth(config.GlobalConfig.UserToken))
	{
		analyze.POST("", h.handleAnalyze)

		analyze.POST("/batch", h.handleAnalyzeBatch)
	}

	evidence := r.Group("/evidence")
	evidence.Use(middleware.TokenAuth(config.GlobalConfig.UserToken))
	{
		evidence.GET("/:userId", h.handleGetEvidence)

		evidence.DELETE("/:id", h.handleDeleteEvidence)
	}
}

// Admin Analytics Module
func (h *Handlers) registerAnalyticsRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.TokenAuth(config.GlobalConfig.AdminToken))
	{
		analytics.GET("/dashboard", h.handleDashboard)

		analytics.GET("/csv", h.handleExportCSV)
	}
}

func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("system")
	{
		system.GET("/health", h.HealthCheck)
	}
}
