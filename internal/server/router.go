package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/http/handlers"
	"github.com/hearthstack/homescore-backend/internal/platform/envutil"
)

type RouterConfig struct {
	HealthHandler     *handlers.HealthHandler
	HomeScoreHandler  *handlers.HomeScoreHandler
	RiskHandler       *handlers.RiskHandler
	FinancialHandler  *handlers.FinancialHandler
	CorrectionHandler *handlers.CorrectionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if envutil.Str("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/properties/:id/homescore", cfg.HomeScoreHandler.GetHomeScore)
		api.GET("/properties/:id/risk", cfg.RiskHandler.GetRiskReport)
		api.POST("/properties/:id/risk/recalculate", cfg.RiskHandler.EnqueueRecalculate)
		api.GET("/properties/:id/financial", cfg.FinancialHandler.GetFinancialReport)
		api.GET("/properties/:id/corrections", cfg.CorrectionHandler.ListCorrections)
		api.POST("/properties/:id/corrections", cfg.CorrectionHandler.SubmitCorrection)
	}

	return router
}
