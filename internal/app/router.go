package app

import (
	"github.com/gin-gonic/gin"

	"github.com/hearthstack/homescore-backend/internal/server"
)

func wireRouter(h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthHandler:     h.Health,
		HomeScoreHandler:  h.HomeScore,
		RiskHandler:       h.Risk,
		FinancialHandler:  h.Financial,
		CorrectionHandler: h.Correction,
	})
}
