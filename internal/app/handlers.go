package app

import (
	"github.com/hearthstack/homescore-backend/internal/http/handlers"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	HomeScore  *handlers.HomeScoreHandler
	Risk       *handlers.RiskHandler
	Financial  *handlers.FinancialHandler
	Correction *handlers.CorrectionHandler
}

func wireHandlers(log *logger.Logger, r Repos, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		HomeScore:  handlers.NewHomeScoreHandler(log, s.HomeScore),
		Risk:       handlers.NewRiskHandler(log, r.Property, s.Risk, s.Job),
		Financial:  handlers.NewFinancialHandler(log, r.Property, s.Financial),
		Correction: handlers.NewCorrectionHandler(log, s.Correction, s.HomeScore),
	}
}
