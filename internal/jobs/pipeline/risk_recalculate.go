package pipeline

import (
	"github.com/hearthstack/homescore-backend/internal/jobs"
	"github.com/hearthstack/homescore-backend/internal/services"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type riskRecalculate struct {
	risk services.RiskService
}

func NewRiskRecalculate(risk services.RiskService) jobs.Handler {
	return &riskRecalculate{risk: risk}
}

func (h *riskRecalculate) Type() string { return types.JobTypeRiskRecalculate }

func (h *riskRecalculate) Run(jc *jobs.Context) error {
	propertyID, err := jc.PropertyID()
	if err != nil {
		jc.Fail("resolve_property", err)
		return nil
	}
	report, outcome, err := h.risk.Recalculate(jc.DB(), propertyID)
	if err != nil {
		jc.Fail("recalculate", err)
		return nil
	}
	jc.Succeed(map[string]any{
		"risk_score":     report.RiskScore,
		"exposure_total": report.FinancialExposureTotal,
		"side_effect":    outcome,
	})
	return nil
}
