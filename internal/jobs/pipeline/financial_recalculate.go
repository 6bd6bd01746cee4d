package pipeline

import (
	"github.com/hearthstack/homescore-backend/internal/jobs"
	"github.com/hearthstack/homescore-backend/internal/services"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type financialRecalculate struct {
	financial services.FinancialService
}

func NewFinancialRecalculate(financial services.FinancialService) jobs.Handler {
	return &financialRecalculate{financial: financial}
}

func (h *financialRecalculate) Type() string { return types.JobTypeFinancialRecalculate }

func (h *financialRecalculate) Run(jc *jobs.Context) error {
	propertyID, err := jc.PropertyID()
	if err != nil {
		jc.Fail("resolve_property", err)
		return nil
	}
	report, err := h.financial.Recalculate(jc.DB(), propertyID)
	if err != nil {
		jc.Fail("recalculate", err)
		return nil
	}
	result := map[string]any{"status": report.Status}
	if report.FinancialEfficiencyScore != nil {
		result["score"] = *report.FinancialEfficiencyScore
	}
	jc.Succeed(result)
	return nil
}
