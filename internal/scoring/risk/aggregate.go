package risk

import (
	"math"

	"github.com/hearthstack/homescore-backend/internal/types"
)

const (
	fallbackSqFt        = 2000.0
	exposurePerSqFt     = 25.0
	exposureCapFraction = 0.20
)

// Summary is the property-level rollup of the per-asset details.
type Summary struct {
	RiskScore              float64
	FinancialExposureTotal float64
}

// Aggregate sums asset risk dollars into a 0-100 score. The penalty is
// quadratic in the exposure ratio so the score collapses quickly as total
// exposure approaches the per-property ceiling.
func Aggregate(details []types.AssetRiskDetail, livingAreaSqFt *int) Summary {
	total := 0.0
	for _, d := range details {
		total += d.RiskDollar
	}

	sqft := fallbackSqFt
	if livingAreaSqFt != nil && *livingAreaSqFt > 0 {
		sqft = float64(*livingAreaSqFt)
	}
	maxPotentialExposure := sqft * exposurePerSqFt
	maxRiskDollar := exposureCapFraction * maxPotentialExposure

	ratio := 0.0
	if maxRiskDollar > 0 {
		ratio = clampFloat(total/maxRiskDollar, 0, 1)
	}
	score := math.Round(100 * (1 - ratio*ratio))

	return Summary{
		RiskScore:              score,
		FinancialExposureTotal: total,
	}
}
