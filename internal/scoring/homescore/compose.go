package homescore

import (
	"github.com/hearthstack/homescore-backend/internal/scoring/trend"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// Fixed composite weights. These never renormalize: a component with no
// usable value contributes its neutral placeholder instead.
const (
	WeightHealth    = 0.40
	WeightRisk      = 0.35
	WeightFinancial = 0.25
)

const neutralComponentScore = 50.0

// Score bands for presentation.
const (
	BandExcellent = "EXCELLENT"
	BandGood      = "GOOD"
	BandFair      = "FAIR"
	BandPoor      = "POOR"
	BandAtRisk    = "AT_RISK"
)

// effectiveScore picks the value a component contributes: the fresh score
// when present, the last snapshot otherwise, and a neutral 50 when neither
// exists. The source string records which one was used so reasons and
// confidence can account for the substitution.
func effectiveScore(c ComponentInput) (float64, string) {
	if c.Score != nil {
		return clamp(*c.Score, 0, 100), SourceFresh
	}
	if c.SnapshotFallback != nil {
		return clamp(*c.SnapshotFallback, 0, 100), SourceSnapshot
	}
	return neutralComponentScore, SourceNeutral
}

// Compose blends the three component values into the composite score.
// The result is invariant under the order the components were fetched in:
// it depends only on the three values.
func Compose(health, riskVal, financialVal float64) float64 {
	score := WeightHealth*health + WeightRisk*riskVal + WeightFinancial*financialVal
	return clamp(trend.Round10(score), 0, 100)
}

func ScoreBandFor(score float64) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 75:
		return BandGood
	case score >= 60:
		return BandFair
	case score >= 40:
		return BandPoor
	default:
		return BandAtRisk
	}
}

// compositeDelta is the weighted sum of component week-over-week deltas,
// using only the components that actually have two snapshot points.
func compositeDelta(trends map[types.ScoreType]trend.Series) *float64 {
	type part struct {
		scoreType types.ScoreType
		weight    float64
	}
	parts := []part{
		{types.ScoreTypeHealth, WeightHealth},
		{types.ScoreTypeRisk, WeightRisk},
		{types.ScoreTypeFinancial, WeightFinancial},
	}
	total := 0.0
	found := false
	for _, p := range parts {
		series, ok := trends[p.scoreType]
		if !ok {
			continue
		}
		if d := series.DeltaFromPreviousWeek(); d != nil {
			total += p.weight * *d
			found = true
		}
	}
	if !found {
		return nil
	}
	d := trend.Round10(total)
	return &d
}

func trendLabel(delta *float64) string {
	switch {
	case delta == nil:
		return "flat"
	case *delta > 0:
		return "improving"
	case *delta < 0:
		return "declining"
	default:
		return "flat"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
