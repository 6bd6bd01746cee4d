package homescore

import (
	"fmt"
	"math"
	"sort"

	"github.com/hearthstack/homescore-backend/internal/scoring/risk"
	"github.com/hearthstack/homescore-backend/internal/types"
)

const financialReasonThreshold = 75.0

// buildReasons ranks the factors holding the score down: missing data per
// component, elevated individual asset risks, and a financial score below
// threshold. Sorted by weight descending; the top entry becomes the next
// best action.
func buildReasons(in Input, healthSource, riskSource, financialSource string, financialScore float64) []Reason {
	var reasons []Reason

	reasons = append(reasons, componentDataReasons(in, healthSource, riskSource, financialSource)...)
	reasons = append(reasons, assetRiskReasons(in.RiskDetails)...)

	if in.Financial.Status != StatusMissing && financialScore < financialReasonThreshold {
		reasons = append(reasons, Reason{
			Code:       "financial_below_benchmark",
			Title:      "Ownership costs run above your local benchmark",
			Detail:     fmt.Sprintf("Your financial efficiency score is %.0f; homes spending at benchmark score 100.", financialScore),
			Impact:     ImpactNegative,
			Weight:     0.45 + (financialReasonThreshold-financialScore)/200,
			Confidence: BucketConfidence(in.Financial.ConfidenceRatio),
		})
	}

	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].Weight > reasons[j].Weight
	})

	if len(reasons) == 0 {
		reasons = append(reasons, Reason{
			Code:       "profile_strong",
			Title:      "No major factors are holding your score down",
			Impact:     ImpactPositive,
			Weight:     0.1,
			Confidence: BucketConfidence(in.Health.ConfidenceRatio),
		})
	}
	return reasons
}

func componentDataReasons(in Input, healthSource, riskSource, financialSource string) []Reason {
	var reasons []Reason

	if in.Health.Status == StatusMissing || healthSource != SourceFresh {
		reasons = append(reasons, Reason{
			Code:       "health_data_gap",
			Title:      "Health score is running on incomplete home facts",
			Detail:     "Answering the remaining profile questions sharpens the health component.",
			Impact:     ImpactNegative,
			Weight:     0.80,
			Confidence: BucketConfidence(in.Health.ConfidenceRatio),
		})
	}

	switch {
	case hasSyntheticDetail(in.RiskDetails, risk.SyntheticDataMissing):
		reasons = append(reasons, Reason{
			Code:       "risk_profile_missing",
			Title:      "Risk score is blocked on basic property facts",
			Detail:     "Year built and size are required before asset risks can be modeled.",
			Impact:     ImpactNegative,
			Weight:     0.90,
			Confidence: ConfidenceLow,
		})
	case in.Risk.Status == StatusQueued || in.Risk.Status == StatusStale || riskSource == SourceSnapshot:
		reasons = append(reasons, Reason{
			Code:       "risk_refresh_pending",
			Title:      "Risk figures reflect last week's calculation",
			Detail:     "A fresh risk calculation is in flight; the last known value is shown meanwhile.",
			Impact:     ImpactNeutral,
			Weight:     0.35,
			Confidence: BucketConfidence(in.Risk.ConfidenceRatio),
		})
	}

	if in.Financial.Status == StatusMissing || financialSource == SourceNeutral {
		reasons = append(reasons, Reason{
			Code:       "financial_data_gap",
			Title:      "Financial efficiency lacks cost data to score",
			Detail:     "Link insurance, warranty and utility costs to replace the neutral placeholder.",
			Impact:     ImpactNegative,
			Weight:     0.70,
			Confidence: BucketConfidence(in.Financial.ConfidenceRatio),
		})
	}
	return reasons
}

func assetRiskReasons(details []types.AssetRiskDetail) []Reason {
	var reasons []Reason
	for _, d := range details {
		if d.Synthetic || !d.RiskLevel.AtLeast(types.RiskLevelElevated) {
			continue
		}
		weight := 0.50
		switch d.RiskLevel {
		case types.RiskLevelHigh:
			weight = 0.80
		case types.RiskLevelCritical:
			weight = 0.95
		}
		// Dollar exposure breaks ties within a bucket.
		weight += math.Min(d.RiskDollar/200000, 0.04)
		reasons = append(reasons, Reason{
			Code:       "asset_risk_" + d.SystemType,
			Title:      fmt.Sprintf("Your %s carries elevated failure risk", d.SystemType),
			Detail:     fmt.Sprintf("Estimated exposure $%.0f at %.0f%% failure probability. %s", d.RiskDollar, d.Probability*100, d.ActionCTA),
			Impact:     ImpactNegative,
			Weight:     weight,
			Confidence: ConfidenceHigh,
		})
	}
	return reasons
}

func hasSyntheticDetail(details []types.AssetRiskDetail, systemType string) bool {
	for _, d := range details {
		if d.Synthetic && d.SystemType == systemType {
			return true
		}
	}
	return false
}
