package risk

import "github.com/hearthstack/homescore-backend/internal/types"

// Synthetic system types used when a real calculation cannot run. A report
// always exists; these details explain why it is not a precise one.
const (
	SyntheticDataMissing = "data_missing"
	SyntheticCalcFailure = "calculation_failure"
)

// DataMissingDetail replaces the whole asset list when the property lacks
// basic facts (size, year built). Flagged HIGH so the profile prompt
// surfaces at the top instead of presenting a falsely precise score.
func DataMissingDetail() types.AssetRiskDetail {
	return types.AssetRiskDetail{
		SchemaVersion: types.RiskDetailSchemaVersion,
		SystemType:    SyntheticDataMissing,
		Category:      "profile",
		RiskLevel:     types.RiskLevelHigh,
		ActionCTA:     "Complete your property profile (year built and size) to unlock a real risk score.",
		Synthetic:     true,
	}
}

// CalculationFailureDetail converts an unexpected calculation error into a
// flagged detail so downstream consumers never see a hard failure from
// this path. The error itself is logged by the caller, not shown to users.
func CalculationFailureDetail() types.AssetRiskDetail {
	return types.AssetRiskDetail{
		SchemaVersion: types.RiskDetailSchemaVersion,
		SystemType:    SyntheticCalcFailure,
		Category:      "internal",
		RiskLevel:     types.RiskLevelHigh,
		ActionCTA:     "We hit a problem computing this score. Our team has been notified; try again shortly.",
		Synthetic:     true,
	}
}
