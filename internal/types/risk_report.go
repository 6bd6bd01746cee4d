package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RiskLevel is an ordered bucket. Critical is part of the closed set
// because downstream task creation filters on it, but the asset model
// currently tops out at High; see DESIGN.md.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelElevated RiskLevel = "ELEVATED"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

var riskLevelRank = map[RiskLevel]int{
	RiskLevelLow:      0,
	RiskLevelModerate: 1,
	RiskLevelElevated: 2,
	RiskLevelHigh:     3,
	RiskLevelCritical: 4,
}

// AtLeast reports whether l is at or above other in the bucket ordering.
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return riskLevelRank[l] >= riskLevelRank[other]
}

// RiskDetailSchemaVersion is bumped whenever the serialized shape of
// AssetRiskDetail changes, so stored report payloads stay interpretable.
const RiskDetailSchemaVersion = 1

// AssetRiskDetail is the computed risk for one asset on one property.
// It is persisted only inside a RiskReport payload, never as its own row.
type AssetRiskDetail struct {
	SchemaVersion   int       `json:"schema_version"`
	SystemType      string    `json:"system_type"`
	Category        string    `json:"category"`
	AgeYears        int       `json:"age_years"`
	ExpectedLife    int       `json:"expected_life"`
	ReplacementCost float64   `json:"replacement_cost"`
	Probability     float64   `json:"probability"`
	CoverageFactor  float64   `json:"coverage_factor"`
	OutOfPocketCost float64   `json:"out_of_pocket_cost"`
	RiskDollar      float64   `json:"risk_dollar"`
	RiskLevel       RiskLevel `json:"risk_level"`
	ActionCTA       string    `json:"action_cta"`
	Synthetic       bool      `json:"synthetic,omitempty"`
}

type RiskReport struct {
	ID                     uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PropertyID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"property_id"`
	RiskScore              float64        `gorm:"column:risk_score;not null;default:0" json:"risk_score"`
	FinancialExposureTotal float64        `gorm:"column:financial_exposure_total;not null;default:0" json:"financial_exposure_total"`
	Details                datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	LastCalculatedAt       time.Time      `gorm:"column:last_calculated_at;not null" json:"last_calculated_at"`
	CreatedAt              time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (RiskReport) TableName() string { return "risk_report" }

func (r *RiskReport) DecodeDetails() ([]AssetRiskDetail, error) {
	if r == nil || len(r.Details) == 0 {
		return nil, nil
	}
	var out []AssetRiskDetail
	if err := json.Unmarshal(r.Details, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func EncodeRiskDetails(details []AssetRiskDetail) (datatypes.JSON, error) {
	b, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
