package homescore

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/scoring/trend"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// Component identifiers inside the composite.
const (
	ComponentHealth    = "health"
	ComponentRisk      = "risk"
	ComponentFinancial = "financial"
)

// Component statuses as seen by the aggregator.
const (
	StatusOK      = "ok"
	StatusQueued  = "queued"
	StatusStale   = "stale"
	StatusMissing = "missing"
)

// Score value sources.
const (
	SourceFresh    = "fresh"
	SourceSnapshot = "snapshot"
	SourceNeutral  = "neutral"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckWarn CheckStatus = "WARN"
	CheckFail CheckStatus = "FAIL"
)

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// ComponentInput is one of the three score feeds entering the composite.
// Score is the freshly computed value when one exists; SnapshotFallback is
// the last persisted weekly value used when the fresh one is queued, stale
// or failed. ConfidenceRatio is the fraction of expected facts behind the
// component that are actually populated or verified.
type ComponentInput struct {
	Score            *float64
	SnapshotFallback *float64
	Status           string
	ConfidenceRatio  float64
}

// CorrectionEvent is the slice of the correction ledger the changelog
// cares about.
type CorrectionEvent struct {
	At       time.Time `json:"at"`
	FieldKey string    `json:"field_key"`
	Status   string    `json:"status"`
}

// Input bundles everything the aggregation engine needs. It is assembled
// by the service layer; the engine itself reads nothing.
type Input struct {
	PropertyID uuid.UUID
	Now        time.Time

	Health    ComponentInput
	Risk      ComponentInput
	Financial ComponentInput

	Facts       *types.PropertyFacts
	RiskDetails []types.AssetRiskDetail
	// FinancialScoreValue duplicated inside Financial.Score; the raw
	// exposure figure feeds the dollar band.
	RiskExposureTotal float64

	Trends map[types.ScoreType]trend.Series

	Corrections []CorrectionEvent

	OpenCriticalMaintenance int
	OverdueMaintenance      int
	CoverageRecordCount     int
	CoverageDocumentCount   int
	HasInsurance            bool
	HasActiveWarranty       bool
}

type ComponentScore struct {
	Score           float64         `json:"score"`
	Weight          float64         `json:"weight"`
	Source          string          `json:"source"`
	Status          string          `json:"status"`
	Confidence      ConfidenceLevel `json:"confidence"`
	ConfidenceRatio float64         `json:"confidence_ratio"`
}

type Band struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Spread float64 `json:"spread"`
}

type DollarBand struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type Reason struct {
	Code       string          `json:"code"`
	Title      string          `json:"title"`
	Detail     string          `json:"detail,omitempty"`
	Impact     Impact          `json:"impact"`
	Weight     float64         `json:"weight"`
	Confidence ConfidenceLevel `json:"confidence"`
}

type ConsistencyCheck struct {
	Rule        string      `json:"rule"`
	Description string      `json:"description"`
	Status      CheckStatus `json:"status"`
	Severity    Severity    `json:"severity"`
}

type VerificationOpportunity struct {
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	ConfidenceGain float64 `json:"confidence_gain"`
}

type ChangeEntry struct {
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"`
	Component  string    `json:"component,omitempty"`
	Delta      *float64  `json:"delta,omitempty"`
	Direction  Impact    `json:"direction"`
	Note       string    `json:"note"`
}

// Report is the composite, user-facing read model. It is derivable from
// stored state at any time and is never persisted itself.
type Report struct {
	PropertyID            uuid.UUID                 `json:"property_id"`
	HomeScore             float64                   `json:"home_score"`
	ScoreBand             string                    `json:"score_band"`
	DeltaFromPreviousWeek *float64                  `json:"delta_from_previous_week,omitempty"`
	Trend                 string                    `json:"trend"`
	Health                ComponentScore            `json:"health"`
	Risk                  ComponentScore            `json:"risk"`
	Financial             ComponentScore            `json:"financial"`
	OverallConfidence     ConfidenceLevel           `json:"overall_confidence"`
	Uncertainty           Band                      `json:"uncertainty"`
	ExposureBand          *DollarBand               `json:"exposure_band,omitempty"`
	Reasons               []Reason                  `json:"reasons"`
	NextBestAction        *Reason                   `json:"next_best_action,omitempty"`
	ConsistencyChecks     []ConsistencyCheck        `json:"consistency_checks"`
	Verifications         []VerificationOpportunity `json:"verifications"`
	WeekOverWeek          []ChangeEntry             `json:"week_over_week"`
	ChangeLog             []ChangeEntry             `json:"change_log"`
	CorrectionHistory     []CorrectionEvent         `json:"correction_history"`
	GeneratedAt           time.Time                 `json:"generated_at"`
}
