package risk

import (
	"time"

	"github.com/hearthstack/homescore-backend/internal/catalog"
	"github.com/hearthstack/homescore-backend/internal/types"
)

const (
	baselineProbability = 0.05
	probabilityFloor    = 0.85
	floorRatio          = 1.2
	wearAndTearCutoff   = 0.70
	maxAgeYears         = 100
)

// Coverage is the property's insurance/warranty context at calculation
// time. WarrantyDeductible is only set for a warranty active right now.
type Coverage struct {
	WarrantyDeductible  *float64
	HasInsurance        bool
	InsuranceDeductible *float64
}

// AssetInput carries the per-asset facts the model needs beyond the
// catalog config.
type AssetInput struct {
	InstallYear  *int
	WarningFlags map[string]bool
	Coverage     Coverage
}

// EvaluateAsset computes the failure risk for one asset. The second return
// is false when the asset has to be skipped because no install year is
// known; a skipped asset carries no risk, silently.
func EvaluateAsset(cfg catalog.AssetConfig, in AssetInput, now time.Time) (types.AssetRiskDetail, bool) {
	if in.InstallYear == nil {
		return types.AssetRiskDetail{}, false
	}

	age := clampInt(now.Year()-*in.InstallYear, 0, maxAgeYears)

	var p float64
	if age == 0 {
		p = baselineProbability
	} else {
		ratio := clampFloat(float64(age)/float64(cfg.ExpectedLifeYears), 0, 2)
		p = clampFloat(0.10+0.90*ratio*ratio, 0, 1)
		p += warningBump(cfg, in.WarningFlags)
		// An asset 20%+ past expected life stays high-risk no matter what
		// the flags subtract.
		if ratio >= floorRatio && p < probabilityFloor {
			p = probabilityFloor
		}
		p = clampFloat(p, 0, 1)
	}

	outOfPocket := outOfPocketCost(p, cfg.ReplacementCost, in.Coverage)
	riskDollar := p * outOfPocket

	coverageFactor := 0.0
	if cfg.ReplacementCost > 0 {
		coverageFactor = clampFloat(1-outOfPocket/cfg.ReplacementCost, 0, 1)
	}

	level := bucketRiskLevel(riskDollar, cfg.ReplacementCost)
	pastLife := age >= cfg.ExpectedLifeYears

	return types.AssetRiskDetail{
		SchemaVersion:   types.RiskDetailSchemaVersion,
		SystemType:      cfg.SystemType,
		Category:        cfg.Category,
		AgeYears:        age,
		ExpectedLife:    cfg.ExpectedLifeYears,
		ReplacementCost: cfg.ReplacementCost,
		Probability:     p,
		CoverageFactor:  coverageFactor,
		OutOfPocketCost: outOfPocket,
		RiskDollar:      riskDollar,
		RiskLevel:       level,
		ActionCTA:       actionCTA(cfg.SystemType, level, pastLife, outOfPocket >= cfg.ReplacementCost),
	}, true
}

func warningBump(cfg catalog.AssetConfig, active map[string]bool) float64 {
	bump := 0.0
	for flag, delta := range cfg.WarningFlags {
		if active[flag] {
			bump += delta
		}
	}
	return bump
}

// outOfPocketCost branches on the failure mode. High-probability failures
// are end-of-life wear and tear, which standard insurance and warranty
// products exclude, so the full replacement cost is exposed. Sudden
// failures fall back through warranty deductible, then insurance
// deductible, then full cost.
func outOfPocketCost(p, replacementCost float64, cov Coverage) float64 {
	if p > wearAndTearCutoff {
		return replacementCost
	}
	var oop float64
	switch {
	case cov.WarrantyDeductible != nil:
		oop = *cov.WarrantyDeductible
	case cov.HasInsurance && cov.InsuranceDeductible != nil:
		oop = *cov.InsuranceDeductible
	default:
		oop = replacementCost
	}
	return clampFloat(oop, 0, replacementCost)
}

// bucketRiskLevel buckets on risk dollars relative to half the replacement
// cost. This function never emits CRITICAL; the enum keeps the value for
// the downstream task filter.
func bucketRiskLevel(riskDollar, replacementCost float64) types.RiskLevel {
	if replacementCost <= 0 {
		return types.RiskLevelLow
	}
	scoreRatio := riskDollar / (replacementCost * 0.5)
	switch {
	case scoreRatio < 0.10:
		return types.RiskLevelLow
	case scoreRatio < 0.30:
		return types.RiskLevelModerate
	case scoreRatio < 0.60:
		return types.RiskLevelElevated
	default:
		return types.RiskLevelHigh
	}
}

func actionCTA(systemType string, level types.RiskLevel, pastLife, uncovered bool) string {
	switch {
	case level.AtLeast(types.RiskLevelHigh) && uncovered:
		return "Add insurance or home-warranty coverage for your " + systemLabel(systemType) + " to reduce out-of-pocket exposure."
	case pastLife:
		return "Schedule an inspection or plan replacement: your " + systemLabel(systemType) + " is past its expected life."
	case level.AtLeast(types.RiskLevelElevated):
		return "Start budgeting for " + systemLabel(systemType) + " repairs in the next few years."
	default:
		return "No action needed for your " + systemLabel(systemType) + " right now."
	}
}

func systemLabel(systemType string) string {
	switch systemType {
	case catalog.SystemRoof:
		return "roof"
	case catalog.SystemFoundation:
		return "foundation"
	case catalog.SystemFurnace:
		return "furnace"
	case catalog.SystemHeatPump:
		return "heat pump"
	case catalog.SystemCentralAC:
		return "central AC"
	case catalog.SystemWaterHeater:
		return "water heater"
	case catalog.SystemElectricalPanel:
		return "electrical panel"
	case catalog.SystemSafetyDetectors:
		return "safety detectors"
	default:
		return systemType
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
