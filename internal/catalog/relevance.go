package catalog

import (
	"fmt"
	"time"

	"github.com/hearthstack/homescore-backend/internal/types"
)

const oldPanelAgeYears = 30

// RelevantConfigs selects the catalog entries matching equipment the
// property actually has. Entries whose systemType the filter does not
// understand are dropped and reported in the diagnostics slice, never
// silently risk-scored.
func RelevantConfigs(c *Catalog, facts *types.PropertyFacts, now time.Time) (included []AssetConfig, diagnostics []string) {
	if c == nil || facts == nil {
		return nil, nil
	}
	for _, cfg := range c.Assets {
		switch cfg.SystemType {
		case SystemRoof, SystemFoundation, SystemWaterHeater:
			// Present on every home the profile describes.
			included = append(included, cfg)
		case SystemFurnace:
			if facts.HeatingType != "" && facts.HeatingType != "heat_pump" {
				included = append(included, cfg)
			}
		case SystemHeatPump:
			if facts.HeatingType == "heat_pump" {
				included = append(included, cfg)
			}
		case SystemCentralAC:
			if facts.CoolingType == "central" {
				included = append(included, cfg)
			}
		case SystemElectricalPanel:
			if facts.ElectricalPanelYear != nil && now.Year()-*facts.ElectricalPanelYear >= oldPanelAgeYears {
				included = append(included, cfg)
			}
		case SystemSafetyDetectors:
			if facts.HasSmokeDetectors || facts.HasCODetectors {
				included = append(included, cfg)
			}
		default:
			diagnostics = append(diagnostics, fmt.Sprintf("unknown system_type %q dropped from risk calculation", cfg.SystemType))
		}
	}
	return included, diagnostics
}

// InstallYearFor resolves the install year for one system type from the
// property facts. nil means the age cannot be determined and the asset
// must be skipped rather than scored on a guess.
func InstallYearFor(systemType string, facts *types.PropertyFacts) *int {
	if facts == nil {
		return nil
	}
	switch systemType {
	case SystemRoof:
		return facts.RoofInstallYear
	case SystemFoundation:
		return facts.YearBuilt
	case SystemFurnace, SystemHeatPump, SystemCentralAC:
		return facts.HVACInstallYear
	case SystemWaterHeater:
		return facts.WaterHeaterInstallYear
	case SystemElectricalPanel:
		return facts.ElectricalPanelYear
	case SystemSafetyDetectors:
		return facts.DetectorsInstallYear
	default:
		return nil
	}
}

// ActiveWarningFlags maps the property's boolean warning facts to the
// named flags a catalog entry may carry bumps for.
func ActiveWarningFlags(facts *types.PropertyFacts) map[string]bool {
	if facts == nil {
		return nil
	}
	return map[string]bool{
		"drainage_issues": facts.HasDrainageIssues,
	}
}
