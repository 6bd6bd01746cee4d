package homescore

import (
	"fmt"
	"sort"
)

const maxConsistencyResults = 6
const lowCompletenessCutoff = 0.60

var checkStatusRank = map[CheckStatus]int{CheckFail: 0, CheckWarn: 1, CheckPass: 2}
var severityRank = map[Severity]int{SeverityHigh: 0, SeverityMedium: 1, SeverityLow: 2}

// runConsistencyChecks applies the fixed sanity battery over the property
// facts. Every rule always reports; the list is sorted worst-first and
// truncated.
func runConsistencyChecks(in Input) []ConsistencyCheck {
	checks := []ConsistencyCheck{
		checkInstallChronology(in),
		checkFutureDates(in),
		checkSafetyEquipment(in),
		checkMaintenanceBacklog(in),
		checkCoverageEvidence(in),
		checkProfileCompleteness(in),
	}

	sort.SliceStable(checks, func(i, j int) bool {
		if checkStatusRank[checks[i].Status] != checkStatusRank[checks[j].Status] {
			return checkStatusRank[checks[i].Status] < checkStatusRank[checks[j].Status]
		}
		return severityRank[checks[i].Severity] < severityRank[checks[j].Severity]
	})

	if len(checks) > maxConsistencyResults {
		checks = checks[:maxConsistencyResults]
	}
	return checks
}

func installYears(in Input) map[string]*int {
	f := in.Facts
	if f == nil {
		return nil
	}
	return map[string]*int{
		"roof":             f.RoofInstallYear,
		"hvac":             f.HVACInstallYear,
		"water_heater":     f.WaterHeaterInstallYear,
		"electrical_panel": f.ElectricalPanelYear,
		"detectors":        f.DetectorsInstallYear,
	}
}

func checkInstallChronology(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "install_years_chronology",
		Description: "System install years are consistent with the build year",
		Status:      CheckPass,
		Severity:    SeverityHigh,
	}
	if in.Facts == nil || in.Facts.YearBuilt == nil {
		return check
	}
	for name, year := range installYears(in) {
		if year != nil && *year < *in.Facts.YearBuilt {
			check.Status = CheckFail
			check.Description = fmt.Sprintf("The %s install year predates the home's build year", name)
			return check
		}
	}
	return check
}

func checkFutureDates(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "no_future_installs",
		Description: "No system replacement is dated in the future",
		Status:      CheckPass,
		Severity:    SeverityMedium,
	}
	currentYear := in.Now.Year()
	for name, year := range installYears(in) {
		if year != nil && *year > currentYear {
			check.Status = CheckFail
			check.Description = fmt.Sprintf("The %s install year is in the future", name)
			return check
		}
	}
	return check
}

func checkSafetyEquipment(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "safety_equipment",
		Description: "Smoke and CO detectors are present",
		Status:      CheckPass,
		Severity:    SeverityHigh,
	}
	if in.Facts == nil {
		return check
	}
	switch {
	case !in.Facts.HasSmokeDetectors && !in.Facts.HasCODetectors:
		check.Status = CheckFail
		check.Description = "No smoke or CO detectors are on record"
	case !in.Facts.HasSmokeDetectors || !in.Facts.HasCODetectors:
		check.Status = CheckWarn
		check.Severity = SeverityMedium
		check.Description = "One detector type is missing from the record"
	}
	return check
}

func checkMaintenanceBacklog(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "maintenance_backlog",
		Description: "Maintenance backlog is under control",
		Status:      CheckPass,
		Severity:    SeverityMedium,
	}
	switch {
	case in.OpenCriticalMaintenance > 0:
		check.Status = CheckFail
		check.Severity = SeverityHigh
		check.Description = fmt.Sprintf("%d critical maintenance tasks are open", in.OpenCriticalMaintenance)
	case in.OverdueMaintenance > 3:
		check.Status = CheckWarn
		check.Description = fmt.Sprintf("%d maintenance tasks are overdue", in.OverdueMaintenance)
	}
	return check
}

func checkCoverageEvidence(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "coverage_evidence",
		Description: "Coverage records are backed by documents",
		Status:      CheckPass,
		Severity:    SeverityLow,
	}
	if in.CoverageRecordCount > 0 && in.CoverageDocumentCount == 0 {
		check.Status = CheckWarn
		check.Description = "Insurance or warranty records exist without supporting documents"
	}
	return check
}

func checkProfileCompleteness(in Input) ConsistencyCheck {
	check := ConsistencyCheck{
		Rule:        "profile_completeness",
		Description: "Property profile is sufficiently complete",
		Status:      CheckPass,
		Severity:    SeverityMedium,
	}
	completeness := in.Facts.CompletenessRatio()
	if completeness < lowCompletenessCutoff {
		check.Status = CheckWarn
		check.Description = fmt.Sprintf("Profile is only %.0f%% complete", completeness*100)
	}
	return check
}
