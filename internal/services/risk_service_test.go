package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/catalog"
	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
	"github.com/hearthstack/homescore-backend/internal/scoring/risk"
	"github.com/hearthstack/homescore-backend/internal/types"
)

var riskTestNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

type riskFixture struct {
	propertyID  uuid.UUID
	props       *fakePropertyRepo
	policies    *fakePolicyRepo
	warranties  *fakeWarrantyRepo
	reports     *fakeRiskReportRepo
	maintenance *fakeMaintenanceRepo
	snapshots   *fakeSnapshotRepo
	jobRuns     *fakeJobRunRepo
	svc         *riskService
	clock       time.Time
}

func newRiskFixture(t *testing.T) *riskFixture {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	log := testLogger()
	f := &riskFixture{
		propertyID:  uuid.New(),
		props:       newFakePropertyRepo(),
		policies:    &fakePolicyRepo{},
		warranties:  &fakeWarrantyRepo{},
		reports:     &fakeRiskReportRepo{},
		maintenance: &fakeMaintenanceRepo{},
		snapshots:   newFakeSnapshotRepo(),
		jobRuns:     &fakeJobRunRepo{},
		clock:       riskTestNow,
	}
	f.props.props[f.propertyID] = &types.Property{ID: f.propertyID, OwnerUserID: uuid.New(), PropertyType: "single_family"}
	snapshotSvc := NewSnapshotService(nil, log, f.snapshots)
	jobSvc := NewJobService(nil, log, f.jobRuns)
	f.svc = NewRiskService(nil, log, cat, f.props, f.policies, f.warranties, f.reports, f.maintenance, snapshotSvc, jobSvc).(*riskService)
	f.svc.nowFn = func() time.Time { return f.clock }
	return f
}

// A profile whose water heater is far past expected life: evaluates to
// HIGH and triggers the maintenance side effect. Roof and foundation come
// out below HIGH.
func (f *riskFixture) seedScorableFacts() {
	f.props.facts[f.propertyID] = &types.PropertyFacts{
		PropertyID:             f.propertyID,
		YearBuilt:              intPtr(1990),
		LivingAreaSqFt:         intPtr(2000),
		RoofInstallYear:        intPtr(2024),
		WaterHeaterInstallYear: intPtr(2000),
	}
}

func TestRecalculateUnknownPropertyIsNotFound(t *testing.T) {
	f := newRiskFixture(t)
	_, _, err := f.svc.Recalculate(testDbc(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not_found kind", err)
	}
}

func TestRecalculateWithoutFactsEmitsDataMissingDetail(t *testing.T) {
	f := newRiskFixture(t)

	report, outcome, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if report.RiskScore != 0 || report.FinancialExposureTotal != 0 {
		t.Fatalf("score/exposure = %v/%v, want zeros", report.RiskScore, report.FinancialExposureTotal)
	}
	details, err := report.DecodeDetails()
	if err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(details) != 1 || !details[0].Synthetic || details[0].SystemType != risk.SyntheticDataMissing {
		t.Fatalf("details = %+v, want one synthetic data_missing entry", details)
	}
	if outcome.TasksAttempted != 0 || outcome.TasksCreated != 0 {
		t.Fatalf("synthetic details must not spawn tasks: %+v", outcome)
	}
}

func TestRecalculateScoresAssetsAndAppendsSnapshot(t *testing.T) {
	f := newRiskFixture(t)
	f.seedScorableFacts()

	report, outcome, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if report.RiskScore <= 0 || report.RiskScore >= 100 {
		t.Fatalf("risk score = %v, want strictly between 0 and 100", report.RiskScore)
	}
	if report.FinancialExposureTotal <= 0 {
		t.Fatalf("exposure total = %v, want positive", report.FinancialExposureTotal)
	}
	if !report.LastCalculatedAt.Equal(riskTestNow) {
		t.Fatalf("last calculated at = %v, want %v", report.LastCalculatedAt, riskTestNow)
	}

	details, _ := report.DecodeDetails()
	bySystem := map[string]types.AssetRiskDetail{}
	for _, d := range details {
		bySystem[d.SystemType] = d
	}
	wh, ok := bySystem[catalog.SystemWaterHeater]
	if !ok {
		t.Fatalf("water heater missing from details: %v", bySystem)
	}
	if wh.RiskLevel != types.RiskLevelHigh {
		t.Fatalf("26-year-old water heater level = %s, want HIGH", wh.RiskLevel)
	}
	// End-of-life wear and tear exposes the full replacement cost.
	if wh.OutOfPocketCost != wh.ReplacementCost {
		t.Fatalf("out of pocket = %v, want full cost %v", wh.OutOfPocketCost, wh.ReplacementCost)
	}

	if outcome.TasksCreated != 1 || len(f.maintenance.tasks) != 1 {
		t.Fatalf("tasks created = %d (%d stored), want exactly 1", outcome.TasksCreated, len(f.maintenance.tasks))
	}
	task := f.maintenance.tasks[0]
	if task.SystemType != catalog.SystemWaterHeater || task.Priority != types.MaintenancePriorityCritical || task.Source != types.MaintenanceSourceRiskCalc {
		t.Fatalf("unexpected task: %+v", task)
	}

	ok, err = f.snapshots.HasWeek(testDbc().Ctx, nil, f.propertyID, types.ScoreTypeRisk, types.WeekStartFor(riskTestNow))
	if err != nil || !ok {
		t.Fatalf("weekly risk snapshot missing (ok=%v err=%v)", ok, err)
	}
}

func TestRecalculateDoesNotDuplicateOpenTasks(t *testing.T) {
	f := newRiskFixture(t)
	f.seedScorableFacts()

	if _, _, err := f.svc.Recalculate(testDbc(), f.propertyID); err != nil {
		t.Fatalf("first recalculate: %v", err)
	}
	_, outcome, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("second recalculate: %v", err)
	}
	if outcome.TasksAttempted != 1 || outcome.TasksCreated != 0 {
		t.Fatalf("outcome = %+v, want attempted 1, created 0", outcome)
	}
	if len(f.maintenance.tasks) != 1 {
		t.Fatalf("task count = %d, want 1 after rerun", len(f.maintenance.tasks))
	}
}

func TestWarrantyDeductibleCapsExposure(t *testing.T) {
	f := newRiskFixture(t)
	// Roof at 60% of expected life: sudden-failure territory, so the
	// active warranty deductible bounds the out-of-pocket cost.
	f.props.facts[f.propertyID] = &types.PropertyFacts{
		PropertyID:      f.propertyID,
		YearBuilt:       intPtr(2005),
		LivingAreaSqFt:  intPtr(2000),
		RoofInstallYear: intPtr(2011),
	}
	f.warranties.rows = append(f.warranties.rows, &types.HomeWarranty{
		PropertyID: f.propertyID,
		Deductible: 125,
		AnnualCost: 600,
		ExpiresAt:  riskTestNow.Add(24 * time.Hour),
	})

	report, _, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	details, _ := report.DecodeDetails()
	for _, d := range details {
		if d.SystemType == catalog.SystemRoof {
			if d.OutOfPocketCost != 125 {
				t.Fatalf("roof out of pocket = %v, want warranty deductible 125", d.OutOfPocketCost)
			}
			return
		}
	}
	t.Fatalf("roof missing from details")
}

func TestGetJudgesFreshnessAgainstWindow(t *testing.T) {
	f := newRiskFixture(t)
	f.seedScorableFacts()

	if _, _, err := f.svc.Recalculate(testDbc(), f.propertyID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	f.clock = riskTestNow.Add(10 * time.Minute)
	report, freshness, err := f.svc.Get(testDbc(), f.propertyID)
	if err != nil || report == nil {
		t.Fatalf("get: report=%v err=%v", report, err)
	}
	if freshness != FreshnessFresh {
		t.Fatalf("freshness = %s, want fresh inside the window", freshness)
	}
	if len(f.jobRuns.rows) != 0 {
		t.Fatalf("fresh read must not enqueue, found %d jobs", len(f.jobRuns.rows))
	}

	f.clock = riskTestNow.Add(ReportStalenessWindow + time.Minute)
	report, freshness, err = f.svc.Get(testDbc(), f.propertyID)
	if err != nil || report == nil {
		t.Fatalf("stale get: report=%v err=%v", report, err)
	}
	if freshness != FreshnessStale {
		t.Fatalf("freshness = %s, want stale past the window", freshness)
	}
	// Stale reads serve the old value and trigger exactly one background
	// refresh; repeats collapse on the dedupe key.
	if !report.LastCalculatedAt.Equal(riskTestNow) {
		t.Fatalf("stale read recomputed: %v", report.LastCalculatedAt)
	}
	if _, _, err := f.svc.Get(testDbc(), f.propertyID); err != nil {
		t.Fatalf("repeat stale get: %v", err)
	}
	if len(f.jobRuns.rows) != 1 {
		t.Fatalf("job rows = %d, want 1 after repeated stale reads", len(f.jobRuns.rows))
	}
	if f.jobRuns.rows[0].JobType != types.JobTypeRiskRecalculate {
		t.Fatalf("job type = %s, want %s", f.jobRuns.rows[0].JobType, types.JobTypeRiskRecalculate)
	}
}

func TestGetOrRecalculateIsIdempotentWithinWindow(t *testing.T) {
	f := newRiskFixture(t)
	f.seedScorableFacts()

	first, err := f.svc.GetOrRecalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if f.reports.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", f.reports.upserts)
	}

	f.clock = riskTestNow.Add(ReportStalenessWindow - time.Minute)
	second, err := f.svc.GetOrRecalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if f.reports.upserts != 1 {
		t.Fatalf("fresh report was recomputed (upserts = %d)", f.reports.upserts)
	}
	if second.ID != first.ID || !second.LastCalculatedAt.Equal(first.LastCalculatedAt) {
		t.Fatalf("second call returned a different report")
	}

	f.clock = riskTestNow.Add(ReportStalenessWindow + time.Minute)
	third, err := f.svc.GetOrRecalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if f.reports.upserts != 2 {
		t.Fatalf("stale report should recompute (upserts = %d)", f.reports.upserts)
	}
	if !third.LastCalculatedAt.Equal(f.clock) {
		t.Fatalf("recomputed report timestamp = %v, want %v", third.LastCalculatedAt, f.clock)
	}
}
