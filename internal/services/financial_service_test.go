package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/types"
)

var finTestNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

type finFixture struct {
	propertyID uuid.UUID
	props      *fakePropertyRepo
	policies   *fakePolicyRepo
	warranties *fakeWarrantyRepo
	expenses   *fakeExpenseRepo
	benchmarks *fakeBenchmarkRepo
	reports    *fakeFinancialReportRepo
	snapshots  *fakeSnapshotRepo
	jobRuns    *fakeJobRunRepo
	svc        *financialService
	clock      time.Time
}

func newFinFixture(t *testing.T) *finFixture {
	t.Helper()
	log := testLogger()
	f := &finFixture{
		propertyID: uuid.New(),
		props:      newFakePropertyRepo(),
		policies:   &fakePolicyRepo{},
		warranties: &fakeWarrantyRepo{},
		expenses:   &fakeExpenseRepo{},
		benchmarks: newFakeBenchmarkRepo(),
		reports:    &fakeFinancialReportRepo{},
		snapshots:  newFakeSnapshotRepo(),
		jobRuns:    &fakeJobRunRepo{},
		clock:      finTestNow,
	}
	f.props.props[f.propertyID] = &types.Property{
		ID:           f.propertyID,
		OwnerUserID:  uuid.New(),
		Zip:          "78704",
		PropertyType: "single_family",
	}
	snapshotSvc := NewSnapshotService(nil, log, f.snapshots)
	jobSvc := NewJobService(nil, log, f.jobRuns)
	f.svc = NewFinancialService(nil, log, f.props, f.policies, f.warranties, f.expenses, f.benchmarks, f.reports, snapshotSvc, jobSvc).(*financialService)
	f.svc.nowFn = func() time.Time { return f.clock }
	return f
}

// Annualized actual spend of 4500: 1400 insurance + 500 warranty + 2600
// utilities over the trailing year.
func (f *finFixture) seedActuals() {
	f.policies.rows = append(f.policies.rows, &types.InsurancePolicy{
		ID:            uuid.New(),
		PropertyID:    f.propertyID,
		PolicyType:    "dwelling",
		AnnualPremium: 1400,
	})
	f.warranties.rows = append(f.warranties.rows, &types.HomeWarranty{
		ID:         uuid.New(),
		PropertyID: f.propertyID,
		AnnualCost: 500,
		ExpiresAt:  finTestNow.AddDate(1, 0, 0),
	})
	f.expenses.utilityTotal = 2600
}

func (f *finFixture) seedTypeDefaultBenchmark() {
	f.benchmarks.defaults["single_family"] = &types.FinancialBenchmark{
		ID:                  uuid.New(),
		PropertyType:        "single_family",
		AvgInsurancePremium: 1000,
		AvgUtilityCost:      2000,
		AvgWarrantyCost:     500,
	}
}

func (f *finFixture) seedExactBenchmark() {
	zip := "78704"
	f.benchmarks.exact[benchmarkKey{zip, "single_family"}] = &types.FinancialBenchmark{
		ID:                  uuid.New(),
		Zip:                 &zip,
		PropertyType:        "single_family",
		AvgInsurancePremium: 1200,
		AvgUtilityCost:      2400,
		AvgWarrantyCost:     600,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecalculatePrefersZipBenchmark(t *testing.T) {
	f := newFinFixture(t)
	f.seedActuals()
	f.seedExactBenchmark()
	f.seedTypeDefaultBenchmark()

	report, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if report.Status != types.FinancialStatusCalculated {
		t.Fatalf("status = %q, want CALCULATED", report.Status)
	}
	// The zip-specific row (total 4200) wins over the type default (3500).
	if !almostEqual(report.MarketAverageTotal, 4200) {
		t.Fatalf("market_average_total = %v, want 4200", report.MarketAverageTotal)
	}
	if report.FinancialEfficiencyScore == nil {
		t.Fatal("score is nil")
	}
	want := 4200.0/4500.0*50 + 50
	if !almostEqual(*report.FinancialEfficiencyScore, want) {
		t.Fatalf("score = %v, want %v", *report.FinancialEfficiencyScore, want)
	}
	if !almostEqual(report.ActualInsuranceCost, 1400) || !almostEqual(report.ActualUtilityCost, 2600) || !almostEqual(report.ActualWarrantyCost, 500) {
		t.Fatalf("actuals = %v/%v/%v", report.ActualInsuranceCost, report.ActualUtilityCost, report.ActualWarrantyCost)
	}
}

func TestRecalculateFallsBackToTypeDefault(t *testing.T) {
	f := newFinFixture(t)
	f.seedActuals()
	f.seedTypeDefaultBenchmark()

	report, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if report.Status != types.FinancialStatusCalculated {
		t.Fatalf("status = %q, want CALCULATED via type default", report.Status)
	}
	if !almostEqual(report.MarketAverageTotal, 3500) {
		t.Fatalf("market_average_total = %v, want 3500", report.MarketAverageTotal)
	}
	want := 3500.0/4500.0*50 + 50
	if report.FinancialEfficiencyScore == nil || !almostEqual(*report.FinancialEfficiencyScore, want) {
		t.Fatalf("score = %v, want %v", report.FinancialEfficiencyScore, want)
	}
}

func TestRecalculateWithoutAnyBenchmark(t *testing.T) {
	f := newFinFixture(t)
	f.seedActuals()

	report, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if report.Status != types.FinancialStatusNoBenchmark {
		t.Fatalf("status = %q, want NO_BENCHMARK", report.Status)
	}
	if report.FinancialEfficiencyScore != nil {
		t.Fatalf("score = %v, want nil without a benchmark", *report.FinancialEfficiencyScore)
	}
	has, err := f.snapshots.HasWeek(context.Background(), nil, f.propertyID, types.ScoreTypeFinancial, types.WeekStartFor(finTestNow))
	if err != nil {
		t.Fatalf("HasWeek: %v", err)
	}
	if has {
		t.Fatal("a scoreless report must not land in the trend series")
	}
}

func TestRecalculateWithoutCostDataScoresNeutral(t *testing.T) {
	f := newFinFixture(t)
	f.seedTypeDefaultBenchmark()

	report, err := f.svc.Recalculate(testDbc(), f.propertyID)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if report.Status != types.FinancialStatusMissingData {
		t.Fatalf("status = %q, want MISSING_DATA", report.Status)
	}
	if report.FinancialEfficiencyScore == nil || !almostEqual(*report.FinancialEfficiencyScore, 50) {
		t.Fatalf("score = %v, want neutral 50", report.FinancialEfficiencyScore)
	}
	has, err := f.snapshots.HasWeek(context.Background(), nil, f.propertyID, types.ScoreTypeFinancial, types.WeekStartFor(finTestNow))
	if err != nil {
		t.Fatalf("HasWeek: %v", err)
	}
	if !has {
		t.Fatal("the neutral placeholder still trends")
	}
}

func TestGetServesStaleAndEnqueuesOneRefresh(t *testing.T) {
	f := newFinFixture(t)
	f.reports.report = &types.FinancialReport{
		ID:               uuid.New(),
		PropertyID:       f.propertyID,
		Status:           types.FinancialStatusCalculated,
		LastCalculatedAt: finTestNow,
	}
	f.clock = finTestNow.Add(ReportStalenessWindow + time.Minute)

	for i := 0; i < 3; i++ {
		report, freshness, err := f.svc.Get(testDbc(), f.propertyID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if freshness != FreshnessStale {
			t.Fatalf("freshness = %q, want stale", freshness)
		}
		if report.LastCalculatedAt != finTestNow {
			t.Fatalf("stale Get must serve the stored report")
		}
	}

	var refreshJobs int
	for _, row := range f.jobRuns.rows {
		if row.JobType == types.JobTypeFinancialRecalculate {
			refreshJobs++
		}
	}
	if refreshJobs != 1 {
		t.Fatalf("refresh jobs = %d, want repeated stale reads collapsed to 1", refreshJobs)
	}
}
