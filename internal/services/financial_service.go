package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/scoring/financial"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// utilityLookback is the window actual utility spend is annualized over.
const utilityLookback = 365 * 24 * time.Hour

type FinancialService interface {
	Get(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, ReportFreshness, error)
	GetOrRecalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, error)
	Recalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, error)
}

type financialService struct {
	db         *gorm.DB
	log        *logger.Logger
	properties repos.PropertyRepo
	policies   repos.InsurancePolicyRepo
	warranties repos.HomeWarrantyRepo
	expenses   repos.ExpenseRecordRepo
	benchmarks repos.FinancialBenchmarkRepo
	reports    repos.FinancialReportRepo
	snapshots  SnapshotService
	jobs       JobService
	nowFn      func() time.Time
}

func NewFinancialService(
	db *gorm.DB,
	baseLog *logger.Logger,
	properties repos.PropertyRepo,
	policies repos.InsurancePolicyRepo,
	warranties repos.HomeWarrantyRepo,
	expenses repos.ExpenseRecordRepo,
	benchmarks repos.FinancialBenchmarkRepo,
	reports repos.FinancialReportRepo,
	snapshots SnapshotService,
	jobs JobService,
) FinancialService {
	return &financialService{
		db:         db,
		log:        baseLog.With("service", "FinancialService"),
		properties: properties,
		policies:   policies,
		warranties: warranties,
		expenses:   expenses,
		benchmarks: benchmarks,
		reports:    reports,
		snapshots:  snapshots,
		jobs:       jobs,
		nowFn:      time.Now,
	}
}

func (s *financialService) Get(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, ReportFreshness, error) {
	report, err := s.reports.GetByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return nil, FreshnessMissing, err
	}
	if report == nil {
		return nil, FreshnessMissing, nil
	}
	if s.nowFn().Sub(report.LastCalculatedAt) > ReportStalenessWindow {
		if s.jobs != nil {
			if _, _, jobErr := s.jobs.Enqueue(dbc, propertyID, types.JobTypeFinancialRecalculate, nil); jobErr != nil {
				s.log.Error("Stale-refresh enqueue failed", "property_id", propertyID, "error", jobErr)
			}
		}
		return report, FreshnessStale, nil
	}
	return report, FreshnessFresh, nil
}

func (s *financialService) GetOrRecalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, error) {
	report, freshness, err := s.Get(dbc, propertyID)
	if err != nil {
		return nil, err
	}
	if freshness == FreshnessFresh {
		return report, nil
	}
	return s.Recalculate(dbc, propertyID)
}

func (s *financialService) Recalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.FinancialReport, error) {
	prop, err := s.properties.GetByID(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, apperr.New(apperr.KindNotFound, "property_not_found", fmt.Errorf("property %s not found", propertyID))
	}

	now := s.nowFn()
	inputs, err := s.loadActuals(dbc, propertyID, now)
	if err != nil {
		return nil, err
	}

	var bench *financial.Benchmark
	row, err := s.lookupBenchmark(dbc, prop.Zip, prop.PropertyType)
	if err != nil {
		return nil, err
	}
	if row != nil {
		bench = &financial.Benchmark{
			AvgInsurancePremium: row.AvgInsurancePremium,
			AvgUtilityCost:      row.AvgUtilityCost,
			AvgWarrantyCost:     row.AvgWarrantyCost,
		}
	}

	result := financial.Calculate(inputs, bench)

	report := &types.FinancialReport{
		PropertyID:               propertyID,
		Status:                   result.Status,
		FinancialEfficiencyScore: result.Score,
		ActualInsuranceCost:      inputs.ActualInsurance,
		ActualUtilityCost:        inputs.ActualUtility,
		ActualWarrantyCost:       inputs.ActualWarranty,
		MarketAverageTotal:       result.BenchmarkTotal,
		LastCalculatedAt:         now,
	}
	stored, err := s.reports.Upsert(dbc.Ctx, dbc.Tx, report)
	if err != nil {
		return nil, err
	}

	// NO_BENCHMARK carries no number, so there is nothing to trend.
	if result.Score != nil {
		if snapErr := s.snapshots.AppendWeekly(dbc, propertyID, types.ScoreTypeFinancial, *result.Score, map[string]any{
			"status":          result.Status,
			"actual_total":    result.ActualTotal,
			"benchmark_total": result.BenchmarkTotal,
		}, now); snapErr != nil {
			s.log.Error("Financial snapshot append failed", "property_id", propertyID, "error", snapErr)
		}
	}

	s.log.Info("Financial report recalculated",
		"property_id", propertyID,
		"status", result.Status,
		"actual_total", result.ActualTotal,
		"benchmark_total", result.BenchmarkTotal)
	return stored, nil
}

// lookupBenchmark resolves the reference row in two tiers: the
// zip-specific row wins; without one the null-zip default for the
// property type applies. nil means no benchmark exists at all.
func (s *financialService) lookupBenchmark(dbc dbctx.Context, zip, propertyType string) (*types.FinancialBenchmark, error) {
	if zip != "" {
		row, err := s.benchmarks.GetByZipAndType(dbc.Ctx, dbc.Tx, zip, propertyType)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
	}
	return s.benchmarks.GetTypeDefault(dbc.Ctx, dbc.Tx, propertyType)
}

// loadActuals annualizes the property's real spend: current policy
// premiums, active warranty costs, and the trailing year of utility bills.
func (s *financialService) loadActuals(dbc dbctx.Context, propertyID uuid.UUID, now time.Time) (financial.Inputs, error) {
	var in financial.Inputs

	policies, err := s.policies.ListByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return in, err
	}
	for _, p := range policies {
		in.ActualInsurance += p.AnnualPremium
	}

	warranties, err := s.warranties.ListByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return in, err
	}
	for _, w := range warranties {
		if w.ActiveAt(now) {
			in.ActualWarranty += w.AnnualCost
		}
	}

	utilityTotal, err := s.expenses.SumByCategorySince(dbc.Ctx, dbc.Tx, propertyID, types.ExpenseCategoryUtility, now.Add(-utilityLookback))
	if err != nil {
		return in, err
	}
	in.ActualUtility = utilityTotal

	return in, nil
}
