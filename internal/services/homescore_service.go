package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/scoring/homescore"
	"github.com/hearthstack/homescore-backend/internal/scoring/risk"
	"github.com/hearthstack/homescore-backend/internal/scoring/trend"
	"github.com/hearthstack/homescore-backend/internal/types"
)

const (
	homeScoreCacheTTL = time.Minute

	// Confidence applied when a component has no data behind it at all.
	floorConfidence = 0.2
	// Multiplier applied when a component is served from a stale snapshot.
	staleConfidencePenalty = 0.8
)

type HomeScoreService interface {
	// BuildReport assembles the composite report for a property the
	// requester owns. It degrades per component instead of failing: a
	// branch that errors contributes a missing component, not a 500.
	BuildReport(ctx context.Context, requesterID, propertyID uuid.UUID) (*homescore.Report, error)
	InvalidateCache(ctx context.Context, propertyID uuid.UUID)
}

type homeScoreService struct {
	db          *gorm.DB
	log         *logger.Logger
	properties  repos.PropertyRepo
	policies    repos.InsurancePolicyRepo
	warranties  repos.HomeWarrantyRepo
	documents   repos.PropertyDocumentRepo
	maintenance repos.MaintenanceTaskRepo
	corrections repos.CorrectionRepo
	health      HealthProvider
	riskSvc     RiskService
	finSvc      FinancialService
	snapshots   SnapshotService
	jobs        JobService
	cache       ReportCache
	nowFn       func() time.Time
}

func NewHomeScoreService(
	db *gorm.DB,
	baseLog *logger.Logger,
	properties repos.PropertyRepo,
	policies repos.InsurancePolicyRepo,
	warranties repos.HomeWarrantyRepo,
	documents repos.PropertyDocumentRepo,
	maintenance repos.MaintenanceTaskRepo,
	corrections repos.CorrectionRepo,
	health HealthProvider,
	riskSvc RiskService,
	finSvc FinancialService,
	snapshots SnapshotService,
	jobs JobService,
	cache ReportCache,
) HomeScoreService {
	return &homeScoreService{
		db:          db,
		log:         baseLog.With("service", "HomeScoreService"),
		properties:  properties,
		policies:    policies,
		warranties:  warranties,
		documents:   documents,
		maintenance: maintenance,
		corrections: corrections,
		health:      health,
		riskSvc:     riskSvc,
		finSvc:      finSvc,
		snapshots:   snapshots,
		jobs:        jobs,
		cache:       cache,
		nowFn:       time.Now,
	}
}

func homeScoreCacheKey(propertyID uuid.UUID) string {
	return "homescore:" + propertyID.String()
}

func (s *homeScoreService) InvalidateCache(ctx context.Context, propertyID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, homeScoreCacheKey(propertyID))
	}
}

func (s *homeScoreService) BuildReport(ctx context.Context, requesterID, propertyID uuid.UUID) (*homescore.Report, error) {
	prop, err := s.properties.GetOwned(ctx, nil, propertyID, requesterID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		// Not distinguishing "exists but not yours" from "does not exist".
		return nil, apperr.New(apperr.KindNotFound, "property_not_found", fmt.Errorf("property %s not found for user", propertyID))
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, homeScoreCacheKey(propertyID)); ok {
			var cached homescore.Report
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return &cached, nil
			}
		}
	}

	facts, err := s.properties.GetFacts(ctx, nil, propertyID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	in := s.assembleInput(ctx, propertyID, facts, now)

	report := homescore.Aggregate(in)

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(report); jsonErr == nil {
			s.cache.Set(ctx, homeScoreCacheKey(propertyID), raw, homeScoreCacheTTL)
		}
	}
	return &report, nil
}

// assembleInput fans the component and context fetches out concurrently.
// Every branch absorbs its own failure: the slot keeps its zero value and
// the aggregation engine downgrades that component instead of erroring.
func (s *homeScoreService) assembleInput(ctx context.Context, propertyID uuid.UUID, facts *types.PropertyFacts, now time.Time) homescore.Input {
	in := homescore.Input{
		PropertyID: propertyID,
		Now:        now,
		Facts:      facts,
		Trends:     map[types.ScoreType]trend.Series{},
	}
	dbc := dbctx.Context{Ctx: ctx}

	var (
		healthIn  HealthInput
		healthErr error

		riskReport    *types.RiskReport
		riskFreshness ReportFreshness
		riskErr       error

		finReport    *types.FinancialReport
		finFreshness ReportFreshness
		finErr       error

		seriesByType = map[types.ScoreType]trend.Series{}

		correctionRows []*types.Correction

		openCritical, overdue int64
		coverageDocs          int64
		policies              []*types.InsurancePolicy
		warranties            []*types.HomeWarranty
	)

	g, gctx := errgroup.WithContext(ctx)
	gdbc := dbctx.Context{Ctx: gctx}

	g.Go(func() error {
		healthIn, healthErr = s.health.Fetch(gdbc, propertyID)
		if healthErr != nil {
			s.log.Error("Health fetch failed", "property_id", propertyID, "error", healthErr)
		}
		return nil
	})
	g.Go(func() error {
		riskReport, riskFreshness, riskErr = s.riskSvc.Get(gdbc, propertyID)
		if riskErr != nil {
			s.log.Error("Risk fetch failed", "property_id", propertyID, "error", riskErr)
		}
		return nil
	})
	g.Go(func() error {
		finReport, finFreshness, finErr = s.finSvc.Get(gdbc, propertyID)
		if finErr != nil {
			s.log.Error("Financial fetch failed", "property_id", propertyID, "error", finErr)
		}
		return nil
	})
	g.Go(func() error {
		for _, st := range types.AllScoreTypes {
			series, err := s.snapshots.SeriesFor(gdbc, propertyID, st)
			if err != nil {
				s.log.Error("Trend fetch failed", "property_id", propertyID, "score_type", st, "error", err)
				continue
			}
			seriesByType[st] = series
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.corrections.ListByProperty(gctx, nil, propertyID, 50)
		if err != nil {
			s.log.Error("Correction fetch failed", "property_id", propertyID, "error", err)
			return nil
		}
		correctionRows = rows
		return nil
	})
	g.Go(func() error {
		var err error
		if openCritical, err = s.maintenance.CountOpenCritical(gctx, nil, propertyID); err != nil {
			s.log.Error("Maintenance count failed", "property_id", propertyID, "error", err)
		}
		if overdue, err = s.maintenance.CountOverdue(gctx, nil, propertyID, now); err != nil {
			s.log.Error("Maintenance overdue count failed", "property_id", propertyID, "error", err)
		}
		if coverageDocs, err = s.documents.CountByKinds(gctx, nil, propertyID, []string{types.DocumentKindInsurancePolicy, types.DocumentKindHomeWarranty}); err != nil {
			s.log.Error("Document count failed", "property_id", propertyID, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if policies, err = s.policies.ListByProperty(gctx, nil, propertyID); err != nil {
			s.log.Error("Policy fetch failed", "property_id", propertyID, "error", err)
		}
		if warranties, err = s.warranties.ListByProperty(gctx, nil, propertyID); err != nil {
			s.log.Error("Warranty fetch failed", "property_id", propertyID, "error", err)
		}
		return nil
	})
	_ = g.Wait()

	in.Trends = seriesByType
	in.Health = s.healthComponent(healthIn, healthErr)
	in.Risk, in.RiskDetails, in.RiskExposureTotal = s.riskComponent(dbc, propertyID, facts, riskReport, riskFreshness, riskErr, seriesByType)
	in.Financial = s.financialComponent(dbc, propertyID, finReport, finFreshness, finErr, seriesByType)

	for _, c := range correctionRows {
		in.Corrections = append(in.Corrections, homescore.CorrectionEvent{
			At:       c.SubmittedAt,
			FieldKey: c.FieldKey,
			Status:   c.Status,
		})
	}

	in.OpenCriticalMaintenance = int(openCritical)
	in.OverdueMaintenance = int(overdue)
	in.CoverageDocumentCount = int(coverageDocs)
	for _, p := range policies {
		in.CoverageRecordCount++
		if p.PolicyType == "dwelling" {
			in.HasInsurance = true
		}
	}
	for _, w := range warranties {
		in.CoverageRecordCount++
		if w.ActiveAt(now) {
			in.HasActiveWarranty = true
		}
	}
	return in
}

func (s *homeScoreService) healthComponent(healthIn HealthInput, healthErr error) homescore.ComponentInput {
	c := homescore.ComponentInput{
		Status:          homescore.StatusMissing,
		ConfidenceRatio: floorConfidence,
	}
	if healthErr != nil {
		return c
	}
	c.ConfidenceRatio = maxFloat(healthIn.ConfidenceRatio, floorConfidence)
	if healthIn.Score != nil {
		c.Score = healthIn.Score
		c.Status = homescore.StatusOK
	}
	return c
}

func (s *homeScoreService) riskComponent(
	dbc dbctx.Context,
	propertyID uuid.UUID,
	facts *types.PropertyFacts,
	report *types.RiskReport,
	freshness ReportFreshness,
	fetchErr error,
	series map[types.ScoreType]trend.Series,
) (homescore.ComponentInput, []types.AssetRiskDetail, float64) {
	c := homescore.ComponentInput{
		Status:          homescore.StatusMissing,
		ConfidenceRatio: floorConfidence,
	}
	if latest := series[types.ScoreTypeRisk].Latest(); latest != nil {
		score := latest.Score
		c.SnapshotFallback = &score
	}
	if fetchErr != nil {
		return c, nil, 0
	}

	base := maxFloat(facts.CompletenessRatio(), floorConfidence)
	var details []types.AssetRiskDetail
	exposure := 0.0

	switch freshness {
	case FreshnessFresh:
		score := report.RiskScore
		c.Score = &score
		c.Status = homescore.StatusOK
		c.ConfidenceRatio = base
	case FreshnessStale:
		// The stale value is still the best fallback we have; the refresh
		// job is already enqueued by the risk service.
		score := report.RiskScore
		c.SnapshotFallback = &score
		c.Status = homescore.StatusStale
		c.ConfidenceRatio = base * staleConfidencePenalty
	default:
		// Never computed: queue the first calculation.
		if s.jobs != nil {
			if _, _, err := s.jobs.Enqueue(dbc, propertyID, types.JobTypeRiskRecalculate, nil); err != nil {
				s.log.Error("First-calculation enqueue failed", "property_id", propertyID, "error", err)
			}
		}
		c.Status = homescore.StatusQueued
		return c, nil, 0
	}

	decoded, err := report.DecodeDetails()
	if err != nil {
		s.log.Error("Risk detail decode failed", "property_id", propertyID, "error", err)
	} else {
		details = decoded
	}
	exposure = report.FinancialExposureTotal
	if hasDataMissingDetail(details) {
		c.ConfidenceRatio = floorConfidence
	}
	return c, details, exposure
}

func (s *homeScoreService) financialComponent(
	dbc dbctx.Context,
	propertyID uuid.UUID,
	report *types.FinancialReport,
	freshness ReportFreshness,
	fetchErr error,
	series map[types.ScoreType]trend.Series,
) homescore.ComponentInput {
	c := homescore.ComponentInput{
		Status:          homescore.StatusMissing,
		ConfidenceRatio: floorConfidence,
	}
	if latest := series[types.ScoreTypeFinancial].Latest(); latest != nil {
		score := latest.Score
		c.SnapshotFallback = &score
	}
	if fetchErr != nil {
		return c
	}
	if report == nil {
		if s.jobs != nil {
			if _, _, err := s.jobs.Enqueue(dbc, propertyID, types.JobTypeFinancialRecalculate, nil); err != nil {
				s.log.Error("First-calculation enqueue failed", "property_id", propertyID, "error", err)
			}
		}
		c.Status = homescore.StatusQueued
		return c
	}

	conf := financialConfidence(report)
	switch {
	case report.FinancialEfficiencyScore == nil:
		// NO_BENCHMARK: nothing numeric to contribute.
		c.Status = homescore.StatusMissing
		c.ConfidenceRatio = floorConfidence
	case freshness == FreshnessStale:
		c.SnapshotFallback = report.FinancialEfficiencyScore
		c.Status = homescore.StatusStale
		c.ConfidenceRatio = conf * staleConfidencePenalty
	default:
		c.Score = report.FinancialEfficiencyScore
		c.Status = homescore.StatusOK
		c.ConfidenceRatio = conf
	}
	return c
}

// financialConfidence counts how many of the cost inputs actually carry
// data. The neutral MISSING_DATA placeholder scores the floor.
func financialConfidence(report *types.FinancialReport) float64 {
	if report.Status == types.FinancialStatusMissingData {
		return floorConfidence
	}
	populated := 0.0
	if report.ActualInsuranceCost > 0 {
		populated++
	}
	if report.ActualUtilityCost > 0 {
		populated++
	}
	if report.ActualWarrantyCost > 0 {
		populated++
	}
	if report.MarketAverageTotal > 0 {
		populated++
	}
	return maxFloat(populated/4.0, floorConfidence)
}

func hasDataMissingDetail(details []types.AssetRiskDetail) bool {
	for _, d := range details {
		if d.Synthetic && d.SystemType == risk.SyntheticDataMissing {
			return true
		}
	}
	return false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
