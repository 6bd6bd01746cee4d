package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/catalog"
	"github.com/hearthstack/homescore-backend/internal/platform/apperr"
	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/scoring/risk"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// ReportStalenessWindow is how long a stored risk or financial report is
// served as-is before a recalculation is triggered.
const ReportStalenessWindow = 30 * time.Minute

// ReportFreshness tells the caller how the returned report relates to the
// staleness window.
type ReportFreshness string

const (
	FreshnessFresh   ReportFreshness = "fresh"
	FreshnessStale   ReportFreshness = "stale"
	FreshnessMissing ReportFreshness = "missing"
)

// SideEffectOutcome records what the maintenance-task side effect did.
// Side-effect failures never fail the calculation that triggered them.
type SideEffectOutcome struct {
	TasksAttempted int    `json:"tasks_attempted"`
	TasksCreated   int    `json:"tasks_created"`
	Error          string `json:"error,omitempty"`
}

type RiskService interface {
	// Get returns the stored report without computing. Freshness is judged
	// against the staleness window; a stale report is still returned.
	Get(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, ReportFreshness, error)
	// GetOrRecalculate serves the cached report while it is fresh and
	// recomputes synchronously once it is missing or past the window.
	GetOrRecalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, error)
	Recalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, *SideEffectOutcome, error)
}

type riskService struct {
	db          *gorm.DB
	log         *logger.Logger
	catalog     *catalog.Catalog
	properties  repos.PropertyRepo
	policies    repos.InsurancePolicyRepo
	warranties  repos.HomeWarrantyRepo
	reports     repos.RiskReportRepo
	maintenance repos.MaintenanceTaskRepo
	snapshots   SnapshotService
	jobs        JobService
	nowFn       func() time.Time
}

func NewRiskService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cat *catalog.Catalog,
	properties repos.PropertyRepo,
	policies repos.InsurancePolicyRepo,
	warranties repos.HomeWarrantyRepo,
	reports repos.RiskReportRepo,
	maintenance repos.MaintenanceTaskRepo,
	snapshots SnapshotService,
	jobs JobService,
) RiskService {
	return &riskService{
		db:          db,
		log:         baseLog.With("service", "RiskService"),
		catalog:     cat,
		properties:  properties,
		policies:    policies,
		warranties:  warranties,
		reports:     reports,
		maintenance: maintenance,
		snapshots:   snapshots,
		jobs:        jobs,
		nowFn:       time.Now,
	}
}

func (s *riskService) Get(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, ReportFreshness, error) {
	report, err := s.reports.GetByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return nil, FreshnessMissing, err
	}
	if report == nil {
		return nil, FreshnessMissing, nil
	}
	if s.nowFn().Sub(report.LastCalculatedAt) > ReportStalenessWindow {
		// Serve the stale report immediately; the refresh runs in the
		// background. Dedupe collapses repeated triggers.
		if s.jobs != nil {
			if _, _, jobErr := s.jobs.Enqueue(dbc, propertyID, types.JobTypeRiskRecalculate, nil); jobErr != nil {
				s.log.Error("Stale-refresh enqueue failed", "property_id", propertyID, "error", jobErr)
			}
		}
		return report, FreshnessStale, nil
	}
	return report, FreshnessFresh, nil
}

func (s *riskService) GetOrRecalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, error) {
	report, freshness, err := s.Get(dbc, propertyID)
	if err != nil {
		return nil, err
	}
	if freshness == FreshnessFresh {
		return report, nil
	}
	fresh, _, err := s.Recalculate(dbc, propertyID)
	return fresh, err
}

func (s *riskService) Recalculate(dbc dbctx.Context, propertyID uuid.UUID) (*types.RiskReport, *SideEffectOutcome, error) {
	prop, err := s.properties.GetByID(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	if prop == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "property_not_found", fmt.Errorf("property %s not found", propertyID))
	}

	now := s.nowFn()
	facts, err := s.properties.GetFacts(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return nil, nil, err
	}

	details, summary := s.computeDetails(dbc, propertyID, facts, now)

	detailsJSON, err := types.EncodeRiskDetails(details)
	if err != nil {
		return nil, nil, apperr.New(apperr.KindCalculationFailure, "risk_encode_failed", err)
	}

	report := &types.RiskReport{
		PropertyID:             propertyID,
		RiskScore:              summary.RiskScore,
		FinancialExposureTotal: summary.FinancialExposureTotal,
		Details:                detailsJSON,
		LastCalculatedAt:       now,
	}
	stored, err := s.reports.Upsert(dbc.Ctx, dbc.Tx, report)
	if err != nil {
		return nil, nil, err
	}

	if snapErr := s.snapshots.AppendWeekly(dbc, propertyID, types.ScoreTypeRisk, summary.RiskScore, map[string]any{
		"exposure_total": summary.FinancialExposureTotal,
		"asset_count":    len(details),
	}, now); snapErr != nil {
		// The weekly series is best-effort relative to the live report.
		s.log.Error("Risk snapshot append failed", "property_id", propertyID, "error", snapErr)
	}

	outcome := s.createMaintenanceTasks(dbc, propertyID, details)

	s.log.Info("Risk report recalculated",
		"property_id", propertyID,
		"risk_score", summary.RiskScore,
		"exposure_total", summary.FinancialExposureTotal,
		"assets", len(details),
		"tasks_created", outcome.TasksCreated)
	return stored, outcome, nil
}

// computeDetails runs the per-asset model behind a panic guard. Whatever
// goes wrong inside the model, the caller gets a persistable detail list.
func (s *riskService) computeDetails(dbc dbctx.Context, propertyID uuid.UUID, facts *types.PropertyFacts, now time.Time) (details []types.AssetRiskDetail, summary risk.Summary) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("Risk calculation panicked", "property_id", propertyID, "panic", rec)
			details = []types.AssetRiskDetail{risk.CalculationFailureDetail()}
			summary = risk.Summary{}
		}
	}()

	if facts == nil || !facts.HasBasicProfile() {
		return []types.AssetRiskDetail{risk.DataMissingDetail()}, risk.Summary{}
	}

	coverage, err := s.loadCoverage(dbc, propertyID, now)
	if err != nil {
		s.log.Error("Coverage lookup failed", "property_id", propertyID, "error", err)
		return []types.AssetRiskDetail{risk.CalculationFailureDetail()}, risk.Summary{}
	}

	configs, diagnostics := catalog.RelevantConfigs(s.catalog, facts, now)
	for _, diag := range diagnostics {
		s.log.Warn("Catalog entry skipped", "property_id", propertyID, "reason", diag)
	}

	flags := catalog.ActiveWarningFlags(facts)
	details = make([]types.AssetRiskDetail, 0, len(configs))
	for _, cfg := range configs {
		detail, ok := risk.EvaluateAsset(cfg, risk.AssetInput{
			InstallYear:  catalog.InstallYearFor(cfg.SystemType, facts),
			WarningFlags: flags,
			Coverage:     coverage,
		}, now)
		if !ok {
			continue
		}
		details = append(details, detail)
	}

	summary = risk.Aggregate(details, facts.LivingAreaSqFt)
	return details, summary
}

// loadCoverage folds the property's policies and warranties down to the
// deductibles the asset model branches on. With several active warranties
// the cheapest deductible wins; same for dwelling policies.
func (s *riskService) loadCoverage(dbc dbctx.Context, propertyID uuid.UUID, now time.Time) (risk.Coverage, error) {
	var cov risk.Coverage

	warranties, err := s.warranties.ListByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return cov, err
	}
	for _, w := range warranties {
		if !w.ActiveAt(now) {
			continue
		}
		d := w.Deductible
		if cov.WarrantyDeductible == nil || d < *cov.WarrantyDeductible {
			cov.WarrantyDeductible = &d
		}
	}

	policies, err := s.policies.ListByProperty(dbc.Ctx, dbc.Tx, propertyID)
	if err != nil {
		return cov, err
	}
	for _, p := range policies {
		if p.PolicyType != "dwelling" {
			continue
		}
		cov.HasInsurance = true
		d := p.Deductible
		if cov.InsuranceDeductible == nil || d < *cov.InsuranceDeductible {
			cov.InsuranceDeductible = &d
		}
	}
	return cov, nil
}

// createMaintenanceTasks opens a critical task per HIGH-or-worse real asset
// that does not already have one. Failures are captured in the outcome and
// never propagate.
func (s *riskService) createMaintenanceTasks(dbc dbctx.Context, propertyID uuid.UUID, details []types.AssetRiskDetail) *SideEffectOutcome {
	outcome := &SideEffectOutcome{}
	var toCreate []*types.MaintenanceTask
	for _, d := range details {
		if d.Synthetic || !d.RiskLevel.AtLeast(types.RiskLevelHigh) {
			continue
		}
		outcome.TasksAttempted++
		exists, err := s.maintenance.ExistsOpenForSystem(dbc.Ctx, dbc.Tx, propertyID, d.SystemType)
		if err != nil {
			outcome.Error = err.Error()
			s.log.Error("Maintenance dedupe check failed", "property_id", propertyID, "system_type", d.SystemType, "error", err)
			continue
		}
		if exists {
			continue
		}
		toCreate = append(toCreate, &types.MaintenanceTask{
			PropertyID: propertyID,
			SystemType: d.SystemType,
			Title:      "Address " + d.SystemType + " failure risk",
			Detail:     d.ActionCTA,
			Status:     types.MaintenanceStatusOpen,
			Priority:   types.MaintenancePriorityCritical,
			Source:     types.MaintenanceSourceRiskCalc,
		})
	}
	if len(toCreate) == 0 {
		return outcome
	}
	created, err := s.maintenance.CreateBatch(dbc.Ctx, dbc.Tx, toCreate)
	if err != nil {
		outcome.Error = err.Error()
		s.log.Error("Maintenance task creation failed", "property_id", propertyID, "error", err)
		return outcome
	}
	outcome.TasksCreated = len(created)
	return outcome
}
