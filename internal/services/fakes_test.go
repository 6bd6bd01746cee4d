package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// In-memory repo fakes. Services only see the repo interfaces, so the
// tests can run the full service logic with no database behind it.

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDbc() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

type fakePropertyRepo struct {
	props map[uuid.UUID]*types.Property
	facts map[uuid.UUID]*types.PropertyFacts
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{
		props: map[uuid.UUID]*types.Property{},
		facts: map[uuid.UUID]*types.PropertyFacts{},
	}
}

func (r *fakePropertyRepo) GetByID(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) (*types.Property, error) {
	return r.props[propertyID], nil
}

func (r *fakePropertyRepo) GetOwned(_ context.Context, _ *gorm.DB, propertyID, ownerUserID uuid.UUID) (*types.Property, error) {
	prop := r.props[propertyID]
	if prop == nil || prop.OwnerUserID != ownerUserID {
		return nil, nil
	}
	return prop, nil
}

func (r *fakePropertyRepo) GetFacts(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) (*types.PropertyFacts, error) {
	return r.facts[propertyID], nil
}

func (r *fakePropertyRepo) ListIDs(_ context.Context, _ *gorm.DB) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.props))
	for id := range r.props {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeJobRunRepo struct {
	rows []*types.JobRun
}

func (r *fakeJobRunRepo) Create(_ context.Context, _ *gorm.DB, job *types.JobRun) (*types.JobRun, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.rows = append(r.rows, job)
	return job, nil
}

func (r *fakeJobRunRepo) FindActiveByDedupeKey(_ context.Context, _ *gorm.DB, dedupeKey string) (*types.JobRun, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if row.DedupeKey == dedupeKey && (row.Status == types.JobStatusQueued || row.Status == types.JobStatusRunning) {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRunRepo) ExistsByDedupeKey(_ context.Context, _ *gorm.DB, dedupeKey string) (bool, error) {
	for _, row := range r.rows {
		if row.DedupeKey == dedupeKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRunRepo) ClaimNextRunnable(_ context.Context, _ *gorm.DB, _ int, _, _ time.Duration) (*types.JobRun, error) {
	for _, row := range r.rows {
		if row.Status == types.JobStatusQueued {
			row.Status = types.JobStatusRunning
			row.Attempts++
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRunRepo) MarkSucceeded(_ context.Context, _ *gorm.DB, id uuid.UUID, result []byte) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = types.JobStatusSucceeded
			row.Result = result
		}
	}
	return nil
}

func (r *fakeJobRunRepo) MarkFailed(_ context.Context, _ *gorm.DB, id uuid.UUID, stage string, jobErr error) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = types.JobStatusFailed
			row.Stage = stage
			if jobErr != nil {
				row.Error = jobErr.Error()
			}
		}
	}
	return nil
}

func (r *fakeJobRunRepo) Heartbeat(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	now := time.Now()
	for _, row := range r.rows {
		if row.ID == id {
			row.HeartbeatAt = &now
		}
	}
	return nil
}

type fakeRiskReportRepo struct {
	report  *types.RiskReport
	upserts int
}

func (r *fakeRiskReportRepo) GetByProperty(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) (*types.RiskReport, error) {
	if r.report == nil || r.report.PropertyID != propertyID {
		return nil, nil
	}
	return r.report, nil
}

func (r *fakeRiskReportRepo) Upsert(_ context.Context, _ *gorm.DB, report *types.RiskReport) (*types.RiskReport, error) {
	r.upserts++
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.report = report
	return report, nil
}

type fakePolicyRepo struct {
	rows []*types.InsurancePolicy
}

func (r *fakePolicyRepo) ListByProperty(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) ([]*types.InsurancePolicy, error) {
	var out []*types.InsurancePolicy
	for _, row := range r.rows {
		if row.PropertyID == propertyID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeWarrantyRepo struct {
	rows []*types.HomeWarranty
}

func (r *fakeWarrantyRepo) ListByProperty(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) ([]*types.HomeWarranty, error) {
	var out []*types.HomeWarranty
	for _, row := range r.rows {
		if row.PropertyID == propertyID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeExpenseRepo struct {
	utilityTotal float64
}

func (r *fakeExpenseRepo) SumByCategorySince(_ context.Context, _ *gorm.DB, _ uuid.UUID, category string, _ time.Time) (float64, error) {
	if category == types.ExpenseCategoryUtility {
		return r.utilityTotal, nil
	}
	return 0, nil
}

type benchmarkKey struct {
	zip          string
	propertyType string
}

type fakeBenchmarkRepo struct {
	exact    map[benchmarkKey]*types.FinancialBenchmark
	defaults map[string]*types.FinancialBenchmark
}

func newFakeBenchmarkRepo() *fakeBenchmarkRepo {
	return &fakeBenchmarkRepo{
		exact:    map[benchmarkKey]*types.FinancialBenchmark{},
		defaults: map[string]*types.FinancialBenchmark{},
	}
}

func (r *fakeBenchmarkRepo) GetByZipAndType(_ context.Context, _ *gorm.DB, zip, propertyType string) (*types.FinancialBenchmark, error) {
	return r.exact[benchmarkKey{zip, propertyType}], nil
}

func (r *fakeBenchmarkRepo) GetTypeDefault(_ context.Context, _ *gorm.DB, propertyType string) (*types.FinancialBenchmark, error) {
	return r.defaults[propertyType], nil
}

type fakeFinancialReportRepo struct {
	report  *types.FinancialReport
	upserts int
}

func (r *fakeFinancialReportRepo) GetByProperty(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) (*types.FinancialReport, error) {
	if r.report == nil || r.report.PropertyID != propertyID {
		return nil, nil
	}
	return r.report, nil
}

func (r *fakeFinancialReportRepo) Upsert(_ context.Context, _ *gorm.DB, report *types.FinancialReport) (*types.FinancialReport, error) {
	r.upserts++
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.report = report
	return report, nil
}

type fakeMaintenanceRepo struct {
	tasks []*types.MaintenanceTask
}

func (r *fakeMaintenanceRepo) CreateBatch(_ context.Context, _ *gorm.DB, tasks []*types.MaintenanceTask) ([]*types.MaintenanceTask, error) {
	for _, task := range tasks {
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
		r.tasks = append(r.tasks, task)
	}
	return tasks, nil
}

func (r *fakeMaintenanceRepo) CountOpenCritical(_ context.Context, _ *gorm.DB, propertyID uuid.UUID) (int64, error) {
	var n int64
	for _, task := range r.tasks {
		if task.PropertyID == propertyID && task.Status == types.MaintenanceStatusOpen && task.Priority == types.MaintenancePriorityCritical {
			n++
		}
	}
	return n, nil
}

func (r *fakeMaintenanceRepo) CountOverdue(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, asOf time.Time) (int64, error) {
	var n int64
	for _, task := range r.tasks {
		if task.PropertyID == propertyID && task.Status == types.MaintenanceStatusOpen && task.DueAt != nil && task.DueAt.Before(asOf) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMaintenanceRepo) ExistsOpenForSystem(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, systemType string) (bool, error) {
	for _, task := range r.tasks {
		if task.PropertyID == propertyID && task.SystemType == systemType && task.Status == types.MaintenanceStatusOpen {
			return true, nil
		}
	}
	return false, nil
}

type snapshotKey struct {
	propertyID uuid.UUID
	scoreType  types.ScoreType
	weekStart  time.Time
}

type fakeSnapshotRepo struct {
	rows map[snapshotKey]*types.ScoreSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{rows: map[snapshotKey]*types.ScoreSnapshot{}}
}

func (r *fakeSnapshotRepo) AppendWeek(_ context.Context, _ *gorm.DB, snapshot *types.ScoreSnapshot) (*types.ScoreSnapshot, error) {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	r.rows[snapshotKey{snapshot.PropertyID, snapshot.ScoreType, snapshot.WeekStart}] = snapshot
	return snapshot, nil
}

func (r *fakeSnapshotRepo) ListByPropertyAndType(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, _ int) ([]*types.ScoreSnapshot, error) {
	var out []*types.ScoreSnapshot
	for key, row := range r.rows {
		if key.propertyID == propertyID && key.scoreType == scoreType {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeSnapshotRepo) LatestByPropertyAndType(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType) (*types.ScoreSnapshot, error) {
	var latest *types.ScoreSnapshot
	for key, row := range r.rows {
		if key.propertyID != propertyID || key.scoreType != scoreType {
			continue
		}
		if latest == nil || row.WeekStart.After(latest.WeekStart) {
			latest = row
		}
	}
	return latest, nil
}

func (r *fakeSnapshotRepo) HasWeek(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, weekStart time.Time) (bool, error) {
	_, ok := r.rows[snapshotKey{propertyID, scoreType, weekStart}]
	return ok, nil
}

type fakeCorrectionRepo struct {
	rows []*types.Correction
}

func (r *fakeCorrectionRepo) Create(_ context.Context, _ *gorm.DB, correction *types.Correction) (*types.Correction, error) {
	if correction.ID == uuid.Nil {
		correction.ID = uuid.New()
	}
	r.rows = append(r.rows, correction)
	return correction, nil
}

func (r *fakeCorrectionRepo) ListByProperty(_ context.Context, _ *gorm.DB, propertyID uuid.UUID, limit int) ([]*types.Correction, error) {
	var out []*types.Correction
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].PropertyID == propertyID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeCorrectionRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			row.ResolvedAt = &resolvedAt
		}
	}
	return nil
}
