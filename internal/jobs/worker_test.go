package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type memJobRunRepo struct {
	rows []*types.JobRun
}

func (r *memJobRunRepo) Create(_ context.Context, _ *gorm.DB, job *types.JobRun) (*types.JobRun, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.rows = append(r.rows, job)
	return job, nil
}

func (r *memJobRunRepo) FindActiveByDedupeKey(_ context.Context, _ *gorm.DB, dedupeKey string) (*types.JobRun, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if row.DedupeKey == dedupeKey && (row.Status == types.JobStatusQueued || row.Status == types.JobStatusRunning) {
			return row, nil
		}
	}
	return nil, nil
}

func (r *memJobRunRepo) ExistsByDedupeKey(_ context.Context, _ *gorm.DB, dedupeKey string) (bool, error) {
	for _, row := range r.rows {
		if row.DedupeKey == dedupeKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *memJobRunRepo) ClaimNextRunnable(_ context.Context, _ *gorm.DB, _ int, _, _ time.Duration) (*types.JobRun, error) {
	for _, row := range r.rows {
		if row.Status == types.JobStatusQueued {
			row.Status = types.JobStatusRunning
			row.Attempts++
			return row, nil
		}
	}
	return nil, nil
}

func (r *memJobRunRepo) MarkSucceeded(_ context.Context, _ *gorm.DB, id uuid.UUID, result []byte) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = types.JobStatusSucceeded
			row.Result = result
		}
	}
	return nil
}

func (r *memJobRunRepo) MarkFailed(_ context.Context, _ *gorm.DB, id uuid.UUID, stage string, jobErr error) error {
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

func (r *memJobRunRepo) Heartbeat(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	now := time.Now()
	for _, row := range r.rows {
		if row.ID == id {
			row.HeartbeatAt = &now
		}
	}
	return nil
}

type noopHandler struct{ jobType string }

func (h *noopHandler) Type() string       { return h.jobType }
func (h *noopHandler) Run(*Context) error { return nil }

func newRollupWorker(t *testing.T) (*Worker, *memJobRunRepo) {
	t.Helper()
	repo := &memJobRunRepo{}
	registry := NewRegistry()
	if err := registry.Register(&noopHandler{jobType: types.JobTypeSnapshotRollup}); err != nil {
		t.Fatalf("register handler: %v", err)
	}
	return NewWorker(nil, testLogger(), repo, registry), repo
}

func TestWeeklyRollupEnqueuedOncePerWeek(t *testing.T) {
	w, repo := newRollupWorker(t)
	ctx := context.Background()

	monday := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)
	w.enqueueWeeklyRollup(ctx, monday)
	w.enqueueWeeklyRollup(ctx, monday.Add(6*time.Hour))
	w.enqueueWeeklyRollup(ctx, monday.AddDate(0, 0, 4))

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1 rollup for the week", len(repo.rows))
	}
	job := repo.rows[0]
	if job.JobType != types.JobTypeSnapshotRollup {
		t.Fatalf("job_type = %q", job.JobType)
	}
	if job.DedupeKey != types.WeeklyDedupeKey(types.JobTypeSnapshotRollup, monday) {
		t.Fatalf("dedupe_key = %q", job.DedupeKey)
	}
	if job.Status != types.JobStatusQueued {
		t.Fatalf("status = %q", job.Status)
	}
	if job.PropertyID != nil {
		t.Fatalf("fleet-wide job carries property_id %v", job.PropertyID)
	}
}

func TestWeeklyRollupNewWeekGetsNewRow(t *testing.T) {
	w, repo := newRollupWorker(t)
	ctx := context.Background()

	thisWeek := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	w.enqueueWeeklyRollup(ctx, thisWeek)
	repo.rows[0].Status = types.JobStatusSucceeded

	// Still the same week: the finished row keeps the key occupied.
	w.enqueueWeeklyRollup(ctx, thisWeek.AddDate(0, 0, 1))
	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d after same-week re-check, want 1", len(repo.rows))
	}

	w.enqueueWeeklyRollup(ctx, thisWeek.AddDate(0, 0, 7))
	if len(repo.rows) != 2 {
		t.Fatalf("rows = %d after week boundary, want 2", len(repo.rows))
	}
	if repo.rows[0].DedupeKey == repo.rows[1].DedupeKey {
		t.Fatalf("week keys collide: %q", repo.rows[0].DedupeKey)
	}
}

func TestWeeklyRollupSkippedWithoutHandler(t *testing.T) {
	repo := &memJobRunRepo{}
	w := NewWorker(nil, testLogger(), repo, NewRegistry())

	w.enqueueWeeklyRollup(context.Background(), time.Now())
	if len(repo.rows) != 0 {
		t.Fatalf("rows = %d, want none when no rollup handler is registered", len(repo.rows))
	}
}
