package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/envutil"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type Worker struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.JobRunRepo
	registry *Registry
}

func NewWorker(db *gorm.DB, baseLog *logger.Logger, repo repos.JobRunRepo, registry *Registry) *Worker {
	return &Worker{
		db:       db,
		log:      baseLog.With("component", "JobWorker"),
		repo:     repo,
		registry: registry,
	}
}

func (w *Worker) Start(ctx context.Context) {
	concurrency := envutil.Int("JOB_WORKER_CONCURRENCY", 2)
	if concurrency < 1 {
		concurrency = 1
	}
	for i := 0; i < concurrency; i++ {
		go w.loop(ctx)
	}
	go w.scheduleLoop(ctx)
	w.log.Info("Job worker started", "concurrency", concurrency)
}

// scheduleLoop produces the fleet-wide snapshot rollup once per calendar
// week, so the trend series keeps filling even when no request traffic
// touches a property. The hourly check is cheap; the week-scoped dedupe
// key makes every instance past the first a no-op.
func (w *Worker) scheduleLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	w.enqueueWeeklyRollup(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.enqueueWeeklyRollup(ctx, time.Now())
		}
	}
}

func (w *Worker) enqueueWeeklyRollup(ctx context.Context, now time.Time) {
	if _, ok := w.registry.Get(types.JobTypeSnapshotRollup); !ok {
		return
	}
	key := types.WeeklyDedupeKey(types.JobTypeSnapshotRollup, now)
	exists, err := w.repo.ExistsByDedupeKey(ctx, w.db, key)
	if err != nil {
		w.log.Warn("Rollup schedule check failed", "dedupe_key", key, "error", err)
		return
	}
	if exists {
		return
	}
	job := &types.JobRun{
		ID:        uuid.New(),
		JobType:   types.JobTypeSnapshotRollup,
		DedupeKey: key,
		Status:    types.JobStatusQueued,
		Stage:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := w.repo.Create(ctx, w.db, job); err != nil {
		w.log.Warn("Rollup enqueue failed", "dedupe_key", key, "error", err)
		return
	}
	w.log.Info("Weekly snapshot rollup enqueued", "job_id", job.ID, "dedupe_key", key)
}

func (w *Worker) loop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	const maxAttempts = 5
	retryDelay := 30 * time.Second
	staleRunning := 2 * time.Minute
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.repo.ClaimNextRunnable(ctx, w.db, maxAttempts, retryDelay, staleRunning)
			if err != nil {
				w.log.Warn("ClaimNextRunnable failed", "error", err)
				continue
			}
			if job == nil {
				continue
			}
			jc := NewContext(ctx, w.db, w.log, job, w.repo)
			h, ok := w.registry.Get(job.JobType)
			if !ok {
				w.log.Warn("No handler registered for job_type", "job_type", job.JobType, "job_id", job.ID)
				jc.Fail("dispatch", &missingHandlerError{JobType: job.JobType})
				continue
			}
			w.run(h, jc)
		}
	}
}

// run executes a handler with panic containment. A panicking handler marks
// the row failed; the claim loop keeps going.
func (w *Worker) run(h Handler, jc *Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Job handler panic", "job_id", jc.Job().ID, "job_type", jc.Job().JobType, "panic", r)
			jc.Fail("panic", fmt.Errorf("panic: %v", r))
		}
	}()
	if err := h.Run(jc); err != nil {
		jc.Fail("run", err)
	}
}

type missingHandlerError struct{ JobType string }

func (e *missingHandlerError) Error() string { return "no handler registered for job_type=" + e.JobType }
