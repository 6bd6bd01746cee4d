package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// JobService is the fire-and-forget enqueue interface. Delivery is
// at-least-once; the dedupe key collapses concurrent requests for the
// same (property, jobType) into a single pending row.
type JobService interface {
	Enqueue(dbc dbctx.Context, propertyID uuid.UUID, jobType string, payload map[string]any) (*types.JobRun, bool, error)
}

type jobService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.JobRunRepo
}

func NewJobService(db *gorm.DB, baseLog *logger.Logger, repo repos.JobRunRepo) JobService {
	return &jobService{
		db:   db,
		log:  baseLog.With("service", "JobService"),
		repo: repo,
	}
}

func (s *jobService) Enqueue(dbc dbctx.Context, propertyID uuid.UUID, jobType string, payload map[string]any) (*types.JobRun, bool, error) {
	if propertyID == uuid.Nil {
		return nil, false, fmt.Errorf("missing property_id")
	}
	if jobType == "" {
		return nil, false, fmt.Errorf("missing job_type")
	}

	dedupeKey := types.DedupeKeyFor(propertyID, jobType)

	existing, err := s.repo.FindActiveByDedupeKey(dbc.Ctx, dbc.Tx, dedupeKey)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.log.Debug("Duplicate enqueue collapsed", "dedupe_key", dedupeKey, "job_id", existing.ID)
		return existing, false, nil
	}

	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("marshal payload: %w", err)
	}

	now := time.Now()
	pid := propertyID
	job := &types.JobRun{
		ID:         uuid.New(),
		PropertyID: &pid,
		JobType:    jobType,
		DedupeKey:  dedupeKey,
		Status:     types.JobStatusQueued,
		Stage:      "queued",
		Payload:    datatypes.JSON(payloadJSON),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.repo.Create(dbc.Ctx, dbc.Tx, job)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("Job enqueued", "job_type", jobType, "job_id", created.ID, "dedupe_key", dedupeKey)
	return created, true, nil
}
