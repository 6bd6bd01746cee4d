package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// Context is what a handler runs against: the claimed row plus the hooks
// to finish it. Handlers call Succeed or Fail exactly once.
type Context struct {
	ctx  context.Context
	db   *gorm.DB
	log  *logger.Logger
	job  *types.JobRun
	repo repos.JobRunRepo
}

func NewContext(ctx context.Context, db *gorm.DB, baseLog *logger.Logger, job *types.JobRun, repo repos.JobRunRepo) *Context {
	return &Context{
		ctx:  ctx,
		db:   db,
		log:  baseLog.With("job_id", job.ID, "job_type", job.JobType),
		repo: repo,
		job:  job,
	}
}

func (c *Context) Ctx() context.Context { return c.ctx }
func (c *Context) Log() *logger.Logger  { return c.log }
func (c *Context) Job() *types.JobRun   { return c.job }

// DB returns a dbctx without an open transaction; handlers that need
// atomicity open their own.
func (c *Context) DB() dbctx.Context {
	return dbctx.Context{Ctx: c.ctx}
}

// PropertyID resolves the target property from the row, falling back to
// the payload for jobs enqueued by external tooling.
func (c *Context) PropertyID() (uuid.UUID, error) {
	if c.job.PropertyID != nil && *c.job.PropertyID != uuid.Nil {
		return *c.job.PropertyID, nil
	}
	var payload struct {
		PropertyID string `json:"property_id"`
	}
	if len(c.job.Payload) > 0 {
		if err := json.Unmarshal(c.job.Payload, &payload); err == nil && payload.PropertyID != "" {
			return uuid.Parse(payload.PropertyID)
		}
	}
	return uuid.Nil, fmt.Errorf("job %s carries no property_id", c.job.ID)
}

func (c *Context) Heartbeat() {
	if err := c.repo.Heartbeat(c.ctx, nil, c.job.ID); err != nil {
		c.log.Warn("Heartbeat failed", "error", err)
	}
}

func (c *Context) Succeed(result any) {
	var encoded []byte
	if result != nil {
		b, err := json.Marshal(result)
		if err != nil {
			c.log.Warn("Result encode failed", "error", err)
		} else {
			encoded = b
		}
	}
	if err := c.repo.MarkSucceeded(c.ctx, nil, c.job.ID, encoded); err != nil {
		c.log.Error("MarkSucceeded failed", "error", err)
		return
	}
	c.log.Info("Job succeeded")
}

func (c *Context) Fail(stage string, jobErr error) {
	if err := c.repo.MarkFailed(c.ctx, nil, c.job.ID, stage, jobErr); err != nil {
		c.log.Error("MarkFailed failed", "error", err)
		return
	}
	c.log.Warn("Job failed", "stage", stage, "error", jobErr)
}
