package pipeline

import (
	"github.com/hearthstack/homescore-backend/internal/jobs"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/services"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// snapshotRollup backfills the current week's snapshot rows from the live
// reports for every property that has had no traffic this week, so the
// trend series stays continuous without user activity.
type snapshotRollup struct {
	properties repos.PropertyRepo
	riskRepo   repos.RiskReportRepo
	finRepo    repos.FinancialReportRepo
	snapRepo   repos.ScoreSnapshotRepo
	snapshots  services.SnapshotService
}

func NewSnapshotRollup(
	properties repos.PropertyRepo,
	riskRepo repos.RiskReportRepo,
	finRepo repos.FinancialReportRepo,
	snapRepo repos.ScoreSnapshotRepo,
	snapshots services.SnapshotService,
) jobs.Handler {
	return &snapshotRollup{
		properties: properties,
		riskRepo:   riskRepo,
		finRepo:    finRepo,
		snapRepo:   snapRepo,
		snapshots:  snapshots,
	}
}

func (h *snapshotRollup) Type() string { return types.JobTypeSnapshotRollup }

func (h *snapshotRollup) Run(jc *jobs.Context) error {
	dbc := jc.DB()
	now := jc.Job().CreatedAt
	weekStart := types.WeekStartFor(now)

	ids, err := h.properties.ListIDs(dbc.Ctx, dbc.Tx)
	if err != nil {
		jc.Fail("list_properties", err)
		return nil
	}

	written := 0
	for i, id := range ids {
		if i%100 == 0 {
			jc.Heartbeat()
		}

		if risk, err := h.riskRepo.GetByProperty(dbc.Ctx, dbc.Tx, id); err == nil && risk != nil {
			has, herr := h.snapRepo.HasWeek(dbc.Ctx, dbc.Tx, id, types.ScoreTypeRisk, weekStart)
			if herr == nil && !has {
				if aerr := h.snapshots.AppendWeekly(dbc, id, types.ScoreTypeRisk, risk.RiskScore, map[string]any{
					"rolled_up":      true,
					"exposure_total": risk.FinancialExposureTotal,
				}, now); aerr == nil {
					written++
				} else {
					jc.Log().Warn("Risk rollup write failed", "property_id", id, "error", aerr)
				}
			}
		}

		fin, err := h.finRepo.GetByProperty(dbc.Ctx, dbc.Tx, id)
		if err != nil || fin == nil || fin.FinancialEfficiencyScore == nil {
			continue
		}
		has, herr := h.snapRepo.HasWeek(dbc.Ctx, dbc.Tx, id, types.ScoreTypeFinancial, weekStart)
		if herr != nil || has {
			continue
		}
		if aerr := h.snapshots.AppendWeekly(dbc, id, types.ScoreTypeFinancial, *fin.FinancialEfficiencyScore, map[string]any{
			"rolled_up": true,
			"status":    fin.Status,
		}, now); aerr == nil {
			written++
		} else {
			jc.Log().Warn("Financial rollup write failed", "property_id", id, "error", aerr)
		}
	}

	jc.Succeed(map[string]any{
		"properties": len(ids),
		"written":    written,
		"week_start": weekStart,
	})
	return nil
}
