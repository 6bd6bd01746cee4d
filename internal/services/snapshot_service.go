package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/dbctx"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
	"github.com/hearthstack/homescore-backend/internal/scoring/trend"
	"github.com/hearthstack/homescore-backend/internal/types"
)

// SnapshotService wraps the append-only weekly score series.
type SnapshotService interface {
	AppendWeekly(dbc dbctx.Context, propertyID uuid.UUID, scoreType types.ScoreType, score float64, detail map[string]any, computedAt time.Time) error
	SeriesFor(dbc dbctx.Context, propertyID uuid.UUID, scoreType types.ScoreType) (trend.Series, error)
}

type snapshotService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.ScoreSnapshotRepo
}

func NewSnapshotService(db *gorm.DB, baseLog *logger.Logger, repo repos.ScoreSnapshotRepo) SnapshotService {
	return &snapshotService{
		db:   db,
		log:  baseLog.With("service", "SnapshotService"),
		repo: repo,
	}
}

func (s *snapshotService) AppendWeekly(dbc dbctx.Context, propertyID uuid.UUID, scoreType types.ScoreType, score float64, detail map[string]any, computedAt time.Time) error {
	var detailJSON datatypes.JSON
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		detailJSON = datatypes.JSON(b)
	}
	snapshot := &types.ScoreSnapshot{
		PropertyID: propertyID,
		ScoreType:  scoreType,
		WeekStart:  types.WeekStartFor(computedAt),
		Score:      score,
		ScoreMax:   100,
		Detail:     detailJSON,
		ComputedAt: computedAt,
	}
	_, err := s.repo.AppendWeek(dbc.Ctx, dbc.Tx, snapshot)
	return err
}

func (s *snapshotService) SeriesFor(dbc dbctx.Context, propertyID uuid.UUID, scoreType types.ScoreType) (trend.Series, error) {
	rows, err := s.repo.ListByPropertyAndType(dbc.Ctx, dbc.Tx, propertyID, scoreType, 52)
	if err != nil {
		return trend.Series{}, err
	}
	points := make([]trend.Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, trend.Point{
			WeekStart: row.WeekStart,
			Score:     row.Score,
			ScoreMax:  row.ScoreMax,
		})
	}
	return trend.BuildSeries(points), nil
}
