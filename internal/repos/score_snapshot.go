package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type ScoreSnapshotRepo interface {
	// AppendWeek writes the week's row for (property, scoreType). The
	// series is append-only: re-running a week overwrites that single
	// row and never touches earlier weeks.
	AppendWeek(ctx context.Context, tx *gorm.DB, snapshot *types.ScoreSnapshot) (*types.ScoreSnapshot, error)
	ListByPropertyAndType(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, limit int) ([]*types.ScoreSnapshot, error)
	LatestByPropertyAndType(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType) (*types.ScoreSnapshot, error)
	HasWeek(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, weekStart time.Time) (bool, error)
}

type scoreSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) ScoreSnapshotRepo {
	return &scoreSnapshotRepo{db: db, log: baseLog.With("repo", "ScoreSnapshotRepo")}
}

func (r *scoreSnapshotRepo) AppendWeek(ctx context.Context, tx *gorm.DB, snapshot *types.ScoreSnapshot) (*types.ScoreSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if snapshot == nil {
		return nil, nil
	}
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "score_type"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "score_max", "detail", "computed_at",
			}),
		}).
		Create(snapshot).Error
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *scoreSnapshotRepo) ListByPropertyAndType(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, limit int) ([]*types.ScoreSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 52
	}
	var out []*types.ScoreSnapshot
	if err := transaction.WithContext(ctx).
		Where("property_id = ? AND score_type = ?", propertyID, scoreType).
		Order("week_start DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *scoreSnapshotRepo) LatestByPropertyAndType(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType) (*types.ScoreSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var snap types.ScoreSnapshot
	err := transaction.WithContext(ctx).
		Where("property_id = ? AND score_type = ?", propertyID, scoreType).
		Order("week_start DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *scoreSnapshotRepo) HasWeek(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, scoreType types.ScoreType, weekStart time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.ScoreSnapshot{}).
		Where("property_id = ? AND score_type = ? AND week_start = ?", propertyID, scoreType, weekStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
